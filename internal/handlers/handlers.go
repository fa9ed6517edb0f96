package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/payroll/docs"
	authhandlers "github.com/GlebRadaev/payroll/internal/handlers/auth"
	paymentshandlers "github.com/GlebRadaev/payroll/internal/handlers/payments"
	workershandlers "github.com/GlebRadaev/payroll/internal/handlers/workers"
	"github.com/GlebRadaev/payroll/internal/service"
	"github.com/GlebRadaev/payroll/pkg/auth"
)

type AuthHandler interface {
	Signup(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type WorkersHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Balances(w http.ResponseWriter, r *http.Request)
	Profile(w http.ResponseWriter, r *http.Request)
	ProfileByID(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type PaymentsHandler interface {
	Pay(w http.ResponseWriter, r *http.Request)
}

type Middleware func(http.Handler) http.Handler

type Handlers struct {
	AuthHandler     AuthHandler
	WorkersHandler  WorkersHandler
	PaymentsHandler PaymentsHandler

	CORS           Middleware
	Sessions       Middleware
	RequireAccount Middleware
}

func New(s *service.Services, cookies *auth.SessionCookies, allowedOrigins []string) *Handlers {
	return &Handlers{
		AuthHandler:     authhandlers.New(s.AuthService, s.SessionService, cookies),
		WorkersHandler:  workershandlers.New(s.AccountService),
		PaymentsHandler: paymentshandlers.New(s.LedgerService),

		CORS: cors.New(cors.Options{
			AllowedOrigins:   allowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
		}).Handler,
		Sessions:       auth.SessionMiddleware(s.SessionService, cookies),
		RequireAccount: auth.RequireAccount(s.SessionService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		h.CORS,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))

	r.Group(func(r chi.Router) {
		r.Use(h.Sessions)
		r.Post("/signup", h.AuthHandler.Signup)
		r.Post("/login", h.AuthHandler.Login)
		r.Post("/logout", h.AuthHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(h.RequireAccount)
			r.Get("/workers", h.WorkersHandler.List)
			r.Get("/workers/balance", h.WorkersHandler.Balances)
			r.Post("/pay", h.PaymentsHandler.Pay)
			r.Get("/profile", h.WorkersHandler.Profile)
			r.Get("/profile/{id}", h.WorkersHandler.ProfileByID)
			r.Delete("/users/{id}", h.WorkersHandler.Delete)
		})
	})

	return r
}
