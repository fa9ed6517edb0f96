package auth

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/payroll/internal/domain"
	"github.com/GlebRadaev/payroll/pkg/utils"
	"go.uber.org/zap"
)

type ContextKey string

const (
	SessionKey   ContextKey = "session"
	AccountIDKey ContextKey = "accountID"
)

type SessionLoader interface {
	Load(ctx context.Context, id string) (*domain.Session, error)
}

type AccountResolver interface {
	CurrentAccountID(sess *domain.Session) (int64, bool)
}

func WithSession(ctx context.Context, sess *domain.Session) context.Context {
	return context.WithValue(ctx, SessionKey, sess)
}

func SessionFromContext(ctx context.Context) *domain.Session {
	sess, _ := ctx.Value(SessionKey).(*domain.Session)
	return sess
}

func AccountIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(AccountIDKey).(int64)
	return id, ok
}

// SessionMiddleware attaches the caller's session, or a fresh anonymous one, to the request.
func SessionMiddleware(loader SessionLoader, cookies *SessionCookies) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, _ := cookies.SessionID(r)
			sess, err := loader.Load(r.Context(), id)
			if err != nil {
				zap.L().Error("can't load session", zap.Error(err))
				utils.RespondWithError(w, http.StatusInternalServerError, "Session store unavailable")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

func RequireAccount(resolver AccountResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := SessionFromContext(r.Context())
			if sess == nil {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			accountID, ok := resolver.CurrentAccountID(sess)
			if !ok {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			ctx := context.WithValue(r.Context(), AccountIDKey, accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
