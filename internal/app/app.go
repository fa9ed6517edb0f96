package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payroll/internal/config"
	"github.com/GlebRadaev/payroll/internal/handlers"
	"github.com/GlebRadaev/payroll/internal/pg"
	"github.com/GlebRadaev/payroll/internal/repo"
	"github.com/GlebRadaev/payroll/internal/service"
	"github.com/GlebRadaev/payroll/internal/service/ledgerservice"
	"github.com/GlebRadaev/payroll/internal/sqlite"
	"github.com/GlebRadaev/payroll/internal/sweeper"
	pkgauth "github.com/GlebRadaev/payroll/pkg/auth"
	"github.com/GlebRadaev/payroll/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg     *config.Config
	api     *handlers.Handlers
	srv     *service.Services
	repo    *repo.Repositories
	sweeper *sweeper.Service

	closeStore func()
	errCh      chan error
	wg         sync.WaitGroup
	ready      bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("can't load config: %w", err)
	}

	err = logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	if err := a.build(ctx, cfg); err != nil {
		return err
	}

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}
	a.startSweeper(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully", zap.String("storage", cfg.Storage))
	return nil
}

// build opens the configured store and wires repositories, services and handlers.
func (a *Application) build(ctx context.Context, cfg *config.Config) error {
	repos, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		zap.L().Error("open store failed: ", zap.Error(err))
		return fmt.Errorf("can't open %s store: %w", cfg.Storage, err)
	}

	policy := ledgerservice.Policy{
		AllowNegative:  cfg.AllowNegativeCredit,
		AllowOverdraft: cfg.AllowOverdraft,
	}
	cookies := pkgauth.NewSessionCookies(pkgauth.NewTokenService(cfg.SessionSecret), cfg.CookieSecure)

	a.cfg = cfg
	a.repo = repos
	a.closeStore = closeStore
	a.srv = service.New(repos, policy, cfg.SessionTTL)
	a.api = handlers.New(a.srv, cookies, cfg.CORSOrigins)
	a.sweeper = sweeper.New(a.srv.SessionService, cfg.SessionSweepInterval)
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (*repo.Repositories, func(), error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		pool, err := pg.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("can't build pgx pool: %w", err)
		}
		if err := pg.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("can't run migrations: %w", err)
		}
		return repo.NewPostgres(pg.New(pool), pg.NewTXManager(pool)), pool.Close, nil
	case config.StorageSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if err := db.Close(); err != nil {
				zap.L().Error("can't close sqlite db", zap.Error(err))
			}
		}
		return repo.NewSQLite(db), closeDB, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}

func (a *Application) router() http.Handler {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	return router
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	server := http.Server{
		Addr:              a.cfg.Address,
		Handler:           a.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(sCtx); err != nil {
			zap.L().Error("http server shutdown failed", zap.Error(err))
		}
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startSweeper(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.sweeper.Run(ctx)
	}()
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	if a.closeStore != nil {
		a.closeStore()
	}

	return appErr
}
