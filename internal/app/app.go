package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/grocery-backend/internal/cfg"
	v1Http "github.com/DRSN-tech/grocery-backend/internal/delivery/v1/http"
	"github.com/DRSN-tech/grocery-backend/internal/repository/pgdb"
	redisRepo "github.com/DRSN-tech/grocery-backend/internal/repository/redis"
	"github.com/DRSN-tech/grocery-backend/internal/usecase"
	"github.com/DRSN-tech/grocery-backend/pkg/clients"
	"github.com/DRSN-tech/grocery-backend/pkg/closer"
	"github.com/DRSN-tech/grocery-backend/pkg/e"
	"github.com/DRSN-tech/grocery-backend/pkg/jitter"
	"github.com/DRSN-tech/grocery-backend/pkg/logger"
	"github.com/DRSN-tech/grocery-backend/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

func Run() {
	logger := logger.NewSlogLogger()

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	cl := closer.New()

	db, err := initPGDB(logger, cfg)
	if err != nil {
		logger.Errorf(err, "failed to initialize database")
		os.Exit(1)
	}
	cl.Add(func(_ context.Context) error {
		db.Close()
		return nil
	})

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(redisCtx); err != nil {
		redisCancel()
		logger.Errorf(err, "failed to connect to redis")
		os.Exit(1)
	}
	redisCancel()
	cl.Add(func(_ context.Context) error {
		return redisClient.Client.Close()
	})

	productRepo := pgdb.NewProductRepo(db.Pool)
	orderRepo := pgdb.NewOrderRepo(db.Pool)
	userRepo := pgdb.NewUserRepo(db.Pool)
	sessionRepo := redisRepo.NewSessionRepo(redisClient, cfg.Redis, logger)

	catalogUC := usecase.NewCatalogUC(productRepo, db.Pool, logger)
	orderUC := usecase.NewOrderUC(productRepo, orderRepo, db.Pool, logger)
	authUC := usecase.NewAuthUC(userRepo, sessionRepo, cfg.Seed, logger)

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authUC.SeedDefaultUsers(seedCtx); err != nil {
		seedCancel()
		logger.Errorf(err, "failed to seed default users")
		os.Exit(1)
	}
	seedCancel()

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, logger)
	router.Init(catalogUC, orderUC, authUC)

	httpSrv := v1Http.NewServer(r, cfg.Http)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP server started on port %s", cfg.Http.Port)
		if err := httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()
	cl.Add(httpSrv.Stop)

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := cl.Close(shutdownCtx); err != nil {
		logger.Errorf(err, "shutdown finished with errors")
	}

	logger.Infof("Application shutdown complete")
	if appErr != nil {
		os.Exit(1)
	}
}

// initPGDB подключается к PostgreSQL с повторными попытками и прогоняет миграции.
func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	const (
		maxAttempts = 5
		baseBackoff = 500 * time.Millisecond
		maxBackoff  = 5 * time.Second
	)

	var (
		db  *postgres.PgDatabase
		err error
	)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		db, err = postgres.Connect(cfg.Db)
		if err == nil {
			break
		}

		backoff := jitter.ExponentialBackoff(baseBackoff, maxBackoff, attempt, jitter.DefaultJitter)
		logger.Warnf("database connect attempt %d failed, retrying in %s: %v", attempt+1, backoff, err)
		time.Sleep(backoff)
	}
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
