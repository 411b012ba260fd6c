// Package server initializes and runs the authentication service. It selects
// the storage backends from configuration, wires them into the auth service,
// and handles graceful shutdown of the HTTP endpoint.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/dpetrovs/authgate/internal/logging"
	"github.com/dpetrovs/authgate/internal/server/config"
	"github.com/dpetrovs/authgate/internal/server/httpapi"
	"github.com/dpetrovs/authgate/internal/server/password"
	"github.com/dpetrovs/authgate/internal/server/repositories/accounts"
	"github.com/dpetrovs/authgate/internal/server/repositories/refreshtokens"
	"github.com/dpetrovs/authgate/internal/server/services"
	"github.com/dpetrovs/authgate/internal/server/storage"
	"github.com/dpetrovs/authgate/internal/server/token"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	authService *services.AuthService
	db          *sql.DB
	redisClient *redis.Client
}

func NewApp(cfg *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	codec, err := token.NewCodec([]byte(cfg.SecretKey), cfg.SigningAlgorithm)
	if err != nil {
		return nil, err
	}

	app := &App{config: cfg, logger: logger}

	accountRepo, refreshRepo, err := app.initRepositories(cfg)
	if err != nil {
		return nil, err
	}

	hasher := password.NewHasher(bcrypt.DefaultCost)
	app.authService = services.NewAuthService(accountRepo, refreshRepo, codec, hasher, cfg)

	return app, nil
}

// initRepositories builds the account and refresh token stores the config
// asks for: both in process memory for development mode, otherwise accounts
// in PostgreSQL with refresh tokens either alongside them or in Redis.
func (app *App) initRepositories(cfg *config.Config) (accounts.Repository, refreshtokens.Repository, error) {
	if cfg.InMemory {
		return accounts.NewMemoryRepository(), refreshtokens.NewMemoryRepository(), nil
	}

	db, err := storage.Open(cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("db init error: %w", err)
	}
	app.db = db

	if err := storage.RunMigrations(context.Background(), db); err != nil {
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}

	accountRepo := accounts.NewPostgresRepository(db)

	if cfg.RedisAddr != "" {
		app.redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return accountRepo, refreshtokens.NewRedisRepository(app.redisClient), nil
	}

	return accountRepo, refreshtokens.NewPostgresRepository(db), nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewHTTPServer(app.config.Address, app.logger, app.authService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) closeStores(ctx context.Context) {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, err.Error())
		}
	}
	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.logger.Error(ctx, err.Error())
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.closeStores(ctx)
}
