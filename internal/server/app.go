// Package server initializes and runs the healthlog application: it opens
// the database, applies migrations, wires services to the HTTP API and
// handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/healthlog/internal/logging"
	"github.com/dmitrijs2005/healthlog/internal/server/auth"
	"github.com/dmitrijs2005/healthlog/internal/server/config"
	"github.com/dmitrijs2005/healthlog/internal/server/httpapi"
	"github.com/dmitrijs2005/healthlog/internal/server/notify"
	"github.com/dmitrijs2005/healthlog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/healthlog/internal/server/services"
	"github.com/redis/go-redis/v9"
)

// resetStreamMaxLen bounds the reset notification stream.
const resetStreamMaxLen = 10000

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	redis  *redis.Client
	server *httpapi.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db}

	notifier, err := app.resetNotifier(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("redis init error: %w", err)
	}

	issuer := auth.NewIssuer([]byte(c.SecretKey), c.AccessTokenValidityDuration, c.RefreshTokenValidityDuration)

	svc := httpapi.Services{
		Users:       services.NewUserService(db, rm, issuer, notifier, logger, c),
		Symptoms:    services.NewSymptomService(db, rm),
		Habits:      services.NewHabitService(db, rm),
		Medications: services.NewMedicationService(db, rm),
		Logs:        services.NewLogService(db, rm),
		Stats:       services.NewStatsService(db, rm, logger),
	}

	app.server = httpapi.NewServer(c, logger, issuer, svc)
	return app, nil
}

func openDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// resetNotifier publishes to Redis when a URL is configured and falls back
// to the log otherwise.
func (app *App) resetNotifier(ctx context.Context) (notify.ResetNotifier, error) {
	if app.config.RedisURL == "" {
		app.logger.Warn(ctx, "no Redis URL configured, reset tokens go to the log")
		return notify.NewLogNotifier(app.logger), nil
	}

	client, err := notify.NewRedisClient(ctx, app.config.RedisURL)
	if err != nil {
		return nil, err
	}
	app.redis = client
	return notify.NewRedisNotifier(client, app.config.ResetStream, resetStreamMaxLen), nil
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
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.close(ctx)
}

func (app *App) close(ctx context.Context) {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error(ctx, "redis close error", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
