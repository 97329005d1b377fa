// Package gymmanager собирает приложение: хранилище, кеш, публикацию аудита,
// сервисы и HTTP-сервер. Всё состояние процесса живёт в App и закрывается в Run.
package gymmanager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/gym-manager/internal/cache"
	"github.com/magabrotheeeer/gym-manager/internal/config"
	"github.com/magabrotheeeer/gym-manager/internal/lib/jwt"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/migrations"
	"github.com/magabrotheeeer/gym-manager/internal/rabbitmq"
	attendancesvc "github.com/magabrotheeeer/gym-manager/internal/services/attendance"
	auditsvc "github.com/magabrotheeeer/gym-manager/internal/services/audit"
	authsvc "github.com/magabrotheeeer/gym-manager/internal/services/auth"
	classsvc "github.com/magabrotheeeer/gym-manager/internal/services/classes"
	dashboardsvc "github.com/magabrotheeeer/gym-manager/internal/services/dashboard"
	healthsvc "github.com/magabrotheeeer/gym-manager/internal/services/health"
	subsvc "github.com/magabrotheeeer/gym-manager/internal/services/subscription"
	usersvc "github.com/magabrotheeeer/gym-manager/internal/services/users"
	"github.com/magabrotheeeer/gym-manager/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

// listCache кеш списков: Redis или заглушка.
type listCache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	VersionedKey(ctx context.Context, ns string) (string, error)
	Invalidate(ctx context.Context, namespaces ...string) error
}

// App контекст приложения: конфигурация, соединения и HTTP-сервер.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	db      *repository.Storage
	closers []func() error
}

// New подключается к хранилищу, применяет миграции и собирает сервисы и маршруты.
// Redis и RabbitMQ необязательны: пустой адрес в конфиге их отключает.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.New"

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	app := &App{
		logger: logger,
		db:     db,
	}

	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var listsCache listCache = cache.Noop{}
	if cfg.AddressRedis != "" {
		redisCache, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.closers = append(app.closers, redisCache.Close)
		listsCache = redisCache
		logger.Info("redis cache enabled", slog.String("address", cfg.AddressRedis))
	}

	var publisher auditsvc.Publisher
	if cfg.RabbitMQURL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.closers = append(app.closers, conn.Close)

		ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange, rabbitmq.GetAuditQueues(cfg.RoutingKey))
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.closers = append(app.closers, ch.Close)
		publisher = rabbitmq.NewPublisher(ch, cfg.Exchange, cfg.RoutingKey)
		logger.Info("audit publishing enabled", slog.String("exchange", cfg.Exchange))
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	subscriptions := subsvc.NewSubscriptionService(db, listsCache, cfg.CacheTTL, logger)
	classes := classsvc.NewClassService(db, listsCache, cfg.CacheTTL, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, Services{
		Auth:          authsvc.NewAuthService(db, jwtMaker),
		Subscriptions: subscriptions,
		Classes:       classes,
		Users:         usersvc.NewUserService(db, listsCache, logger),
		Health:        healthsvc.NewHealthService(db, logger),
		Attendance:    attendancesvc.NewAttendanceService(db),
		Dashboard:     dashboardsvc.NewDashboardService(db, subscriptions, classes),
		Audit:         auditsvc.NewRecorder(logger, publisher),
		Store:         db,
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

// close освобождает ресурсы в обратном порядке открытия, хранилище последним.
func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("failed to close resource", sl.Err(err))
		}
	}
	a.closers = nil
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close storage", sl.Err(err))
	}
}
