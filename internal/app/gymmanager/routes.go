package gymmanager

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/gym-manager/internal/config"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/assigntrainer"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/attendance"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/classes"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/dashboard"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/healthcheck"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/healthprofile"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/plans"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/users"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/usersubscription"
	"github.com/magabrotheeeer/gym-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/models"
	usersvc "github.com/magabrotheeeer/gym-manager/internal/services/users"

	// Регистрация swagger-спецификации для /docs.
	_ "github.com/magabrotheeeer/gym-manager/docs"
)

// AuthService регистрация, вход и проверка токена.
type AuthService interface {
	register.Service
	login.Service
	middlewarectx.Authenticator
}

// SubscriptionService тарифные планы и абонементы.
type SubscriptionService interface {
	plans.Service
	usersubscription.Service
}

// UserService административные операции над пользователями.
type UserService interface {
	users.Service
	assigntrainer.Service
}

// Services набор сервисов, которые обслуживают маршруты.
type Services struct {
	Auth          AuthService
	Subscriptions SubscriptionService
	Classes       classes.Service
	Users         UserService
	Health        healthprofile.Service
	Attendance    attendance.Service
	Dashboard     dashboard.Service
	Audit         middlewarectx.Recorder
	Store         healthcheck.Pinger
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middlewarectx.CORS(cfg.AllowedOrigins),
		middlewarectx.Metrics,
		middlewarectx.Audit(s.Audit),
		middlewarectx.Recoverer(logger),
	)
	r.NotFound(response.NotFound)
	r.MethodNotAllowed(response.MethodNotAllowed)

	dash := dashboard.New(logger, s.Dashboard)
	att := attendance.New(logger, s.Attendance)
	cls := classes.New(logger, s.Classes)
	pl := plans.New(logger, s.Subscriptions)
	hp := healthprofile.New(logger, s.Health)
	usersHandler := users.New(logger, s.Users, usersvc.ScopeUsers)
	trainersHandler := users.New(logger, s.Users, usersvc.ScopeTrainers)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, cfg.RPS, cfg.Burst))
			r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
			r.Post("/login", login.New(logger, s.Auth).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))

			// любая роль
			r.Get("/classes", cls.List)
			r.Get("/subscriptions", pl.List)
			r.Get("/health-profile", hp.Get)
			r.Patch("/health-profile", hp.Patch)

			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.RoleUser))
				r.Get("/dashboard", dash.User)
				r.Get("/attendance", att.List)
				r.Post("/attendance", att.Mark)
				r.Post("/rsvp", cls.RSVP)
				r.Post("/user-subscriptions", usersubscription.New(logger, s.Subscriptions).ServeHTTP)
			})

			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.RoleTrainer))
				r.Get("/trainer-dashboard", dash.Trainer)
				r.Post("/classes", cls.Create)
			})

			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.RoleAdmin))
				r.Get("/admin-dashboard", dash.Admin)
				r.Post("/subscriptions", pl.Create)
				r.Post("/assign-trainer", assigntrainer.New(logger, s.Users).ServeHTTP)

				r.Get("/users", usersHandler.List)
				r.Post("/users", usersHandler.Create)
				r.Put("/users", usersHandler.Update)
				r.Delete("/users", usersHandler.Delete)

				r.Get("/trainers", trainersHandler.List)
				r.Post("/trainers", trainersHandler.Create)
				r.Put("/trainers", trainersHandler.Update)
				r.Delete("/trainers", trainersHandler.Delete)
			})
		})
	})

	r.Get("/health", healthcheck.New(logger, s.Store).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
