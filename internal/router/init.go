package router

import (
	"github.com/oksasatya/go-credential-service/internal/application"
	"github.com/oksasatya/go-credential-service/internal/container"
	"github.com/oksasatya/go-credential-service/internal/infrastructure/notify"
	handlers "github.com/oksasatya/go-credential-service/internal/interface/http"
	"github.com/oksasatya/go-credential-service/internal/interface/middleware"
	"github.com/oksasatya/go-credential-service/internal/router/modules"
	"github.com/oksasatya/go-credential-service/pkg/helpers"
)

type AuthModuleDeps struct {
	Service *application.Service
	Handler *handlers.AuthHandler
}

func buildAuthDeps() AuthModuleDeps {
	cfg := container.GetConfig()

	var notifier application.Notifier
	if pub := container.GetRabbitPub(); pub != nil {
		notifier = notify.NewWelcomeNotifier(pub, cfg.AppName)
	}
	var recorder application.MetricsRecorder
	if col := container.GetMetrics(); col != nil {
		recorder = col
	}

	service := application.NewService(
		container.GetUserRepo(),
		container.GetJWT(),
		notifier,
		recorder,
		container.GetLogger(),
	)

	var cookies *helpers.Manager
	if cfg.SessionCookieEnabled {
		cookies = helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)
	}
	handler := handlers.NewAuthHandler(service, container.GetLogger(), cookies)

	return AuthModuleDeps{Service: service, Handler: handler}
}

// metricsAllow prefers the configured allow-list over the private-peer
// default. An unparsable list closes the endpoint.
func metricsAllow(cidrs []string) middleware.AllowFunc {
	if len(cidrs) == 0 {
		return middleware.AllowPrivateIP()
	}
	allow, err := middleware.AllowCIDRs(cidrs)
	if err != nil {
		helpers.LogError(container.GetLogger(), "invalid metrics allow-list, /metrics disabled", err, nil)
		return nil
	}
	return allow
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()

	deps := buildAuthDeps()
	limits := modules.RateLimits{Window: cfg.RateLimitWindow}
	if cfg.RateLimitEnabled {
		limits.Register = cfg.RegisterRateLimit
		limits.Login = cfg.LoginRateLimit
	}
	r.Add(modules.NewAuthModule(deps.Handler, deps.Service, container.GetRedis(), limits, container.GetLogger()))

	if cfg.MetricsEnabled && container.GetGatherer() != nil {
		r.AddRoot(modules.NewMetricsModule(container.GetGatherer(), container.GetRedis(), metricsAllow(cfg.MetricsCIDRs())))
	}
}
