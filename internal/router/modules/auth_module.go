package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	handlers "github.com/oksasatya/go-credential-service/internal/interface/http"
	"github.com/oksasatya/go-credential-service/internal/interface/middleware"
)

// RateLimits bounds attempts per client IP. Zero disables a limit.
type RateLimits struct {
	Register int
	Login    int
	Window   time.Duration
}

type AuthModule struct {
	Handler  *handlers.AuthHandler
	Verifier middleware.SessionVerifier
	Redis    *redis.Client
	Limits   RateLimits
	Logger   *logrus.Logger
}

func NewAuthModule(h *handlers.AuthHandler, v middleware.SessionVerifier, rdb *redis.Client, limits RateLimits, logger *logrus.Logger) *AuthModule {
	return &AuthModule{Handler: h, Verifier: v, Redis: rdb, Limits: limits, Logger: logger}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(m.Redis, m.Limits.Register, m.Limits.Window, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(m.Redis, m.Limits.Login, m.Limits.Window, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/auth")
	auth.Use(middleware.Auth(m.Verifier, m.Logger))
	{
		auth.GET("/me", m.Handler.Me)
	}
}
