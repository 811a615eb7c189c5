package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-credential-service/config"
	"github.com/oksasatya/go-credential-service/internal/domain/repository"
	"github.com/oksasatya/go-credential-service/internal/metrics"
	"github.com/oksasatya/go-credential-service/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	userRepo    repository.UserRepository

	jwtManager *helpers.JWTManager

	rabbitPub *helpers.RabbitPublisher

	collector *metrics.Collector
	gatherer  prometheus.Gatherer
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }

// GetJWT returns the manager built from JWT_SECRET. There is no default;
// main must call SetJWT before the router is built.
func GetJWT() *helpers.JWTManager { return jwtManager }

func SetUserRepo(r repository.UserRepository) { userRepo = r }
func GetUserRepo() repository.UserRepository  { return userRepo }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }

func SetMetrics(c *metrics.Collector, g prometheus.Gatherer) { collector, gatherer = c, g }
func GetMetrics() *metrics.Collector                        { return collector }
func GetGatherer() prometheus.Gatherer                      { return gatherer }

// Reset clears every singleton. Tests use it between cases.
func Reset() {
	cfg, logger, pgPool, redisClient, userRepo = nil, nil, nil, nil, nil
	jwtManager, rabbitPub, collector, gatherer = nil, nil, nil, nil
}
