package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolConfig_Parse(t *testing.T) {
	cfg, err := PoolConfig{
		DSN:             "postgres://u:p@localhost:5432/d?sslmode=disable",
		MaxConns:        8,
		MinConns:        2,
		MaxConnLifetime: 30 * time.Minute,
	}.parse()
	require.NoError(t, err)
	assert.EqualValues(t, 8, cfg.MaxConns)
	assert.EqualValues(t, 2, cfg.MinConns)
	assert.Equal(t, 30*time.Minute, cfg.MaxConnLifetime)
	assert.Equal(t, "d", cfg.ConnConfig.Database)
}

func TestPoolConfig_MinAboveMaxIgnored(t *testing.T) {
	cfg, err := PoolConfig{DSN: "postgres://u:p@localhost/d", MaxConns: 2, MinConns: 5}.parse()
	require.NoError(t, err)
	assert.EqualValues(t, 0, cfg.MinConns)
}

func TestPoolConfig_BadDSN(t *testing.T) {
	_, err := PoolConfig{DSN: "postgres://u:p@localhost:notaport/d"}.parse()
	assert.ErrorContains(t, err, "parse dsn")
}
