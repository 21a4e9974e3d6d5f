package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostgresConnMaxLifetime(t *testing.T) {
	cfg := &Config{}

	cfg.Database.Postgres.ConnMaxLifetime = "30m"
	assert.Equal(t, 30*time.Minute, cfg.PostgresConnMaxLifetime())

	cfg.Database.Postgres.ConnMaxLifetime = "not-a-duration"
	assert.Equal(t, time.Hour, cfg.PostgresConnMaxLifetime())

	cfg.Database.Postgres.ConnMaxLifetime = ""
	assert.Equal(t, time.Hour, cfg.PostgresConnMaxLifetime())
}
