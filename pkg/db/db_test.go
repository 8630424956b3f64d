package db

import (
	"context"
	"testing"
	"time"

	"im-message/config"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		Host:     "127.0.0.1",
		Port:     3307,
		Username: "im",
		Password: "secret",
		Database: "im_message",
		Charset:  "utf8mb4",
	})

	parsed, err := mysqldriver.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "im", parsed.User)
	assert.Equal(t, "secret", parsed.Passwd)
	assert.Equal(t, "127.0.0.1:3307", parsed.Addr)
	assert.Equal(t, "im_message", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.Equal(t, time.Local, parsed.Loc)
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestGormConfig(t *testing.T) {
	cfg := GormConfig(false)
	assert.True(t, cfg.SkipDefaultTransaction)
	assert.Equal(t, "user_message", cfg.NamingStrategy.TableName("UserMessage"))
}

func TestUninitialized(t *testing.T) {
	prev := DB
	DB = nil
	t.Cleanup(func() { DB = prev })

	assert.Error(t, HealthCheck(context.Background()))
	assert.Error(t, AutoMigrate())
	assert.NoError(t, CloseDB())
}
