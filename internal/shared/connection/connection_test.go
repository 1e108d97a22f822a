package connection

import (
	"path/filepath"
	"testing"
	"time"

	"nova-hris/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectGORMWithRetry_SQLite(t *testing.T) {
	cfg := config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "nova.db")}

	db, err := ConnectGORMWithRetry(cfg, 1)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestConnectGORMWithRetry_UnknownDriver(t *testing.T) {
	_, err := ConnectGORMWithRetry(config.DatabaseConfig{Driver: "oracle"}, 1)
	assert.Error(t, err)
}

func TestConnectKafkaWithRetry_NoBrokers(t *testing.T) {
	retryDelay = time.Millisecond
	_, err := ConnectKafkaWithRetry(nil, 1)
	assert.Error(t, err)
}
