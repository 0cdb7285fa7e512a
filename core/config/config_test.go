package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { os.Setenv(k, v) })
		}
		os.Unsetenv(k)
	}
}

func TestGetConfigDefaults(t *testing.T) {
	unsetEnv(t, "LRU_CAPACITY", "LRU_SHARDS", "LRU_BUFFER_CAPACITY", "LRU_STORE_PATH", "LRU_LOG_LEVEL")

	cfg, err := GetConfig()
	require.NoError(t, err)
	require.Equal(t, 2, cfg.Cache.Capacity)
	require.Equal(t, 1, cfg.Cache.Shards)
	require.Equal(t, 100, cfg.Buffer.Capacity)
	require.Equal(t, "./data", cfg.Store.Path)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestGetConfigFromEnv(t *testing.T) {
	t.Setenv("LRU_CAPACITY", "64")
	t.Setenv("LRU_SHARDS", "8")
	t.Setenv("LRU_BUFFER_CAPACITY", "10")
	t.Setenv("LRU_STORE_PATH", "/tmp/lru")
	t.Setenv("LRU_LOG_LEVEL", "debug")

	cfg, err := GetConfig()
	require.NoError(t, err)
	require.Equal(t, 64, cfg.Cache.Capacity)
	require.Equal(t, 8, cfg.Cache.Shards)
	require.Equal(t, 10, cfg.Buffer.Capacity)
	require.Equal(t, "/tmp/lru", cfg.Store.Path)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestGetConfigRejectsInvalidValues(t *testing.T) {
	t.Setenv("LRU_CAPACITY", "0")
	_, err := GetConfig()
	require.ErrorIs(t, err, ErrInvalidCapacity)

	t.Setenv("LRU_CAPACITY", "2")
	t.Setenv("LRU_SHARDS", "4")
	_, err = GetConfig()
	require.ErrorIs(t, err, ErrInvalidShards)

	t.Setenv("LRU_CAPACITY", "two")
	_, err = GetConfig()
	require.Error(t, err)
}
