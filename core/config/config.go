package config

import (
	"errors"

	"github.com/kelseyhightower/envconfig"
)

var (
	ErrInvalidCapacity = errors.New("config: capacity must be positive")
	ErrInvalidShards   = errors.New("config: shards must be positive and not exceed capacity")
)

type Config struct {
	Cache struct {
		Capacity int `envconfig:"LRU_CAPACITY" default:"2"`
		Shards   int `envconfig:"LRU_SHARDS" default:"1"`
	}
	Buffer struct {
		Capacity int `envconfig:"LRU_BUFFER_CAPACITY" default:"100"`
	}
	Store struct {
		Path string `envconfig:"LRU_STORE_PATH" default:"./data"`
	}
	Log struct {
		Level string `envconfig:"LRU_LOG_LEVEL" default:"info"`
	}
}

func GetConfig() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Cache.Capacity <= 0 || c.Buffer.Capacity <= 0 {
		return ErrInvalidCapacity
	}

	if c.Cache.Shards <= 0 || c.Cache.Shards > c.Cache.Capacity {
		return ErrInvalidShards
	}

	return nil
}
