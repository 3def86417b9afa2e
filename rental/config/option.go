package config

import (
	"time"

	"go.uber.org/zap/zapcore"
)

type Option func(cfg *Config)

func WithLogLevel(lvl zapcore.Level) Option {
	return func(cfg *Config) {
		cfg.Log.LogLevel = lvl
	}
}

func WithWriteTimeout(d time.Duration) Option {
	return func(cfg *Config) {
		cfg.Server.WriteTimeout = d
	}
}

func WithOutboxSchedule(spec string) Option {
	return func(cfg *Config) {
		cfg.Outbox.Schedule = spec
	}
}
