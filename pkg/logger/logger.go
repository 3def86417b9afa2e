package logger

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Log struct {
	LogLevel zapcore.Level `yaml:"level" envconfig:"LOG_LEVEL" default:"info"`
	// Sink is a file path; empty means stdout.
	Sink string `yaml:"sink" envconfig:"LOG_SINK"`
}

// NewLogger writes to stdout when the sink cannot be opened and reports
// the failure as its first entry.
func NewLogger(cfg Log, name string) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	ws, sinkErr := openSink(cfg.Sink)
	if sinkErr != nil {
		ws = zapcore.Lock(os.Stdout)
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), ws, zap.NewAtomicLevelAt(cfg.LogLevel))
	log := zap.New(core, zap.AddCaller()).Named(name)
	if sinkErr != nil {
		log.Error("log sink unavailable, writing to stdout", zap.String("sink", cfg.Sink), zap.Error(sinkErr))
	}
	return log
}

func openSink(sink string) (zapcore.WriteSyncer, error) {
	if sink == "" {
		return zapcore.Lock(os.Stdout), nil
	}
	ws, _, err := zap.Open(sink)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", sink)
	}
	return ws, nil
}
