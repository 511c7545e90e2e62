package logger

import (
	"context"
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New собирает zap логгер: консольный в разработке, JSON в проде
func New(appEnv, level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	if appEnv == "production" || appEnv == "prod" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("could not build logger: %w", err)
	}
	return log.With(zap.String("env", appEnv)), nil
}

// PanicLogger пишет паники резолверов graphql-go через zap
type PanicLogger struct {
	Log *zap.Logger
}

func (l PanicLogger) LogPanic(ctx context.Context, value interface{}) {
	l.Log.Error("graphql: panic occurred",
		zap.String("request_id", RequestIDFromContext(ctx)),
		zap.Any("panic", value),
		zap.ByteString("stack", debug.Stack()),
	)
}
