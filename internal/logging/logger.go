package logging

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config controls where and how the CLI logs. The menu and results are
// written straight to the terminal; the logger only carries diagnostics.
type Config struct {
	ServiceName string `env:"LOG_SERVICE" envDefault:"inventory-cli"`
	// Level is one of debug/info/warn/error.
	Level string `env:"LOG_LEVEL" envDefault:"warn"`
	// Format is "console" or "json".
	Format string `env:"LOG_FORMAT" envDefault:"console"`
	// Output is "stderr", "stdout" or a file path.
	Output    string `env:"LOG_OUTPUT" envDefault:"stderr"`
	AddCaller bool   `env:"LOG_CALLER" envDefault:"false"`
}

// LoadEnv fills cfg from LOG_* environment variables.
func LoadEnv(cfg *Config) error {
	return env.Parse(cfg)
}

// New builds a zap.Logger for cfg. The returned func closes the output sink.
func New(cfg Config) (*zap.Logger, func(), error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	switch strings.ToLower(cfg.Format) {
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	case "", "console":
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		return nil, nil, fmt.Errorf("invalid log format: %s (must be console/json)", cfg.Format)
	}

	output := cfg.Output
	if output == "" {
		output = "stderr"
	}
	sink, closeSink, err := zap.Open(output)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log output %q: %w", output, err)
	}

	core := zapcore.NewCore(encoder, sink, level)

	var opts []zap.Option
	if cfg.AddCaller {
		opts = append(opts, zap.AddCaller())
	}
	logger := zap.New(core, opts...).With(zap.String("service", cfg.ServiceName))

	return logger, func() {
		_ = logger.Sync()
		closeSink()
	}, nil
}

func parseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s (must be debug/info/warn/error)", s)
	}
}
