// Package logger configures the global zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Navneet-kaur7/todo-app/internal/config"
)

// Setup installs the global logger. Development uses a human readable console
// writer, everything else writes JSON. A non-empty cfg.Log.File adds a rotating
// file sink next to stdout.
func Setup(cfg config.Config) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil || cfg.Log.Level == "" {
		level = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.DurationFieldUnit = time.Millisecond

	log.Logger = zerolog.New(writer(cfg)).With().Timestamp().Logger()

	if err != nil && cfg.Log.Level != "" {
		log.Warn().Str("level", cfg.Log.Level).Msg("unknown log level, falling back to info")
	}
}

func writer(cfg config.Config) io.Writer {
	var out io.Writer = os.Stdout
	if !cfg.IsProduction() {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	}

	if cfg.Log.File == "" {
		return out
	}

	return zerolog.MultiLevelWriter(out, &lumberjack.Logger{
		Filename:   cfg.Log.File,
		MaxSize:    50, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	})
}
