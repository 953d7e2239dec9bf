package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config controls logger behavior.
type Config struct {
	Verbose   bool   // pretty output for development
	Level     string // debug|info|warn|error
	Component string // component/service name
	Out       io.Writer
}

// Setup configures the global zerolog logger and returns a component-scoped
// logger. Every log line includes a timestamp and "component".
func Setup(cfg Config) zerolog.Logger {
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var w io.Writer = cfg.Out
	if cfg.Verbose {
		w = zerolog.ConsoleWriter{
			Out:        cfg.Out,
			TimeFormat: time.RFC3339Nano,
		}
	}

	base := zerolog.New(w).Level(parseLevel(cfg.Level)).With().
		Timestamp().
		Str("component", cfg.Component).
		Logger()

	log.Logger = base
	return base
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
