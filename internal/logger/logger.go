package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the root logger.
type Options struct {
	Level  string    // "debug", "info", "warn", "error"; defaults to info
	Format string    // "console" or "json"; defaults to console
	Writer io.Writer // defaults to os.Stderr
}

var (
	once sync.Once
	root zerolog.Logger
)

// Init builds the root logger exactly once. The zero Options value yields
// an info-level console logger on stderr.
func Init(opts Options) {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339

		level := zerolog.InfoLevel
		if opts.Level != "" {
			if parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level)); err == nil {
				level = parsed
			}
		}

		w := opts.Writer
		if w == nil {
			w = os.Stderr
		}
		if opts.Format != "json" {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		}

		root = zerolog.New(w).Level(level).With().Timestamp().Logger()
	})
}

// Base returns the root logger, initialising defaults on first use.
func Base() zerolog.Logger {
	Init(Options{})
	return root
}

// WithComponent returns a child logger annotated with a component name.
func WithComponent(component string) zerolog.Logger {
	return Base().With().Str(FieldComponent, component).Logger()
}
