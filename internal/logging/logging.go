package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const consoleTimeFormat = "15:04:05"

// Options selects where and how much the CLI logs.
type Options struct {
	Level   string
	File    string
	Verbose bool
}

// New builds a logger writing human-readable lines to console and, when
// opts.File is set, JSON lines appended to that file. The returned func
// closes the file.
func New(opts Options, console io.Writer) (zerolog.Logger, func() error, error) {
	level := ParseLevel(opts.Level, zerolog.WarnLevel)
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	zerolog.ErrorFieldName = "err"
	writers := []io.Writer{zerolog.ConsoleWriter{Out: console, TimeFormat: consoleTimeFormat}}
	closer := func() error { return nil }

	if path := strings.TrimSpace(opts.File); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return zerolog.Nop(), closer, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return zerolog.Nop(), closer, err
		}
		writers = append(writers, f)
		closer = f.Close
	}

	var w io.Writer = writers[0]
	if len(writers) > 1 {
		w = zerolog.MultiLevelWriter(writers...)
	}

	log := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return log, closer, nil
}

// ParseLevel maps a level name to a zerolog level, returning def for
// unknown or empty names.
func ParseLevel(s string, def zerolog.Level) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off", "none":
		return zerolog.Disabled
	}
	return def
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
