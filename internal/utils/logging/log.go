// Package logging is the program-wide leveled logger.
package logging

import (
	"bytes"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
)

const timeFormat = "2006-01-02 15:04:05.00 MST"

var (
	// Level is the highest debug level printed by D.
	Level int = 0

	logger = newLogger(os.Stderr)
)

func newLogger(out io.Writer) zerolog.Logger {
	cw := zerolog.ConsoleWriter{Out: out, TimeFormat: timeFormat}
	return zerolog.New(cw).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}

// SetupLogging sets the debug level and the console output.
//
// A nil writer means a colour-capable stdout.
func SetupLogging(level int, out io.Writer) {
	if out == nil {
		out = colorable.NewColorableStdout()
	}
	logger = newLogger(out)
	Level = level
}

// E logs an error with its call site.
func E(format string, args ...any) {
	logger.Error().Caller(1).Msgf(format, args...)
}

// W logs a warning.
func W(format string, args ...any) {
	logger.Warn().Msgf(format, args...)
}

// I logs information.
func I(format string, args ...any) {
	logger.Info().Msgf(format, args...)
}

// S logs a success.
func S(format string, args ...any) {
	logger.Info().Bool("success", true).Msgf(format, args...)
}

// D logs debug output when l is within the configured level.
func D(l int, format string, args ...any) {
	if l > Level {
		return
	}
	logger.Debug().Caller(1).Int("lvl", l).Msgf(format, args...)
}

// P prints without a level.
func P(format string, args ...any) {
	logger.Log().Msgf(format, args...)
}

// StdLogger bridges packages expecting a *log.Logger.
func StdLogger() *log.Logger {
	return log.New(stdWriter{}, "", 0)
}

type stdWriter struct{}

func (stdWriter) Write(p []byte) (int, error) {
	logger.Info().Msg(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// LineWriter logs each written line as a warning with a fixed prefix.
type LineWriter struct {
	prefix string
	mu     sync.Mutex
	buf    bytes.Buffer
}

// NewLineWriter returns a LineWriter. Call Close to flush a trailing partial line.
func NewLineWriter(prefix string) *LineWriter {
	return &LineWriter{prefix: prefix}
}

func (w *LineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Partial line, keep for the next write
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		if line = strings.TrimRight(line, "\r\n"); line != "" {
			W("%s%s", w.prefix, line)
		}
	}
	return len(p), nil
}

// Close flushes any buffered partial line.
func (w *LineWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if rest := strings.TrimSpace(w.buf.String()); rest != "" {
		W("%s%s", w.prefix, rest)
	}
	w.buf.Reset()
	return nil
}
