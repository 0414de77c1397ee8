// Package flowlog adapts github.com/charmbracelet/log into the minimal
// op.Logger sink the Log operation writes diagnostics through, the same
// adapter shape as the teacher's internal/infrastructure/logging package
// (charmbracelet/log wrapped behind a small structured-fields interface),
// trimmed down to the single Info call the operation algebra needs, plus
// Warn/Error and the derived-fields convention (With).
package flowlog

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	cblog "github.com/charmbracelet/log"
)

// Options configures a Logger.
type Options struct {
	Writer       io.Writer
	Level        string
	ReportCaller bool
	Fields       map[string]any
}

// Logger implements op.Logger (structurally) over charmbracelet/log.
type Logger struct {
	base   *cblog.Logger
	fields []any
}

// New constructs a Logger from Options.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}
	level := cblog.InfoLevel
	if opts.Level != "" {
		parsed, err := cblog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}
	base := cblog.NewWithOptions(writer, cblog.Options{
		Level:           level,
		ReportTimestamp: true,
		ReportCaller:    opts.ReportCaller,
	})
	return &Logger{base: base, fields: mapToFields(opts.Fields)}, nil
}

// Info emits an info-level line, satisfying op.Logger.
func (l *Logger) Info(msg string) {
	if l == nil || l.base == nil {
		return
	}
	l.base.Info(msg, l.fields...)
}

// Warn emits a warn-level diagnostic carrying the logger's persistent
// fields plus fields.
func (l *Logger) Warn(msg string, fields ...any) {
	if l == nil || l.base == nil {
		return
	}
	l.base.Warn(msg, append(append([]any{}, l.fields...), fields...)...)
}

// Error emits an error-level diagnostic.
func (l *Logger) Error(msg string, fields ...any) {
	if l == nil || l.base == nil {
		return
	}
	l.base.Error(msg, append(append([]any{}, l.fields...), fields...)...)
}

// With derives a logger carrying additional persistent fields.
func (l *Logger) With(fields ...any) *Logger {
	if l == nil {
		return nil
	}
	next := make([]any, len(l.fields))
	copy(next, l.fields)
	next = append(next, fields...)
	return &Logger{base: l.base, fields: next}
}

func mapToFields(input map[string]any) []any {
	if len(input) == 0 {
		return nil
	}
	keys := make([]string, 0, len(input))
	for k := range input {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		out = append(out, k, input[k])
	}
	return out
}
