// Package logging configures the shared logrus logger.
//
// The interactive views own the terminal, so the CLI sends log output to a
// file. The development backend logs to stderr.
package logging

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/blackwell-systems/shelflog/internal/util"
	"github.com/sirupsen/logrus"
)

type ctxKey string

// RequestIDKey carries the per-request id through a context.
const RequestIDKey ctxKey = "requestId"

// slowThreshold marks an operation as slow in Track output.
const slowThreshold = 500 * time.Millisecond

// Setup points the standard logger at w with the given level name.
// Unknown levels fall back to info.
func Setup(w io.Writer, level string, colors bool) {
	logrus.SetOutput(w)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
		ForceColors:     colors,
		DisableColors:   !colors,
	})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// OpenFile opens path for appending, creating parent directories.
func OpenFile(path string) (*os.File, error) {
	if err := util.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// For returns an entry carrying the request id from ctx, if any.
func For(ctx context.Context) *logrus.Entry {
	id, ok := ctx.Value(RequestIDKey).(string)
	if !ok {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return logrus.WithField("request_id", id)
}

// ContextWithID returns a child context carrying id.
func ContextWithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// Track logs msg with its duration when the returned func is called.
func Track(ctx context.Context, msg string) func() {
	start := time.Now()
	return func() {
		dur := time.Since(start)
		entry := For(ctx).WithField("duration", dur.String())
		if dur > slowThreshold {
			entry.Warnf("%s completed (SLOW)", msg)
		} else {
			entry.Debugf("%s completed", msg)
		}
	}
}
