// Package logging builds the per-run logger and adapts it to the HTTP
// client's leveled logger interface.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
)

// debugEnvVars are CI switches that turn on debug logging when set to
// "true" or "1".
var debugEnvVars = []string{"ACTIONS_STEP_DEBUG", "ACTIONS_RUNNER_DEBUG", "RUNNER_DEBUG"}

// Options configures New.
type Options struct {
	Verbose bool
	Debug   bool
	// Writer receives log output. Defaults to os.Stderr.
	Writer io.Writer
}

// New returns a logger at warn level, raised to info by Verbose and to debug
// by Debug.
func New(opts Options) *logrus.Logger {
	log := logrus.New()

	out := opts.Writer
	if out == nil {
		out = os.Stderr
	}
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})

	switch {
	case opts.Debug:
		log.SetLevel(logrus.DebugLevel)
	case opts.Verbose:
		log.SetLevel(logrus.InfoLevel)
	default:
		log.SetLevel(logrus.WarnLevel)
	}

	return log
}

// Discard returns a logger that drops everything. Used by tests and by
// callers that do not care about diagnostics.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// DebugFromEnv reports whether any CI debug switch is enabled. getenv is
// usually os.Getenv.
func DebugFromEnv(getenv func(string) string) bool {
	for _, name := range debugEnvVars {
		switch strings.ToLower(strings.TrimSpace(getenv(name))) {
		case "true", "1":
			return true
		}
	}
	return false
}

// MaskToken returns the first four characters of token followed by an
// ellipsis. Empty tokens are reported as "(empty)".
func MaskToken(token string) string {
	if token == "" {
		return "(empty)"
	}
	if len(token) <= 4 {
		return "***"
	}
	return token[:4] + "..."
}

// leveled adapts a logrus logger to retryablehttp.LeveledLogger.
type leveled struct {
	log logrus.FieldLogger
}

// Leveled wraps log for use as a retryablehttp client logger.
func Leveled(log logrus.FieldLogger) retryablehttp.LeveledLogger {
	return &leveled{log: log}
}

func (l *leveled) Error(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(fields(keysAndValues)).Error(msg)
}

func (l *leveled) Info(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(fields(keysAndValues)).Info(msg)
}

func (l *leveled) Debug(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(fields(keysAndValues)).Debug(msg)
}

func (l *leveled) Warn(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(fields(keysAndValues)).Warn(msg)
}

// fields converts alternating key/value pairs into logrus fields. A trailing
// key without a value is kept under "extra".
func fields(keysAndValues []interface{}) logrus.Fields {
	f := make(logrus.Fields, len(keysAndValues)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		if i+1 >= len(keysAndValues) {
			f["extra"] = key
			break
		}
		f[key] = keysAndValues[i+1]
	}
	return f
}
