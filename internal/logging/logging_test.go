package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNew_Levels(t *testing.T) {
	tests := map[string]struct {
		opts Options
		want logrus.Level
	}{
		"default is warn":     {opts: Options{}, want: logrus.WarnLevel},
		"verbose is info":     {opts: Options{Verbose: true}, want: logrus.InfoLevel},
		"debug is debug":      {opts: Options{Debug: true}, want: logrus.DebugLevel},
		"debug beats verbose": {opts: Options{Verbose: true, Debug: true}, want: logrus.DebugLevel},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.opts).GetLevel())
		})
	}
}

func TestNew_Writer(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Verbose: true, Writer: &buf})

	log.Info("reading changelog")
	log.Debug("hidden")

	assert.Contains(t, buf.String(), "reading changelog")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestDebugFromEnv(t *testing.T) {
	tests := map[string]struct {
		env  map[string]string
		want bool
	}{
		"unset":             {env: map[string]string{}, want: false},
		"step debug true":   {env: map[string]string{"ACTIONS_STEP_DEBUG": "true"}, want: true},
		"runner debug one":  {env: map[string]string{"RUNNER_DEBUG": "1"}, want: true},
		"uppercase true":    {env: map[string]string{"ACTIONS_RUNNER_DEBUG": "TRUE"}, want: true},
		"false is ignored":  {env: map[string]string{"ACTIONS_STEP_DEBUG": "false"}, want: false},
		"other var ignored": {env: map[string]string{"DEBUG": "1"}, want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := DebugFromEnv(func(k string) string { return tt.env[k] })
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMaskToken(t *testing.T) {
	tests := map[string]struct {
		token string
		want  string
	}{
		"empty":  {token: "", want: "(empty)"},
		"short":  {token: "abc", want: "***"},
		"normal": {token: "ghp_1234567890", want: "ghp_..."},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskToken(tt.token))
		})
	}
}

func TestLeveled(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Debug: true, Writer: &buf})

	l := Leveled(log)
	l.Debug("performing request", "method", "GET", "url", "https://example.com")
	l.Warn("retrying", "attempt")

	out := buf.String()
	assert.Contains(t, out, "performing request")
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "url=\"https://example.com\"")
	assert.Contains(t, out, "extra=attempt")
}

func TestFields(t *testing.T) {
	got := fields([]interface{}{"a", 1, 2, "skipped", "b", "x"})
	assert.Equal(t, logrus.Fields{"a": 1, "b": "x"}, got)
}
