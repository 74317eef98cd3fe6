package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{"explicit log level wins", Config{LogLevel: "error", Verbose: true}, "error"},
		{"invalid explicit falls back to info", Config{LogLevel: "nope"}, "info"},
		{"verbose means debug", Config{Verbose: true}, "debug"},
		{"quiet means warn", Config{Quiet: true}, "warn"},
		{"verbose and quiet prefers quiet", Config{Verbose: true, Quiet: true}, "warn"},
		{"default is info", Config{}, "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, determineLogLevel(&tt.config))
		})
	}
}

func TestValidateLogLevel(t *testing.T) {
	assert.Equal(t, "debug", validateLogLevel("debug"))
	assert.Equal(t, "info", validateLogLevel("shout"))
}

func TestRootCommandRegistersLoggingFlags(t *testing.T) {
	a := &App{config: &Config{LogFormat: "auto"}}
	root := a.createRootCommand()

	for _, name := range []string{"log-level", "log-format", "verbose", "quiet", "no-color"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), "missing flag --%s", name)
	}
}
