// Package cmd implements the rostersync CLI commands. Commands depend on
// the App interface rather than the concrete application to avoid an
// import cycle with the app package.
package cmd

import "github.com/rs/zerolog"

// Config is the resolved sync configuration commands run with.
type Config struct {
	Token    string
	Channel  string
	Store    string
	Table    string
	Manifest string
	DryRun   bool
}

// App provides the dependencies commands need.
type App interface {
	Config() *Config
	Logger() *zerolog.Logger
}
