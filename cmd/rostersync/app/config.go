package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from flags,
// environment variables, .env files, and the config file.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool

	// Config file
	ConfigFile string

	// Sync configuration
	Token    string
	Channel  string
	Store    string
	Table    string
	Manifest string
	DryRun   bool

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (ROSTERSYNC_*, plus SLACK_TOKEN for the credential)
// 3. .env files
// 4. Config file (~/.rostersync.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.SetEnvPrefix("ROSTERSYNC")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// The credential is commonly provided as SLACK_TOKEN.
	_ = viper.BindEnv("token", "ROSTERSYNC_TOKEN", "SLACK_TOKEN")

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".rostersync")
		}
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),

		ConfigFile: viper.ConfigFileUsed(),

		Token:    viper.GetString("token"),
		Channel:  viper.GetString("channel"),
		Store:    viper.GetString("store"),
		Table:    viper.GetString("table"),
		Manifest: viper.GetString("manifest"),
		DryRun:   viper.GetBool("dry-run"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	return config, nil
}

// ApplyConfigFile reads the file named in ConfigFile into the
// configuration. Values the user set on the command line are kept; the
// file fills in the rest.
func (c *Config) ApplyConfigFile(flags *pflag.FlagSet) error {
	v := viper.New()
	v.SetConfigFile(c.ConfigFile)
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	set := func(flag, key string, dst *string) {
		if !flags.Changed(flag) && v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	set("token", "token", &c.Token)
	set("channel", "channel", &c.Channel)
	set("store", "store", &c.Store)
	set("table", "table", &c.Table)
	set("log-level", "log-level", &c.LogLevel)
	set("log-format", "log-format", &c.LogFormat)

	// --manifest is a sync-command flag, not a persistent one.
	if c.Manifest == "" && v.IsSet("manifest") {
		c.Manifest = v.GetString("manifest")
	}
	return nil
}

// loadEnvFiles loads .env files from the working directory, most specific
// first so earlier files win.
func loadEnvFiles() {
	for _, file := range []string{".env.local", ".env"} {
		if _, err := os.Stat(file); err == nil {
			_ = godotenv.Load(file)
		}
	}
}

// getEnvOrDefault returns an environment variable value or default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
