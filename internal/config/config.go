// Package config provides functionality for managing configuration options
// for the application using command-line flags, a .env file and environment
// variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string

	// DatabaseDSN holds the database connection string for the application.
	DatabaseDSN string

	// IdentityURL is the base URL of the identity provider.
	IdentityURL string

	// IdentityKey is the project API key sent with every identity call.
	IdentityKey string

	// AuthMode selects where session credentials are read from:
	// "cookie" (default) or "header".
	AuthMode string

	// LogLevel sets the logging verbosity.
	LogLevel string

	// Config is the path to the Config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.IdentityURL, "identity-url", "", "identity provider base URL")
	flag.StringVar(&options.AuthMode, "auth-mode", "cookie", "credential source: cookie or header")
	flag.StringVar(&options.LogLevel, "log-level", "Info", "logging level")
	flag.StringVar(&options.Config, "config", "", "path to config file")
	flag.StringVar(&options.Config, "c", "", "path to config file (shorthand)")
}

// Parse resolves configuration from flags, an optional JSON config file,
// a .env file and environment variables, in increasing priority. It
// returns a pointer to the Options struct containing the parsed values.
func Parse() *Options {
	flag.Parse()

	// A missing .env file is not an error.
	_ = godotenv.Load()

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	// Environment variables win over flags and the config file.
	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Port = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if url := os.Getenv("IDENTITY_URL"); url != "" {
		options.IdentityURL = url
	}
	if key := os.Getenv("IDENTITY_KEY"); key != "" {
		options.IdentityKey = key
	}
	if mode := os.Getenv("AUTH_MODE"); mode != "" {
		options.AuthMode = mode
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		options.LogLevel = level
	}

	return options
}
