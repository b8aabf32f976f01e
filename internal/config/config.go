// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
)

// Options holds the configuration values for the application.
type Options struct {
	// StoragePath is the path to the local storage JSON file.
	StoragePath string

	// DatabaseDSN, when set, switches persistence from the local file to
	// a Postgres key-value store.
	DatabaseDSN string

	// ImageEndpoint is the image-upload endpoint URL.
	ImageEndpoint string

	// ImageAPIKey is the API key sent with upload requests.
	ImageAPIKey string

	// Config is the path to the Config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.StoragePath, "s", "storage.json", "path to local storage file")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.ImageEndpoint, "u", "http://localhost:8081/api/upload", "image upload endpoint")
	flag.StringVar(&options.ImageAPIKey, "k", "", "image upload api key")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
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

	if storagePath := os.Getenv("STORAGE_PATH"); storagePath != "" {
		options.StoragePath = storagePath
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if endpoint := os.Getenv("IMAGE_ENDPOINT"); endpoint != "" {
		options.ImageEndpoint = endpoint
	}
	if key := os.Getenv("IMAGE_API_KEY"); key != "" {
		options.ImageAPIKey = key
	}

	return options
}
