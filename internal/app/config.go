package app

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/shrimpsizemoose/trekker/logger"
)

type Config struct {
	Server struct {
		Port string `toml:"port"`
	} `toml:"server"`

	Storage struct {
		DSN           string `toml:"dsn"`
		MigrationsDir string `toml:"migrations_dir"`
	} `toml:"storage"`

	Display struct {
		TimestampFormat string `toml:"timestamp_format"`
	} `toml:"display"`

	Export struct {
		Schedule string `toml:"schedule"`
		Path     string `toml:"path"`
	} `toml:"export"`

	Bot struct {
		Token    string  `toml:"token"`
		AdminIDs []int64 `toml:"admin_ids"`
	} `toml:"bot"`
}

const (
	defaultTimestampFormat = "2006-01-02 15:04"
	defaultMigrationsDir   = "./migrations"
	defaultDSN             = "memory://"
)

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return ParseConfig(path, data)
}

func ParseConfig(path string, data []byte) (*Config, error) {
	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(
			"error reading config file %s\n> Error: %w\n> Content:\n%s",
			path,
			err,
			string(data),
		)
	}

	loadEnvOverrides(&config)

	if config.Server.Port == "" {
		return nil, fmt.Errorf("Server port is not specified in config, use a value like :8080")
	}
	if config.Storage.DSN == "" {
		config.Storage.DSN = defaultDSN
	}
	if config.Storage.MigrationsDir == "" {
		config.Storage.MigrationsDir = defaultMigrationsDir
	}
	if config.Display.TimestampFormat == "" {
		config.Display.TimestampFormat = defaultTimestampFormat
	}

	logger.Debug.Printf("Loaded storage config: dsn=%s migrations=%s", config.Storage.DSN, config.Storage.MigrationsDir)

	return &config, nil
}

// .env is optional, values already present in the environment win
func loadEnvOverrides(config *Config) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Debug.Printf("Skipping .env: %v", err)
	}

	if v := os.Getenv("EDUSPACE_PORT"); v != "" {
		config.Server.Port = v
	}
	if v := os.Getenv("EDUSPACE_DSN"); v != "" {
		config.Storage.DSN = v
	}
	if v := os.Getenv("EDUSPACE_BOT_TOKEN"); v != "" {
		config.Bot.Token = v
	}
}
