package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string
	Port        int `toml:"port"`
	MetricsPort int `toml:"metrics_port"`
	// logging
	LogLevel    string `toml:"log_level"`
	LogsPath    string `toml:"logs_path"`
	LogToStdout bool   `toml:"log_to_stdout"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	// file storage
	UploadsPath string `toml:"uploads_path"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, path string) (*Config, error) {
	var tomlConfig Toml
	if _, err := toml.DecodeFile(path, &tomlConfig); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}

	cfg, err := tomlConfig.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] empty", env)
	}

	cfg.Environment = env
	cfg.applyEnvOverrides()

	return cfg, nil
}

// applyEnvOverrides lets deployment environments override the
// listen port and database connection params without a config file change
func (cfg *Config) applyEnvOverrides() {
	if port := os.Getenv("STUDYNOTES_PORT"); port != "" {
		if portNum, err := strconv.Atoi(port); err == nil {
			cfg.Port = portNum
		}
	}
	if host := os.Getenv("STUDYNOTES_POSTGRES_HOST"); host != "" {
		cfg.PostgresHost = host
	}
	if port := os.Getenv("STUDYNOTES_POSTGRES_PORT"); port != "" {
		cfg.PostgresPort = port
	}
	if dbName := os.Getenv("STUDYNOTES_POSTGRES_DB_NAME"); dbName != "" {
		cfg.PostgresDBName = dbName
	}
	if uploadsPath := os.Getenv("STUDYNOTES_UPLOADS_PATH"); uploadsPath != "" {
		cfg.UploadsPath = uploadsPath
	}
}
