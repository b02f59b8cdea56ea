package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for the service.
type Config struct {
	ServerPort        string `mapstructure:"SERVER_PORT"`
	DBPath            string `mapstructure:"DB_PATH"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	ORSBaseURL        string `mapstructure:"ORS_BASE_URL"`
	ORSAPIKey         string `mapstructure:"ORS_API_KEY"`
	CountryCode       string `mapstructure:"COUNTRY_CODE"`
	DefaultProfileKey string `mapstructure:"DEFAULT_PROFILE_KEY"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	LogFormat         string `mapstructure:"LOG_FORMAT"`
}

// Load reads configuration from the environment (and an optional .env file
// in path). The ORS API key is the only required setting.
func Load(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	for _, key := range []string{
		"SERVER_PORT", "DB_PATH", "DATABASE_URL", "ORS_BASE_URL", "ORS_API_KEY",
		"COUNTRY_CODE", "DEFAULT_PROFILE_KEY", "LOG_LEVEL", "LOG_FORMAT",
	} {
		_ = viper.BindEnv(key)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := Config{
		ServerPort:        "8000",
		DBPath:            "data/trips.db",
		ORSBaseURL:        "https://api.openrouteservice.org",
		CountryCode:       "BR",
		DefaultProfileKey: "driving-car",
		LogLevel:          "info",
		LogFormat:         "json",
	}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.ORSAPIKey) == "" {
		return nil, errors.New("ORS_API_KEY is required")
	}

	return &cfg, nil
}
