package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Dataset   DatasetConfig   `mapstructure:"dataset"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	TimeoutSeconds int `mapstructure:"timeoutSeconds"`
	RateLimit      int `mapstructure:"rate_limit"`
	RateBurst      int `mapstructure:"rate_burst"`
}

type DatasetConfig struct {
	CSVPath  string        `mapstructure:"csv_path"`
	JSONPath string        `mapstructure:"json_path"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// GeneratorConfig holds the defaults used when a generation request
// leaves fields unset.
type GeneratorConfig struct {
	DefaultCount int `mapstructure:"default_count"`
	RangeDays    int `mapstructure:"range_days"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.timeoutSeconds", 30)
	viper.SetDefault("server.rate_limit", 100)
	viper.SetDefault("server.rate_burst", 200)
	viper.SetDefault("dataset.csv_path", "data/therapy_sessions.csv")
	viper.SetDefault("dataset.json_path", "data/therapy_sessions.json")
	viper.SetDefault("dataset.cache_ttl", "5m")
	viper.SetDefault("generator.default_count", 800)
	viper.SetDefault("generator.range_days", 365)
	viper.SetDefault("logging.level", "info")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
