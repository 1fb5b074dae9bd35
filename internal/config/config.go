package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort         int    `mapstructure:"APP_PORT"`
	DatabasePath    string `mapstructure:"DATABASE_PATH"`
	LogLevel        string `mapstructure:"LOG_LEVEL"`
	ProviderTimeout int    `mapstructure:"PROVIDER_TIMEOUT_SECONDS"`
	RequestTimeout  int    `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("DATABASE_PATH", "/data/loomchat.db")
	viper.SetDefault("LOG_LEVEL", "INFO")
	// No timeout on the provider client itself: streams legitimately run for
	// minutes. Connection establishment is still bounded by the dialer.
	viper.SetDefault("PROVIDER_TIMEOUT_SECONDS", 0)
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 60)

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
