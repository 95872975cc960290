// Package config provides configuration management for the BML payment
// adapter. Configuration can be loaded from YAML files and overridden by
// environment variables.
package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"sync"
)

// Config holds all configuration for the BML payment adapter.
// Environment variables take precedence over YAML values.
type Config struct {
	IsDebug    bool  `yaml:"is_debug" env:"DEBUG" env-default:"false"`
	LogRecords int64 `yaml:"log_records" env:"LOG_RECORDS" env-default:"0"`
	Listen     struct {
		BindIP   string `yaml:"bind_ip" env:"BIND_IP" env-default:"0.0.0.0"`
		Port     string `yaml:"port" env:"PORT" env-default:"5200"`
		TLS      bool   `yaml:"tls_enabled" env:"TLS_ENABLED" env-default:"false"`
		CertFile string `yaml:"cert_file" env:"TLS_CERT_FILE" env-default:""`
		KeyFile  string `yaml:"key_file" env:"TLS_KEY_FILE" env-default:""`
	} `yaml:"listen"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env:"MONGO_ENABLED" env-default:"false"`
		Host     string `yaml:"host" env:"MONGO_HOST" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env:"MONGO_PORT" env-default:"27017"`
		User     string `yaml:"user" env:"MONGO_USER" env-default:"admin"`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:"pass"`
		Database string `yaml:"database" env:"MONGO_DATABASE" env-default:""`
	} `yaml:"mongo"`
	Provider struct {
		Code       string `yaml:"code" env:"PROVIDER_CODE" env-default:"bml"`
		MerchantId string `yaml:"merchant_id" env:"PROVIDER_MERCHANT_ID" env-default:""`
		AcquirerId string `yaml:"acquirer_id" env:"PROVIDER_ACQUIRER_ID" env-default:""`
		Passcode   string `yaml:"passcode" env:"PROVIDER_PASSCODE" env-default:""`
		LiveUrl    string `yaml:"live_url" env:"PROVIDER_LIVE_URL" env-default:""`
		TestUrl    string `yaml:"test_url" env:"PROVIDER_TEST_URL" env-default:""`
		Mode       string `yaml:"mode" env:"PROVIDER_MODE" env-default:"test"`
		Version    string `yaml:"version" env:"PROVIDER_VERSION" env-default:"1.0.0"`
		ReturnUrl  string `yaml:"return_url" env:"PROVIDER_RETURN_URL" env-default:""`
		// Currencies the gateway accepts, ISO 4217 alpha codes
		Currencies []string `yaml:"currencies" env:"PROVIDER_CURRENCIES" env-separator:"," env-default:"USD,MVR"`
	} `yaml:"provider"`
}

var instance *Config
var once sync.Once

// GetConfig loads configuration from the specified YAML file path.
// This function uses a singleton pattern and only loads the config once.
func GetConfig(path string) (*Config, error) {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("load config: %w; %s", err, desc)
			instance = nil
		}
	})
	return instance, err
}
