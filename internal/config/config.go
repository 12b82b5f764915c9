package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Env string
	} `mapstructure:"app"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	Redis struct {
		Addr string
	} `mapstructure:"redis"`

	Auth struct {
		JWTSecret      string `mapstructure:"jwt_secret"`
		ServiceKeyHash string `mapstructure:"service_key_hash"`
	} `mapstructure:"auth"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Alerts struct {
		From         string
		To           string
		SMTPHost     string `mapstructure:"smtp_host"`
		SMTPPort     string `mapstructure:"smtp_port"`
		SMTPUser     string `mapstructure:"smtp_user"`
		SMTPPassword string `mapstructure:"smtp_password"`
		AuthDisabled bool   `mapstructure:"auth_disabled"`
	} `mapstructure:"alerts"`
}

// Load reads the config file at path; APP_* environment variables override
// file values.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	v.SetDefault("app.env", "prod")
	v.SetDefault("http.addr", ":8080")

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	// A store URL and both keys are mandatory; refusing to start beats
	// failing on the first request.
	if c.Postgres.DSN == "" {
		return c, fmt.Errorf("config: postgres.dsn is required")
	}
	if c.Auth.JWTSecret == "" || c.Auth.ServiceKeyHash == "" {
		return c, fmt.Errorf("config: auth.jwt_secret and auth.service_key_hash are required")
	}
	return c, nil
}
