package config

import (
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode bool   `env:"TEST_MODE" envDefault:"false"`
	Port       uint16 `env:"PORT" envDefault:"9090"`

	PostgresqlURL string `env:"POSTGRESQL_URL,required"`
	RedisURL      string `env:"REDIS_URL,required"`

	RabbitmqURL            string `env:"RABBITMQ_URL,required"`
	RabbitmqEventsExchange string `env:"RABBITMQ_EVENTS_EXCHANGE" envDefault:"user-events"`

	BcryptCost              int `env:"BCRYPT_COST" envDefault:"10"`
	TokenValidDurationHours int `env:"TOKEN_VALID_DURATION_HOURS" envDefault:"72"`

	AwsRegion          string `env:"AWS_REGION" envDefault:"eu-west-1"`
	AwsAccessKeyID     string `env:"AWS_ACCESS_KEY_ID,required"`
	AwsSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY,required"`

	EmailSender               string  `env:"EMAIL_SENDER,required"`
	AccountActivationTemplate string  `env:"ACCOUNT_ACTIVATION_TEMPLATE" envDefault:"account-activation"`
	AccountActivationBaseURL  url.URL `env:"ACCOUNT_ACTIVATION_BASE_URL,required"`
	PasswordResetTemplate     string  `env:"PASSWORD_RESET_TEMPLATE" envDefault:"password-reset"`
	PasswordResetBaseURL      url.URL `env:"PASSWORD_RESET_BASE_URL,required"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("could not load configuration: %w", err)
	}
	return cfg, nil
}
