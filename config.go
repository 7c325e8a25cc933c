package client

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "MERCHANT_API"

// Config is the file and environment form of the client settings.
//
// Every key can be overridden with an environment variable prefixed with
// MERCHANT_API_, e.g. MERCHANT_API_BASE_URL or MERCHANT_API_ENDPOINTS_LOGIN.
type Config struct {
	BaseURL   string            `mapstructure:"base_url" validate:"required,url"`
	Timeout   time.Duration     `mapstructure:"timeout" validate:"gte=100ms,lte=5m"`
	Headers   map[string]string `mapstructure:"headers"`
	Endpoints Endpoints         `mapstructure:"endpoints"`
}

// LoadConfig reads configuration from file (YAML, JSON or TOML; optional)
// and the environment. envFiles are loaded into the environment first; a
// missing env file is an error.
func LoadConfig(file string, envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("failed to load env files: %w", err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultEndpoints()
	v.SetDefault("base_url", "")
	v.SetDefault("timeout", defaultTimeout)
	v.SetDefault("endpoints.login", defaults.Login)
	v.SetDefault("endpoints.issuance_history", defaults.IssuanceHistory)
	v.SetDefault("endpoints.client", defaults.Client)
	v.SetDefault("endpoints.merchant_id", defaults.MerchantID)
	v.SetDefault("endpoints.transaction_history", defaults.TransactionHistory)

	if file != "" {
		v.SetConfigFile(file)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid config: %s failed on %q", verrs[0].Namespace(), verrs[0].Tag())
		}

		return fmt.Errorf("invalid config: %w", err)
	}

	if err := c.Endpoints.validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// Options returns the client options described by c, followed by extra.
func (c *Config) Options(extra ...Option) []Option {
	opts := []Option{
		WithTimeout(c.Timeout),
		WithEndpoints(c.Endpoints),
	}

	for header, value := range c.Headers {
		opts = append(opts, WithRequestHeader(header, value))
	}

	return append(opts, extra...)
}

// NewFromConfig returns a client configured from c.
func NewFromConfig(c *Config, extra ...Option) *Client {
	return New(c.BaseURL, c.Options(extra...)...)
}
