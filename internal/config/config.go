package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all configuration for the stock quote widgets.
type Config struct {
	// marketstack API access
	AccessKey string `mapstructure:"marketstack_access_key" validate:"required"`
	BaseURL   string `mapstructure:"marketstack_base_url" validate:"required,url"`

	// Symbols to mount, one widget each
	StockSymbols []string `mapstructure:"stock_symbols" validate:"required,min=1,dive,required"`

	// Serve widget cards over HTTP when set
	ListenAddr string `mapstructure:"listen_addr"`
	LogLevel   string `mapstructure:"log_level" validate:"oneof=debug info warn error"`

	// Transport and retry tuning
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
	RetryCount     int           `mapstructure:"retry_count" validate:"gte=0"`
	RetryBaseDelay time.Duration `mapstructure:"retry_base_delay" validate:"gt=0"`
	RateLimitRPS   float64       `mapstructure:"rate_limit_rps" validate:"gte=0"`
}

var keys = []string{
	"marketstack_access_key",
	"marketstack_base_url",
	"stock_symbols",
	"listen_addr",
	"log_level",
	"request_timeout",
	"retry_count",
	"retry_base_delay",
	"rate_limit_rps",
}

// Load reads configuration from environment variables and optional config file.
// Environment variables take precedence over config file values.
//
// Expected environment variables:
//   - MARKETSTACK_ACCESS_KEY
//   - STOCK_SYMBOLS (comma separated)
//   - MARKETSTACK_BASE_URL (optional, defaults to production)
//   - LISTEN_ADDR (optional, serve cards over HTTP)
//   - LOG_LEVEL, REQUEST_TIMEOUT, RETRY_COUNT, RETRY_BASE_DELAY, RATE_LIMIT_RPS (optional)
func Load() (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("")
	v.AutomaticEnv()

	v.SetDefault("marketstack_base_url", "https://api.marketstack.com/v1")
	v.SetDefault("log_level", "info")
	v.SetDefault("request_timeout", 10*time.Second)
	v.SetDefault("retry_count", 3)
	v.SetDefault("retry_base_delay", time.Second)
	v.SetDefault("rate_limit_rps", 5.0)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.stockquote")

	// Read config file (ignore if not found)
	_ = v.ReadInConfig()

	for _, key := range keys {
		v.BindEnv(key, strings.ToUpper(key))
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.LogLevel = strings.ToLower(config.LogLevel)

	if err := validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

func validate(config *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.ToUpper(fld.Tag.Get("mapstructure"))
	})

	err := validate.Struct(config)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("failed to validate config: %w", err)
	}

	var missing, invalid []string
	for _, fe := range errs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
			continue
		}
		invalid = append(invalid, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(invalid, ", "))
}
