package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/etnz/coinfolio"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Settings are read from the COIN_* environment variables, and from a .env
// file in the working directory if there is one.
type Settings struct {
	APIURL               string        `envconfig:"API_URL" default:"https://api.exchange.coinbase.com" validate:"required,url"`
	KeysFile             string        `envconfig:"KEYS_FILE" default:"keys.json" validate:"required"`
	Timeout              time.Duration `envconfig:"TIMEOUT" default:"10s" validate:"gt=0"`
	Concurrency          int           `envconfig:"CONCURRENCY" default:"4" validate:"min=1,max=32"`
	RateLimit            float64       `envconfig:"RATE_LIMIT" default:"5" validate:"gte=0"`
	MaxRetries           int           `envconfig:"MAX_RETRIES" default:"3" validate:"min=0,max=10"`
	RetryInitialInterval time.Duration `envconfig:"RETRY_INITIAL_INTERVAL" default:"500ms" validate:"gt=0"`
	RetryMaxInterval     time.Duration `envconfig:"RETRY_MAX_INTERVAL" default:"10s" validate:"gtefield=RetryInitialInterval"`
	LogLevel             string        `envconfig:"LOG_LEVEL" default:"warn" validate:"oneof=trace debug info warn error disabled"`
	Quote                string        `envconfig:"QUOTE" default:"USD" validate:"required,uppercase"`
	NetSells             bool          `envconfig:"NET_SELLS" default:"false"`
	GeminiModel          string        `envconfig:"GEMINI_MODEL" default:"gemini-2.5-pro" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadSettings reads the settings. Any invalid value is a configuration error.
func LoadSettings() (*Settings, error) {
	// .env is optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, coinfolio.E(coinfolio.KindConfiguration, "settings", fmt.Errorf("cannot load .env: %w", err))
	}

	var s Settings
	if err := envconfig.Process("COIN", &s); err != nil {
		return nil, coinfolio.E(coinfolio.KindConfiguration, "settings", err)
	}
	if err := validate.Struct(&s); err != nil {
		return nil, coinfolio.E(coinfolio.KindConfiguration, "settings", err)
	}
	return &s, nil
}
