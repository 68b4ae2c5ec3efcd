// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/go-petr/bitlease/pkg/interestpkg"
)

// Ledger backends.
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config stores all configuration of the application.
//
// The values are read by viper from a config file or environment variables.
type Config struct {
	DBDriver             string        `mapstructure:"DB_DRIVER"`
	DBSource             string        `mapstructure:"DB_SOURCE"`
	LedgerBackend        string        `mapstructure:"LEDGER_BACKEND"`
	ServerAddress        string        `mapstructure:"SERVER_ADDRESS"`
	TokenType            string        `mapstructure:"TOKEN_TYPE"`
	TokenSymmetricKey    string        `mapstructure:"TOKEN_SYMMETRIC_KEY"`
	AccessTokenDuration  time.Duration `mapstructure:"ACCESS_TOKEN_DURATION"`
	RefreshTokenDuration time.Duration `mapstructure:"REFRESH_TOKEN_DURATION"`
	InterestRatePercent  int           `mapstructure:"INTEREST_RATE_PERCENT"`
	Environment          string        `mapstructure:"GO_ENV"`
	LogFile              string        `mapstructure:"LOG_FILE"`
}

// Load reads configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("LEDGER_BACKEND", BackendPostgres)
	v.SetDefault("TOKEN_TYPE", "paseto")
	v.SetDefault("INTEREST_RATE_PERCENT", 10)

	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = v.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	if err := c.Validate(); err != nil {
		return c, err
	}

	return c, nil
}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks values that viper cannot check by type alone.
func (c Config) Validate() error {
	if c.InterestRatePercent < 0 || c.InterestRatePercent > interestpkg.MaxRate {
		return fmt.Errorf("%w: INTEREST_RATE_PERCENT=%d", ErrInvalidConfig, c.InterestRatePercent)
	}

	switch c.LedgerBackend {
	case BackendPostgres, BackendMemory:
	default:
		return fmt.Errorf("%w: LEDGER_BACKEND=%q", ErrInvalidConfig, c.LedgerBackend)
	}

	if len(c.TokenSymmetricKey) < 32 {
		return fmt.Errorf("%w: TOKEN_SYMMETRIC_KEY too short", ErrInvalidConfig)
	}

	return nil
}
