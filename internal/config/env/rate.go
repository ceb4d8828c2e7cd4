package env

import (
	"errors"
	"os"
	"time"

	"lootbox_backend/internal/config"
)

const (
	ratePriceURLEnvName = "RATE_PRICE_URL"
	rateIntervalEnvName = "RATE_REFRESH_INTERVAL"
)

type rateConfig struct {
	priceURL        string
	refreshInterval time.Duration
}

func NewRateConfig() (config.RateConfig, error) {
	priceURL := os.Getenv(ratePriceURLEnvName)
	if len(priceURL) == 0 {
		return nil, errors.New("rate price url not found")
	}

	interval := os.Getenv(rateIntervalEnvName)
	if len(interval) == 0 {
		return nil, errors.New("rate refresh interval not found")
	}

	intervalParsed, err := time.ParseDuration(interval)
	if err != nil {
		return nil, errors.New("invalid rate refresh interval")
	}

	return &rateConfig{
		priceURL:        priceURL,
		refreshInterval: intervalParsed,
	}, nil
}

func (cfg *rateConfig) PriceURL() string {
	return cfg.priceURL
}

func (cfg *rateConfig) RefreshInterval() time.Duration {
	return cfg.refreshInterval
}
