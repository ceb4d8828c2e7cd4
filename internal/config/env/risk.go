package env

import (
	"fmt"
	"os"

	"lootbox_backend/internal/config"

	"github.com/shopspring/decimal"
)

const (
	reserveBalanceEnvName = "RESERVE_BALANCE"
	reserveSigmaEnvName   = "RESERVE_SIGMA_BUFFER"
	reserveMaxEnvName     = "RESERVE_MAX_PAYOUT"
)

type riskConfig struct {
	initialBalance decimal.Decimal
	sigmaBuffer    decimal.Decimal
	maxPayout      decimal.Decimal
}

func NewRiskConfig() (config.RiskConfig, error) {
	balance, err := decimalFromEnv(reserveBalanceEnvName)
	if err != nil {
		return nil, err
	}

	sigma, err := decimalFromEnv(reserveSigmaEnvName)
	if err != nil {
		return nil, err
	}

	maxPayout, err := decimalFromEnv(reserveMaxEnvName)
	if err != nil {
		return nil, err
	}

	return &riskConfig{
		initialBalance: balance,
		sigmaBuffer:    sigma,
		maxPayout:      maxPayout,
	}, nil
}

func decimalFromEnv(name string) (decimal.Decimal, error) {
	raw := os.Getenv(name)
	if len(raw) == 0 {
		return decimal.Zero, fmt.Errorf("%s not found", name)
	}

	val, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", name, err)
	}

	return val, nil
}

func (cfg *riskConfig) InitialBalance() decimal.Decimal {
	return cfg.initialBalance
}

func (cfg *riskConfig) SigmaBuffer() decimal.Decimal {
	return cfg.sigmaBuffer
}

func (cfg *riskConfig) MaxPayout() decimal.Decimal {
	return cfg.maxPayout
}
