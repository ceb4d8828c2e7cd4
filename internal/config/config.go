package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
}

// RiskConfig - стартовые параметры резерва выплат.
// Применяются один раз при создании строки cap_pool
type RiskConfig interface {
	InitialBalance() decimal.Decimal
	SigmaBuffer() decimal.Decimal
	MaxPayout() decimal.Decimal
}

// RateConfig - источник курсов и период обновления кэша
type RateConfig interface {
	PriceURL() string
	RefreshInterval() time.Duration
}
