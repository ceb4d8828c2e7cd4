package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reward - один приз внутри тира с весом sub_chance
type Reward struct {
	CoinID    string
	Amount    decimal.Decimal
	Network   string
	SubChance decimal.Decimal
}

// Tier - именованная корзина вероятности внутри кейса.
// Порядок тиров и наград значим: выбор идет кумулятивным сканом по объявленному порядку
type Tier struct {
	Name    string
	Chance  decimal.Decimal
	Rewards []Reward
}

// OddsVersion - версия таблицы шансов, чтобы спин можно было
// воспроизвести против той таблицы, которая реально использовалась
type OddsVersion struct {
	Version    string
	SHA256     string
	UploadedAt time.Time
}

// CaseConfig - неизменяемое описание кейса: цена, тиры, параметры pity
type CaseConfig struct {
	CaseID        string
	PriceUSD      decimal.Decimal
	Tiers         []Tier
	PityAfter     int
	PityBonusTier string
	GlobalPoolUSD decimal.Decimal
	EVTarget      decimal.Decimal
	OddsVersions  []OddsVersion
}

// OddsVersionCurrent возвращает версию последней (актуальной) таблицы шансов
func (c *CaseConfig) OddsVersionCurrent() string {
	if len(c.OddsVersions) == 0 {
		return ""
	}
	return c.OddsVersions[len(c.OddsVersions)-1].Version
}
