package model

import "github.com/shopspring/decimal"

// PlayerStat - состояние стрика и сессии пользователя.
// Инвариант: FailStreak >= 0; сбрасывается в 0 только на редком выигрыше
type PlayerStat struct {
	UserID     int
	FailStreak int
	RTPSession decimal.Decimal
	NetLoss    decimal.Decimal
}

// CapPool - единственный глобальный резерв выплат.
// Инвариант: Balance >= 0 всегда; все мутации — атомарные дельты на уровне хранилища
type CapPool struct {
	Balance     decimal.Decimal
	SigmaBuffer decimal.Decimal
	MaxPayout   decimal.Decimal
}
