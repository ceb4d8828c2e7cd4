package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CaseOpenRequest - запрос на открытие кейса
type CaseOpenRequest struct {
	CaseID       string
	ServerSeedID string
	ClientSeed   string
	Nonce        int
}

// CaseOpenResult - reveal-ответ: раскрытый сид и все, что нужно
// для независимой проверки результата
type CaseOpenResult struct {
	ServerSeed  string
	OddsVersion string
	Tier        string
	CoinID      string
	Network     string
	Amount      decimal.Decimal
	PayoutUSD   decimal.Decimal
	FailStreak  int
	SpinLogID   string
	Balance     decimal.Decimal
}

// SpinLog - неизменяемая запись аудита одного завершенного спина.
// Полей достаточно, чтобы третья сторона пересчитала roll→reward по раскрытому сиду
type SpinLog struct {
	ID             string
	UserID         int
	CaseID         string
	ServerSeedID   string
	ServerSeedHash string
	ServerSeed     string
	ClientSeed     string
	Nonce          int
	HMAC           []byte
	RawRoll        decimal.Decimal
	OddsVersion    string
	Tier           string
	CoinID         string
	Network        string
	Stake          decimal.Decimal
	Payout         decimal.Decimal
	PayoutUSD      decimal.Decimal
	PityBefore     decimal.Decimal
	PityAfter      decimal.Decimal
	RTPSession     decimal.Decimal
	CreatedAt      time.Time
}

// RevealData - проекция SpinLog для независимой проверки честности
type RevealData struct {
	SpinLogID      string
	CaseID         string
	ServerSeed     string
	ServerSeedHash string
	ClientSeed     string
	Nonce          int
	OddsVersion    string
	RawRoll        decimal.Decimal
	Tier           string
	CoinID         string
	PayoutUSD      decimal.Decimal
}
