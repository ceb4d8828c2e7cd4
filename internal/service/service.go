package service

import (
	"context"

	"lootbox_backend/internal/model"

	"github.com/shopspring/decimal"
)

type FairnessService interface {
	// Commit - идемпотентная выдача commit-хэша: повторный вызов без reveal
	// возвращает тот же сид
	Commit(ctx context.Context, userID int) (*model.SeedCommit, error)
	// RevealAndConsume - атомарное одноразовое раскрытие сида
	RevealAndConsume(ctx context.Context, seedID string, userID int) (*model.ServerSeed, error)
	// Reveal - проекция завершенного спина для независимой проверки
	Reveal(ctx context.Context, spinLogID string, userID int) (*model.RevealData, error)
}

type SpinService interface {
	Open(ctx context.Context, req model.CaseOpenRequest) (*model.CaseOpenResult, error)
	Cases(ctx context.Context) ([]*model.CaseConfig, error)
}

type RiskService interface {
	// Authorize - ворота платежеспособности: либо применяет дельту резерва,
	// либо возвращает типизированную причину отказа
	Authorize(ctx context.Context, stakeUSD, payoutUSD decimal.Decimal) error
}

type RateService interface {
	GetRate(ctx context.Context, coinID string) (decimal.Decimal, error)
}

type AuthService interface {
	Register(ctx context.Context, user *model.User) (*model.AuthData, error)
	Login(ctx context.Context, user *model.User) (*model.AuthData, error)
	Refresh(ctx context.Context, data *model.AuthData) (newAccessToken string, err error)
	Logout(ctx context.Context, sessionID string) error
}
