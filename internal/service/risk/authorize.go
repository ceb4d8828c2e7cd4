package risk

import (
	"context"
	"errors"

	"lootbox_backend/internal/model"

	"github.com/shopspring/decimal"
)

// Доля ставки, пополняющая резерв при каждом открытии кейса
var rakeFraction = decimal.RequireFromString("0.05")

// Authorize - ворота платежеспособности. Проверки идут строго по порядку:
// 1) резерв покрывает выплату, 2) выплата не превышает разовый лимит,
// 3) резерв не ниже статистического буфера. Порядок значим: превышение
// лимита должно диагностироваться раньше буфера.
// При успехе применяет атомарную дельту balance += stake*0.05 - payout.
// До авторизации никаких мутаций резерва не происходит
func (s *serv) Authorize(ctx context.Context, stakeUSD, payoutUSD decimal.Decimal) error {
	pool, err := s.reserveRepo.GetPool(ctx)
	if err != nil {
		return err
	}

	if err := classify(pool, payoutUSD); err != nil {
		return err
	}

	ok, err := s.reserveRepo.ApplyDelta(ctx, stakeUSD.Mul(rakeFraction), payoutUSD)
	if err != nil {
		return err
	}
	if !ok {
		// Конкурентный спин успел изменить резерв между чтением и дельтой.
		// Перечитываем состояние, чтобы вернуть точную причину
		pool, err = s.reserveRepo.GetPool(ctx)
		if err != nil {
			return err
		}
		if err := classify(pool, payoutUSD); err != nil {
			return err
		}
		return model.ErrReserveLow
	}

	return nil
}

// classify - возвращает причину отказа для текущего состояния резерва
func classify(pool *model.CapPool, payoutUSD decimal.Decimal) error {
	switch {
	case pool.Balance.LessThan(payoutUSD):
		return model.ErrReserveLow
	case payoutUSD.GreaterThan(pool.MaxPayout):
		return model.ErrPayoutExceedsMax
	case pool.Balance.LessThan(pool.SigmaBuffer):
		return model.ErrMaintenanceMode
	default:
		return nil
	}
}

// IsRejection - отличает отказ авторизации от инфраструктурной ошибки
func IsRejection(err error) bool {
	return errors.Is(err, model.ErrReserveLow) ||
		errors.Is(err, model.ErrPayoutExceedsMax) ||
		errors.Is(err, model.ErrMaintenanceMode)
}
