package spin

import (
	"context"
	"errors"
	"time"

	"lootbox_backend/internal/middleware"
	"lootbox_backend/internal/model"

	"github.com/google/uuid"
)

// Open выполняет открытие кейса: reveal сида, roll, ворота резерва,
// обновление pity и запись аудита.
//
// Контракт порядка: сид сжигается ДО денежной транзакции и при отказе
// резерва не возвращается - повторная выдача позволила бы переиграть
// уже зафиксированный roll. Все остальные мутации (баланс, резерв,
// статистика, лог) идут в одной транзакции: отказ на любом шаге
// откатывает их целиком
func (s *serv) Open(ctx context.Context, req model.CaseOpenRequest) (*model.CaseOpenResult, error) {
	// Валидация запроса
	if req.Nonce < 0 {
		return nil, errors.New("nonce must be non-negative")
	}

	// Получаем ID пользователя
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user id not found in context")
	}

	// 1. Атомарное одноразовое раскрытие сида
	seed, err := s.fairness.RevealAndConsume(ctx, req.ServerSeedID, userID)
	if err != nil {
		return nil, err
	}

	// 2. Конфиг кейса
	cfg, err := s.caseRepo.GetCase(ctx, req.CaseID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, model.ErrInvalidCase
	}

	// Инициализируем структуру для хранения результата
	var res *model.CaseOpenResult

	// Начало транзакции, где выполняется денежная часть спина
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3. Статистика игрока; строка заблокирована до конца транзакции,
		// конкурентные спины одного пользователя сериализуются
		stat, err := s.statRepo.GetOrCreate(txCtx, userID)
		if err != nil {
			return errors.New("failed to get player stat")
		}

		// 4. КЛЮЧЕВОЙ ВЫЗОВ
		// Детерминированный roll по текущему стрику
		outcome, err := ComputeRoll(seed.Seed, req.ClientSeed, req.Nonce, cfg, stat.FailStreak)
		if err != nil {
			return err
		}

		// 5. Конвертация приза в USD. Нулевой или отсутствующий курс -
		// отказ до проверки резерва, а не нулевая выплата
		rate, err := s.rates.GetRate(txCtx, outcome.Reward.CoinID)
		if err != nil {
			return err
		}
		payoutUSD := outcome.Reward.Amount.Mul(rate)

		// Списание цены кейса с внутреннего баланса
		debited, err := s.userRepo.DebitBalance(txCtx, userID, cfg.PriceUSD)
		if err != nil {
			return errors.New("failed to debit user balance")
		}
		if !debited {
			return model.ErrInsufficientBalance
		}

		// 6. Ворота резерва: отказ прерывает спин, типизированная причина
		// уходит вызывающему как есть
		if err := s.risk.Authorize(txCtx, cfg.PriceUSD, payoutUSD); err != nil {
			return err
		}

		// 7. Обновление pity-стрика и сессионной статистики
		bonusAfter := ApplyOutcome(stat, outcome.Tier.Name, cfg)
		stat.RTPSession = stat.RTPSession.Add(payoutUSD.Div(cfg.PriceUSD))
		stat.NetLoss = stat.NetLoss.Add(cfg.PriceUSD.Sub(payoutUSD))
		if err := s.statRepo.Save(txCtx, stat); err != nil {
			return errors.New("failed to save player stat")
		}

		// Зачисление выигрыша
		balance, err := s.userRepo.CreditBalance(txCtx, userID, payoutUSD)
		if err != nil {
			return errors.New("failed to credit user balance")
		}

		// 8. Неизменяемая запись аудита
		spinLog := &model.SpinLog{
			ID:             uuid.NewString(),
			UserID:         userID,
			CaseID:         cfg.CaseID,
			ServerSeedID:   seed.ID,
			ServerSeedHash: seed.Hash,
			ServerSeed:     seed.Seed,
			ClientSeed:     req.ClientSeed,
			Nonce:          req.Nonce,
			HMAC:           outcome.MAC,
			RawRoll:        outcome.Roll,
			OddsVersion:    cfg.OddsVersionCurrent(),
			Tier:           outcome.Tier.Name,
			CoinID:         outcome.Reward.CoinID,
			Network:        outcome.Reward.Network,
			Stake:          cfg.PriceUSD,
			Payout:         outcome.Reward.Amount,
			PayoutUSD:      payoutUSD,
			PityBefore:     outcome.PityBonus,
			PityAfter:      bonusAfter,
			RTPSession:     stat.RTPSession,
			CreatedAt:      time.Now(),
		}
		if err := s.spinLogRepo.Append(txCtx, spinLog); err != nil {
			return errors.New("failed to append spin log")
		}

		// 9. Reveal-ответ
		res = &model.CaseOpenResult{
			ServerSeed:  seed.Seed,
			OddsVersion: spinLog.OddsVersion,
			Tier:        outcome.Tier.Name,
			CoinID:      outcome.Reward.CoinID,
			Network:     outcome.Reward.Network,
			Amount:      outcome.Reward.Amount,
			PayoutUSD:   payoutUSD,
			FailStreak:  stat.FailStreak,
			SpinLogID:   spinLog.ID,
			Balance:     balance,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// Cases - список сконфигурированных кейсов
func (s *serv) Cases(ctx context.Context) ([]*model.CaseConfig, error) {
	return s.caseRepo.ListCases(ctx)
}
