package fairness

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"

	"lootbox_backend/internal/model"
)

// RevealAndConsume - атомарно раскрывает и сжигает сид.
// Из N конкурентных вызовов по одному seed_id ровно один получит сид,
// остальные - ErrSeedNotAvailable. После CAS проверяется целостность:
// расхождение хэша означает порчу хранилища
func (s *serv) RevealAndConsume(ctx context.Context, seedID string, userID int) (*model.ServerSeed, error) {
	seed, err := s.seedRepo.ConsumeUnused(ctx, seedID, userID)
	if err != nil {
		return nil, err
	}
	if seed == nil {
		return nil, model.ErrSeedNotAvailable
	}

	if err := verifySeedIntegrity(seed); err != nil {
		return nil, err
	}

	return seed, nil
}

// Reveal - собирает reveal-проекцию завершенного спина: раскрытый сид,
// версию таблицы шансов и все входы пересчета roll→reward
func (s *serv) Reveal(ctx context.Context, spinLogID string, userID int) (*model.RevealData, error) {
	spinLog, err := s.spinLogRepo.GetByID(ctx, spinLogID)
	if err != nil {
		return nil, err
	}
	if spinLog == nil || spinLog.UserID != userID {
		return nil, model.ErrSpinNotFound
	}

	seed, err := s.seedRepo.Get(ctx, spinLog.ServerSeedID)
	if err != nil {
		return nil, err
	}
	if seed == nil {
		return nil, model.ErrSpinNotFound
	}

	if err := verifySeedIntegrity(seed); err != nil {
		return nil, err
	}

	return &model.RevealData{
		SpinLogID:      spinLog.ID,
		CaseID:         spinLog.CaseID,
		ServerSeed:     seed.Seed,
		ServerSeedHash: seed.Hash,
		ClientSeed:     spinLog.ClientSeed,
		Nonce:          spinLog.Nonce,
		OddsVersion:    spinLog.OddsVersion,
		RawRoll:        spinLog.RawRoll,
		Tier:           spinLog.Tier,
		CoinID:         spinLog.CoinID,
		PayoutUSD:      spinLog.PayoutUSD,
	}, nil
}

// verifySeedIntegrity - сверяет SHA256(seed) с закоммиченным хэшом
func verifySeedIntegrity(seed *model.ServerSeed) error {
	raw, err := hex.DecodeString(seed.Seed)
	if err != nil {
		log.Printf("ALERT: server seed %s is not valid hex: %v", seed.ID, err)
		return model.ErrSeedIntegrity
	}

	digest := sha256.Sum256(raw)
	if hex.EncodeToString(digest[:]) != seed.Hash {
		log.Printf("ALERT: server seed %s hash mismatch", seed.ID)
		return model.ErrSeedIntegrity
	}

	return nil
}
