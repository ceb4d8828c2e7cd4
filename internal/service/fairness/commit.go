package fairness

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"lootbox_backend/internal/model"

	"github.com/google/uuid"
)

// Commit - выдает пользователю commit-хэш серверного сида.
// Если неиспользованный сид уже есть - возвращает его же (идемпотентность).
// Сырой сид клиенту на этом этапе не возвращается
func (s *serv) Commit(ctx context.Context, userID int) (*model.SeedCommit, error) {
	// Проверяем, есть ли у пользователя нераскрытый сид
	existing, err := s.seedRepo.GetUnused(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &model.SeedCommit{
			ServerSeedID: existing.ID,
			Hash:         existing.Hash,
		}, nil
	}

	// Генерация 32 криптослучайных байт
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}

	hashDigest := sha256.Sum256(raw)

	seed := &model.ServerSeed{
		ID:        uuid.NewString(),
		Seed:      hex.EncodeToString(raw),
		Hash:      hex.EncodeToString(hashDigest[:]),
		OwnerID:   userID,
		Used:      false,
		CreatedAt: time.Now(),
	}

	if err := s.seedRepo.Create(ctx, seed); err != nil {
		return nil, err
	}

	return &model.SeedCommit{
		ServerSeedID: seed.ID,
		Hash:         seed.Hash,
	}, nil
}
