package fairness

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"testing"

	"lootbox_backend/internal/model"

	"github.com/shopspring/decimal"
)

// In-memory реализация CAS-семантики хранилища сидов
type memSeedRepo struct {
	mu    sync.Mutex
	seeds map[string]*model.ServerSeed

	createCalls int
}

func newMemSeedRepo() *memSeedRepo {
	return &memSeedRepo{seeds: make(map[string]*model.ServerSeed)}
}

func (r *memSeedRepo) Create(_ context.Context, seed *model.ServerSeed) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	cp := *seed
	r.seeds[seed.ID] = &cp
	return nil
}

func (r *memSeedRepo) GetUnused(_ context.Context, ownerID int) (*model.ServerSeed, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.seeds {
		if s.OwnerID == ownerID && !s.Used {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memSeedRepo) ConsumeUnused(_ context.Context, id string, ownerID int) (*model.ServerSeed, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.seeds[id]
	if !ok || s.OwnerID != ownerID || s.Used {
		return nil, nil
	}
	s.Used = true
	cp := *s
	return &cp, nil
}

func (r *memSeedRepo) Get(_ context.Context, id string) (*model.ServerSeed, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.seeds[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

type memSpinLogRepo struct {
	logs map[string]*model.SpinLog
}

func (r *memSpinLogRepo) Append(_ context.Context, spinLog *model.SpinLog) error {
	if r.logs == nil {
		r.logs = make(map[string]*model.SpinLog)
	}
	r.logs[spinLog.ID] = spinLog
	return nil
}

func (r *memSpinLogRepo) GetByID(_ context.Context, id string) (*model.SpinLog, error) {
	return r.logs[id], nil
}

func TestCommit_Idempotent(t *testing.T) {
	repo := newMemSeedRepo()
	s := NewService(repo, &memSpinLogRepo{})

	first, err := s.Commit(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := s.Commit(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.ServerSeedID != second.ServerSeedID || first.Hash != second.Hash {
		t.Fatalf("repeated commit must return the same seed: %+v vs %+v", first, second)
	}
	if repo.createCalls != 1 {
		t.Fatalf("expected one created seed, got %d", repo.createCalls)
	}

	// Другой пользователь получает собственный сид
	other, err := s.Commit(context.Background(), 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if other.ServerSeedID == first.ServerSeedID {
		t.Fatalf("seeds must not be shared between users")
	}
}

func TestCommit_HashMatchesSeed(t *testing.T) {
	repo := newMemSeedRepo()
	s := NewService(repo, &memSpinLogRepo{})

	commit, err := s.Commit(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := repo.seeds[commit.ServerSeedID]
	raw, err := hex.DecodeString(stored.Seed)
	if err != nil {
		t.Fatalf("seed is not hex: %v", err)
	}
	if len(raw) != 32 {
		t.Fatalf("seed length = %d bytes, want 32", len(raw))
	}

	digest := sha256.Sum256(raw)
	if hex.EncodeToString(digest[:]) != commit.Hash {
		t.Fatalf("commit hash must be sha256 of the raw seed")
	}
}

func TestRevealAndConsume_ExactlyOneWinner(t *testing.T) {
	repo := newMemSeedRepo()
	s := NewService(repo, &memSpinLogRepo{})

	commit, err := s.Commit(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const workers = 16
	var wg sync.WaitGroup
	results := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = s.RevealAndConsume(context.Background(), commit.ServerSeedID, 7)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, model.ErrSeedNotAvailable):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one successful reveal, got %d", wins)
	}
}

func TestRevealAndConsume_ForeignSeed(t *testing.T) {
	repo := newMemSeedRepo()
	s := NewService(repo, &memSpinLogRepo{})

	commit, err := s.Commit(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = s.RevealAndConsume(context.Background(), commit.ServerSeedID, 8)
	if !errors.Is(err, model.ErrSeedNotAvailable) {
		t.Fatalf("expected ErrSeedNotAvailable for foreign seed, got %v", err)
	}

	// Хозяин сида все еще может его раскрыть
	if _, err := s.RevealAndConsume(context.Background(), commit.ServerSeedID, 7); err != nil {
		t.Fatalf("owner reveal failed: %v", err)
	}
}

func TestRevealAndConsume_IntegrityMismatch(t *testing.T) {
	repo := newMemSeedRepo()
	s := NewService(repo, &memSpinLogRepo{})

	// Сид с хэшом, не совпадающим с содержимым
	corrupted := &model.ServerSeed{
		ID:      "corrupted",
		Seed:    hex.EncodeToString(make([]byte, 32)),
		Hash:    "deadbeef",
		OwnerID: 7,
	}
	if err := repo.Create(context.Background(), corrupted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := s.RevealAndConsume(context.Background(), "corrupted", 7)
	if !errors.Is(err, model.ErrSeedIntegrity) {
		t.Fatalf("expected ErrSeedIntegrity, got %v", err)
	}
}

func TestReveal_ProjectionAndOwnership(t *testing.T) {
	seedRepo := newMemSeedRepo()
	logRepo := &memSpinLogRepo{}
	s := NewService(seedRepo, logRepo)

	commit, err := s.Commit(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seed, err := s.RevealAndConsume(context.Background(), commit.ServerSeedID, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spinLog := &model.SpinLog{
		ID:             "spin-1",
		UserID:         7,
		CaseID:         "case_5",
		ServerSeedID:   seed.ID,
		ServerSeedHash: seed.Hash,
		ServerSeed:     seed.Seed,
		ClientSeed:     "client",
		Nonce:          3,
		OddsVersion:    "v1",
		RawRoll:        decimal.RequireFromString("0.42"),
		Tier:           "common",
		CoinID:         "tether",
		PayoutUSD:      decimal.RequireFromString("1.50"),
	}
	if err := logRepo.Append(context.Background(), spinLog); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reveal, err := s.Reveal(context.Background(), "spin-1", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reveal.ServerSeed != seed.Seed || reveal.ServerSeedHash != seed.Hash {
		t.Fatalf("reveal must expose the raw seed and its commit hash")
	}
	if reveal.ClientSeed != "client" || reveal.Nonce != 3 || reveal.OddsVersion != "v1" {
		t.Fatalf("reveal must carry all roll inputs: %+v", reveal)
	}

	// Чужой спин неотличим от несуществующего
	if _, err := s.Reveal(context.Background(), "spin-1", 8); !errors.Is(err, model.ErrSpinNotFound) {
		t.Fatalf("expected ErrSpinNotFound for foreign spin, got %v", err)
	}
	if _, err := s.Reveal(context.Background(), "missing", 7); !errors.Is(err, model.ErrSpinNotFound) {
		t.Fatalf("expected ErrSpinNotFound for missing spin, got %v", err)
	}
}
