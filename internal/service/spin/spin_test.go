package spin

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"lootbox_backend/internal/middleware"
	"lootbox_backend/internal/model"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/shopspring/decimal"
)

// Прозрачный менеджер транзакций для юнит-тестов
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeFairness struct {
	seed         *model.ServerSeed
	err          error
	consumeCalls int
}

func (f *fakeFairness) Commit(context.Context, int) (*model.SeedCommit, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeFairness) RevealAndConsume(_ context.Context, seedID string, _ int) (*model.ServerSeed, error) {
	f.consumeCalls++
	if f.err != nil {
		return nil, f.err
	}
	if f.seed == nil || f.seed.ID != seedID {
		return nil, model.ErrSeedNotAvailable
	}
	return f.seed, nil
}

func (f *fakeFairness) Reveal(context.Context, string, int) (*model.RevealData, error) {
	return nil, errors.New("not implemented")
}

type fakeRates struct {
	rate decimal.Decimal
	err  error
}

func (f *fakeRates) GetRate(context.Context, string) (decimal.Decimal, error) {
	if f.err != nil {
		return decimal.Zero, f.err
	}
	return f.rate, nil
}

type fakeRisk struct {
	err   error
	calls int
}

func (f *fakeRisk) Authorize(context.Context, decimal.Decimal, decimal.Decimal) error {
	f.calls++
	return f.err
}

type fakeCaseRepo struct {
	cfg *model.CaseConfig
}

func (f *fakeCaseRepo) GetCase(_ context.Context, caseID string) (*model.CaseConfig, error) {
	if f.cfg == nil || f.cfg.CaseID != caseID {
		return nil, nil
	}
	return f.cfg, nil
}

func (f *fakeCaseRepo) ListCases(context.Context) ([]*model.CaseConfig, error) {
	if f.cfg == nil {
		return nil, nil
	}
	return []*model.CaseConfig{f.cfg}, nil
}

type fakeStatRepo struct {
	stat      *model.PlayerStat
	saveCalls int
}

func (f *fakeStatRepo) GetOrCreate(_ context.Context, userID int) (*model.PlayerStat, error) {
	if f.stat == nil {
		f.stat = &model.PlayerStat{UserID: userID}
	}
	return f.stat, nil
}

func (f *fakeStatRepo) Save(_ context.Context, stat *model.PlayerStat) error {
	f.saveCalls++
	f.stat = stat
	return nil
}

type fakeSpinLogRepo struct {
	appended []*model.SpinLog
}

func (f *fakeSpinLogRepo) Append(_ context.Context, spinLog *model.SpinLog) error {
	f.appended = append(f.appended, spinLog)
	return nil
}

func (f *fakeSpinLogRepo) GetByID(_ context.Context, id string) (*model.SpinLog, error) {
	for _, l := range f.appended {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

type fakeUserRepo struct {
	balance     decimal.Decimal
	debitCalls  int
	creditCalls int
}

func (f *fakeUserRepo) CreateUser(context.Context, *model.User) (int, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeUserRepo) GetUserByLogin(context.Context, string) (*model.User, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeUserRepo) GetBalance(context.Context, int) (decimal.Decimal, error) {
	return f.balance, nil
}

func (f *fakeUserRepo) DebitBalance(_ context.Context, _ int, amount decimal.Decimal) (bool, error) {
	f.debitCalls++
	if f.balance.LessThan(amount) {
		return false, nil
	}
	f.balance = f.balance.Sub(amount)
	return true, nil
}

func (f *fakeUserRepo) CreditBalance(_ context.Context, _ int, amount decimal.Decimal) (decimal.Decimal, error) {
	f.creditCalls++
	f.balance = f.balance.Add(amount)
	return f.balance, nil
}

type spinFixture struct {
	fairness *fakeFairness
	rates    *fakeRates
	risk     *fakeRisk
	caseRepo *fakeCaseRepo
	statRepo *fakeStatRepo
	logRepo  *fakeSpinLogRepo
	userRepo *fakeUserRepo
	serv     *serv
}

func newSpinFixture() *spinFixture {
	f := &spinFixture{
		fairness: &fakeFairness{
			seed: &model.ServerSeed{
				ID:        "seed-1",
				Seed:      strings.Repeat("ab", 32),
				Hash:      "committed-hash",
				OwnerID:   7,
				CreatedAt: time.Now(),
			},
		},
		rates:    &fakeRates{rate: dec("1.0")},
		risk:     &fakeRisk{},
		caseRepo: &fakeCaseRepo{cfg: testCaseConfig()},
		statRepo: &fakeStatRepo{},
		logRepo:  &fakeSpinLogRepo{},
		userRepo: &fakeUserRepo{balance: dec("100")},
	}
	f.serv = NewService(
		fakeTxManager{},
		f.fairness,
		f.rates,
		f.risk,
		f.caseRepo,
		f.statRepo,
		f.logRepo,
		f.userRepo,
	).(*serv)
	return f
}

func openCtx() context.Context {
	return middleware.WithUserID(context.Background(), 7)
}

func openReq() model.CaseOpenRequest {
	return model.CaseOpenRequest{
		CaseID:       "case_5",
		ServerSeedID: "seed-1",
		ClientSeed:   "client",
		Nonce:        0,
	}
}

func TestOpen_Success(t *testing.T) {
	f := newSpinFixture()

	res, err := f.serv.Open(openCtx(), openReq())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.ServerSeed != f.fairness.seed.Seed {
		t.Fatalf("result must reveal the raw seed")
	}
	if res.SpinLogID == "" {
		t.Fatalf("result must reference the audit record")
	}

	if len(f.logRepo.appended) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(f.logRepo.appended))
	}
	spinLog := f.logRepo.appended[0]
	if spinLog.ID != res.SpinLogID {
		t.Fatalf("audit record id mismatch")
	}
	if spinLog.ServerSeedID != "seed-1" || spinLog.ServerSeed != f.fairness.seed.Seed {
		t.Fatalf("audit record must carry the revealed seed")
	}
	if !spinLog.Stake.Equal(dec("5.00")) {
		t.Fatalf("stake = %s, want case price", spinLog.Stake)
	}
	if !spinLog.PayoutUSD.Equal(spinLog.Payout.Mul(dec("1.0"))) {
		t.Fatalf("payout_usd must be amount * rate")
	}

	// Списали цену, зачислили выигрыш
	wantBalance := dec("100").Sub(dec("5.00")).Add(res.PayoutUSD)
	if !res.Balance.Equal(wantBalance) {
		t.Fatalf("balance = %s, want %s", res.Balance, wantBalance)
	}

	if f.statRepo.saveCalls != 1 {
		t.Fatalf("expected stat save, got %d calls", f.statRepo.saveCalls)
	}
	if f.risk.calls != 1 {
		t.Fatalf("expected one reserve authorization, got %d", f.risk.calls)
	}
}

func TestOpen_SeedNotAvailable(t *testing.T) {
	f := newSpinFixture()
	f.fairness.err = model.ErrSeedNotAvailable

	_, err := f.serv.Open(openCtx(), openReq())
	if !errors.Is(err, model.ErrSeedNotAvailable) {
		t.Fatalf("expected ErrSeedNotAvailable, got %v", err)
	}

	if f.userRepo.debitCalls != 0 {
		t.Fatalf("balance must not be touched without a seed")
	}
	if len(f.logRepo.appended) != 0 {
		t.Fatalf("no audit record on rejected reveal")
	}
}

func TestOpen_InvalidCase_SeedStaysBurned(t *testing.T) {
	f := newSpinFixture()
	req := openReq()
	req.CaseID = "no-such-case"

	_, err := f.serv.Open(openCtx(), req)
	if !errors.Is(err, model.ErrInvalidCase) {
		t.Fatalf("expected ErrInvalidCase, got %v", err)
	}

	// Сид уже сожжен: повторная выдача позволила бы переиграть roll
	if f.fairness.consumeCalls != 1 {
		t.Fatalf("seed must be consumed before case validation")
	}
	if f.userRepo.debitCalls != 0 {
		t.Fatalf("balance must not be touched for unknown case")
	}
}

func TestOpen_ReserveRejection_NoSideEffects(t *testing.T) {
	f := newSpinFixture()
	f.risk.err = model.ErrPayoutExceedsMax

	_, err := f.serv.Open(openCtx(), openReq())
	if !errors.Is(err, model.ErrPayoutExceedsMax) {
		t.Fatalf("expected ErrPayoutExceedsMax, got %v", err)
	}

	// Сид сожжен, но ни статистика, ни лог не записаны
	if f.fairness.consumeCalls != 1 {
		t.Fatalf("seed must stay burned on reserve rejection")
	}
	if f.statRepo.saveCalls != 0 {
		t.Fatalf("stat must not be saved on reserve rejection")
	}
	if len(f.logRepo.appended) != 0 {
		t.Fatalf("no audit record on reserve rejection")
	}
	if f.userRepo.creditCalls != 0 {
		t.Fatalf("no payout credit on reserve rejection")
	}
}

func TestOpen_RateUnavailable(t *testing.T) {
	f := newSpinFixture()
	f.rates.err = model.ErrRateUnavailable

	_, err := f.serv.Open(openCtx(), openReq())
	if !errors.Is(err, model.ErrRateUnavailable) {
		t.Fatalf("expected ErrRateUnavailable, got %v", err)
	}

	// Отказ по курсу идет до списания и до ворот резерва
	if f.userRepo.debitCalls != 0 {
		t.Fatalf("balance must not be debited without a rate")
	}
	if f.risk.calls != 0 {
		t.Fatalf("reserve must not be consulted without a rate")
	}
}

func TestOpen_InsufficientBalance(t *testing.T) {
	f := newSpinFixture()
	f.userRepo.balance = dec("1.00")

	_, err := f.serv.Open(openCtx(), openReq())
	if !errors.Is(err, model.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	if f.risk.calls != 0 {
		t.Fatalf("reserve must not be consulted without a paid stake")
	}
	if len(f.logRepo.appended) != 0 {
		t.Fatalf("no audit record without a paid stake")
	}
}

func TestOpen_NegativeNonce(t *testing.T) {
	f := newSpinFixture()
	req := openReq()
	req.Nonce = -1

	_, err := f.serv.Open(openCtx(), req)
	if err == nil {
		t.Fatalf("expected error for negative nonce")
	}
	if f.fairness.consumeCalls != 0 {
		t.Fatalf("seed must not be consumed on invalid request")
	}
}

func TestOpen_UpdatesSessionStats(t *testing.T) {
	f := newSpinFixture()
	f.statRepo.stat = &model.PlayerStat{UserID: 7, FailStreak: 3}

	res, err := f.serv.Open(openCtx(), openReq())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stat := f.statRepo.stat
	spinLog := f.logRepo.appended[0]

	switch spinLog.Tier {
	case "jackpot":
		if stat.FailStreak != 0 {
			t.Fatalf("jackpot must reset the streak, got %d", stat.FailStreak)
		}
	default:
		if stat.FailStreak != 4 {
			t.Fatalf("streak = %d, want 4", stat.FailStreak)
		}
	}
	if res.FailStreak != stat.FailStreak {
		t.Fatalf("result streak %d != saved streak %d", res.FailStreak, stat.FailStreak)
	}

	if !stat.RTPSession.Equal(res.PayoutUSD.Div(dec("5.00"))) {
		t.Fatalf("rtp_session = %s", stat.RTPSession)
	}
	if !stat.NetLoss.Equal(dec("5.00").Sub(res.PayoutUSD)) {
		t.Fatalf("net_loss = %s", stat.NetLoss)
	}
}
