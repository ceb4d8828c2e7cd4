package repository

import (
	"context"

	"lootbox_backend/internal/model"

	"github.com/shopspring/decimal"
)

type SeedRepository interface {
	Create(ctx context.Context, seed *model.ServerSeed) error
	// GetUnused - возвращает неиспользованный сид пользователя или nil
	GetUnused(ctx context.Context, ownerID int) (*model.ServerSeed, error)
	// ConsumeUnused - атомарный CAS used=false→true по (id, owner_id).
	// Возвращает nil, если ни одна строка не подошла (чужой, несуществующий или сожженный сид)
	ConsumeUnused(ctx context.Context, id string, ownerID int) (*model.ServerSeed, error)
	Get(ctx context.Context, id string) (*model.ServerSeed, error)
}

type CaseRepository interface {
	// GetCase - возвращает конфиг кейса или nil, если такого кейса нет
	GetCase(ctx context.Context, caseID string) (*model.CaseConfig, error)
	ListCases(ctx context.Context) ([]*model.CaseConfig, error)
}

type PlayerStatRepository interface {
	// GetOrCreate - лениво создает запись и блокирует строку (FOR UPDATE)
	// до конца текущей транзакции: спины одного пользователя сериализуются
	GetOrCreate(ctx context.Context, userID int) (*model.PlayerStat, error)
	Save(ctx context.Context, stat *model.PlayerStat) error
}

type ReserveRepository interface {
	// EnsurePool - создает строку резерва при первом запуске, иначе ничего не делает
	EnsurePool(ctx context.Context, pool *model.CapPool) error
	GetPool(ctx context.Context) (*model.CapPool, error)
	// ApplyDelta - одна условная UPDATE: balance += stakeRake - payout,
	// только если инварианты платежеспособности выполняются. false - ни одна строка не подошла
	ApplyDelta(ctx context.Context, stakeRake, payout decimal.Decimal) (bool, error)
}

type SpinLogRepository interface {
	// Append - только вставка; API обновления или удаления не существует
	Append(ctx context.Context, spinLog *model.SpinLog) error
	GetByID(ctx context.Context, id string) (*model.SpinLog, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (id int, err error)
	GetUserByLogin(ctx context.Context, login string) (*model.User, error)

	GetBalance(ctx context.Context, id int) (decimal.Decimal, error)
	// DebitBalance - условное списание: false, если баланс меньше суммы
	DebitBalance(ctx context.Context, id int, amount decimal.Decimal) (bool, error)
	// CreditBalance - зачисление, возвращает новый баланс
	CreditBalance(ctx context.Context, id int, amount decimal.Decimal) (decimal.Decimal, error)
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetRefreshTokenBySessionID(ctx context.Context, sessionID string) (refreshToken string, err error)
	DeleteSession(ctx context.Context, sessionID string) error
	GetUserBySessionID(ctx context.Context, sessionID string) (*model.User, error)
}
