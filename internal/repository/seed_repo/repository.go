package seed_repo

import (
	"context"
	"database/sql"
	"errors"

	"lootbox_backend/internal/model"
	"lootbox_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table        = "server_seeds"
	colID        = "id"
	colSeed      = "seed"
	colHash      = "hash"
	colOwnerID   = "owner_id"
	colUsed      = "used"
	colCreatedAt = "created_at"
)

type repo struct {
	dbc *pgxpool.Pool
}

func NewSeedRepository(dbc *pgxpool.Pool) repository.SeedRepository {
	return &repo{
		dbc: dbc,
	}
}

func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)
}

// Create - сохраняет новый сид с used=false
func (r *repo) Create(ctx context.Context, seed *model.ServerSeed) error {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colID, colSeed, colHash, colOwnerID, colUsed, colCreatedAt).
		Values(seed.ID, seed.Seed, seed.Hash, seed.OwnerID, seed.Used, seed.CreatedAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}

// GetUnused - возвращает неиспользованный сид пользователя.
// Возвращает nil, если такого сида нет
func (r *repo) GetUnused(ctx context.Context, ownerID int) (*model.ServerSeed, error) {
	// Формируем запрос
	query := sq.Select(colID, colSeed, colHash, colOwnerID, colUsed, colCreatedAt).
		From(table).
		Where(sq.Eq{colOwnerID: ownerID, colUsed: false}).
		OrderBy(colCreatedAt + " ASC").
		Limit(1).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var seed model.ServerSeed
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).
		Scan(&seed.ID, &seed.Seed, &seed.Hash, &seed.OwnerID, &seed.Used, &seed.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &seed, nil
}

// ConsumeUnused - атомарно помечает сид использованным.
// Условие WHERE (id, owner_id, used=false) гарантирует ровно один успех
// среди конкурентных вызовов: проигравший не находит ни одной строки
func (r *repo) ConsumeUnused(ctx context.Context, id string, ownerID int) (*model.ServerSeed, error) {
	// Формируем запрос
	query := sq.Update(table).
		Set(colUsed, true).
		Where(sq.Eq{colID: id, colOwnerID: ownerID, colUsed: false}).
		Suffix("RETURNING " + colID + ", " + colSeed + ", " + colHash + ", " + colOwnerID + ", " + colUsed + ", " + colCreatedAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var seed model.ServerSeed
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).
		Scan(&seed.ID, &seed.Seed, &seed.Hash, &seed.OwnerID, &seed.Used, &seed.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &seed, nil
}

// Get - возвращает сид по ID (для reveal-проекции). nil, если не найден
func (r *repo) Get(ctx context.Context, id string) (*model.ServerSeed, error) {
	// Формируем запрос
	query := sq.Select(colID, colSeed, colHash, colOwnerID, colUsed, colCreatedAt).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var seed model.ServerSeed
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).
		Scan(&seed.ID, &seed.Seed, &seed.Hash, &seed.OwnerID, &seed.Used, &seed.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &seed, nil
}
