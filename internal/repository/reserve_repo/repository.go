package reserve_repo

import (
	"context"

	"lootbox_backend/internal/model"
	"lootbox_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	table          = "cap_pool"
	colID          = "id"
	colBalance     = "balance"
	colSigmaBuffer = "sigma_buffer"
	colMaxPayout   = "max_payout"

	// Единственная строка резерва
	poolID = "main"
)

type repo struct {
	dbc *pgxpool.Pool
}

func NewReserveRepository(dbc *pgxpool.Pool) repository.ReserveRepository {
	return &repo{
		dbc: dbc,
	}
}

func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)
}

// EnsurePool - создает строку резерва при первом запуске.
// Если строка уже существует - ничего не меняет
func (r *repo) EnsurePool(ctx context.Context, pool *model.CapPool) error {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colID, colBalance, colSigmaBuffer, colMaxPayout).
		Values(poolID, pool.Balance, pool.SigmaBuffer, pool.MaxPayout).
		Suffix("ON CONFLICT (" + colID + ") DO NOTHING").
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

// GetPool - возвращает текущее состояние резерва
func (r *repo) GetPool(ctx context.Context) (*model.CapPool, error) {
	// Формируем запрос
	query := sq.Select(colBalance, colSigmaBuffer, colMaxPayout).
		From(table).
		Where(sq.Eq{colID: poolID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var pool model.CapPool
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).
		Scan(&pool.Balance, &pool.SigmaBuffer, &pool.MaxPayout)
	if err != nil {
		return nil, err
	}

	return &pool, nil
}

// ApplyDelta - атомарная дельта резерва: balance += stakeRake - payout.
// Инварианты платежеспособности зашиты в WHERE, новое значение баланса
// никогда не вычисляется в приложении. false - условия не выполнились
func (r *repo) ApplyDelta(ctx context.Context, stakeRake, payout decimal.Decimal) (bool, error) {
	// Формируем запрос
	query := sq.Update(table).
		Set(colBalance, sq.Expr(colBalance+" + ? - ?", stakeRake, payout)).
		Where(sq.Eq{colID: poolID}).
		Where(sq.Expr(colBalance+" - ? >= 0", payout)).
		Where(colBalance + " >= " + colSigmaBuffer).
		Where(sq.Expr("? <= "+colMaxPayout, payout)).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	res, err := r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return false, err
	}

	return res.RowsAffected() == 1, nil
}
