package player_stat_repo

import (
	"context"

	"lootbox_backend/internal/model"
	"lootbox_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table         = "player_stats"
	colUserID     = "user_id"
	colFailStreak = "fail_streak"
	colRTPSession = "rtp_session"
	colNetLoss    = "net_loss"
)

type repo struct {
	dbc *pgxpool.Pool
}

func NewPlayerStatRepository(dbc *pgxpool.Pool) repository.PlayerStatRepository {
	return &repo{
		dbc: dbc,
	}
}

func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)
}

// GetOrCreate - лениво создает запись статистики и читает ее с блокировкой строки.
// FOR UPDATE держит блокировку до конца транзакции спина, поэтому два
// конкурентных спина одного пользователя не потеряют дельту стрика
func (r *repo) GetOrCreate(ctx context.Context, userID int) (*model.PlayerStat, error) {
	// Вставка по умолчанию, если записи не существует
	insertQuery := sq.Insert(table).
		Columns(colUserID).
		Values(userID).
		Suffix("ON CONFLICT (" + colUserID + ") DO NOTHING").
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := insertQuery.ToSql()
	if err != nil {
		return nil, err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}

	// Чтение с блокировкой строки
	query := sq.Select(colUserID, colFailStreak, colRTPSession, colNetLoss).
		From(table).
		Where(sq.Eq{colUserID: userID}).
		Suffix("FOR UPDATE").
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err = query.ToSql()
	if err != nil {
		return nil, err
	}

	var stat model.PlayerStat
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).
		Scan(&stat.UserID, &stat.FailStreak, &stat.RTPSession, &stat.NetLoss)
	if err != nil {
		return nil, err
	}

	return &stat, nil
}

// Save - записывает обновленную статистику пользователя
func (r *repo) Save(ctx context.Context, stat *model.PlayerStat) error {
	// Формируем запрос
	query := sq.Update(table).
		Set(colFailStreak, stat.FailStreak).
		Set(colRTPSession, stat.RTPSession).
		Set(colNetLoss, stat.NetLoss).
		Where(sq.Eq{colUserID: stat.UserID}).
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
