package spin_log_repo

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
	table             = "spin_logs"
	colID             = "id"
	colUserID         = "user_id"
	colCaseID         = "case_id"
	colServerSeedID   = "server_seed_id"
	colServerSeedHash = "server_seed_hash"
	colServerSeed     = "server_seed"
	colClientSeed     = "client_seed"
	colNonce          = "nonce"
	colHMAC           = "hmac"
	colRawRoll        = "raw_roll"
	colOddsVersion    = "odds_version"
	colTier           = "tier"
	colCoinID         = "coin_id"
	colNetwork        = "network"
	colStake          = "stake"
	colPayout         = "payout"
	colPayoutUSD      = "payout_usd"
	colPityBefore     = "pity_before"
	colPityAfter      = "pity_after"
	colRTPSession     = "rtp_session"
	colCreatedAt      = "created_at"
)

type repo struct {
	dbc *pgxpool.Pool
}

func NewSpinLogRepository(dbc *pgxpool.Pool) repository.SpinLogRepository {
	return &repo{
		dbc: dbc,
	}
}

func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)
}

// Append - вставка записи аудита. Репозиторий не дает API
// на обновление или удаление: лог append-only
func (r *repo) Append(ctx context.Context, spinLog *model.SpinLog) error {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(
			colID, colUserID, colCaseID,
			colServerSeedID, colServerSeedHash, colServerSeed,
			colClientSeed, colNonce, colHMAC, colRawRoll,
			colOddsVersion, colTier, colCoinID, colNetwork,
			colStake, colPayout, colPayoutUSD,
			colPityBefore, colPityAfter, colRTPSession, colCreatedAt,
		).
		Values(
			spinLog.ID, spinLog.UserID, spinLog.CaseID,
			spinLog.ServerSeedID, spinLog.ServerSeedHash, spinLog.ServerSeed,
			spinLog.ClientSeed, spinLog.Nonce, spinLog.HMAC, spinLog.RawRoll,
			spinLog.OddsVersion, spinLog.Tier, spinLog.CoinID, spinLog.Network,
			spinLog.Stake, spinLog.Payout, spinLog.PayoutUSD,
			spinLog.PityBefore, spinLog.PityAfter, spinLog.RTPSession, spinLog.CreatedAt,
		).
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

// GetByID - возвращает запись спина по ID. nil, если записи нет
func (r *repo) GetByID(ctx context.Context, id string) (*model.SpinLog, error) {
	// Формируем запрос
	query := sq.Select(
		colID, colUserID, colCaseID,
		colServerSeedID, colServerSeedHash, colServerSeed,
		colClientSeed, colNonce, colHMAC, colRawRoll,
		colOddsVersion, colTier, colCoinID, colNetwork,
		colStake, colPayout, colPayoutUSD,
		colPityBefore, colPityAfter, colRTPSession, colCreatedAt,
	).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var spinLog model.SpinLog
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(
		&spinLog.ID, &spinLog.UserID, &spinLog.CaseID,
		&spinLog.ServerSeedID, &spinLog.ServerSeedHash, &spinLog.ServerSeed,
		&spinLog.ClientSeed, &spinLog.Nonce, &spinLog.HMAC, &spinLog.RawRoll,
		&spinLog.OddsVersion, &spinLog.Tier, &spinLog.CoinID, &spinLog.Network,
		&spinLog.Stake, &spinLog.Payout, &spinLog.PayoutUSD,
		&spinLog.PityBefore, &spinLog.PityAfter, &spinLog.RTPSession, &spinLog.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &spinLog, nil
}
