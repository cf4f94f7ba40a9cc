package override_repo

import (
	"context"
	"errors"

	"wingo_backend/internal/model"
	"wingo_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table            = "wingo_overrides"
	colID            = "id"
	colTrack         = "track"
	colWinningNumber = "winning_number"
	colOperatorID    = "operator_id"
	colActive        = "active"
	colCreatedAt     = "created_at"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewOverrideRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.OverrideRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

// DeactivateActive - деактивирует (не удаляет) активное переопределение дорожки
func (r *repo) DeactivateActive(ctx context.Context, track string) error {
	query := psql.Update(table).
		Set(colActive, false).
		Where(sq.Eq{colTrack: track, colActive: true})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	return err
}

// CreateOverride - создает активное переопределение
func (r *repo) CreateOverride(ctx context.Context, override *model.OperatorOverride) (int64, error) {
	query := psql.Insert(table).
		Columns(colTrack, colWinningNumber, colOperatorID, colActive, colCreatedAt).
		Values(override.Track, override.WinningNumber, override.OperatorID, true, override.CreatedAt).
		Suffix("RETURNING " + colID)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// GetActive - активное переопределение дорожки, nil если его нет
func (r *repo) GetActive(ctx context.Context, track string) (*model.OperatorOverride, error) {
	query := psql.Select(colID, colTrack, colWinningNumber, colOperatorID, colActive, colCreatedAt).
		From(table).
		Where(sq.Eq{colTrack: track, colActive: true})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	override, err := scanOverride(r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return override, nil
}

// ListActive - все активные переопределения
func (r *repo) ListActive(ctx context.Context) ([]model.OperatorOverride, error) {
	query := psql.Select(colID, colTrack, colWinningNumber, colOperatorID, colActive, colCreatedAt).
		From(table).
		Where(sq.Eq{colActive: true}).
		OrderBy(colTrack)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overrides []model.OperatorOverride
	for rows.Next() {
		override, err := scanOverride(rows)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, *override)
	}

	return overrides, rows.Err()
}

// Consume - однократное использование переопределения.
// false если его уже использовал параллельный расчет
func (r *repo) Consume(ctx context.Context, id int64) (bool, error) {
	query := psql.Update(table).
		Set(colActive, false).
		Where(sq.Eq{colID: id, colActive: true})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	tag, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func scanOverride(row pgx.Row) (*model.OperatorOverride, error) {
	var override model.OperatorOverride
	err := row.Scan(
		&override.ID, &override.Track, &override.WinningNumber,
		&override.OperatorID, &override.Active, &override.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &override, nil
}
