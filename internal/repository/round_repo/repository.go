package round_repo

import (
	"context"
	"errors"
	"strings"

	"wingo_backend/internal/model"
	"wingo_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table            = "wingo_rounds"
	colID            = "id"
	colTrack         = "track"
	colPeriod        = "period"
	colStatus        = "status"
	colOpenedAt      = "opened_at"
	colClosesAt      = "closes_at"
	colWinningNumber = "winning_number"
	colWinningColors = "winning_colors"
	colWinningSize   = "winning_size"
	colOperatorPick  = "operator_pick"
)

// Код Postgres для нарушения уникальности
const uniqueViolationCode = "23505"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewRoundRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.RoundRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

// CreateRound - создает раунд. Частичный уникальный индекс по (track) WHERE
// status='open' служит точкой сериализации: проигравший гонку получает
// model.ErrDuplicateOpenRound и перечитывает раунд победителя
func (r *repo) CreateRound(ctx context.Context, round *model.Round) (int64, error) {
	query := psql.Insert(table).
		Columns(colTrack, colPeriod, colStatus, colOpenedAt, colClosesAt).
		Values(round.Track, round.Period, round.Status, round.OpenedAt, round.ClosesAt).
		Suffix("RETURNING " + colID)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return 0, model.ErrDuplicateOpenRound
		}
		return 0, err
	}

	return id, nil
}

// GetRoundByID - возвращает раунд по ID
func (r *repo) GetRoundByID(ctx context.Context, id int64) (*model.Round, error) {
	return r.getOne(ctx, sq.Eq{colID: id})
}

// GetOpenRound - возвращает открытый раунд дорожки.
// Две открытых строки означают пробитый уникальный индекс:
// возвращается model.ErrDuplicateOpenRound как фатальный сбой целостности
func (r *repo) GetOpenRound(ctx context.Context, track string) (*model.Round, error) {
	query := psql.Select(
		colID, colTrack, colPeriod, colStatus, colOpenedAt, colClosesAt,
		colWinningNumber, colWinningColors, colWinningSize, colOperatorPick,
	).
		From(table).
		Where(sq.Eq{colTrack: track, colStatus: model.RoundStatusOpen})

	rounds, err := r.list(ctx, query)
	if err != nil {
		return nil, err
	}

	switch len(rounds) {
	case 0:
		return nil, model.ErrRoundNotFound
	case 1:
		return &rounds[0], nil
	default:
		return nil, model.ErrDuplicateOpenRound
	}
}

func (r *repo) getOne(ctx context.Context, where sq.Eq) (*model.Round, error) {
	query := psql.Select(
		colID, colTrack, colPeriod, colStatus, colOpenedAt, colClosesAt,
		colWinningNumber, colWinningColors, colWinningSize, colOperatorPick,
	).
		From(table).
		Where(where)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	round, err := scanRound(r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrRoundNotFound
		}
		return nil, err
	}

	return round, nil
}

// CloseRound - CAS перевод open -> closed
func (r *repo) CloseRound(ctx context.Context, id int64) (bool, error) {
	query := psql.Update(table).
		Set(colStatus, model.RoundStatusClosed).
		Where(sq.Eq{colID: id, colStatus: model.RoundStatusOpen})

	return r.execAffected(ctx, query)
}

// SetOutcome - записывает выигрышное значение и производные теги.
// Условие winning_number IS NULL гарантирует однократную запись
func (r *repo) SetOutcome(ctx context.Context, id int64, number int, colors []model.Color, size model.Size, operatorPick bool) (bool, error) {
	query := psql.Update(table).
		Set(colWinningNumber, number).
		Set(colWinningColors, joinColors(colors)).
		Set(colWinningSize, size).
		Set(colOperatorPick, operatorPick).
		Where(sq.Eq{colID: id}).
		Where(sq.Expr(colWinningNumber + " IS NULL"))

	return r.execAffected(ctx, query)
}

// MarkSettled - CAS перевод closed -> settled
func (r *repo) MarkSettled(ctx context.Context, id int64) (bool, error) {
	query := psql.Update(table).
		Set(colStatus, model.RoundStatusSettled).
		Where(sq.Eq{colID: id, colStatus: model.RoundStatusClosed})

	return r.execAffected(ctx, query)
}

// ListClosed - раунды с незавершенным расчетом
func (r *repo) ListClosed(ctx context.Context) ([]model.Round, error) {
	query := psql.Select(
		colID, colTrack, colPeriod, colStatus, colOpenedAt, colClosesAt,
		colWinningNumber, colWinningColors, colWinningSize, colOperatorPick,
	).
		From(table).
		Where(sq.Eq{colStatus: model.RoundStatusClosed}).
		OrderBy(colID)

	return r.list(ctx, query)
}

// GetHistory - рассчитанные раунды дорожки, новые первыми
func (r *repo) GetHistory(ctx context.Context, track string, limit int) ([]model.Round, error) {
	query := psql.Select(
		colID, colTrack, colPeriod, colStatus, colOpenedAt, colClosesAt,
		colWinningNumber, colWinningColors, colWinningSize, colOperatorPick,
	).
		From(table).
		Where(sq.Eq{colTrack: track, colStatus: model.RoundStatusSettled}).
		OrderBy(colID + " DESC").
		Limit(uint64(limit))

	return r.list(ctx, query)
}

func (r *repo) list(ctx context.Context, query sq.SelectBuilder) ([]model.Round, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rounds []model.Round
	for rows.Next() {
		round, err := scanRound(rows)
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, *round)
	}

	return rounds, rows.Err()
}

func (r *repo) execAffected(ctx context.Context, query sq.UpdateBuilder) (bool, error) {
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

func scanRound(row pgx.Row) (*model.Round, error) {
	var (
		round  model.Round
		status string
		number *int
		colors *string
		size   *string
	)

	err := row.Scan(
		&round.ID, &round.Track, &round.Period, &status, &round.OpenedAt, &round.ClosesAt,
		&number, &colors, &size, &round.OperatorPick,
	)
	if err != nil {
		return nil, err
	}

	round.Status = model.RoundStatus(status)
	round.WinningNumber = number
	if colors != nil {
		round.WinningColors = splitColors(*colors)
	}
	if size != nil {
		s := model.Size(*size)
		round.WinningSize = &s
	}

	return &round, nil
}

func joinColors(colors []model.Color) string {
	parts := make([]string, len(colors))
	for i, c := range colors {
		parts[i] = string(c)
	}
	return strings.Join(parts, ",")
}

func splitColors(raw string) []model.Color {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	colors := make([]model.Color, len(parts))
	for i, p := range parts {
		colors[i] = model.Color(p)
	}
	return colors
}
