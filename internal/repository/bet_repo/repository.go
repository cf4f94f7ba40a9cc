package bet_repo

import (
	"context"

	"wingo_backend/internal/model"
	"wingo_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	table              = "wingo_bets"
	colID              = "id"
	colRoundID         = "round_id"
	colUserID          = "user_id"
	colCategory        = "category"
	colNumber          = "number"
	colColor           = "color"
	colSize            = "size"
	colAmount          = "amount"
	colPotentialPayout = "potential_payout"
	colWon             = "won"
	colPaid            = "paid"
	colCreatedAt       = "created_at"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewBetRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.BetRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

// CreateBet - записывает ставку. Вызывается внутри транзакции вместе со
// списанием средств, поэтому ставка без списания существовать не может
func (r *repo) CreateBet(ctx context.Context, bet *model.Bet) (int64, error) {
	var (
		number *int
		color  *string
		size   *string
	)
	switch bet.Selection.Category {
	case model.BetCategoryNumber:
		number = &bet.Selection.Number
	case model.BetCategoryColor:
		c := string(bet.Selection.Color)
		color = &c
	case model.BetCategorySize:
		s := string(bet.Selection.Size)
		size = &s
	}

	query := psql.Insert(table).
		Columns(colRoundID, colUserID, colCategory, colNumber, colColor, colSize,
			colAmount, colPotentialPayout, colCreatedAt).
		Values(bet.RoundID, bet.UserID, bet.Selection.Category, number, color, size,
			bet.Amount, bet.PotentialPayout, bet.CreatedAt).
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

// ListByRound - все ставки раунда
func (r *repo) ListByRound(ctx context.Context, roundID int64) ([]model.Bet, error) {
	return r.list(ctx, sq.Eq{colRoundID: roundID}, nil)
}

// ListUnresolvedByRound - ставки раунда, у которых еще нет исхода
func (r *repo) ListUnresolvedByRound(ctx context.Context, roundID int64) ([]model.Bet, error) {
	return r.list(ctx, sq.Eq{colRoundID: roundID}, sq.Expr(colWon+" IS NULL"))
}

func (r *repo) list(ctx context.Context, where sq.Eq, extra sq.Sqlizer) ([]model.Bet, error) {
	query := psql.Select(
		colID, colRoundID, colUserID, colCategory, colNumber, colColor, colSize,
		colAmount, colPotentialPayout, colWon, colPaid, colCreatedAt,
	).
		From(table).
		Where(where).
		OrderBy(colID)
	if extra != nil {
		query = query.Where(extra)
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bets []model.Bet
	for rows.Next() {
		bet, err := scanBet(rows)
		if err != nil {
			return nil, err
		}
		bets = append(bets, *bet)
	}

	return bets, rows.Err()
}

// MarkResolved - однократная запись исхода ставки.
// Условие won IS NULL делает расчет идемпотентным
func (r *repo) MarkResolved(ctx context.Context, betID int64, won bool, paid decimal.Decimal) (bool, error) {
	query := psql.Update(table).
		Set(colWon, won).
		Set(colPaid, paid).
		Where(sq.Eq{colID: betID}).
		Where(sq.Expr(colWon + " IS NULL"))

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

func scanBet(row pgx.Row) (*model.Bet, error) {
	var (
		bet      model.Bet
		category string
		number   *int
		color    *string
		size     *string
		paid     *decimal.Decimal
	)

	err := row.Scan(
		&bet.ID, &bet.RoundID, &bet.UserID, &category, &number, &color, &size,
		&bet.Amount, &bet.PotentialPayout, &bet.Won, &paid, &bet.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	bet.Selection.Category = model.BetCategory(category)
	switch bet.Selection.Category {
	case model.BetCategoryNumber:
		if number != nil {
			bet.Selection.Number = *number
		}
	case model.BetCategoryColor:
		if color != nil {
			bet.Selection.Color = model.Color(*color)
		}
	case model.BetCategorySize:
		if size != nil {
			bet.Selection.Size = model.Size(*size)
		}
	}
	bet.Paid = paid

	return &bet, nil
}
