package audit

import (
	"context"

	"github.com/shopspring/decimal"
)

// BetSettled - запись для внешнего реестра операций.
// Ядро только пишет эти записи и никогда не читает их обратно
type BetSettled struct {
	UserID   int             `json:"user_id"`
	Game     string          `json:"game"`
	Track    string          `json:"track"`
	Period   string          `json:"period"`
	Staked   decimal.Decimal `json:"staked"`
	Won      decimal.Decimal `json:"won"`
	Outcome  string          `json:"outcome"`
	TsUnixMs int64           `json:"ts_unix_ms"`
}

type Publisher interface {
	PublishBetSettled(ctx context.Context, rec BetSettled) error
}
