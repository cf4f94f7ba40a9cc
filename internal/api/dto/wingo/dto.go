package wingo

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoundResponse - публичное представление раунда.
// Исход заполняется только после закрытия ставок.
type RoundResponse struct {
	ID            int64    `json:"id"`
	Track         string   `json:"track"`
	Period        string   `json:"period"`
	Status        string   `json:"status"`
	OpenedAt      string   `json:"opened_at"`
	ClosesAt      string   `json:"closes_at"`
	WinningNumber *int     `json:"winning_number,omitempty"`
	WinningColors []string `json:"winning_colors,omitempty"`
	WinningSize   *string  `json:"winning_size,omitempty"`
}

type PlaceBetRequest struct {
	RoundID  int64           `json:"round_id"`
	Category string          `json:"category"`
	Number   *int            `json:"number,omitempty"`
	Color    string          `json:"color,omitempty"`
	Size     string          `json:"size,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
}

type BetResponse struct {
	ID              int64           `json:"id"`
	RoundID         int64           `json:"round_id"`
	Category        string          `json:"category"`
	Selection       string          `json:"selection"`
	Amount          decimal.Decimal `json:"amount"`
	PotentialPayout decimal.Decimal `json:"potential_payout"`
	CreatedAt       time.Time       `json:"created_at"`
}

type CandidateRiskResponse struct {
	Number int             `json:"number"`
	Payout decimal.Decimal `json:"payout"`
}

type StakeAggregateResponse struct {
	Stake decimal.Decimal `json:"stake"`
	Count int             `json:"count"`
}

type RiskResponse struct {
	RoundID       int64                             `json:"round_id"`
	Period        string                            `json:"period"`
	PerCandidate  []CandidateRiskResponse           `json:"per_candidate"`
	ByNumber      map[int]StakeAggregateResponse    `json:"by_number"`
	ByColor       map[string]StakeAggregateResponse `json:"by_color"`
	BySize        map[string]StakeAggregateResponse `json:"by_size"`
	BestForHouse  CandidateRiskResponse             `json:"best_for_house"`
	WorstForHouse CandidateRiskResponse             `json:"worst_for_house"`
}

type OverrideRequest struct {
	Track  string `json:"track"`
	Number int    `json:"number"`
}

type OverrideResponse struct {
	ID            int64     `json:"id"`
	Track         string    `json:"track"`
	WinningNumber int       `json:"winning_number"`
	OperatorID    int       `json:"operator_id"`
	CreatedAt     time.Time `json:"created_at"`
}
