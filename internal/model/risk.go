package model

import "github.com/shopspring/decimal"

// CandidateRisk - гипотетическая выплата дома, если победит значение Number
type CandidateRisk struct {
	Number int
	Payout decimal.Decimal
}

// StakeAggregate - сумма и количество ставок по одной цели
type StakeAggregate struct {
	Stake decimal.Decimal
	Count int
}

// RiskSnapshot - срез риска по открытому раунду. Производное, не хранится.
// Только для мониторинга и поддержки решения оператора
type RiskSnapshot struct {
	RoundID       int64
	Period        string
	PerCandidate  []CandidateRisk
	ByNumber      map[int]StakeAggregate
	ByColor       map[Color]StakeAggregate
	BySize        map[Size]StakeAggregate
	BestForHouse  CandidateRisk
	WorstForHouse CandidateRisk
}
