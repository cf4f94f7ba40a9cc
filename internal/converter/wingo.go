package converter

import (
	"time"

	dto "wingo_backend/internal/api/dto/wingo"
	"wingo_backend/internal/model"
)

// RoundToResponse - конвертирует раунд в публичное представление
func RoundToResponse(r *model.Round) *dto.RoundResponse {
	out := &dto.RoundResponse{
		ID:            r.ID,
		Track:         r.Track,
		Period:        r.Period,
		Status:        string(r.Status),
		OpenedAt:      r.OpenedAt.UTC().Format(time.RFC3339),
		ClosesAt:      r.ClosesAt.UTC().Format(time.RFC3339),
		WinningNumber: r.WinningNumber,
	}

	for _, c := range r.WinningColors {
		out.WinningColors = append(out.WinningColors, string(c))
	}
	if r.WinningSize != nil {
		size := string(*r.WinningSize)
		out.WinningSize = &size
	}

	return out
}

// RoundsToResponse - конвертирует список раундов
func RoundsToResponse(rounds []model.Round) []*dto.RoundResponse {
	out := make([]*dto.RoundResponse, 0, len(rounds))
	for i := range rounds {
		out = append(out, RoundToResponse(&rounds[i]))
	}
	return out
}

// PlaceBetRequestToModel - конвертирует запрос ставки в модель
func PlaceBetRequestToModel(r *dto.PlaceBetRequest, userID int) model.PlaceBet {
	sel := model.BetSelection{
		Category: model.BetCategory(r.Category),
		Color:    model.Color(r.Color),
		Size:     model.Size(r.Size),
	}
	if r.Number != nil {
		sel.Number = *r.Number
	}

	return model.PlaceBet{
		RoundID:   r.RoundID,
		UserID:    userID,
		Selection: sel,
		Amount:    r.Amount,
	}
}

// BetToResponse - конвертирует ставку в публичное представление
func BetToResponse(b *model.Bet) *dto.BetResponse {
	return &dto.BetResponse{
		ID:              b.ID,
		RoundID:         b.RoundID,
		Category:        string(b.Selection.Category),
		Selection:       b.Selection.Label(),
		Amount:          b.Amount,
		PotentialPayout: b.PotentialPayout,
		CreatedAt:       b.CreatedAt,
	}
}

// RiskSnapshotToResponse - конвертирует срез риска в публичное представление
func RiskSnapshotToResponse(s *model.RiskSnapshot) *dto.RiskResponse {
	out := &dto.RiskResponse{
		RoundID:       s.RoundID,
		Period:        s.Period,
		ByNumber:      make(map[int]dto.StakeAggregateResponse, len(s.ByNumber)),
		ByColor:       make(map[string]dto.StakeAggregateResponse, len(s.ByColor)),
		BySize:        make(map[string]dto.StakeAggregateResponse, len(s.BySize)),
		BestForHouse:  dto.CandidateRiskResponse{Number: s.BestForHouse.Number, Payout: s.BestForHouse.Payout},
		WorstForHouse: dto.CandidateRiskResponse{Number: s.WorstForHouse.Number, Payout: s.WorstForHouse.Payout},
	}

	for _, c := range s.PerCandidate {
		out.PerCandidate = append(out.PerCandidate, dto.CandidateRiskResponse{
			Number: c.Number,
			Payout: c.Payout,
		})
	}
	for n, agg := range s.ByNumber {
		out.ByNumber[n] = dto.StakeAggregateResponse{Stake: agg.Stake, Count: agg.Count}
	}
	for c, agg := range s.ByColor {
		out.ByColor[string(c)] = dto.StakeAggregateResponse{Stake: agg.Stake, Count: agg.Count}
	}
	for sz, agg := range s.BySize {
		out.BySize[string(sz)] = dto.StakeAggregateResponse{Stake: agg.Stake, Count: agg.Count}
	}

	return out
}

// OverrideToResponse - конвертирует операторский выбор в публичное представление
func OverrideToResponse(o *model.OperatorOverride) *dto.OverrideResponse {
	return &dto.OverrideResponse{
		ID:            o.ID,
		Track:         o.Track,
		WinningNumber: o.WinningNumber,
		OperatorID:    o.OperatorID,
		CreatedAt:     o.CreatedAt,
	}
}

// OverridesToResponse - конвертирует список операторских выборов
func OverridesToResponse(overrides []model.OperatorOverride) []*dto.OverrideResponse {
	out := make([]*dto.OverrideResponse, 0, len(overrides))
	for i := range overrides {
		out = append(out, OverrideToResponse(&overrides[i]))
	}
	return out
}
