package dto

import (
	"github.com/cardwise-app/cardwise-backend/internal/domain/eligibility"
	"github.com/cardwise-app/cardwise-backend/internal/domain/rewards"
	"github.com/cardwise-app/cardwise-backend/internal/domain/utilization"
	"github.com/cardwise-app/cardwise-backend/internal/infrastructure/storage"
)

// CardResponse is an owned card with its derived utilization metrics.
type CardResponse struct {
	ID                 string               `json:"id"`
	Name               string               `json:"name"`
	Issuer             string               `json:"issuer"`
	CreditLimit        float64              `json:"credit_limit"`
	UsedAmount         float64              `json:"used_amount"`
	Headroom           float64              `json:"headroom"`
	UtilizationPercent int                  `json:"utilization_percent"`
	RiskBand           utilization.RiskBand `json:"risk_band"`
	ProfileFound       bool                 `json:"profile_found"`
}

// NewCardResponse computes the derived metrics for a stored card.
func NewCardResponse(record *storage.CardRecord, profileFound bool) CardResponse {
	card := record.ToWalletCard()
	percent := utilization.Percent(card)
	return CardResponse{
		ID:                 record.ID,
		Name:               record.Name,
		Issuer:             record.Issuer,
		CreditLimit:        record.CreditLimit,
		UsedAmount:         record.UsedAmount,
		Headroom:           utilization.Headroom(card),
		UtilizationPercent: percent,
		RiskBand:           utilization.BandFor(percent),
		ProfileFound:       profileFound,
	}
}

// CardChoice is one ranked card in a recommendation.
type CardChoice struct {
	CardID string  `json:"card_id"`
	Name   string  `json:"name"`
	Issuer string  `json:"issuer"`
	Rate   float64 `json:"rate"`
	Type   string  `json:"rate_type"`
	Reason string  `json:"reason"`
}

// RecommendationResponse ranks the wallet for a proposed purchase.
type RecommendationResponse struct {
	Best         CardChoice   `json:"best"`
	Alternatives []CardChoice `json:"alternatives"`
	IsFallback   bool         `json:"is_fallback"`
}

// NewRecommendationResponse flattens a selection for the wire.
func NewRecommendationResponse(sel *eligibility.Selection) RecommendationResponse {
	resp := RecommendationResponse{
		Best:         newCardChoice(sel.Recommendation.Best),
		Alternatives: make([]CardChoice, 0, len(sel.Recommendation.Alternatives)),
		IsFallback:   sel.IsFallback,
	}
	for _, alt := range sel.Recommendation.Alternatives {
		resp.Alternatives = append(resp.Alternatives, newCardChoice(alt))
	}
	return resp
}

func newCardChoice(match rewards.CardMatch) CardChoice {
	return CardChoice{
		CardID: match.Card.ID,
		Name:   match.Card.Name,
		Issuer: match.Card.Issuer,
		Rate:   match.Rate,
		Type:   string(match.RateType),
		Reason: match.Reason,
	}
}

// ConfirmResponse reports a confirmed transaction and the card's new state.
type ConfirmResponse struct {
	Transaction    *storage.TransactionRecord `json:"transaction"`
	CardState      utilization.ApplyResult    `json:"card_state"`
	Recommendation RecommendationResponse     `json:"recommendation"`
}

// SimulateResponse is one synthetic spend run through the decision path.
type SimulateResponse struct {
	Spend          rewards.SpendContext   `json:"spend"`
	Recommendation RecommendationResponse `json:"recommendation"`
}

// ExplainResponse carries advisor prose.
type ExplainResponse struct {
	Explanation    string                 `json:"explanation"`
	Recommendation RecommendationResponse `json:"recommendation"`
}

// CardListResponse wraps the wallet listing.
type CardListResponse struct {
	Cards []CardResponse `json:"cards"`
}

// HealthResponse is the health check body.
type HealthResponse struct {
	Status string `json:"status"`
}
