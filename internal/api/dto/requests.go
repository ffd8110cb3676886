package dto

import "github.com/cardwise-app/cardwise-backend/internal/domain/rewards"

// AddCardRequest registers a card in the wallet.
type AddCardRequest struct {
	Name        string  `json:"name" binding:"required"`
	Issuer      string  `json:"issuer" binding:"required"`
	CreditLimit float64 `json:"credit_limit" binding:"gte=0"`
}

// SpendRequest is a proposed purchase.
type SpendRequest struct {
	MerchantName string  `json:"merchant_name" binding:"required"`
	Category     string  `json:"category" binding:"required"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
}

// ToSpendContext converts the request into the domain shape.
func (r SpendRequest) ToSpendContext() rewards.SpendContext {
	return rewards.SpendContext{
		MerchantName: r.MerchantName,
		Category:     r.Category,
		Amount:       r.Amount,
	}
}

// ConfirmRequest confirms a transaction. CardID is optional; when empty
// the engine's selection is charged.
type ConfirmRequest struct {
	SpendRequest
	CardID string `json:"card_id"`
}

// ExplainRequest asks the advisor for prose about a proposed purchase.
type ExplainRequest struct {
	SpendRequest
}
