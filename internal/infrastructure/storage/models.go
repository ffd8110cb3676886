package storage

import (
	"time"

	"github.com/cardwise-app/cardwise-backend/internal/domain/wallet"
)

// CardRecord is the persisted form of an owned card. CreditLimit and
// UsedAmount are non-nullable columns defaulting to zero, so the domain
// never sees a null credit field.
type CardRecord struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Issuer      string    `json:"issuer"`
	CreditLimit float64   `json:"credit_limit"`
	UsedAmount  float64   `json:"used_amount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToWalletCard converts the record into the domain card shape.
func (r *CardRecord) ToWalletCard() *wallet.Card {
	return &wallet.Card{
		ID:          r.ID,
		Name:        r.Name,
		Issuer:      r.Issuer,
		CreditLimit: r.CreditLimit,
		UsedAmount:  r.UsedAmount,
	}
}

// TransactionRecord is one confirmed transaction.
type TransactionRecord struct {
	ID        string    `json:"id"`
	CardID    string    `json:"card_id"`
	Merchant  string    `json:"merchant"`
	Category  string    `json:"category"`
	Amount    float64   `json:"amount"`
	Rate      float64   `json:"rate"`
	RateType  string    `json:"rate_type"`
	Reason    string    `json:"reason"`
	Fallback  bool      `json:"fallback"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats aggregates confirmed-transaction history.
type Stats struct {
	TotalTransactions int     `json:"total_transactions"`
	TotalSpend        float64 `json:"total_spend"`
	// RewardEstimate is amount * rate / 100 summed over percent-rate
	// transactions; point multipliers are excluded from the money figure.
	RewardEstimate float64 `json:"reward_estimate"`
	FallbackCount  int     `json:"fallback_count"`
}
