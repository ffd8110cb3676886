package rewards

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cardwise-app/cardwise-backend/internal/domain/catalog"
	"github.com/cardwise-app/cardwise-backend/internal/domain/wallet"
)

// ErrEmptyWallet is returned when there are no cards to evaluate.
var ErrEmptyWallet = errors.New("wallet has no cards")

// ErrInvalidSpend is returned for a spend context that cannot be matched:
// non-positive amount or missing merchant/category.
var ErrInvalidSpend = errors.New("invalid spend context")

// SpendContext is one proposed purchase.
type SpendContext struct {
	MerchantName string  `json:"merchant_name"`
	Category     string  `json:"category"`
	Amount       float64 `json:"amount"`
}

// Validate rejects spend contexts before any matching runs.
func (s SpendContext) Validate() error {
	switch {
	case s.Amount <= 0:
		return fmt.Errorf("%w: amount must be positive, got %.2f", ErrInvalidSpend, s.Amount)
	case strings.TrimSpace(s.MerchantName) == "":
		return fmt.Errorf("%w: merchant name is required", ErrInvalidSpend)
	case strings.TrimSpace(s.Category) == "":
		return fmt.Errorf("%w: category is required", ErrInvalidSpend)
	}
	return nil
}

// CardMatch is one card's best matched rate for a spend, with the reason
// the rate applies.
type CardMatch struct {
	Card     *wallet.Card     `json:"card"`
	Rate     float64          `json:"rate"`
	RateType catalog.RateType `json:"rate_type"`
	Reason   string           `json:"reason"`
}

// Recommendation ranks a wallet for one spend. Alternatives exclude the
// best card and are ordered by descending matched rate, ties broken by
// original wallet order.
type Recommendation struct {
	Best         CardMatch   `json:"best"`
	Alternatives []CardMatch `json:"alternatives"`
}

// Config holds matcher configuration.
type Config struct {
	// GenericRate is the flat percent applied when a card has no profile
	// or nothing in its profile matches the spend.
	GenericRate float64
}

// DefaultConfig returns the standard 1% generic fallback.
func DefaultConfig() Config {
	return Config{GenericRate: 1.0}
}
