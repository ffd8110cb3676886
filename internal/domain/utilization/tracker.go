// Package utilization owns the mutable used/limit state of owned cards
// and the derived metrics (headroom, utilization percent, risk band).
package utilization

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/cardwise-app/cardwise-backend/internal/domain/wallet"
)

// RiskBand is a coarse classification of credit utilization.
type RiskBand string

const (
	RiskLow      RiskBand = "low"
	RiskModerate RiskBand = "moderate"
	RiskHigh     RiskBand = "high"
	RiskCritical RiskBand = "critical"
)

// ErrInvalidAmount is returned by Apply for a zero or negative amount.
var ErrInvalidAmount = errors.New("apply amount must be positive")

// CreditLimitExceededError reports a confirmation that would push a card
// past its credit limit. It carries the card's headroom so the caller can
// deny cleanly or pick a different card.
type CreditLimitExceededError struct {
	CardID    string
	Requested float64
	Headroom  float64
}

func (e *CreditLimitExceededError) Error() string {
	return fmt.Sprintf("credit limit exceeded on card %s: requested %.2f, headroom %.2f", e.CardID, e.Requested, e.Headroom)
}

// Headroom is the remaining spendable amount on a card. It is always
// recomputed from the current fields, never cached.
func Headroom(card *wallet.Card) float64 {
	return card.CreditLimit - card.UsedAmount
}

// Percent is the card's utilization rounded to the nearest whole percent.
// A card with no limit reports zero rather than dividing by zero.
func Percent(card *wallet.Card) int {
	if card.CreditLimit <= 0 {
		return 0
	}
	return int(math.Round(card.UsedAmount / card.CreditLimit * 100))
}

// BandFor classifies a utilization percent. Band boundaries are exclusive
// on the lower side: exactly 90 is high, exactly 70 is moderate, exactly
// 30 is low.
func BandFor(percent int) RiskBand {
	switch {
	case percent > 90:
		return RiskCritical
	case percent > 70:
		return RiskHigh
	case percent > 30:
		return RiskModerate
	default:
		return RiskLow
	}
}

// ApplyResult describes the card's state after a confirmed charge.
type ApplyResult struct {
	CardID             string   `json:"card_id"`
	NewUsedAmount      float64  `json:"new_used_amount"`
	UtilizationPercent int      `json:"utilization_percent"`
	RiskBand           RiskBand `json:"risk_band"`
}

// Tracker applies confirmed charges to cards. It keeps one mutex per card
// so the read-check-write of UsedAmount against CreditLimit is a single
// critical section: two concurrent confirmations can never both pass the
// limit check and jointly exceed the limit.
type Tracker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{locks: make(map[string]*sync.Mutex)}
}

func (t *Tracker) lockFor(cardID string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.locks[cardID]
	if !ok {
		l = &sync.Mutex{}
		t.locks[cardID] = l
	}
	return l
}

// Apply adds amount to the card's used balance. It fails with
// *CreditLimitExceededError when the new balance would exceed the credit
// limit, leaving the card untouched. Apply is the only mutator of
// UsedAmount in the system.
func (t *Tracker) Apply(card *wallet.Card, amount float64) (ApplyResult, error) {
	if amount <= 0 {
		return ApplyResult{}, ErrInvalidAmount
	}

	l := t.lockFor(card.ID)
	l.Lock()
	defer l.Unlock()

	newUsed := card.UsedAmount + amount
	if newUsed > card.CreditLimit {
		return ApplyResult{}, &CreditLimitExceededError{
			CardID:    card.ID,
			Requested: amount,
			Headroom:  Headroom(card),
		}
	}

	card.UsedAmount = newUsed
	percent := Percent(card)
	return ApplyResult{
		CardID:             card.ID,
		NewUsedAmount:      newUsed,
		UtilizationPercent: percent,
		RiskBand:           BandFor(percent),
	}, nil
}
