// Package eligibility selects the single best usable card for a proposed
// transaction, combining reward ranking with credit-limit headroom.
package eligibility

import (
	"fmt"

	"github.com/cardwise-app/cardwise-backend/internal/domain/catalog"
	"github.com/cardwise-app/cardwise-backend/internal/domain/rewards"
	"github.com/cardwise-app/cardwise-backend/internal/domain/utilization"
	"github.com/cardwise-app/cardwise-backend/internal/domain/wallet"
)

// Selection is the outcome of evaluating a proposed transaction. It is
// read-only: confirming it (applying the amount to the chosen card) is a
// separate step owned by the caller.
type Selection struct {
	Chosen         *wallet.Card            `json:"chosen"`
	Recommendation *rewards.Recommendation `json:"recommendation"`
	IsFallback     bool                    `json:"is_fallback"`
}

// Filter ranks cards with sufficient headroom; when none qualifies it
// falls back to the card with the most headroom.
type Filter struct {
	matcher *rewards.Matcher
}

// NewFilter creates a filter over the given matcher.
func NewFilter(matcher *rewards.Matcher) *Filter {
	return &Filter{matcher: matcher}
}

// SelectForTransaction picks the best usable card for the spend.
//
// Cards whose headroom covers the amount are ranked by the reward matcher
// and the best one is returned. When no card has enough headroom, the
// card with the greatest headroom is returned instead with IsFallback set,
// so the caller can still show the least-bad option.
//
// The wallet is snapshotted before matching; concurrent confirmations
// cannot skew a ranking in progress. The returned Selection references
// the caller's original cards, not the snapshot copies.
func (f *Filter) SelectForTransaction(cards []*wallet.Card, spend rewards.SpendContext) (*Selection, error) {
	if err := spend.Validate(); err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, rewards.ErrEmptyWallet
	}

	snap := wallet.Snapshot(cards)
	byID := make(map[string]*wallet.Card, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}

	eligible := make([]*wallet.Card, 0, len(snap))
	for _, c := range snap {
		if utilization.Headroom(c) >= spend.Amount {
			eligible = append(eligible, c)
		}
	}

	if len(eligible) == 0 {
		return f.fallback(snap, byID, spend), nil
	}

	rec, err := f.matcher.Match(eligible, spend)
	if err != nil {
		return nil, err
	}
	rebind(rec, byID)

	return &Selection{
		Chosen:         rec.Best.Card,
		Recommendation: rec,
		IsFallback:     false,
	}, nil
}

// fallback picks the card with the greatest headroom, ties broken by
// wallet order (strictly-greater comparison).
func (f *Filter) fallback(snap []*wallet.Card, byID map[string]*wallet.Card, spend rewards.SpendContext) *Selection {
	best := snap[0]
	for _, c := range snap[1:] {
		if utilization.Headroom(c) > utilization.Headroom(best) {
			best = c
		}
	}

	chosen := byID[best.ID]
	reason := fmt.Sprintf(
		"no card has sufficient headroom for %.2f; %s has the most remaining credit (%.2f)",
		spend.Amount, best.Name, utilization.Headroom(best),
	)
	return &Selection{
		Chosen: chosen,
		Recommendation: &rewards.Recommendation{
			Best: rewards.CardMatch{
				Card:     chosen,
				Rate:     0,
				RateType: catalog.RatePercent,
				Reason:   reason,
			},
			Alternatives: []rewards.CardMatch{},
		},
		IsFallback: true,
	}
}

// rebind swaps snapshot copies in a recommendation back to the caller's
// live card records.
func rebind(rec *rewards.Recommendation, byID map[string]*wallet.Card) {
	if live, ok := byID[rec.Best.Card.ID]; ok {
		rec.Best.Card = live
	}
	for i := range rec.Alternatives {
		if live, ok := byID[rec.Alternatives[i].Card.ID]; ok {
			rec.Alternatives[i].Card = live
		}
	}
}
