// Package wallet defines the owned-card records the engine operates on.
package wallet

// Card is one credit card owned by the user. CreditLimit and UsedAmount
// are non-nullable and default to zero at the data-access boundary; the
// invariant UsedAmount <= CreditLimit is enforced by the utilization
// tracker, which is the only mutator of UsedAmount.
type Card struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Issuer      string  `json:"issuer"`
	CreditLimit float64 `json:"credit_limit"`
	UsedAmount  float64 `json:"used_amount"`
}

// Snapshot returns value copies of the given cards, preserving order.
// Matching runs against a snapshot so a concurrent confirmation cannot
// mutate UsedAmount mid-computation.
func Snapshot(cards []*Card) []*Card {
	out := make([]*Card, len(cards))
	for i, c := range cards {
		copied := *c
		out[i] = &copied
	}
	return out
}
