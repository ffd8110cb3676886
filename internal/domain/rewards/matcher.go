// Package rewards ranks a wallet of owned cards by expected reward value
// for a proposed spend.
//
// Matching is a pure function of its inputs: the same wallet order and the
// same spend always produce the same recommendation. Partnerships and
// category rates compete on equal footing; a card with no profile, or no
// matching profile entry, falls back to a flat generic rate rather than
// failing.
package rewards

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cardwise-app/cardwise-backend/internal/domain/catalog"
	"github.com/cardwise-app/cardwise-backend/internal/domain/wallet"
)

// Matcher ranks cards against the reference catalog.
type Matcher struct {
	catalog *catalog.Catalog
	config  Config
}

// NewMatcher creates a matcher backed by the given catalog.
func NewMatcher(cat *catalog.Catalog, config Config) *Matcher {
	return &Matcher{catalog: cat, config: config}
}

// Match evaluates every card in wallet order and returns the best card
// plus ranked alternatives. It fails only for an empty wallet; an
// unmatched merchant or category degrades to the generic rate.
func (m *Matcher) Match(cards []*wallet.Card, spend SpendContext) (*Recommendation, error) {
	if len(cards) == 0 {
		return nil, ErrEmptyWallet
	}

	matches := make([]CardMatch, 0, len(cards))
	for _, card := range cards {
		matches = append(matches, m.evaluate(card, spend))
	}

	// Strictly-greater comparison: the first card in wallet order wins
	// ties, so repeated calls are deterministic.
	bestIdx := 0
	for i, cm := range matches {
		if cm.Rate > matches[bestIdx].Rate {
			bestIdx = i
		}
	}

	alternatives := make([]CardMatch, 0, len(matches)-1)
	for i, cm := range matches {
		if i == bestIdx {
			continue
		}
		alternatives = append(alternatives, cm)
	}
	sort.SliceStable(alternatives, func(i, j int) bool {
		return alternatives[i].Rate > alternatives[j].Rate
	})

	return &Recommendation{
		Best:         matches[bestIdx],
		Alternatives: alternatives,
	}, nil
}

// evaluate computes one card's best candidate rate for the spend.
func (m *Matcher) evaluate(card *wallet.Card, spend SpendContext) CardMatch {
	profile, ok := m.catalog.Lookup(card.Name, card.Issuer)
	if !ok {
		return CardMatch{
			Card:     card,
			Rate:     m.config.GenericRate,
			RateType: catalog.RatePercent,
			Reason:   "no profile available, generic rate applied",
		}
	}

	best := CardMatch{
		Card:     card,
		Rate:     m.config.GenericRate,
		RateType: catalog.RatePercent,
		Reason:   fmt.Sprintf("no matching category or partner for %q, generic %.2g%% rate applied", spend.MerchantName, m.config.GenericRate),
	}
	found := false

	// Partnership candidates. Map keys are iterated in sorted order so
	// equal-rate candidates resolve the same way on every call.
	for _, partner := range sortedKeys(profile.Partnerships) {
		p := profile.Partnerships[partner]
		if !merchantListMatches(spend.MerchantName, p.Merchants) {
			continue
		}
		candidate := CardMatch{
			Card:     card,
			Rate:     p.RewardRate,
			RateType: catalog.RatePercent,
			Reason:   partnershipReason(partner, p),
		}
		if !found || candidate.Rate > best.Rate {
			best = candidate
			found = true
		}
	}

	// Category candidates compete with partnerships on rate alone.
	for _, key := range sortedKeys(profile.RewardRates) {
		rr := profile.RewardRates[key]
		if !categoryMatches(spend.Category, key) && !merchantListMatches(spend.MerchantName, rr.Merchants) {
			continue
		}
		candidate := CardMatch{
			Card:     card,
			Rate:     rr.Rate,
			RateType: rr.Type,
			Reason:   rateReason(key, rr),
		}
		if !found || candidate.Rate > best.Rate {
			best = candidate
			found = true
		}
	}

	return best
}

// categoryMatches applies the same fuzzy test as merchant matching:
// case-insensitive substring containment in either direction.
func categoryMatches(spendCategory, rateKey string) bool {
	a := strings.ToLower(strings.TrimSpace(spendCategory))
	b := strings.ToLower(strings.TrimSpace(rateKey))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func merchantListMatches(spendMerchant string, merchants []string) bool {
	for _, m := range merchants {
		if catalog.MerchantMatches(spendMerchant, m) {
			return true
		}
	}
	return false
}

func partnershipReason(partner string, p catalog.Partnership) string {
	if len(p.Benefits) == 0 {
		return fmt.Sprintf("%s partner offer at %.2g%%", partner, p.RewardRate)
	}
	return fmt.Sprintf("%s partner offer at %.2g%%: %s", partner, p.RewardRate, strings.Join(p.Benefits, "; "))
}

func rateReason(key string, rr catalog.RewardRate) string {
	var label string
	switch rr.Type {
	case catalog.RatePointsMultiplier:
		label = fmt.Sprintf("%.2gx points on %s", rr.Rate, key)
	default:
		label = fmt.Sprintf("%.2g%% back on %s", rr.Rate, key)
	}
	if rr.Notes != "" {
		return label + " (" + rr.Notes + ")"
	}
	return label
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
