// Package catalog provides the read-only card-profile reference data.
//
// The catalog is constructed once at startup and passed by injection into
// the matching logic. Business code never reaches for ambient globals, so
// tests can substitute a small fixture catalog.
package catalog

import (
	"fmt"
	"strings"
)

// Catalog is an immutable set of card profiles with case-insensitive lookup.
type Catalog struct {
	profiles []CardProfile
}

// New builds a catalog from the given profiles. It rejects profiles with
// negative rate values so that downstream ranking can trust the data.
func New(profiles []CardProfile) (*Catalog, error) {
	for _, p := range profiles {
		for key, rr := range p.RewardRates {
			if rr.Rate < 0 {
				return nil, fmt.Errorf("profile %q: reward rate %q is negative (%.2f)", p.CardName, key, rr.Rate)
			}
		}
		for name, ps := range p.Partnerships {
			if ps.RewardRate < 0 {
				return nil, fmt.Errorf("profile %q: partnership %q rate is negative (%.2f)", p.CardName, name, ps.RewardRate)
			}
		}
	}
	owned := make([]CardProfile, len(profiles))
	copy(owned, profiles)
	return &Catalog{profiles: owned}, nil
}

// Lookup resolves a profile by card name and issuer.
//
// The name test is a case-insensitive substring check: the catalog entry's
// name must contain the query, so partial names entered by users still
// resolve. The issuer test is case-insensitive equality. A miss is not an
// error; callers fall back to the generic base rate.
func (c *Catalog) Lookup(cardName, issuer string) (*CardProfile, bool) {
	name := strings.ToLower(strings.TrimSpace(cardName))
	iss := strings.TrimSpace(issuer)
	if name == "" {
		return nil, false
	}

	for i := range c.profiles {
		p := &c.profiles[i]
		if !strings.Contains(strings.ToLower(p.CardName), name) {
			continue
		}
		if !strings.EqualFold(p.Issuer, iss) {
			continue
		}
		return p, true
	}
	return nil, false
}

// Profiles returns a copy of every profile, for browse endpoints.
func (c *Catalog) Profiles() []CardProfile {
	out := make([]CardProfile, len(c.profiles))
	copy(out, c.profiles)
	return out
}

// Len reports the number of profiles loaded.
func (c *Catalog) Len() int {
	return len(c.profiles)
}

// MerchantMatches reports whether a spend merchant name and a catalog
// merchant entry refer to the same merchant. The test is deliberately
// fuzzy: case-insensitive substring containment in either direction, so
// "amazon.in" matches "Amazon" and vice versa.
func MerchantMatches(spendMerchant, catalogMerchant string) bool {
	a := strings.ToLower(strings.TrimSpace(spendMerchant))
	b := strings.ToLower(strings.TrimSpace(catalogMerchant))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
