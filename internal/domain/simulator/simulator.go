// Package simulator generates synthetic spend contexts for demo and test
// stimulus. It has no influence on matching correctness.
package simulator

import (
	"errors"
	"math/rand"
	"time"

	"github.com/cardwise-app/cardwise-backend/internal/domain/rewards"
)

// Merchant is one entry in the simulation table.
type Merchant struct {
	Name      string  `yaml:"name"`
	Category  string  `yaml:"category"`
	MinAmount float64 `yaml:"min_amount"`
	MaxAmount float64 `yaml:"max_amount"`
}

// ErrNoMerchants is returned when the merchant table is empty.
var ErrNoMerchants = errors.New("merchant table is empty")

// Generator produces random spend contexts from a merchant table. The
// random source is injected so tests can swap in a fixed seed.
type Generator struct {
	merchants []Merchant
	rng       *rand.Rand
}

// New creates a generator over the given table. A nil source falls back
// to a time-seeded one.
func New(merchants []Merchant, src rand.Source) *Generator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	table := make([]Merchant, len(merchants))
	copy(table, merchants)
	return &Generator{merchants: table, rng: rand.New(src)}
}

// Generate picks a uniformly random merchant and a uniformly random
// amount within that merchant's declared range.
func (g *Generator) Generate() (rewards.SpendContext, error) {
	if len(g.merchants) == 0 {
		return rewards.SpendContext{}, ErrNoMerchants
	}

	m := g.merchants[g.rng.Intn(len(g.merchants))]
	amount := m.MinAmount
	if m.MaxAmount > m.MinAmount {
		amount += g.rng.Float64() * (m.MaxAmount - m.MinAmount)
	}

	return rewards.SpendContext{
		MerchantName: m.Name,
		Category:     m.Category,
		Amount:       amount,
	}, nil
}
