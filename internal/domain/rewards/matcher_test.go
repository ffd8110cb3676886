package rewards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardwise-app/cardwise-backend/internal/domain/catalog"
	"github.com/cardwise-app/cardwise-backend/internal/domain/wallet"
)

func fixtureCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.CardProfile{
		{
			CardName: "CardX",
			Issuer:   "BankA",
			RewardRates: map[string]catalog.RewardRate{
				"shopping": {Rate: 5, Type: catalog.RatePercent, Notes: "5% online shopping", Merchants: []string{"Amazon"}},
			},
		},
		{
			CardName: "CardY",
			Issuer:   "BankB",
			RewardRates: map[string]catalog.RewardRate{
				"groceries": {Rate: 10, Type: catalog.RatePercent, Merchants: []string{"BigBasket"}},
			},
		},
		{
			CardName: "CardZ",
			Issuer:   "BankC",
			RewardRates: map[string]catalog.RewardRate{
				"travel": {Rate: 2, Type: catalog.RatePointsMultiplier, Notes: "2x points"},
				"fuel":   {Rate: 0, Type: catalog.RatePercent, Notes: "no rewards on fuel", Merchants: []string{"Indian Oil"}},
			},
			Partnerships: map[string]catalog.Partnership{
				"MegaMart": {RewardRate: 8, Benefits: []string{"8% on MegaMart"}, Merchants: []string{"MegaMart"}},
			},
		},
	})
	require.NoError(t, err)
	return cat
}

func card(id, name, issuer string) *wallet.Card {
	return &wallet.Card{ID: id, Name: name, Issuer: issuer, CreditLimit: 100000}
}

func TestMatcher_BestByMerchant(t *testing.T) {
	// Scenario: CardX pays 5% on Amazon, CardY pays 10% on BigBasket.
	m := NewMatcher(fixtureCatalog(t), DefaultConfig())
	cards := []*wallet.Card{
		card("x", "CardX", "BankA"),
		card("y", "CardY", "BankB"),
	}

	rec, err := m.Match(cards, SpendContext{MerchantName: "Amazon", Category: "Shopping", Amount: 1000})
	require.NoError(t, err)

	assert.Equal(t, "x", rec.Best.Card.ID)
	assert.Equal(t, 5.0, rec.Best.Rate)
	require.Len(t, rec.Alternatives, 1)
	assert.Equal(t, "y", rec.Alternatives[0].Card.ID)
	assert.Equal(t, 1.0, rec.Alternatives[0].Rate, "CardY has no Amazon match and falls back to the generic rate")
}

func TestMatcher_EmptyWallet(t *testing.T) {
	m := NewMatcher(fixtureCatalog(t), DefaultConfig())

	rec, err := m.Match(nil, SpendContext{MerchantName: "Amazon", Category: "Shopping", Amount: 100})
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, ErrEmptyWallet)
}

func TestMatcher_UnknownMerchantFallsBackToGenericRate(t *testing.T) {
	m := NewMatcher(fixtureCatalog(t), DefaultConfig())
	cards := []*wallet.Card{
		card("x", "CardX", "BankA"),
		card("y", "CardY", "BankB"),
	}

	rec, err := m.Match(cards, SpendContext{MerchantName: "Corner Store", Category: "Misc", Amount: 100})
	require.NoError(t, err)

	// Everyone ties at the generic rate; the first card in wallet order wins.
	assert.Equal(t, "x", rec.Best.Card.ID)
	assert.Equal(t, 1.0, rec.Best.Rate)
}

func TestMatcher_NoProfileGetsGenericRate(t *testing.T) {
	m := NewMatcher(fixtureCatalog(t), DefaultConfig())
	cards := []*wallet.Card{card("u", "Mystery Card", "Unknown Bank")}

	rec, err := m.Match(cards, SpendContext{MerchantName: "Amazon", Category: "Shopping", Amount: 100})
	require.NoError(t, err)

	assert.Equal(t, 1.0, rec.Best.Rate)
	assert.Equal(t, "no profile available, generic rate applied", rec.Best.Reason)
}

func TestMatcher_TieBreakIsDeterministic(t *testing.T) {
	m := NewMatcher(fixtureCatalog(t), DefaultConfig())
	cards := []*wallet.Card{
		card("x", "CardX", "BankA"),
		card("y", "CardY", "BankB"),
		card("z", "CardZ", "BankC"),
	}
	spend := SpendContext{MerchantName: "Corner Store", Category: "Misc", Amount: 100}

	first, err := m.Match(cards, spend)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		rec, err := m.Match(cards, spend)
		require.NoError(t, err)
		assert.Equal(t, first.Best.Card.ID, rec.Best.Card.ID)
		for j := range first.Alternatives {
			assert.Equal(t, first.Alternatives[j].Card.ID, rec.Alternatives[j].Card.ID)
		}
	}
}

func TestMatcher_PartnershipAndCategoryCompeteOnRate(t *testing.T) {
	// CardZ has an 8% MegaMart partnership and a 2x travel category; the
	// partnership wins on MegaMart purely because its number is higher.
	m := NewMatcher(fixtureCatalog(t), DefaultConfig())
	cards := []*wallet.Card{card("z", "CardZ", "BankC")}

	rec, err := m.Match(cards, SpendContext{MerchantName: "MegaMart", Category: "Travel", Amount: 500})
	require.NoError(t, err)

	assert.Equal(t, 8.0, rec.Best.Rate)
	assert.Contains(t, rec.Best.Reason, "MegaMart")
}

func TestMatcher_MatchedZeroRateBeatsGenericFallback(t *testing.T) {
	// A declared 0% rate is a real match, not an absence of one: the card
	// reports 0, not the generic 1%.
	m := NewMatcher(fixtureCatalog(t), DefaultConfig())
	cards := []*wallet.Card{card("z", "CardZ", "BankC")}

	rec, err := m.Match(cards, SpendContext{MerchantName: "Indian Oil", Category: "Fuel", Amount: 900})
	require.NoError(t, err)

	assert.Equal(t, 0.0, rec.Best.Rate)
	assert.Contains(t, rec.Best.Reason, "fuel")
}

func TestMatcher_PointsAndPercentCompareByRawValue(t *testing.T) {
	m := NewMatcher(fixtureCatalog(t), DefaultConfig())
	cards := []*wallet.Card{
		card("x", "CardX", "BankA"), // generic 1% for travel
		card("z", "CardZ", "BankC"), // 2x points on travel
	}

	rec, err := m.Match(cards, SpendContext{MerchantName: "AirIndia", Category: "Travel", Amount: 8000})
	require.NoError(t, err)

	assert.Equal(t, "z", rec.Best.Card.ID)
	assert.Equal(t, 2.0, rec.Best.Rate)
	assert.Equal(t, catalog.RatePointsMultiplier, rec.Best.RateType)
}

func TestMatcher_AlternativesSortedByRateDescending(t *testing.T) {
	m := NewMatcher(fixtureCatalog(t), DefaultConfig())
	cards := []*wallet.Card{
		card("x", "CardX", "BankA"),
		card("y", "CardY", "BankB"),
		card("z", "CardZ", "BankC"),
	}

	rec, err := m.Match(cards, SpendContext{MerchantName: "BigBasket", Category: "Groceries", Amount: 1500})
	require.NoError(t, err)

	assert.Equal(t, "y", rec.Best.Card.ID)
	require.Len(t, rec.Alternatives, 2)
	for i := 1; i < len(rec.Alternatives); i++ {
		assert.GreaterOrEqual(t, rec.Alternatives[i-1].Rate, rec.Alternatives[i].Rate)
	}
}

func TestMatcher_RaisingARateNeverLowersItsRank(t *testing.T) {
	base := fixtureCatalog(t)
	m := NewMatcher(base, DefaultConfig())
	cards := []*wallet.Card{
		card("x", "CardX", "BankA"),
		card("y", "CardY", "BankB"),
		card("z", "CardZ", "BankC"),
	}
	spend := SpendContext{MerchantName: "Amazon", Category: "Shopping", Amount: 1000}

	before, err := m.Match(cards, spend)
	require.NoError(t, err)
	rankBefore := rankOf(t, before, "x")

	// Raise CardX's shopping rate and re-match.
	boosted, err := catalog.New([]catalog.CardProfile{
		{
			CardName: "CardX",
			Issuer:   "BankA",
			RewardRates: map[string]catalog.RewardRate{
				"shopping": {Rate: 12, Type: catalog.RatePercent, Merchants: []string{"Amazon"}},
			},
		},
	})
	require.NoError(t, err)
	after, err := NewMatcher(boosted, DefaultConfig()).Match(cards, spend)
	require.NoError(t, err)

	assert.LessOrEqual(t, rankOf(t, after, "x"), rankBefore)
}

func rankOf(t *testing.T, rec *Recommendation, cardID string) int {
	t.Helper()
	if rec.Best.Card.ID == cardID {
		return 0
	}
	for i, alt := range rec.Alternatives {
		if alt.Card.ID == cardID {
			return i + 1
		}
	}
	t.Fatalf("card %s not in recommendation", cardID)
	return -1
}

func TestSpendContext_Validate(t *testing.T) {
	tests := []struct {
		name    string
		spend   SpendContext
		wantErr bool
	}{
		{"valid", SpendContext{MerchantName: "Amazon", Category: "Shopping", Amount: 100}, false},
		{"zero amount", SpendContext{MerchantName: "Amazon", Category: "Shopping", Amount: 0}, true},
		{"negative amount", SpendContext{MerchantName: "Amazon", Category: "Shopping", Amount: -5}, true},
		{"missing merchant", SpendContext{Category: "Shopping", Amount: 100}, true},
		{"missing category", SpendContext{MerchantName: "Amazon", Amount: 100}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spend.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSpend)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
