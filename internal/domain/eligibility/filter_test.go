package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardwise-app/cardwise-backend/internal/domain/catalog"
	"github.com/cardwise-app/cardwise-backend/internal/domain/rewards"
	"github.com/cardwise-app/cardwise-backend/internal/domain/wallet"
)

func fixtureFilter(t *testing.T) *Filter {
	t.Helper()
	cat, err := catalog.New([]catalog.CardProfile{
		{
			CardName: "CardX",
			Issuer:   "BankA",
			RewardRates: map[string]catalog.RewardRate{
				"shopping": {Rate: 5, Type: catalog.RatePercent, Merchants: []string{"Amazon"}},
			},
		},
		{
			CardName: "CardY",
			Issuer:   "BankB",
			RewardRates: map[string]catalog.RewardRate{
				"groceries": {Rate: 10, Type: catalog.RatePercent, Merchants: []string{"BigBasket"}},
			},
		},
	})
	require.NoError(t, err)
	return NewFilter(rewards.NewMatcher(cat, rewards.DefaultConfig()))
}

func TestFilter_SelectForTransaction(t *testing.T) {
	t.Run("best eligible card wins", func(t *testing.T) {
		f := fixtureFilter(t)
		cards := []*wallet.Card{
			{ID: "x", Name: "CardX", Issuer: "BankA", CreditLimit: 50000, UsedAmount: 0},
			{ID: "y", Name: "CardY", Issuer: "BankB", CreditLimit: 50000, UsedAmount: 0},
		}

		sel, err := f.SelectForTransaction(cards, rewards.SpendContext{MerchantName: "Amazon", Category: "Shopping", Amount: 1000})
		require.NoError(t, err)

		assert.False(t, sel.IsFallback)
		assert.Equal(t, "x", sel.Chosen.ID)
		assert.Equal(t, 5.0, sel.Recommendation.Best.Rate)
	})

	t.Run("cards without headroom are excluded from ranking", func(t *testing.T) {
		f := fixtureFilter(t)
		cards := []*wallet.Card{
			{ID: "x", Name: "CardX", Issuer: "BankA", CreditLimit: 10000, UsedAmount: 9500},
			{ID: "y", Name: "CardY", Issuer: "BankB", CreditLimit: 50000, UsedAmount: 0},
		}

		// CardX would win on rewards for Amazon but cannot cover the amount.
		sel, err := f.SelectForTransaction(cards, rewards.SpendContext{MerchantName: "Amazon", Category: "Shopping", Amount: 1000})
		require.NoError(t, err)

		assert.False(t, sel.IsFallback)
		assert.Equal(t, "y", sel.Chosen.ID)
	})

	t.Run("no headroom anywhere falls back to the roomiest card", func(t *testing.T) {
		f := fixtureFilter(t)
		cards := []*wallet.Card{
			{ID: "x", Name: "CardX", Issuer: "BankA", CreditLimit: 10000, UsedAmount: 9500},
		}

		sel, err := f.SelectForTransaction(cards, rewards.SpendContext{MerchantName: "Amazon", Category: "Shopping", Amount: 1000})
		require.NoError(t, err)

		assert.True(t, sel.IsFallback)
		assert.Equal(t, "x", sel.Chosen.ID)
		assert.Contains(t, sel.Recommendation.Best.Reason, "no card has sufficient headroom")
		assert.Empty(t, sel.Recommendation.Alternatives)
	})

	t.Run("fallback ties resolve to wallet order", func(t *testing.T) {
		f := fixtureFilter(t)
		cards := []*wallet.Card{
			{ID: "x", Name: "CardX", Issuer: "BankA", CreditLimit: 1000, UsedAmount: 500},
			{ID: "y", Name: "CardY", Issuer: "BankB", CreditLimit: 1000, UsedAmount: 500},
		}

		sel, err := f.SelectForTransaction(cards, rewards.SpendContext{MerchantName: "Amazon", Category: "Shopping", Amount: 2000})
		require.NoError(t, err)

		assert.True(t, sel.IsFallback)
		assert.Equal(t, "x", sel.Chosen.ID)
	})

	t.Run("selection references the live cards, not snapshot copies", func(t *testing.T) {
		f := fixtureFilter(t)
		live := &wallet.Card{ID: "x", Name: "CardX", Issuer: "BankA", CreditLimit: 50000}

		sel, err := f.SelectForTransaction([]*wallet.Card{live}, rewards.SpendContext{MerchantName: "Amazon", Category: "Shopping", Amount: 100})
		require.NoError(t, err)

		assert.Same(t, live, sel.Chosen)
		assert.Same(t, live, sel.Recommendation.Best.Card)
	})

	t.Run("selection is read-only", func(t *testing.T) {
		f := fixtureFilter(t)
		cards := []*wallet.Card{
			{ID: "x", Name: "CardX", Issuer: "BankA", CreditLimit: 50000, UsedAmount: 1234},
		}

		_, err := f.SelectForTransaction(cards, rewards.SpendContext{MerchantName: "Amazon", Category: "Shopping", Amount: 1000})
		require.NoError(t, err)

		assert.Equal(t, 1234.0, cards[0].UsedAmount)
	})

	t.Run("invalid spend is rejected before matching", func(t *testing.T) {
		f := fixtureFilter(t)
		cards := []*wallet.Card{
			{ID: "x", Name: "CardX", Issuer: "BankA", CreditLimit: 50000},
		}

		_, err := f.SelectForTransaction(cards, rewards.SpendContext{MerchantName: "", Category: "Shopping", Amount: 100})
		assert.ErrorIs(t, err, rewards.ErrInvalidSpend)

		_, err = f.SelectForTransaction(cards, rewards.SpendContext{MerchantName: "Amazon", Category: "Shopping", Amount: -1})
		assert.ErrorIs(t, err, rewards.ErrInvalidSpend)
	})

	t.Run("empty wallet", func(t *testing.T) {
		f := fixtureFilter(t)

		_, err := f.SelectForTransaction(nil, rewards.SpendContext{MerchantName: "Amazon", Category: "Shopping", Amount: 100})
		assert.ErrorIs(t, err, rewards.ErrEmptyWallet)
	})
}
