package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardwise-app/cardwise-backend/internal/domain/catalog"
	"github.com/cardwise-app/cardwise-backend/internal/domain/eligibility"
	"github.com/cardwise-app/cardwise-backend/internal/domain/rewards"
	"github.com/cardwise-app/cardwise-backend/internal/domain/utilization"
	"github.com/cardwise-app/cardwise-backend/internal/infrastructure/storage"
)

func fixtureService(t *testing.T, repo *storage.MockRepository) *DecisionService {
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

	filter := eligibility.NewFilter(rewards.NewMatcher(cat, rewards.DefaultConfig()))
	return NewDecisionService(repo, filter, utilization.NewTracker(), nil)
}

func seedTwoCards(repo *storage.MockRepository) {
	repo.SeedCard(&storage.CardRecord{ID: "x", Name: "CardX", Issuer: "BankA", CreditLimit: 50000})
	repo.SeedCard(&storage.CardRecord{ID: "y", Name: "CardY", Issuer: "BankB", CreditLimit: 50000})
}

func TestDecisionService_Recommend(t *testing.T) {
	repo := storage.NewMockRepository()
	seedTwoCards(repo)
	svc := fixtureService(t, repo)

	sel, err := svc.Recommend(rewards.SpendContext{MerchantName: "Amazon", Category: "Shopping", Amount: 1000})
	require.NoError(t, err)

	assert.Equal(t, "x", sel.Chosen.ID)
	assert.False(t, sel.IsFallback)

	// Read-only: nothing written back.
	assert.False(t, repo.UpdateCardUsageCalled)
	assert.False(t, repo.SaveTransactionCalled)
}

func TestDecisionService_Recommend_EmptyWallet(t *testing.T) {
	svc := fixtureService(t, storage.NewMockRepository())

	_, err := svc.Recommend(rewards.SpendContext{MerchantName: "Amazon", Category: "Shopping", Amount: 100})
	assert.ErrorIs(t, err, rewards.ErrEmptyWallet)
}

func TestDecisionService_Confirm(t *testing.T) {
	t.Run("applies and persists", func(t *testing.T) {
		repo := storage.NewMockRepository()
		seedTwoCards(repo)
		svc := fixtureService(t, repo)

		res, err := svc.Confirm(rewards.SpendContext{MerchantName: "Amazon", Category: "Shopping", Amount: 1000}, "")
		require.NoError(t, err)

		assert.Equal(t, "x", res.Selection.Chosen.ID)
		assert.Equal(t, 1000.0, res.Applied.NewUsedAmount)

		card, err := repo.GetCard("x")
		require.NoError(t, err)
		assert.Equal(t, 1000.0, card.UsedAmount)

		require.True(t, repo.SaveTransactionCalled)
		assert.Equal(t, "Amazon", res.Transaction.Merchant)
		assert.Equal(t, 5.0, res.Transaction.Rate)
		assert.False(t, res.Transaction.Fallback)
	})

	t.Run("over-limit confirmation leaves state unchanged", func(t *testing.T) {
		repo := storage.NewMockRepository()
		repo.SeedCard(&storage.CardRecord{ID: "z", Name: "CardX", Issuer: "BankA", CreditLimit: 5000, UsedAmount: 4000})
		svc := fixtureService(t, repo)

		// z is the only card; the spend exceeds its headroom so it comes
		// back as a fallback pick, and confirming it must fail cleanly.
		_, err := svc.Confirm(rewards.SpendContext{MerchantName: "Amazon", Category: "Shopping", Amount: 1200}, "")
		require.Error(t, err)

		var limitErr *utilization.CreditLimitExceededError
		require.True(t, errors.As(err, &limitErr))
		assert.Equal(t, 1000.0, limitErr.Headroom)

		card, getErr := repo.GetCard("z")
		require.NoError(t, getErr)
		assert.Equal(t, 4000.0, card.UsedAmount)
		assert.False(t, repo.UpdateCardUsageCalled)
		assert.False(t, repo.SaveTransactionCalled)
	})

	t.Run("explicit card id overrides selection", func(t *testing.T) {
		repo := storage.NewMockRepository()
		seedTwoCards(repo)
		svc := fixtureService(t, repo)

		res, err := svc.Confirm(rewards.SpendContext{MerchantName: "Amazon", Category: "Shopping", Amount: 500}, "y")
		require.NoError(t, err)

		assert.Equal(t, "y", res.Selection.Chosen.ID)
		assert.Equal(t, 1.0, res.Transaction.Rate, "CardY has no Amazon match, so it earns the generic rate")
	})

	t.Run("unknown explicit card id", func(t *testing.T) {
		repo := storage.NewMockRepository()
		seedTwoCards(repo)
		svc := fixtureService(t, repo)

		_, err := svc.Confirm(rewards.SpendContext{MerchantName: "Amazon", Category: "Shopping", Amount: 500}, "nope")
		assert.ErrorIs(t, err, storage.ErrCardNotFound)
	})

	t.Run("invalid spend rejected before any I/O", func(t *testing.T) {
		repo := storage.NewMockRepository()
		seedTwoCards(repo)
		svc := fixtureService(t, repo)

		_, err := svc.Confirm(rewards.SpendContext{MerchantName: "", Category: "Shopping", Amount: 10}, "")
		assert.ErrorIs(t, err, rewards.ErrInvalidSpend)
		assert.False(t, repo.SaveTransactionCalled)
	})

	t.Run("persistence failure surfaces", func(t *testing.T) {
		repo := storage.NewMockRepository()
		seedTwoCards(repo)
		repo.UpdateCardErr = errors.New("disk full")
		svc := fixtureService(t, repo)

		_, err := svc.Confirm(rewards.SpendContext{MerchantName: "Amazon", Category: "Shopping", Amount: 100}, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "persist card usage")
		assert.False(t, repo.SaveTransactionCalled)
	})
}
