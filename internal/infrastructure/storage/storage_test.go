package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStorage_Cards(t *testing.T) {
	t.Run("add and get", func(t *testing.T) {
		s := newTestStorage(t)

		record, err := s.AddCard("HDFC Millennia", "HDFC", 100000)
		require.NoError(t, err)
		assert.NotEmpty(t, record.ID)
		assert.Equal(t, 0.0, record.UsedAmount)

		got, err := s.GetCard(record.ID)
		require.NoError(t, err)
		assert.Equal(t, "HDFC Millennia", got.Name)
		assert.Equal(t, "HDFC", got.Issuer)
		assert.Equal(t, 100000.0, got.CreditLimit)
	})

	t.Run("get missing card", func(t *testing.T) {
		s := newTestStorage(t)

		_, err := s.GetCard("no-such-id")
		assert.ErrorIs(t, err, ErrCardNotFound)
	})

	t.Run("negative limit rejected", func(t *testing.T) {
		s := newTestStorage(t)

		_, err := s.AddCard("Bad Card", "Bank", -5)
		assert.Error(t, err)
	})

	t.Run("list preserves insertion order", func(t *testing.T) {
		s := newTestStorage(t)

		first, err := s.AddCard("First", "A", 1000)
		require.NoError(t, err)
		second, err := s.AddCard("Second", "B", 2000)
		require.NoError(t, err)
		third, err := s.AddCard("Third", "C", 3000)
		require.NoError(t, err)

		cards, err := s.ListCards()
		require.NoError(t, err)
		require.Len(t, cards, 3)
		assert.Equal(t, []string{first.ID, second.ID, third.ID},
			[]string{cards[0].ID, cards[1].ID, cards[2].ID})
	})

	t.Run("update usage", func(t *testing.T) {
		s := newTestStorage(t)

		record, err := s.AddCard("Card", "Bank", 5000)
		require.NoError(t, err)

		require.NoError(t, s.UpdateCardUsage(record.ID, 1234.56))

		got, err := s.GetCard(record.ID)
		require.NoError(t, err)
		assert.Equal(t, 1234.56, got.UsedAmount)

		assert.ErrorIs(t, s.UpdateCardUsage("missing", 1), ErrCardNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		s := newTestStorage(t)

		record, err := s.AddCard("Card", "Bank", 5000)
		require.NoError(t, err)

		require.NoError(t, s.DeleteCard(record.ID))
		_, err = s.GetCard(record.ID)
		assert.ErrorIs(t, err, ErrCardNotFound)

		assert.ErrorIs(t, s.DeleteCard(record.ID), ErrCardNotFound)
	})
}

func TestStorage_Transactions(t *testing.T) {
	t.Run("save mints id and timestamp", func(t *testing.T) {
		s := newTestStorage(t)

		txn := &TransactionRecord{
			CardID:   "card-1",
			Merchant: "Amazon",
			Category: "Shopping",
			Amount:   999,
			Rate:     5,
			RateType: "percent",
			Reason:   "5% back on shopping",
		}
		require.NoError(t, s.SaveTransaction(txn))
		assert.NotEmpty(t, txn.ID)
		assert.False(t, txn.CreatedAt.IsZero())
	})

	t.Run("list with card filter and pagination", func(t *testing.T) {
		s := newTestStorage(t)

		for i := 0; i < 5; i++ {
			require.NoError(t, s.SaveTransaction(&TransactionRecord{
				CardID: "card-1", Merchant: "Amazon", Category: "Shopping",
				Amount: 100, Rate: 5, RateType: "percent",
			}))
		}
		require.NoError(t, s.SaveTransaction(&TransactionRecord{
			CardID: "card-2", Merchant: "Swiggy", Category: "Dining",
			Amount: 250, Rate: 4, RateType: "percent",
		}))

		all, err := s.ListTransactions(TransactionFilters{})
		require.NoError(t, err)
		assert.Equal(t, 6, all.TotalCount)

		byCard, err := s.ListTransactions(TransactionFilters{CardID: "card-1"})
		require.NoError(t, err)
		assert.Equal(t, 5, byCard.TotalCount)

		page, err := s.ListTransactions(TransactionFilters{CardID: "card-1", Limit: 2, Offset: 4})
		require.NoError(t, err)
		assert.Equal(t, 5, page.TotalCount)
		assert.Len(t, page.Transactions, 1)
	})

	t.Run("stats", func(t *testing.T) {
		s := newTestStorage(t)

		require.NoError(t, s.SaveTransaction(&TransactionRecord{
			CardID: "c", Merchant: "Amazon", Category: "Shopping",
			Amount: 1000, Rate: 5, RateType: "percent",
		}))
		require.NoError(t, s.SaveTransaction(&TransactionRecord{
			CardID: "c", Merchant: "MakeMyTrip", Category: "Travel",
			Amount: 4000, Rate: 4, RateType: "points_multiplier",
		}))
		require.NoError(t, s.SaveTransaction(&TransactionRecord{
			CardID: "c", Merchant: "DMart", Category: "Groceries",
			Amount: 500, Rate: 0, RateType: "percent", Fallback: true,
		}))

		stats, err := s.GetStats()
		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalTransactions)
		assert.Equal(t, 5500.0, stats.TotalSpend)
		assert.InDelta(t, 50.0, stats.RewardEstimate, 0.001, "points multipliers excluded from the money figure")
		assert.Equal(t, 1, stats.FallbackCount)
	})

	t.Run("migrations are idempotent across reopen", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "reopen.db")

		s1, err := NewStorage(path)
		require.NoError(t, err)
		_, err = s1.AddCard("Card", "Bank", 1000)
		require.NoError(t, err)
		require.NoError(t, s1.Close())

		s2, err := NewStorage(path)
		require.NoError(t, err)
		defer func() { _ = s2.Close() }()

		cards, err := s2.ListCards()
		require.NoError(t, err)
		assert.Len(t, cards, 1)
	})
}
