package storage

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// MockRepository is an in-memory implementation of Repository for testing.
// It stores all data in maps and slices, making tests fast and isolated.
type MockRepository struct {
	cards        map[string]*CardRecord
	cardOrder    []string
	transactions []*TransactionRecord

	// Hooks for test assertions
	AddCardCalled         bool
	UpdateCardUsageCalled bool
	LastUpdatedCardID     string
	LastUpdatedUsage      float64
	SaveTransactionCalled bool
	LastSavedTransaction  *TransactionRecord

	// Error injection for testing error paths
	AddCardErr         error
	GetCardErr         error
	ListCardsErr       error
	UpdateCardErr      error
	DeleteCardErr      error
	SaveTransactionErr error
	ListTxnsErr        error
	GetStatsErr        error
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates a new mock repository for testing.
func NewMockRepository() *MockRepository {
	return &MockRepository{
		cards:        make(map[string]*CardRecord),
		transactions: []*TransactionRecord{},
	}
}

// Close does nothing for mock.
func (m *MockRepository) Close() error {
	return nil
}

// AddCard registers a card in memory.
func (m *MockRepository) AddCard(name, issuer string, creditLimit float64) (*CardRecord, error) {
	m.AddCardCalled = true
	if m.AddCardErr != nil {
		return nil, m.AddCardErr
	}
	if creditLimit < 0 {
		return nil, fmt.Errorf("credit limit cannot be negative")
	}

	now := time.Now().UTC()
	record := &CardRecord{
		ID:          uuid.NewString(),
		Name:        name,
		Issuer:      issuer,
		CreditLimit: creditLimit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.cards[record.ID] = record
	m.cardOrder = append(m.cardOrder, record.ID)
	return record, nil
}

// SeedCard inserts a fully-specified card, for test setup.
func (m *MockRepository) SeedCard(record *CardRecord) {
	copied := *record
	m.cards[record.ID] = &copied
	m.cardOrder = append(m.cardOrder, record.ID)
}

// GetCard retrieves a card from the in-memory map.
func (m *MockRepository) GetCard(id string) (*CardRecord, error) {
	if m.GetCardErr != nil {
		return nil, m.GetCardErr
	}
	record, ok := m.cards[id]
	if !ok {
		return nil, ErrCardNotFound
	}
	copied := *record
	return &copied, nil
}

// ListCards returns cards in insertion order.
func (m *MockRepository) ListCards() ([]*CardRecord, error) {
	if m.ListCardsErr != nil {
		return nil, m.ListCardsErr
	}
	out := make([]*CardRecord, 0, len(m.cardOrder))
	for _, id := range m.cardOrder {
		copied := *m.cards[id]
		out = append(out, &copied)
	}
	return out, nil
}

// UpdateCardUsage sets the card's used amount.
func (m *MockRepository) UpdateCardUsage(id string, usedAmount float64) error {
	m.UpdateCardUsageCalled = true
	m.LastUpdatedCardID = id
	m.LastUpdatedUsage = usedAmount
	if m.UpdateCardErr != nil {
		return m.UpdateCardErr
	}
	record, ok := m.cards[id]
	if !ok {
		return ErrCardNotFound
	}
	record.UsedAmount = usedAmount
	record.UpdatedAt = time.Now().UTC()
	return nil
}

// DeleteCard removes a card from the in-memory map.
func (m *MockRepository) DeleteCard(id string) error {
	if m.DeleteCardErr != nil {
		return m.DeleteCardErr
	}
	if _, ok := m.cards[id]; !ok {
		return ErrCardNotFound
	}
	delete(m.cards, id)
	for i, cardID := range m.cardOrder {
		if cardID == id {
			m.cardOrder = append(m.cardOrder[:i], m.cardOrder[i+1:]...)
			break
		}
	}
	return nil
}

// SaveTransaction appends a transaction to the in-memory list.
func (m *MockRepository) SaveTransaction(txn *TransactionRecord) error {
	m.SaveTransactionCalled = true
	m.LastSavedTransaction = txn
	if m.SaveTransactionErr != nil {
		return m.SaveTransactionErr
	}
	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now().UTC()
	}
	copied := *txn
	m.transactions = append(m.transactions, &copied)
	return nil
}

// ListTransactions filters and paginates the in-memory list, newest first.
func (m *MockRepository) ListTransactions(filters TransactionFilters) (*TransactionListResult, error) {
	if m.ListTxnsErr != nil {
		return nil, m.ListTxnsErr
	}
	if filters.Limit <= 0 {
		filters.Limit = 50
	}

	filtered := make([]*TransactionRecord, 0, len(m.transactions))
	for _, txn := range m.transactions {
		if filters.CardID != "" && txn.CardID != filters.CardID {
			continue
		}
		copied := *txn
		filtered = append(filtered, &copied)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	total := len(filtered)
	start := filters.Offset
	if start > total {
		start = total
	}
	end := start + filters.Limit
	if end > total {
		end = total
	}

	return &TransactionListResult{
		Transactions: filtered[start:end],
		TotalCount:   total,
		Limit:        filters.Limit,
		Offset:       filters.Offset,
	}, nil
}

// GetStats aggregates the in-memory transactions.
func (m *MockRepository) GetStats() (*Stats, error) {
	if m.GetStatsErr != nil {
		return nil, m.GetStatsErr
	}
	stats := &Stats{}
	for _, txn := range m.transactions {
		stats.TotalTransactions++
		stats.TotalSpend += txn.Amount
		if txn.RateType == "percent" {
			stats.RewardEstimate += txn.Amount * txn.Rate / 100
		}
		if txn.Fallback {
			stats.FallbackCount++
		}
	}
	return stats, nil
}
