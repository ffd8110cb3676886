package storage

import "errors"

// ErrCardNotFound is returned when a card ID does not exist in the store.
var ErrCardNotFound = errors.New("card not found")

// Repository defines the complete storage interface.
// This interface allows swapping implementations (SQLite, PostgreSQL, etc.)
// and makes testing with mocks straightforward.
type Repository interface {
	CardRepository
	TransactionRepository
	Close() error
}

// CardRepository handles owned-card persistence. Cards keep their
// insertion order: the wallet is an ordered list and ranking tie-breaks
// depend on it.
type CardRepository interface {
	// AddCard registers a card and mints its ID. UsedAmount starts at zero.
	AddCard(name, issuer string, creditLimit float64) (*CardRecord, error)

	// GetCard retrieves a card by ID.
	GetCard(id string) (*CardRecord, error)

	// ListCards returns all cards in insertion order.
	ListCards() ([]*CardRecord, error)

	// UpdateCardUsage persists a card's new used amount.
	UpdateCardUsage(id string, usedAmount float64) error

	// DeleteCard removes a card. Its transaction history is kept.
	DeleteCard(id string) error
}

// TransactionRepository handles confirmed-transaction history.
type TransactionRepository interface {
	// SaveTransaction records a confirmed transaction.
	SaveTransaction(txn *TransactionRecord) error

	// ListTransactions returns transactions matching the filters, newest first.
	ListTransactions(filters TransactionFilters) (*TransactionListResult, error)

	// GetStats returns aggregate statistics over confirmed transactions.
	GetStats() (*Stats, error)
}

// TransactionFilters defines filters for listing transactions.
type TransactionFilters struct {
	CardID string // Filter by card (empty = all)
	Limit  int    // Max results (0 = default 50)
	Offset int    // Pagination offset
}

// TransactionListResult contains paginated transaction results.
type TransactionListResult struct {
	Transactions []*TransactionRecord `json:"transactions"`
	TotalCount   int                  `json:"total_count"`
	Limit        int                  `json:"limit"`
	Offset       int                  `json:"offset"`
}
