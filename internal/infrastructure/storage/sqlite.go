package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Storage provides SQLite database access for cards and transactions.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with a SQLite database.
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints (SQLite-specific)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

// AddCard registers a card with a fresh UUID and zero usage.
func (s *Storage) AddCard(name, issuer string, creditLimit float64) (*CardRecord, error) {
	if creditLimit < 0 {
		return nil, fmt.Errorf("credit limit cannot be negative")
	}

	now := time.Now().UTC()
	record := &CardRecord{
		ID:          uuid.NewString(),
		Name:        name,
		Issuer:      issuer,
		CreditLimit: creditLimit,
		UsedAmount:  0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := s.db.Exec(`
		INSERT INTO cards (id, name, issuer, credit_limit, used_amount, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.Name, record.Issuer, record.CreditLimit, record.UsedAmount, record.CreatedAt, record.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert card: %w", err)
	}

	return record, nil
}

// GetCard retrieves a card by ID.
func (s *Storage) GetCard(id string) (*CardRecord, error) {
	record := &CardRecord{}
	err := s.db.QueryRow(`
		SELECT id, name, issuer, credit_limit, used_amount, created_at, updated_at
		FROM cards WHERE id = ?
	`, id).Scan(
		&record.ID,
		&record.Name,
		&record.Issuer,
		&record.CreditLimit,
		&record.UsedAmount,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get card: %w", err)
	}
	return record, nil
}

// ListCards returns every card in insertion order.
func (s *Storage) ListCards() ([]*CardRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, name, issuer, credit_limit, used_amount, created_at, updated_at
		FROM cards ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var records []*CardRecord
	for rows.Next() {
		record := &CardRecord{}
		if err := rows.Scan(
			&record.ID,
			&record.Name,
			&record.Issuer,
			&record.CreditLimit,
			&record.UsedAmount,
			&record.CreatedAt,
			&record.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// UpdateCardUsage persists a card's new used amount.
func (s *Storage) UpdateCardUsage(id string, usedAmount float64) error {
	res, err := s.db.Exec(`
		UPDATE cards SET used_amount = ?, updated_at = ? WHERE id = ?
	`, usedAmount, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update card usage: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCardNotFound
	}
	return nil
}

// DeleteCard removes a card record. Transaction history is retained.
func (s *Storage) DeleteCard(id string) error {
	res, err := s.db.Exec(`DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCardNotFound
	}
	return nil
}

// SaveTransaction records a confirmed transaction, minting an ID and
// timestamp when the caller left them empty.
func (s *Storage) SaveTransaction(txn *TransactionRecord) error {
	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO transactions (id, card_id, merchant, category, amount, rate, rate_type, reason, fallback, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, txn.ID, txn.CardID, txn.Merchant, txn.Category, txn.Amount, txn.Rate, txn.RateType, txn.Reason, txn.Fallback, txn.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// ListTransactions returns transactions newest first, optionally filtered
// by card.
func (s *Storage) ListTransactions(filters TransactionFilters) (*TransactionListResult, error) {
	if filters.Limit <= 0 {
		filters.Limit = 50
	}

	where := ""
	args := []any{}
	if filters.CardID != "" {
		where = "WHERE card_id = ?"
		args = append(args, filters.CardID)
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM transactions "+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count transactions: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, card_id, merchant, category, amount, rate, rate_type, reason, fallback, created_at
		FROM transactions %s ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?
	`, where)
	rows, err := s.db.Query(query, append(args, filters.Limit, filters.Offset)...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	result := &TransactionListResult{
		Transactions: []*TransactionRecord{},
		TotalCount:   total,
		Limit:        filters.Limit,
		Offset:       filters.Offset,
	}
	for rows.Next() {
		txn := &TransactionRecord{}
		if err := rows.Scan(
			&txn.ID,
			&txn.CardID,
			&txn.Merchant,
			&txn.Category,
			&txn.Amount,
			&txn.Rate,
			&txn.RateType,
			&txn.Reason,
			&txn.Fallback,
			&txn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		result.Transactions = append(result.Transactions, txn)
	}
	return result, rows.Err()
}

// GetStats aggregates the transaction history.
func (s *Storage) GetStats() (*Stats, error) {
	stats := &Stats{}
	err := s.db.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(amount), 0),
			COALESCE(SUM(CASE WHEN rate_type = 'percent' THEN amount * rate / 100.0 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN fallback THEN 1 ELSE 0 END), 0)
		FROM transactions
	`).Scan(&stats.TotalTransactions, &stats.TotalSpend, &stats.RewardEstimate, &stats.FallbackCount)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return stats, nil
}
