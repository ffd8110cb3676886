// Package service orchestrates storage I/O around the pure decision core.
package service

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/cardwise-app/cardwise-backend/internal/domain/eligibility"
	"github.com/cardwise-app/cardwise-backend/internal/domain/rewards"
	"github.com/cardwise-app/cardwise-backend/internal/domain/utilization"
	"github.com/cardwise-app/cardwise-backend/internal/domain/wallet"
	"github.com/cardwise-app/cardwise-backend/internal/infrastructure/storage"
)

// DecisionService loads the wallet, runs the selection core, and persists
// confirmed transactions. The core itself never touches the store.
type DecisionService struct {
	repo    storage.Repository
	filter  *eligibility.Filter
	tracker *utilization.Tracker
	logger  *slog.Logger

	// Serializes confirmations so the load-apply-persist sequence for a
	// card cannot interleave with another confirmation's stale read.
	confirmMu sync.Mutex
}

// ConfirmResult reports a confirmed transaction and the card's new state.
type ConfirmResult struct {
	Selection   *eligibility.Selection     `json:"selection"`
	Applied     utilization.ApplyResult    `json:"applied"`
	Transaction *storage.TransactionRecord `json:"transaction"`
}

// NewDecisionService wires the decision core to the repository.
func NewDecisionService(repo storage.Repository, filter *eligibility.Filter, tracker *utilization.Tracker, logger *slog.Logger) *DecisionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DecisionService{
		repo:    repo,
		filter:  filter,
		tracker: tracker,
		logger:  logger,
	}
}

// LoadWallet fetches the owned cards in wallet order as domain cards.
func (s *DecisionService) LoadWallet() ([]*wallet.Card, error) {
	records, err := s.repo.ListCards()
	if err != nil {
		return nil, fmt.Errorf("load wallet: %w", err)
	}
	cards := make([]*wallet.Card, len(records))
	for i, r := range records {
		cards[i] = r.ToWalletCard()
	}
	return cards, nil
}

// Recommend evaluates a spend against the stored wallet. It is read-only.
func (s *DecisionService) Recommend(spend rewards.SpendContext) (*eligibility.Selection, error) {
	cards, err := s.LoadWallet()
	if err != nil {
		return nil, err
	}
	sel, err := s.filter.SelectForTransaction(cards, spend)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("recommendation computed",
		"merchant", spend.MerchantName,
		"amount", spend.Amount,
		"card", sel.Chosen.Name,
		"rate", sel.Recommendation.Best.Rate,
		"fallback", sel.IsFallback)
	return sel, nil
}

// Confirm runs the full decision for a spend and applies it. When cardID
// is non-empty the caller has already chosen a card and only that card is
// charged; otherwise the filter's choice is used.
//
// A *utilization.CreditLimitExceededError from the apply step leaves both
// the store and the in-memory state unchanged; the caller can deny or
// pick a different card.
func (s *DecisionService) Confirm(spend rewards.SpendContext, cardID string) (*ConfirmResult, error) {
	if err := spend.Validate(); err != nil {
		return nil, err
	}

	s.confirmMu.Lock()
	defer s.confirmMu.Unlock()

	cards, err := s.LoadWallet()
	if err != nil {
		return nil, err
	}

	var sel *eligibility.Selection
	if cardID != "" {
		sel, err = s.selectExplicit(cards, spend, cardID)
	} else {
		sel, err = s.filter.SelectForTransaction(cards, spend)
	}
	if err != nil {
		return nil, err
	}

	applied, err := s.tracker.Apply(sel.Chosen, spend.Amount)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateCardUsage(sel.Chosen.ID, applied.NewUsedAmount); err != nil {
		return nil, fmt.Errorf("persist card usage: %w", err)
	}

	txn := &storage.TransactionRecord{
		CardID:   sel.Chosen.ID,
		Merchant: spend.MerchantName,
		Category: spend.Category,
		Amount:   spend.Amount,
		Rate:     sel.Recommendation.Best.Rate,
		RateType: string(sel.Recommendation.Best.RateType),
		Reason:   sel.Recommendation.Best.Reason,
		Fallback: sel.IsFallback,
	}
	if err := s.repo.SaveTransaction(txn); err != nil {
		return nil, fmt.Errorf("record transaction: %w", err)
	}

	s.logger.Info("transaction confirmed",
		"card", sel.Chosen.Name,
		"merchant", spend.MerchantName,
		"amount", spend.Amount,
		"utilization", applied.UtilizationPercent,
		"risk_band", applied.RiskBand)

	return &ConfirmResult{
		Selection:   sel,
		Applied:     applied,
		Transaction: txn,
	}, nil
}

// selectExplicit builds a selection for a caller-chosen card, still
// reporting its matched rate and reason.
func (s *DecisionService) selectExplicit(cards []*wallet.Card, spend rewards.SpendContext, cardID string) (*eligibility.Selection, error) {
	var chosen *wallet.Card
	for _, c := range cards {
		if c.ID == cardID {
			chosen = c
			break
		}
	}
	if chosen == nil {
		return nil, storage.ErrCardNotFound
	}

	sel, err := s.filter.SelectForTransaction([]*wallet.Card{chosen}, spend)
	if err != nil {
		return nil, err
	}
	return sel, nil
}
