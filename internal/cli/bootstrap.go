// Package cli holds the command-line entry points shared by the cmd/
// binaries: flag parsing, wiring, and console output.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/cardwise-app/cardwise-backend/internal/application/advisor"
	"github.com/cardwise-app/cardwise-backend/internal/application/service"
	"github.com/cardwise-app/cardwise-backend/internal/domain/catalog"
	"github.com/cardwise-app/cardwise-backend/internal/domain/eligibility"
	"github.com/cardwise-app/cardwise-backend/internal/domain/rewards"
	"github.com/cardwise-app/cardwise-backend/internal/domain/simulator"
	"github.com/cardwise-app/cardwise-backend/internal/domain/utilization"
	"github.com/cardwise-app/cardwise-backend/internal/infrastructure/config"
	"github.com/cardwise-app/cardwise-backend/internal/infrastructure/storage"
)

// engine bundles the wired decision stack for a command.
type engine struct {
	store     *storage.Storage
	catalog   *catalog.Catalog
	decisions *service.DecisionService
	advisor   *advisor.Advisor
	simulator *simulator.Generator
	merchants []simulator.Merchant
}

// buildEngine wires storage, catalog, and the decision core from config.
// The caller owns the returned store and must Close it.
func buildEngine(cfg *config.Config, logger *slog.Logger) (*engine, error) {
	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	cat, err := catalog.LoadOrDefault(cfg.Catalog.SeedPath)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("load card catalog: %w", err)
	}

	matcher := rewards.NewMatcher(cat, rewards.DefaultConfig())
	filter := eligibility.NewFilter(matcher)
	tracker := utilization.NewTracker()
	decisions := service.NewDecisionService(store, filter, tracker, logger)

	// The advisor degrades to canned summaries without an API key.
	var chatClient advisor.ChatClient
	if cfg.Advisor.APIKey != "" {
		chatClient = advisor.NewHTTPClient(cfg.Advisor.APIKey, cfg.Advisor.BaseURL)
	}
	adv := advisor.New(chatClient, cfg.Advisor.Model)

	merchants := simulator.DefaultMerchants()
	if cfg.Simulator.MerchantsPath != "" {
		merchants, err = simulator.LoadMerchants(cfg.Simulator.MerchantsPath)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("load merchant table: %w", err)
		}
	}

	return &engine{
		store:     store,
		catalog:   cat,
		decisions: decisions,
		advisor:   adv,
		simulator: simulator.New(merchants, nil),
		merchants: merchants,
	}, nil
}

func (e *engine) Close() error {
	return e.store.Close()
}
