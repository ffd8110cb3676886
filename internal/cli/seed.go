package cli

import (
	"flag"
	"fmt"

	"github.com/cardwise-app/cardwise-backend/internal/infrastructure/config"
	"github.com/cardwise-app/cardwise-backend/internal/infrastructure/logging"
)

// SeedFlags holds the CLI flags for the seed command.
type SeedFlags struct {
	Reset   bool
	Verbose bool
}

// ParseSeedFlags parses command line flags for the seed command.
func ParseSeedFlags() *SeedFlags {
	flags := &SeedFlags{}
	flag.BoolVar(&flags.Reset, "reset", false, "Delete existing cards before seeding")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}

// demoCard is one wallet entry installed by the seed command.
type demoCard struct {
	name   string
	issuer string
	limit  float64
	used   float64
}

// demoWallet mirrors a typical mixed wallet: a shopping card, a flat
// cashback card, and a travel card, at varied utilization levels.
var demoWallet = []demoCard{
	{"Amazon Pay ICICI Credit Card", "ICICI", 150000, 12000},
	{"SBI Cashback Card", "SBI", 200000, 45000},
	{"HDFC Millennia", "HDFC", 100000, 82000},
	{"Axis Ace Credit Card", "Axis", 120000, 5000},
	{"HDFC Regalia Gold", "HDFC", 300000, 30000},
}

// RunSeed installs the demo wallet into the configured database.
func RunSeed(cfg *config.Config, flags *SeedFlags) error {
	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewLoggerWithSystem(loggingCfg, "seed")

	eng, err := buildEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	if flags.Reset {
		existing, err := eng.store.ListCards()
		if err != nil {
			return fmt.Errorf("list cards: %w", err)
		}
		for _, record := range existing {
			if err := eng.store.DeleteCard(record.ID); err != nil {
				return fmt.Errorf("delete card %s: %w", record.ID, err)
			}
		}
		logger.Info("cleared existing wallet", "count", len(existing))
	}

	for _, dc := range demoWallet {
		record, err := eng.store.AddCard(dc.name, dc.issuer, dc.limit)
		if err != nil {
			return fmt.Errorf("add card %q: %w", dc.name, err)
		}
		if dc.used > 0 {
			if err := eng.store.UpdateCardUsage(record.ID, dc.used); err != nil {
				return fmt.Errorf("set usage for %q: %w", dc.name, err)
			}
		}

		if _, found := eng.catalog.Lookup(dc.name, dc.issuer); !found {
			logger.Warn("seeded card has no catalog profile", "card", dc.name)
		}
	}

	records, err := eng.store.ListCards()
	if err != nil {
		return fmt.Errorf("list cards: %w", err)
	}
	PrintWallet(records)
	return nil
}
