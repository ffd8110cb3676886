package cli

import (
	"errors"
	"flag"
	"math/rand"

	"github.com/cardwise-app/cardwise-backend/internal/domain/simulator"
	"github.com/cardwise-app/cardwise-backend/internal/domain/utilization"
	"github.com/cardwise-app/cardwise-backend/internal/infrastructure/config"
	"github.com/cardwise-app/cardwise-backend/internal/infrastructure/logging"
)

// SimulateFlags holds the CLI flags for the simulate command.
type SimulateFlags struct {
	Count   int
	Confirm bool
	Seed    int64
	Verbose bool
}

// ParseSimulateFlags parses command line flags for the simulate command.
func ParseSimulateFlags() *SimulateFlags {
	flags := &SimulateFlags{}
	flag.IntVar(&flags.Count, "count", 10, "Number of transactions to simulate")
	flag.BoolVar(&flags.Confirm, "confirm", false, "Apply each spend to the chosen card instead of dry-running")
	flag.Int64Var(&flags.Seed, "seed", 0, "Random seed (0 = time-based)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}

// RunSimulate drives randomly generated spends through the decision
// engine. By default each spend is a dry run; -confirm applies them to
// the stored wallet.
func RunSimulate(cfg *config.Config, flags *SimulateFlags) error {
	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	} else {
		loggingCfg.Level = "error" // keep stdout readable for the tables
	}
	logger := logging.NewLoggerWithSystem(loggingCfg, "simulate")

	eng, err := buildEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	gen := eng.simulator
	if flags.Seed != 0 {
		gen = simulator.New(eng.merchants, rand.NewSource(flags.Seed))
	}

	PrintSimulationHeader(flags.Count, flags.Confirm)

	var fallbacks, rejected int
	for i := 0; i < flags.Count; i++ {
		spend, err := gen.Generate()
		if err != nil {
			return err
		}

		if flags.Confirm {
			result, err := eng.decisions.Confirm(spend, "")
			if err != nil {
				var limitErr *utilization.CreditLimitExceededError
				if errors.As(err, &limitErr) {
					rejected++
					PrintRejected(i+1, spend, limitErr)
					continue
				}
				return err
			}
			if result.Selection.IsFallback {
				fallbacks++
			}
			PrintConfirmed(i+1, spend, result)
			continue
		}

		sel, err := eng.decisions.Recommend(spend)
		if err != nil {
			return err
		}
		if sel.IsFallback {
			fallbacks++
		}
		PrintSelection(i+1, spend, sel)
	}

	PrintSimulationSummary(flags.Count, fallbacks, rejected, eng.store)
	return nil
}
