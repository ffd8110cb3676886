package cli

import (
	"fmt"
	"strings"

	"github.com/cardwise-app/cardwise-backend/internal/application/service"
	"github.com/cardwise-app/cardwise-backend/internal/domain/catalog"
	"github.com/cardwise-app/cardwise-backend/internal/domain/eligibility"
	"github.com/cardwise-app/cardwise-backend/internal/domain/rewards"
	"github.com/cardwise-app/cardwise-backend/internal/domain/utilization"
	"github.com/cardwise-app/cardwise-backend/internal/infrastructure/storage"
)

// PrintSimulationHeader prints the simulation run header.
func PrintSimulationHeader(count int, confirm bool) {
	mode := "DRY-RUN"
	if confirm {
		mode = "CONFIRM"
	}
	fmt.Printf("cardwise simulate: %d transactions (%s mode)\n", count, mode)
	fmt.Println(strings.Repeat("-", 60))
}

// PrintSelection prints one dry-run recommendation.
func PrintSelection(n int, spend rewards.SpendContext, sel *eligibility.Selection) {
	marker := ""
	if sel.IsFallback {
		marker = " [fallback]"
	}
	fmt.Printf("%3d. %-20s %-16s %9.2f -> %s (%s)%s\n",
		n, spend.MerchantName, spend.Category, spend.Amount,
		sel.Chosen.Name, formatRate(sel.Recommendation.Best), marker)
}

// PrintConfirmed prints one confirmed transaction with the card's new
// utilization.
func PrintConfirmed(n int, spend rewards.SpendContext, result *service.ConfirmResult) {
	marker := ""
	if result.Selection.IsFallback {
		marker = " [fallback]"
	}
	fmt.Printf("%3d. %-20s %-16s %9.2f -> %s (%s) util=%d%% %s%s\n",
		n, spend.MerchantName, spend.Category, spend.Amount,
		result.Selection.Chosen.Name, formatRate(result.Selection.Recommendation.Best),
		result.Applied.UtilizationPercent, result.Applied.RiskBand, marker)
}

// PrintRejected prints a spend denied for insufficient headroom.
func PrintRejected(n int, spend rewards.SpendContext, limitErr *utilization.CreditLimitExceededError) {
	fmt.Printf("%3d. %-20s %-16s %9.2f -> DENIED (headroom %.2f)\n",
		n, spend.MerchantName, spend.Category, spend.Amount, limitErr.Headroom)
}

// PrintSimulationSummary prints run totals plus all-time stats from the
// database.
func PrintSimulationSummary(count, fallbacks, rejected int, store *storage.Storage) {
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Summary: Simulated=%d Fallbacks=%d Denied=%d\n", count, fallbacks, rejected)

	if store != nil {
		stats, _ := store.GetStats()
		if stats != nil && stats.TotalTransactions > 0 {
			fmt.Printf("\nAll-Time Stats: Transactions=%d Spend=%.2f RewardEstimate=%.2f Fallbacks=%d\n",
				stats.TotalTransactions,
				stats.TotalSpend,
				stats.RewardEstimate,
				stats.FallbackCount)
		}
	}
}

// PrintWallet prints the stored wallet with derived utilization.
func PrintWallet(records []*storage.CardRecord) {
	fmt.Printf("Wallet: %d cards\n", len(records))
	for _, r := range records {
		card := r.ToWalletCard()
		percent := utilization.Percent(card)
		fmt.Printf("  %-28s %-12s limit=%.0f used=%.0f (%d%% %s)\n",
			r.Name, r.Issuer, r.CreditLimit, r.UsedAmount, percent, utilization.BandFor(percent))
	}
}

func formatRate(match rewards.CardMatch) string {
	if match.RateType == catalog.RatePointsMultiplier {
		return fmt.Sprintf("%.1fx points", match.Rate)
	}
	return fmt.Sprintf("%.1f%%", match.Rate)
}
