// Package advisor produces free-form prose explanations of a
// recommendation via a generative-text service.
//
// The advisor is strictly non-decisional: the engine never consults its
// output, and when no client is configured it degrades to a canned
// summary assembled from the recommendation itself.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/cardwise-app/cardwise-backend/internal/domain/eligibility"
	"github.com/cardwise-app/cardwise-backend/internal/domain/rewards"
	"github.com/cardwise-app/cardwise-backend/internal/domain/utilization"
	"github.com/cardwise-app/cardwise-backend/internal/domain/wallet"
)

// ChatClient is the interface to the chat-completion API.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request ChatCompletionRequest) (*ChatCompletionResponse, error)
}

// Chat API types
type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionResponse struct {
	Choices []Choice `json:"choices"`
}

type Choice struct {
	Message Message `json:"message"`
}

// Advisor renders recommendation explanations.
type Advisor struct {
	client ChatClient
	model  string
}

// New creates an advisor. A nil client is allowed: Explain then returns
// the canned summary instead of calling out.
func New(client ChatClient, model string) *Advisor {
	return &Advisor{client: client, model: model}
}

// Explain produces a short prose justification for the selection. The
// wallet and the decision are rendered into the prompt; the service sees
// only this summary, never raw stored data.
func (a *Advisor) Explain(ctx context.Context, cards []*wallet.Card, spend rewards.SpendContext, sel *eligibility.Selection) (string, error) {
	if a.client == nil {
		return a.cannedSummary(spend, sel), nil
	}

	request := ChatCompletionRequest{
		Model:       a.model,
		Temperature: 0.3,
		Messages: []Message{
			{
				Role:    "system",
				Content: "You are a personal credit card assistant. Explain card recommendations in two or three plain sentences. Never invent rates or cards that are not in the summary.",
			},
			{
				Role:    "user",
				Content: a.buildPrompt(cards, spend, sel),
			},
		},
	}

	response, err := a.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", fmt.Errorf("advisor request failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("advisor returned no choices")
	}
	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

// buildPrompt renders the wallet and decision summary.
func (a *Advisor) buildPrompt(cards []*wallet.Card, spend rewards.SpendContext, sel *eligibility.Selection) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Purchase: %.2f at %s (%s)\n\n", spend.Amount, spend.MerchantName, spend.Category)

	b.WriteString("Wallet:\n")
	for _, c := range cards {
		fmt.Fprintf(&b, "- %s (%s): limit %.0f, used %.0f, utilization %d%%, risk %s\n",
			c.Name, c.Issuer, c.CreditLimit, c.UsedAmount, utilization.Percent(c), utilization.BandFor(utilization.Percent(c)))
	}

	fmt.Fprintf(&b, "\nRecommended: %s — %s\n", sel.Chosen.Name, sel.Recommendation.Best.Reason)
	if sel.IsFallback {
		b.WriteString("Note: this is a fallback pick; no card had enough headroom for the full amount.\n")
	}
	for _, alt := range sel.Recommendation.Alternatives {
		fmt.Fprintf(&b, "Alternative: %s — %s\n", alt.Card.Name, alt.Reason)
	}

	b.WriteString("\nExplain this recommendation to the cardholder.")
	return b.String()
}

// cannedSummary is the no-API-key fallback.
func (a *Advisor) cannedSummary(spend rewards.SpendContext, sel *eligibility.Selection) string {
	if sel.IsFallback {
		return fmt.Sprintf("Use %s for the %.2f purchase at %s. %s.",
			sel.Chosen.Name, spend.Amount, spend.MerchantName, sel.Recommendation.Best.Reason)
	}
	return fmt.Sprintf("Use %s for the %.2f purchase at %s: %s.",
		sel.Chosen.Name, spend.Amount, spend.MerchantName, sel.Recommendation.Best.Reason)
}
