package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cardwise-app/cardwise-backend/internal/api/dto"
	"github.com/cardwise-app/cardwise-backend/internal/application/service"
	"github.com/cardwise-app/cardwise-backend/internal/infrastructure/storage"
)

// TransactionsHandler serves confirmation and history.
type TransactionsHandler struct {
	decisions *service.DecisionService
	repo      storage.Repository
}

// NewTransactionsHandler creates a transactions handler.
func NewTransactionsHandler(decisions *service.DecisionService, repo storage.Repository) *TransactionsHandler {
	return &TransactionsHandler{decisions: decisions, repo: repo}
}

// Confirm applies a spend to a card and records the transaction. A
// credit-limit failure comes back as 409 with the card's headroom and no
// state change.
func (h *TransactionsHandler) Confirm(c *gin.Context) {
	var req dto.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	result, err := h.decisions.Confirm(req.ToSpendContext(), req.CardID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ConfirmResponse{
		Transaction:    result.Transaction,
		CardState:      result.Applied,
		Recommendation: dto.NewRecommendationResponse(result.Selection),
	})
}

// List returns confirmed transactions, newest first.
func (h *TransactionsHandler) List(c *gin.Context) {
	filters := storage.TransactionFilters{
		CardID: c.Query("card_id"),
		Limit:  queryInt(c, "limit", 50),
		Offset: queryInt(c, "offset", 0),
	}

	result, err := h.repo.ListTransactions(filters)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Stats returns aggregate statistics over the transaction history.
func (h *TransactionsHandler) Stats(c *gin.Context) {
	stats, err := h.repo.GetStats()
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
