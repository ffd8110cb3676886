package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cardwise-app/cardwise-backend/internal/api/dto"
	"github.com/cardwise-app/cardwise-backend/internal/application/advisor"
	"github.com/cardwise-app/cardwise-backend/internal/application/service"
)

// ExplainHandler serves advisor prose for a proposed purchase. The prose
// never influences the decision; it is rendered after the fact.
type ExplainHandler struct {
	advisor   *advisor.Advisor
	decisions *service.DecisionService
}

// NewExplainHandler creates an explain handler.
func NewExplainHandler(adv *advisor.Advisor, decisions *service.DecisionService) *ExplainHandler {
	return &ExplainHandler{advisor: adv, decisions: decisions}
}

// Explain computes the recommendation and asks the advisor to narrate it.
func (h *ExplainHandler) Explain(c *gin.Context) {
	var req dto.ExplainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	spend := req.ToSpendContext()
	sel, err := h.decisions.Recommend(spend)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	cards, err := h.decisions.LoadWallet()
	if err != nil {
		writeDomainError(c, err)
		return
	}

	text, err := h.advisor.Explain(c.Request.Context(), cards, spend, sel)
	if err != nil {
		c.JSON(http.StatusBadGateway, dto.NewAPIError(dto.ErrCodeInternalError, "advisor unavailable"))
		return
	}

	c.JSON(http.StatusOK, dto.ExplainResponse{
		Explanation:    text,
		Recommendation: dto.NewRecommendationResponse(sel),
	})
}
