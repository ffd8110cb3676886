package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cardwise-app/cardwise-backend/internal/api/dto"
	"github.com/cardwise-app/cardwise-backend/internal/application/service"
)

// RecommendHandler serves read-only card recommendations.
type RecommendHandler struct {
	decisions *service.DecisionService
}

// NewRecommendHandler creates a recommend handler.
func NewRecommendHandler(decisions *service.DecisionService) *RecommendHandler {
	return &RecommendHandler{decisions: decisions}
}

// Recommend evaluates a spend against the wallet. Nothing is mutated.
func (h *RecommendHandler) Recommend(c *gin.Context) {
	var req dto.SpendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	sel, err := h.decisions.Recommend(req.ToSpendContext())
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewRecommendationResponse(sel))
}
