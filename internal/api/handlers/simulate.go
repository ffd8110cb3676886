package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cardwise-app/cardwise-backend/internal/api/dto"
	"github.com/cardwise-app/cardwise-backend/internal/application/service"
	"github.com/cardwise-app/cardwise-backend/internal/domain/simulator"
)

// SimulateHandler runs one synthetic spend through the decision path.
// It is a dry run: nothing is confirmed or persisted.
type SimulateHandler struct {
	generator *simulator.Generator
	decisions *service.DecisionService
}

// NewSimulateHandler creates a simulate handler.
func NewSimulateHandler(gen *simulator.Generator, decisions *service.DecisionService) *SimulateHandler {
	return &SimulateHandler{generator: gen, decisions: decisions}
}

// Simulate generates a random spend and returns the recommendation for it.
func (h *SimulateHandler) Simulate(c *gin.Context) {
	spend, err := h.generator.Generate()
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	sel, err := h.decisions.Recommend(spend)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SimulateResponse{
		Spend:          spend,
		Recommendation: dto.NewRecommendationResponse(sel),
	})
}
