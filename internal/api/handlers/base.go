// Package handlers contains the gin HTTP handlers for the API.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cardwise-app/cardwise-backend/internal/api/dto"
	"github.com/cardwise-app/cardwise-backend/internal/domain/rewards"
	"github.com/cardwise-app/cardwise-backend/internal/domain/utilization"
	"github.com/cardwise-app/cardwise-backend/internal/infrastructure/storage"
)

// writeDomainError maps core errors onto HTTP statuses: validation → 400,
// empty wallet → 422, unknown card → 404, limit exceeded → 409, anything
// else → 500.
func writeDomainError(c *gin.Context, err error) {
	var limitErr *utilization.CreditLimitExceededError
	switch {
	case errors.Is(err, rewards.ErrInvalidSpend):
		c.JSON(http.StatusBadRequest, dto.ValidationError(err.Error()))
	case errors.Is(err, rewards.ErrEmptyWallet):
		c.JSON(http.StatusUnprocessableEntity, dto.NewAPIError(dto.ErrCodeEmptyWallet, "wallet has no cards; add a card first"))
	case errors.Is(err, storage.ErrCardNotFound):
		c.JSON(http.StatusNotFound, dto.NotFoundError("card"))
	case errors.As(err, &limitErr):
		c.JSON(http.StatusConflict, dto.CreditLimitError(limitErr.Error(), limitErr.Headroom))
	default:
		c.JSON(http.StatusInternalServerError, dto.InternalError())
	}
}

// queryInt parses an integer query parameter with a default value.
func queryInt(c *gin.Context, name string, defaultVal int) int {
	val := c.Query(name)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}
