package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cardwise-app/cardwise-backend/internal/api/dto"
	"github.com/cardwise-app/cardwise-backend/internal/domain/catalog"
	"github.com/cardwise-app/cardwise-backend/internal/infrastructure/storage"
)

// CardsHandler serves wallet CRUD.
type CardsHandler struct {
	repo    storage.Repository
	catalog *catalog.Catalog
}

// NewCardsHandler creates a cards handler.
func NewCardsHandler(repo storage.Repository, cat *catalog.Catalog) *CardsHandler {
	return &CardsHandler{repo: repo, catalog: cat}
}

// Create registers a card. The catalog profile is resolved for the
// response but a miss does not block registration; the card just earns
// generic rates.
func (h *CardsHandler) Create(c *gin.Context) {
	var req dto.AddCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	record, err := h.repo.AddCard(req.Name, req.Issuer, req.CreditLimit)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	_, found := h.catalog.Lookup(record.Name, record.Issuer)
	c.JSON(http.StatusCreated, dto.NewCardResponse(record, found))
}

// List returns the wallet in insertion order.
func (h *CardsHandler) List(c *gin.Context) {
	records, err := h.repo.ListCards()
	if err != nil {
		writeDomainError(c, err)
		return
	}

	resp := dto.CardListResponse{Cards: make([]dto.CardResponse, 0, len(records))}
	for _, record := range records {
		_, found := h.catalog.Lookup(record.Name, record.Issuer)
		resp.Cards = append(resp.Cards, dto.NewCardResponse(record, found))
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns a single card.
func (h *CardsHandler) Get(c *gin.Context) {
	record, err := h.repo.GetCard(c.Param("id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	_, found := h.catalog.Lookup(record.Name, record.Issuer)
	c.JSON(http.StatusOK, dto.NewCardResponse(record, found))
}

// Delete removes a card from the wallet.
func (h *CardsHandler) Delete(c *gin.Context) {
	if err := h.repo.DeleteCard(c.Param("id")); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
