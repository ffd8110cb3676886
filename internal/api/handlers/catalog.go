package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cardwise-app/cardwise-backend/internal/api/dto"
	"github.com/cardwise-app/cardwise-backend/internal/domain/catalog"
)

// CatalogHandler serves the read-only card reference data.
type CatalogHandler struct {
	catalog *catalog.Catalog
}

// NewCatalogHandler creates a catalog handler.
func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

// List returns every profile in the catalog.
func (h *CatalogHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cards": h.catalog.Profiles()})
}

// Search resolves a profile by name and issuer, with the same partial
// matching the engine uses.
func (h *CatalogHandler) Search(c *gin.Context) {
	name := c.Query("name")
	issuer := c.Query("issuer")
	if name == "" {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("name query parameter is required"))
		return
	}

	profile, found := h.catalog.Lookup(name, issuer)
	if !found {
		c.JSON(http.StatusNotFound, dto.NotFoundError("card profile"))
		return
	}
	c.JSON(http.StatusOK, profile)
}
