package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HimashaKodikara/ShuttlemateClient-sub000/catalog"
	"github.com/HimashaKodikara/ShuttlemateClient-sub000/models"
)

type CatalogHandler struct {
	service *catalog.Service
	filter  *catalog.Filter
}

func NewCatalogHandler(service *catalog.Service, filter *catalog.Filter) *CatalogHandler {
	return &CatalogHandler{service: service, filter: filter}
}

// GetCatalog handles GET /catalog. An optional shop_id query scopes
// the load to one shop. Pull-to-refresh repeats this call unchanged.
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	shopID := c.Query("shop_id")

	view, err := h.service.LoadCatalog(c.Request.Context(), shopID)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "FETCH_ERROR",
			Message: "Could not load the catalog",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

type filteredItemsResponse struct {
	Category string        `json:"category"`
	Items    []models.Item `json:"items"`
}

// SelectCategory handles GET /catalog/categories/:name. Server-side
// refinement failures fall back to the in-memory snapshot, so this
// never returns a fetch error.
func (h *CatalogHandler) SelectCategory(c *gin.Context) {
	name := c.Param("name")

	items := h.filter.SelectCategory(c.Request.Context(), name)
	c.JSON(http.StatusOK, filteredItemsResponse{
		Category: name,
		Items:    items,
	})
}
