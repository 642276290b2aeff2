package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HimashaKodikara/ShuttlemateClient-sub000/checkout"
	"github.com/HimashaKodikara/ShuttlemateClient-sub000/clients"
	"github.com/HimashaKodikara/ShuttlemateClient-sub000/models"
)

type CheckoutHandler struct {
	controller *checkout.Controller
}

func NewCheckoutHandler(controller *checkout.Controller) *CheckoutHandler {
	return &CheckoutHandler{controller: controller}
}

// CreateDraft handles POST /checkout/drafts. The item id is the single
// entry contract for the checkout screen; without it the draft is
// never opened.
func (h *CheckoutHandler) CreateDraft(c *gin.Context) {
	sess := currentSession(c)

	var req models.CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "ITEM_ID_MISSING",
			Message: "An item id is required to start checkout",
			Details: err.Error(),
		})
		return
	}

	draft, err := h.controller.CreateDraft(c.Request.Context(), sess.SessionID, req.ItemID)
	if err != nil {
		h.writeDraftError(c, err)
		return
	}

	c.JSON(http.StatusCreated, draft)
}

// GetDraft handles GET /checkout/draft.
func (h *CheckoutHandler) GetDraft(c *gin.Context) {
	sess := currentSession(c)

	draft, err := h.controller.Get(sess.SessionID)
	if err != nil {
		h.writeDraftError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// Increment handles POST /checkout/draft/increment. At the stock
// ceiling the draft is returned unchanged.
func (h *CheckoutHandler) Increment(c *gin.Context) {
	h.adjust(c, h.controller.Increment)
}

// Decrement handles POST /checkout/draft/decrement. At quantity 1 the
// draft is returned unchanged.
func (h *CheckoutHandler) Decrement(c *gin.Context) {
	h.adjust(c, h.controller.Decrement)
}

func (h *CheckoutHandler) adjust(c *gin.Context, fn func(string) (models.CheckoutDraft, error)) {
	sess := currentSession(c)

	draft, err := fn(sess.SessionID)
	if err != nil {
		h.writeDraftError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// Submit handles POST /checkout/draft/submit: the draft summary moves
// forward to address capture. No payment happens here.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	sess := currentSession(c)

	summary, err := h.controller.Submit(sess.SessionID)
	if err != nil {
		h.writeDraftError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// DiscardDraft handles DELETE /checkout/draft (leaving the pipeline).
func (h *CheckoutHandler) DiscardDraft(c *gin.Context) {
	sess := currentSession(c)
	h.controller.Discard(sess.SessionID)
	c.Status(http.StatusNoContent)
}

func (h *CheckoutHandler) writeDraftError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, checkout.ErrItemIDMissing):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "ITEM_ID_MISSING",
			Message: "An item id is required to start checkout",
		})
	case errors.Is(err, checkout.ErrOutOfStock):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "OUT_OF_STOCK",
			Message: "This item is out of stock",
		})
	case errors.Is(err, checkout.ErrNoDraft):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "NOT_FOUND",
			Message: "No active checkout draft",
		})
	default:
		var fe *clients.FetchError
		if errors.As(err, &fe) && fe.StatusCode == http.StatusNotFound {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "NOT_FOUND",
				Message: "Item not found",
			})
			return
		}
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "FETCH_ERROR",
			Message: "Could not load the item",
			Details: err.Error(),
		})
	}
}
