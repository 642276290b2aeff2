package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HimashaKodikara/ShuttlemateClient-sub000/address"
	"github.com/HimashaKodikara/ShuttlemateClient-sub000/models"
)

type AddressHandler struct {
	manager *address.Manager
}

func NewAddressHandler(manager *address.Manager) *AddressHandler {
	return &AddressHandler{manager: manager}
}

// GetAddress handles GET /address.
func (h *AddressHandler) GetAddress(c *gin.Context) {
	sess := currentSession(c)

	profile, err := h.manager.LoadProfile(c.Request.Context(), sess.UserID)
	if err != nil {
		h.writeAddressError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// SaveAddress handles PUT /address. The profile is overwritten
// wholesale; on failure the client keeps its entered values and may
// retry.
func (h *AddressHandler) SaveAddress(c *gin.Context) {
	sess := currentSession(c)

	var req models.SaveAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid address fields",
			Details: err.Error(),
		})
		return
	}

	profile := models.AddressProfile{
		Phone:      req.Phone,
		Line1:      req.Line1,
		Line2:      req.Line2,
		PostalCode: req.PostalCode,
		IsDefault:  req.IsDefault,
	}
	if err := h.manager.SaveProfile(c.Request.Context(), sess.UserID, profile); err != nil {
		h.writeAddressError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *AddressHandler) writeAddressError(c *gin.Context, err error) {
	if errors.Is(err, address.ErrLoginRequired) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "LOGIN_REQUIRED",
			Message: address.ErrLoginRequired.Error(),
		})
		return
	}
	c.JSON(http.StatusBadGateway, models.ErrorResponse{
		Error:   "FETCH_ERROR",
		Message: "Could not reach the address service",
		Details: err.Error(),
	})
}
