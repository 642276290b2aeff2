package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HimashaKodikara/ShuttlemateClient-sub000/checkout"
	"github.com/HimashaKodikara/ShuttlemateClient-sub000/clients"
	"github.com/HimashaKodikara/ShuttlemateClient-sub000/models"
	"github.com/HimashaKodikara/ShuttlemateClient-sub000/payment"
)

type PaymentHandler struct {
	orchestrator *payment.Orchestrator
	controller   *checkout.Controller
}

func NewPaymentHandler(orchestrator *payment.Orchestrator, controller *checkout.Controller) *PaymentHandler {
	return &PaymentHandler{orchestrator: orchestrator, controller: controller}
}

type createIntentResponse struct {
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
}

// CreateIntent handles POST /payment/intents for the session's draft.
// A creation failure aborts the flow; the gateway is never contacted
// without a client secret.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	sess := currentSession(c)

	draft, err := h.controller.Get(sess.SessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "NOT_FOUND",
			Message: "No active checkout draft",
		})
		return
	}

	intent, err := h.orchestrator.CreateIntent(c.Request.Context(), sess.SessionID, sess.UserID, draft)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "INTENT_ERROR",
			Message: "Could not create the payment",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, createIntentResponse{
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
	})
}

// Confirm handles POST /payment/confirm. Success is terminal: the
// draft is discarded and the receipt returned. A gateway decline keeps
// the user on the payment step with the gateway's reason verbatim.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	sess := currentSession(c)

	var req models.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid payment request",
			Details: err.Error(),
		})
		return
	}

	receipt, err := h.orchestrator.Confirm(c.Request.Context(), sess.SessionID, req.ClientSecret, req.Card)
	if err != nil {
		h.writeConfirmError(c, err)
		return
	}

	h.controller.Discard(sess.SessionID)
	c.JSON(http.StatusOK, receipt)
}

func (h *PaymentHandler) writeConfirmError(c *gin.Context, err error) {
	var gwErr *clients.GatewayError
	switch {
	case errors.Is(err, payment.ErrCardIncomplete),
		errors.Is(err, payment.ErrCardNumber),
		errors.Is(err, payment.ErrCardExpiry),
		errors.Is(err, payment.ErrCardCVC):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: err.Error(),
		})
	case errors.Is(err, payment.ErrNoIntent):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "INTENT_ERROR",
			Message: "Create a payment before confirming it",
		})
	case errors.As(err, &gwErr):
		c.JSON(http.StatusPaymentRequired, models.ErrorResponse{
			Error:   "GATEWAY_DECLINED",
			Message: gwErr.Message,
		})
	default:
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "FETCH_ERROR",
			Message: "Could not reach the payment gateway",
			Details: err.Error(),
		})
	}
}
