package api

import (
	"errors"
	"log/slog"
	"net/http"

	reqdto "wild-oasis-api/internal/handler/dto/request"
	resdto "wild-oasis-api/internal/handler/dto/response"
	"wild-oasis-api/internal/handler/middleware"
	"wild-oasis-api/internal/pkg/config"
	"wild-oasis-api/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentUseCase commands.PaymentCommands
	stripeCfg      config.StripeConfig
}

func NewPaymentHandler(paymentUseCase commands.PaymentCommands, stripeCfg config.StripeConfig) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
		stripeCfg:      stripeCfg,
	}
}

// @Summary Create payment intent
// @Description Create a payment intent for a pending reservation
// @Tags payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreatePaymentIntentRequest true "Payment intent request"
// @Success 200 {object} resdto.CreatePaymentIntentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /create-payment-intent [post]
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	guestID, ok := middleware.GetGuestID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreatePaymentIntentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.paymentUseCase.CreateIntent(c.Request.Context(), req, guestID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrCabinNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Cabin not found",
			})
		case errors.Is(err, commands.ErrInvalidBookingData):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid booking data",
			})
		case errors.Is(err, commands.ErrAmountMismatch):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Amount does not match the priced stay",
			})
		default:
			// Processor errors carry account details; log them, return a
			// generic body.
			slog.Error("Failed to create payment intent", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.CreatePaymentIntentResponse{
		ClientSecret:    result.ClientSecret,
		PaymentIntentID: result.PaymentIntentID,
	})
}

// @Summary Payment config
// @Description Public payment configuration for clients
// @Tags payment
// @Produce json
// @Success 200 {object} resdto.PaymentConfigResponse
// @Router /payment/config [get]
func (h *PaymentHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.PaymentConfigResponse{
		PublishableKey: h.stripeCfg.PublishableKey,
		Currency:       h.stripeCfg.Currency,
	})
}
