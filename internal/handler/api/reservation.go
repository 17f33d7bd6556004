package api

import (
	"errors"
	"net/http"

	reqdto "wild-oasis-api/internal/handler/dto/request"
	resdto "wild-oasis-api/internal/handler/dto/response"
	"wild-oasis-api/internal/handler/middleware"
	"wild-oasis-api/internal/usecase/commands"
	"wild-oasis-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	reservationUseCase commands.ReservationCommands
	bookingQueries     queries.BookingQueries
}

func NewReservationHandler(
	reservationUseCase commands.ReservationCommands,
	bookingQueries queries.BookingQueries,
) *ReservationHandler {
	return &ReservationHandler{
		reservationUseCase: reservationUseCase,
		bookingQueries:     bookingQueries,
	}
}

// @Summary Create reservation
// @Description Charge the guest and create a booking in one call
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	guest, ok := middleware.GetGuestInfo(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.reservationUseCase.Submit(c.Request.Context(), req, guest)
	if err != nil {
		h.respondSubmitError(c, err)
		return
	}

	c.Header("Location", "/api/reservations/"+view.ID.String())
	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

func (h *ReservationHandler) respondSubmitError(c *gin.Context, err error) {
	var declined *commands.DeclinedError
	var incomplete *commands.IncompleteError

	switch {
	case errors.Is(err, commands.ErrCabinNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Cabin not found",
		})
	case errors.Is(err, commands.ErrInvalidBookingData):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking data",
		})
	case errors.Is(err, commands.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, gin.H{
			"error": "A reservation is already being processed",
		})
	case errors.As(err, &declined):
		// The processor's message is the one the guest should see.
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error": declined.Message,
		})
	case errors.As(err, &incomplete):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error": "Payment was not completed (status: " + incomplete.Status + ")",
		})
	case errors.Is(err, commands.ErrBookingConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Cabin is no longer available for these dates",
		})
	case errors.Is(err, commands.ErrBookingPersistFailed):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Payment succeeded but the booking could not be saved. Our team has been notified.",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

// @Summary Get reservation
// @Description Get one of the guest's own reservations
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	guestID, ok := middleware.GetGuestID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID",
		})
		return
	}

	view, err := h.bookingQueries.GetByIDForGuest(c.Request.Context(), bookingID, guestID)
	if err != nil {
		if errors.Is(err, queries.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List reservations
// @Description List the guest's own reservations
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingListResponse
// @Failure 401 {object} map[string]string
// @Router /reservations [get]
func (h *ReservationHandler) GetGuestReservations(c *gin.Context) {
	guestID, ok := middleware.GetGuestID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	items, err := h.bookingQueries.ListByGuest(c.Request.Context(), guestID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	responses := make([]*resdto.BookingListResponse, len(items))
	for i, item := range items {
		responses[i] = resdto.FromBookingListItem(item)
	}

	c.JSON(http.StatusOK, responses)
}
