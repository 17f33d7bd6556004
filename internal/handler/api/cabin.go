package api

import (
	"errors"
	"net/http"
	"time"

	resdto "wild-oasis-api/internal/handler/dto/response"
	"wild-oasis-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CabinHandler struct {
	cabinQueries queries.CabinQueries
}

func NewCabinHandler(cabinQueries queries.CabinQueries) *CabinHandler {
	return &CabinHandler{cabinQueries: cabinQueries}
}

// @Summary List cabins
// @Tags cabins
// @Produce json
// @Success 200 {array} resdto.CabinResponse
// @Router /cabins [get]
func (h *CabinHandler) ListCabins(c *gin.Context) {
	views, err := h.cabinQueries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	responses := make([]*resdto.CabinResponse, len(views))
	for i, view := range views {
		responses[i] = resdto.FromCabinView(view)
	}

	c.JSON(http.StatusOK, responses)
}

// @Summary Get cabin
// @Tags cabins
// @Produce json
// @Param id path string true "Cabin ID"
// @Success 200 {object} resdto.CabinResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cabins/{id} [get]
func (h *CabinHandler) GetCabin(c *gin.Context) {
	cabinID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cabin ID",
		})
		return
	}

	view, err := h.cabinQueries.GetByID(c.Request.Context(), cabinID)
	if err != nil {
		if errors.Is(err, queries.ErrCabinNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Cabin not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromCabinView(view))
}

// @Summary Quote a stay
// @Description Price a date range for a cabin without reserving it
// @Tags cabins
// @Produce json
// @Param id path string true "Cabin ID"
// @Param startDate query string true "Stay start (RFC 3339)"
// @Param endDate query string true "Stay end (RFC 3339)"
// @Success 200 {object} resdto.StayQuoteResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cabins/{id}/quote [get]
func (h *CabinHandler) QuoteStay(c *gin.Context) {
	cabinID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cabin ID",
		})
		return
	}

	start, err := time.Parse(time.RFC3339, c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid start date",
		})
		return
	}

	end, err := time.Parse(time.RFC3339, c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid end date",
		})
		return
	}

	quote, err := h.cabinQueries.Quote(c.Request.Context(), cabinID, start, end)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrCabinNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Cabin not found",
			})
		case errors.Is(err, queries.ErrInvalidQuoteRange):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date range",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromStayQuote(quote))
}
