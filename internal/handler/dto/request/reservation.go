package request

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	CabinID         uuid.UUID `json:"cabinId" binding:"required"`
	StartDate       time.Time `json:"startDate" binding:"required"`
	EndDate         time.Time `json:"endDate" binding:"required"`
	NumGuests       int32     `json:"numGuests" binding:"required,min=1"`
	Observations    *string   `json:"observations,omitempty"`
	PaymentMethodID string    `json:"paymentMethodId" binding:"required"`
}

func (r CreateReservationRequest) GetObservations() string {
	if r.Observations == nil {
		return ""
	}
	return strings.TrimSpace(*r.Observations)
}
