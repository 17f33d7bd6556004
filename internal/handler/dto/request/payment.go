package request

import (
	"time"

	"github.com/google/uuid"
)

// BookingDataPayload mirrors the reservation form's draft fields. The derived
// numbers (numNights, cabinPrice) are recomputed server-side and never trusted.
type BookingDataPayload struct {
	StartDate    time.Time `json:"startDate" binding:"required"`
	EndDate      time.Time `json:"endDate" binding:"required"`
	NumNights    int32     `json:"numNights"`
	CabinPrice   int64     `json:"cabinPrice"`
	CabinID      uuid.UUID `json:"cabinId" binding:"required"`
	NumGuests    int32     `json:"numGuests" binding:"required,min=1"`
	Observations string    `json:"observations"`
	GuestID      uuid.UUID `json:"guestId"`
}

type CreatePaymentIntentRequest struct {
	// Amount is in the smallest currency unit (whole price × 100).
	Amount      int64              `json:"amount" binding:"required,gt=0"`
	Currency    string             `json:"currency" binding:"required"`
	BookingData BookingDataPayload `json:"bookingData" binding:"required"`
}
