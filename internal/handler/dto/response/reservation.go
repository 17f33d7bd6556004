package response

import (
	"time"

	"wild-oasis-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID              uuid.UUID `json:"id"`
	CabinID         uuid.UUID `json:"cabinId"`
	CabinName       string    `json:"cabinName"`
	GuestID         uuid.UUID `json:"guestId"`
	GuestEmail      string    `json:"guestEmail"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	NumNights       int32     `json:"numNights"`
	CabinPrice      int64     `json:"cabinPrice"`
	NumGuests       int32     `json:"numGuests"`
	Observations    *string   `json:"observations,omitempty"`
	PaymentIntentID string    `json:"paymentIntentId"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type BookingListResponse struct {
	ID         uuid.UUID `json:"id"`
	CabinID    uuid.UUID `json:"cabinId"`
	CabinName  string    `json:"cabinName"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	NumNights  int32     `json:"numNights"`
	CabinPrice int64     `json:"cabinPrice"`
	NumGuests  int32     `json:"numGuests"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:              rm.ID,
		CabinID:         rm.CabinID,
		CabinName:       rm.CabinName,
		GuestID:         rm.GuestID,
		GuestEmail:      rm.GuestEmail,
		StartDate:       rm.StartDate,
		EndDate:         rm.EndDate,
		NumNights:       rm.NumNights,
		CabinPrice:      rm.CabinPrice,
		NumGuests:       rm.NumGuests,
		Observations:    rm.Observations,
		PaymentIntentID: rm.PaymentIntentID,
		Status:          rm.Status,
		CreatedAt:       rm.CreatedAt,
		UpdatedAt:       rm.UpdatedAt,
	}
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:         rm.ID,
		CabinID:    rm.CabinID,
		CabinName:  rm.CabinName,
		StartDate:  rm.StartDate,
		EndDate:    rm.EndDate,
		NumNights:  rm.NumNights,
		CabinPrice: rm.CabinPrice,
		NumGuests:  rm.NumGuests,
		Status:     rm.Status,
		CreatedAt:  rm.CreatedAt,
	}
}
