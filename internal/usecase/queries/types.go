package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID              uuid.UUID `json:"id"`
	CabinID         uuid.UUID `json:"cabin_id"`
	CabinName       string    `json:"cabin_name"`
	GuestID         uuid.UUID `json:"guest_id"`
	GuestEmail      string    `json:"guest_email"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	NumNights       int32     `json:"num_nights"`
	CabinPrice      int64     `json:"cabin_price"`
	NumGuests       int32     `json:"num_guests"`
	Observations    *string   `json:"observations,omitempty"`
	PaymentIntentID string    `json:"payment_intent_id"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type BookingListItem struct {
	ID         uuid.UUID `json:"id"`
	CabinID    uuid.UUID `json:"cabin_id"`
	CabinName  string    `json:"cabin_name"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	NumNights  int32     `json:"num_nights"`
	CabinPrice int64     `json:"cabin_price"`
	NumGuests  int32     `json:"num_guests"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type CabinView struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	MaxCapacity  int32     `json:"max_capacity"`
	RegularPrice int64     `json:"regular_price"`
	Discount     int64     `json:"discount"`
	Description  *string   `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// StayQuote is the price preview for a cabin and date range; nothing is
// reserved by computing one.
type StayQuote struct {
	CabinID    uuid.UUID `json:"cabin_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	NumNights  int32     `json:"num_nights"`
	CabinPrice int64     `json:"cabin_price"`
}
