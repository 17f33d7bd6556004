package response

import (
	"time"

	"wild-oasis-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type CabinResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	MaxCapacity  int32     `json:"maxCapacity"`
	RegularPrice int64     `json:"regularPrice"`
	Discount     int64     `json:"discount"`
	Description  *string   `json:"description,omitempty"`
}

type StayQuoteResponse struct {
	CabinID    uuid.UUID `json:"cabinId"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	NumNights  int32     `json:"numNights"`
	CabinPrice int64     `json:"cabinPrice"`
}

func FromCabinView(rm *queries.CabinView) *CabinResponse {
	return &CabinResponse{
		ID:           rm.ID,
		Name:         rm.Name,
		MaxCapacity:  rm.MaxCapacity,
		RegularPrice: rm.RegularPrice,
		Discount:     rm.Discount,
		Description:  rm.Description,
	}
}

func FromStayQuote(rm *queries.StayQuote) *StayQuoteResponse {
	return &StayQuoteResponse{
		CabinID:    rm.CabinID,
		StartDate:  rm.StartDate,
		EndDate:    rm.EndDate,
		NumNights:  rm.NumNights,
		CabinPrice: rm.CabinPrice,
	}
}
