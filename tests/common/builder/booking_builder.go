//go:build unit || e2e

package builder

import (
	"time"

	"wild-oasis-api/internal/domain/booking"
	"wild-oasis-api/internal/domain/cabin"
	"wild-oasis-api/internal/handler/dto/request"
	"wild-oasis-api/internal/pkg/clock"
	"wild-oasis-api/internal/usecase/commands"
	"wild-oasis-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	CabinID         uuid.UUID
	CabinName       string
	MaxCapacity     int32
	RegularPrice    int64
	Discount        int64
	GuestID         uuid.UUID
	GuestEmail      string
	StartDate       time.Time
	EndDate         time.Time
	NumGuests       int32
	Observations    string
	PaymentMethodID string
	PaymentIntentID string
	CreatedAt       time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	return &BookingBuilder{
		CabinID:         uuid.New(),
		CabinName:       "Forest Retreat",
		MaxCapacity:     4,
		RegularPrice:    250,
		Discount:        50,
		GuestID:         uuid.New(),
		GuestEmail:      "guest@example.com",
		StartDate:       now.AddDate(0, 0, 7),
		EndDate:         now.AddDate(0, 0, 10),
		NumGuests:       2,
		Observations:    "Late arrival",
		PaymentMethodID: "pm_card_visa",
		PaymentIntentID: "pi_test_123",
		CreatedAt:       now,
	}
}

func (b *BookingBuilder) NumNights() int32 {
	return int32(b.EndDate.Sub(b.StartDate) / (24 * time.Hour))
}

func (b *BookingBuilder) CabinPrice() int64 {
	return int64(b.NumNights()) * (b.RegularPrice - b.Discount)
}

func (b *BookingBuilder) BuildCreateReservationDTO() request.CreateReservationRequest {
	obs := b.Observations
	return request.CreateReservationRequest{
		CabinID:         b.CabinID,
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		NumGuests:       b.NumGuests,
		Observations:    &obs,
		PaymentMethodID: b.PaymentMethodID,
	}
}

func (b *BookingBuilder) BuildCreatePaymentIntentDTO() request.CreatePaymentIntentRequest {
	return request.CreatePaymentIntentRequest{
		Amount:   b.CabinPrice() * 100,
		Currency: "usd",
		BookingData: request.BookingDataPayload{
			StartDate:    b.StartDate,
			EndDate:      b.EndDate,
			NumNights:    b.NumNights(),
			CabinPrice:   b.CabinPrice(),
			CabinID:      b.CabinID,
			NumGuests:    b.NumGuests,
			Observations: b.Observations,
			GuestID:      b.GuestID,
		},
	}
}

// BuildDraft assembles the domain draft the way the write side does, with a
// clock pinned to the builder's CreatedAt so date validation is deterministic.
func (b *BookingBuilder) BuildDraft() (*booking.Draft, error) {
	services := &booking.Services{
		Clock:           clock.NewMockClock(b.CreatedAt),
		PriceCalculator: booking.NewNightlyPriceCalculator(),
	}

	cabinEntity, err := cabin.NewCabin(b.CabinID, b.CabinName, b.MaxCapacity, b.RegularPrice, b.Discount)
	if err != nil {
		return nil, err
	}

	stay, err := booking.NewStayRange(b.StartDate, b.EndDate)
	if err != nil {
		return nil, err
	}

	return booking.NewDraft(services, cabinEntity, b.GuestID, stay, b.NumGuests, b.Observations)
}

func (b *BookingBuilder) BuildCabinSnapshot() *commands.CabinSnapshot {
	return &commands.CabinSnapshot{
		ID:           b.CabinID,
		Name:         b.CabinName,
		MaxCapacity:  b.MaxCapacity,
		RegularPrice: b.RegularPrice,
		Discount:     b.Discount,
	}
}

func (b *BookingBuilder) BuildGuestInfo() commands.GuestInfo {
	return commands.GuestInfo{
		ID:    b.GuestID,
		Email: b.GuestEmail,
		Name:  "Test Guest",
	}
}

func (b *BookingBuilder) BuildBookingView() *queries.BookingView {
	obs := b.Observations
	return &queries.BookingView{
		ID:              uuid.New(),
		CabinID:         b.CabinID,
		CabinName:       b.CabinName,
		GuestID:         b.GuestID,
		GuestEmail:      b.GuestEmail,
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		NumNights:       b.NumNights(),
		CabinPrice:      b.CabinPrice(),
		NumGuests:       b.NumGuests,
		Observations:    &obs,
		PaymentIntentID: b.PaymentIntentID,
		Status:          "confirmed",
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildCabinView() *queries.CabinView {
	return &queries.CabinView{
		ID:           b.CabinID,
		Name:         b.CabinName,
		MaxCapacity:  b.MaxCapacity,
		RegularPrice: b.RegularPrice,
		Discount:     b.Discount,
		CreatedAt:    b.CreatedAt,
	}
}

// Fluent builder methods
func (b *BookingBuilder) With(muts ...func(*BookingBuilder)) *BookingBuilder {
	for _, f := range muts {
		f(b)
	}
	return b
}

func (b *BookingBuilder) WithCabinID(id uuid.UUID) *BookingBuilder {
	b.CabinID = id
	return b
}

func (b *BookingBuilder) WithGuestID(id uuid.UUID) *BookingBuilder {
	b.GuestID = id
	return b
}

func (b *BookingBuilder) WithStay(start, end time.Time) *BookingBuilder {
	b.StartDate = start
	b.EndDate = end
	return b
}

func (b *BookingBuilder) WithNumGuests(n int32) *BookingBuilder {
	b.NumGuests = n
	return b
}

func (b *BookingBuilder) WithMaxCapacity(n int32) *BookingBuilder {
	b.MaxCapacity = n
	return b
}

func (b *BookingBuilder) WithObservations(obs string) *BookingBuilder {
	b.Observations = obs
	return b
}

func (b *BookingBuilder) WithPricing(regularPrice, discount int64) *BookingBuilder {
	b.RegularPrice = regularPrice
	b.Discount = discount
	return b
}
