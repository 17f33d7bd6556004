package booking

import (
	"errors"
	"time"

	"wild-oasis-api/internal/domain/cabin"
	"wild-oasis-api/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrNegativePrice          = errors.New("price cannot be negative")
	ErrStayInPast             = errors.New("check-in date cannot be in the past")
	ErrMissingPaymentIntentID = errors.New("payment intent id is required")
)

type Services struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

// Draft is the not-yet-persisted reservation assembled for one submission
// attempt. It carries the derived nights and price so the same numbers flow
// into the payment intent and, on success, into the booking record.
type Draft struct {
	cabinID    uuid.UUID
	guestID    uuid.UUID
	stay       StayRange
	numNights  int32
	cabinPrice int64
	guests     GuestCount
	notes      Observations
}

func NewDraft(
	services *Services,
	c *cabin.Cabin,
	guestID uuid.UUID,
	stay StayRange,
	numGuests int32,
	observations string,
) (*Draft, error) {
	if stay.Start().Before(truncateToDay(services.Clock.Now())) {
		return nil, ErrStayInPast
	}

	guests, err := NewGuestCount(numGuests, c.MaxCapacity())
	if err != nil {
		return nil, err
	}

	notes, err := NewObservations(observations)
	if err != nil {
		return nil, err
	}

	price := services.PriceCalculator.CabinPrice(c, stay)
	if price < 0 {
		return nil, ErrNegativePrice
	}

	return &Draft{
		cabinID:    c.ID(),
		guestID:    guestID,
		stay:       stay,
		numNights:  stay.Nights(),
		cabinPrice: price,
		guests:     guests,
		notes:      notes,
	}, nil
}

func (d *Draft) CabinID() uuid.UUID        { return d.cabinID }
func (d *Draft) GuestID() uuid.UUID        { return d.guestID }
func (d *Draft) Stay() StayRange           { return d.stay }
func (d *Draft) NumNights() int32          { return d.numNights }
func (d *Draft) CabinPrice() int64         { return d.cabinPrice }
func (d *Draft) NumGuests() int32          { return d.guests.Value() }
func (d *Draft) Observations() Observations { return d.notes }

// AmountInSmallestUnit is the charge amount the payment processor expects
// (whole units × 100).
func (d *Draft) AmountInSmallestUnit() int64 {
	return d.cabinPrice * 100
}

// Confirm promotes the draft into a booking once the charge has succeeded.
// This is the only way a Booking comes into existence on the write side.
func (d *Draft) Confirm(paymentIntentID string) (*Booking, error) {
	if paymentIntentID == "" {
		return nil, ErrMissingPaymentIntentID
	}

	return &Booking{
		id:              uuid.New(),
		draft:           *d,
		paymentIntentID: paymentIntentID,
		status:          StatusConfirmed,
	}, nil
}

type Booking struct {
	id              uuid.UUID
	draft           Draft
	paymentIntentID string
	status          Status
	createdAt       time.Time
	updatedAt       time.Time
}

func (b *Booking) ID() uuid.UUID             { return b.id }
func (b *Booking) CabinID() uuid.UUID        { return b.draft.cabinID }
func (b *Booking) GuestID() uuid.UUID        { return b.draft.guestID }
func (b *Booking) Stay() StayRange           { return b.draft.stay }
func (b *Booking) NumNights() int32          { return b.draft.numNights }
func (b *Booking) CabinPrice() int64         { return b.draft.cabinPrice }
func (b *Booking) NumGuests() int32          { return b.draft.guests.Value() }
func (b *Booking) Observations() Observations { return b.draft.notes }
func (b *Booking) PaymentIntentID() string   { return b.paymentIntentID }
func (b *Booking) Status() Status            { return b.status }
func (b *Booking) CreatedAt() time.Time      { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time      { return b.updatedAt }

func (b *Booking) IsActive() bool {
	return b.status == StatusConfirmed
}

func (b *Booking) HasEnded(now time.Time) bool {
	return now.After(b.draft.stay.End())
}
