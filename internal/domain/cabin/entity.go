package cabin

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidCapacity = errors.New("cabin capacity must be at least one guest")
	ErrInvalidPrice    = errors.New("cabin price must not be negative")
	ErrInvalidDiscount = errors.New("discount must not exceed the regular price")
)

// Cabin is the bookable unit. Prices are whole currency units per night;
// the discount is already expressed as an absolute amount off the nightly rate.
type Cabin struct {
	id           uuid.UUID
	name         string
	maxCapacity  int32
	regularPrice int64
	discount     int64
}

func NewCabin(id uuid.UUID, name string, maxCapacity int32, regularPrice, discount int64) (*Cabin, error) {
	if maxCapacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if regularPrice < 0 || discount < 0 {
		return nil, ErrInvalidPrice
	}
	if discount > regularPrice {
		return nil, ErrInvalidDiscount
	}

	return &Cabin{
		id:           id,
		name:         name,
		maxCapacity:  maxCapacity,
		regularPrice: regularPrice,
		discount:     discount,
	}, nil
}

func (c *Cabin) ID() uuid.UUID       { return c.id }
func (c *Cabin) Name() string        { return c.name }
func (c *Cabin) MaxCapacity() int32  { return c.maxCapacity }
func (c *Cabin) RegularPrice() int64 { return c.regularPrice }
func (c *Cabin) Discount() int64     { return c.discount }

// NightlyRate is the effective per-night price after the discount.
func (c *Cabin) NightlyRate() int64 {
	return c.regularPrice - c.discount
}
