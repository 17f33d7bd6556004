package queries

import (
	"context"
	"time"

	"wild-oasis-api/internal/domain/booking"
	"wild-oasis-api/internal/domain/cabin"
	"wild-oasis-api/internal/infra"
	"wild-oasis-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrCabinNotFound     = errs.New("cabin not found")
	ErrCabinQueryFailed  = errs.New("cabin query failed")
	ErrInvalidQuoteRange = errs.New("invalid quote date range")
)

type CabinReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CabinView, error)
	FindAll(ctx context.Context) ([]*CabinView, error)
}

type CabinQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*CabinView, error)
	List(ctx context.Context) ([]*CabinView, error)
	// Quote prices a stay without reserving anything.
	Quote(ctx context.Context, id uuid.UUID, start, end time.Time) (*StayQuote, error)
}

type cabinQueriesImpl struct {
	readStore  CabinReadStore
	calculator booking.PriceCalculator
}

func NewCabinQueries(readStore CabinReadStore, calculator booking.PriceCalculator) CabinQueries {
	return &cabinQueriesImpl{
		readStore:  readStore,
		calculator: calculator,
	}
}

func (q *cabinQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*CabinView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCabinNotFound
		}
		return nil, errs.Mark(err, ErrCabinQueryFailed)
	}
	return view, nil
}

func (q *cabinQueriesImpl) List(ctx context.Context) ([]*CabinView, error) {
	views, err := q.readStore.FindAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrCabinQueryFailed)
	}
	return views, nil
}

func (q *cabinQueriesImpl) Quote(ctx context.Context, id uuid.UUID, start, end time.Time) (*StayQuote, error) {
	view, err := q.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stay, err := booking.NewStayRange(start, end)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidQuoteRange)
	}

	entity, err := cabin.NewCabin(view.ID, view.Name, view.MaxCapacity, view.RegularPrice, view.Discount)
	if err != nil {
		return nil, errs.Mark(err, ErrCabinQueryFailed)
	}

	return &StayQuote{
		CabinID:    view.ID,
		StartDate:  stay.Start(),
		EndDate:    stay.End(),
		NumNights:  stay.Nights(),
		CabinPrice: q.calculator.CabinPrice(entity, stay),
	}, nil
}
