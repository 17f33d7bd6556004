package queries

import (
	"context"

	"wild-oasis-api/internal/infra"
	"wild-oasis-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound    = errs.New("booking not found")
	ErrBookingQueryFailed = errs.New("booking query failed")
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByGuestID(ctx context.Context, guestID uuid.UUID) ([]*BookingListItem, error)
}

type BookingQueries interface {
	// GetByIDSystem bypasses ownership checks (read-after-write inside commands).
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	// GetByIDForGuest returns not-found for bookings owned by another guest.
	GetByIDForGuest(ctx context.Context, id, guestID uuid.UUID) (*BookingView, error)
	ListByGuest(ctx context.Context, guestID uuid.UUID) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	readStore BookingReadStore
}

func NewBookingQueries(readStore BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{readStore: readStore}
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrBookingQueryFailed)
	}
	return view, nil
}

func (q *bookingQueriesImpl) GetByIDForGuest(ctx context.Context, id, guestID uuid.UUID) (*BookingView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}

	// Another guest's booking is indistinguishable from a missing one.
	if view.GuestID != guestID {
		return nil, ErrBookingNotFound
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByGuest(ctx context.Context, guestID uuid.UUID) ([]*BookingListItem, error) {
	items, err := q.readStore.FindByGuestID(ctx, guestID)
	if err != nil {
		return nil, errs.Mark(err, ErrBookingQueryFailed)
	}
	return items, nil
}
