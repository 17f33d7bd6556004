package readstore

import (
	"context"

	"wild-oasis-api/internal/infra"
	"wild-oasis-api/internal/infra/db"
	"wild-oasis-api/internal/pkg/pgconv"
	"wild-oasis-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(pool db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: pool}
}

const findBookingByIDSQL = `
SELECT
	b.id, b.cabin_id, c.name, b.guest_id, g.email,
	b.start_date, b.end_date, b.num_nights, b.cabin_price,
	b.num_guests, b.observations, b.payment_intent_id, b.status,
	b.created_at, b.updated_at
FROM bookings b
JOIN cabins c ON c.id = b.cabin_id
JOIN guests g ON g.id = b.guest_id
WHERE b.id = $1`

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var view queries.BookingView
	err := s.db.QueryRow(ctx, findBookingByIDSQL, id).Scan(
		&view.ID,
		&view.CabinID,
		&view.CabinName,
		&view.GuestID,
		&view.GuestEmail,
		&view.StartDate,
		&view.EndDate,
		&view.NumNights,
		&view.CabinPrice,
		&view.NumGuests,
		&view.Observations,
		&view.PaymentIntentID,
		&view.Status,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return &view, nil
}

const findBookingsByGuestSQL = `
SELECT
	b.id, b.cabin_id, c.name, b.start_date, b.end_date,
	b.num_nights, b.cabin_price, b.num_guests, b.status, b.created_at
FROM bookings b
JOIN cabins c ON c.id = b.cabin_id
WHERE b.guest_id = $1
ORDER BY b.start_date DESC`

func (s *BookingReadStore) FindByGuestID(ctx context.Context, guestID uuid.UUID) ([]*queries.BookingListItem, error) {
	rows, err := s.db.Query(ctx, findBookingsByGuestSQL, guestID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	items := make([]*queries.BookingListItem, 0)
	for rows.Next() {
		var item queries.BookingListItem
		if err := rows.Scan(
			&item.ID,
			&item.CabinID,
			&item.CabinName,
			&item.StartDate,
			&item.EndDate,
			&item.NumNights,
			&item.CabinPrice,
			&item.NumGuests,
			&item.Status,
			&item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}

	return items, nil
}
