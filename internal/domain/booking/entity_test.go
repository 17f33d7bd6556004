//go:build unit

package booking_test

import (
	"strings"
	"testing"
	"time"

	"wild-oasis-api/internal/domain/booking"
	"wild-oasis-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.BookingBuilder)
	errIs  error
}

func TestDraft(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		actual, err := b.BuildDraft()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.Equal(t, b.CabinID, actual.CabinID())
		assert.Equal(t, b.GuestID, actual.GuestID())
		assert.Equal(t, int32(3), actual.NumNights())
		assert.Equal(t, int64(3*(250-50)), actual.CabinPrice())
		assert.Equal(t, int32(2), actual.NumGuests())
		assert.Equal(t, "Late arrival", actual.Observations().String())
	})

	t.Run("amount in smallest unit is the whole price times 100", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDraft()
		require.NoError(t, err)

		assert.Equal(t, int64(600), actual.CabinPrice())
		assert.Equal(t, int64(60000), actual.AmountInSmallestUnit())
	})

	t.Run("stay validation", func(t *testing.T) {
		today := time.Now().UTC().Truncate(24 * time.Hour)

		runCases(t, []testCase{
			{
				name: "check-in today is allowed",
				mutate: func(b *builder.BookingBuilder) {
					b.CreatedAt = today
					b.WithStay(today, today.AddDate(0, 0, 2))
				},
			},
			{
				name: "check-in in the past",
				mutate: func(b *builder.BookingBuilder) {
					b.CreatedAt = today
					b.WithStay(today.AddDate(0, 0, -1), today.AddDate(0, 0, 2))
				},
				errIs: booking.ErrStayInPast,
			},
		})
	})

	t.Run("guest count validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "minimum valid guest count",
				mutate: func(b *builder.BookingBuilder) { b.WithNumGuests(1) },
			},
			{
				name:   "guest count equal to capacity",
				mutate: func(b *builder.BookingBuilder) { b.WithNumGuests(4) },
			},
			{
				name:   "zero guests",
				mutate: func(b *builder.BookingBuilder) { b.WithNumGuests(0) },
				errIs:  booking.ErrGuestCountTooSmall,
			},
			{
				name:   "guest count above capacity",
				mutate: func(b *builder.BookingBuilder) { b.WithNumGuests(5) },
				errIs:  booking.ErrGuestCountTooLarge,
			},
			{
				name: "capacity raised with the cabin",
				mutate: func(b *builder.BookingBuilder) {
					b.WithMaxCapacity(8).WithNumGuests(8)
				},
			},
		})
	})

	t.Run("observations validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty observations are allowed",
				mutate: func(b *builder.BookingBuilder) { b.WithObservations("") },
			},
			{
				name:   "maximum length observations",
				mutate: func(b *builder.BookingBuilder) { b.WithObservations(strings.Repeat("a", 1000)) },
			},
			{
				name:   "observations exceed maximum length",
				mutate: func(b *builder.BookingBuilder) { b.WithObservations(strings.Repeat("a", 1001)) },
				errIs:  booking.ErrObservationsTooLong,
			},
		})
	})

	t.Run("observations trimming", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().WithObservations("  Ground floor please  ").BuildDraft()
		require.NoError(t, err)

		assert.Equal(t, "Ground floor please", actual.Observations().String())
	})
}

func TestStayRange(t *testing.T) {
	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	t.Run("nights is the whole-day difference", func(t *testing.T) {
		stay, err := booking.NewStayRange(start, start.AddDate(0, 0, 4))
		require.NoError(t, err)
		assert.Equal(t, int32(4), stay.Nights())
	})

	t.Run("timestamps are truncated to days", func(t *testing.T) {
		stay, err := booking.NewStayRange(
			start.Add(15*time.Hour),
			start.AddDate(0, 0, 2).Add(11*time.Hour),
		)
		require.NoError(t, err)
		assert.Equal(t, start, stay.Start())
		assert.Equal(t, int32(2), stay.Nights())
	})

	t.Run("nights do not depend on the client's UTC offset", func(t *testing.T) {
		utc, err := booking.NewStayRange(start, start.AddDate(0, 0, 2))
		require.NoError(t, err)

		offset := time.FixedZone("CEST", 2*60*60)
		shifted, err := booking.NewStayRange(
			start,
			time.Date(2026, 9, 12, 0, 0, 0, 0, offset),
		)
		require.NoError(t, err)

		assert.Equal(t, int32(2), utc.Nights())
		assert.Equal(t, utc.Nights(), shifted.Nights())
		assert.Equal(t, utc.End(), shifted.End())
	})

	t.Run("zero dates are rejected", func(t *testing.T) {
		_, err := booking.NewStayRange(time.Time{}, start)
		require.ErrorIs(t, err, booking.ErrMissingDates)
	})

	t.Run("check-out must follow check-in", func(t *testing.T) {
		_, err := booking.NewStayRange(start, start)
		require.ErrorIs(t, err, booking.ErrInvalidStayRange)

		_, err = booking.NewStayRange(start.AddDate(0, 0, 1), start)
		require.ErrorIs(t, err, booking.ErrInvalidStayRange)
	})
}

func TestConfirm(t *testing.T) {
	t.Run("confirming a draft yields a confirmed booking", func(t *testing.T) {
		draft, err := builder.NewBookingBuilder().BuildDraft()
		require.NoError(t, err)

		actual, err := draft.Confirm("pi_test_123")
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "pi_test_123", actual.PaymentIntentID())
		assert.Equal(t, booking.StatusConfirmed, actual.Status())
		assert.True(t, actual.IsActive())
		assert.Equal(t, draft.CabinPrice(), actual.CabinPrice())
		assert.Equal(t, draft.NumNights(), actual.NumNights())
	})

	t.Run("payment intent id is mandatory", func(t *testing.T) {
		draft, err := builder.NewBookingBuilder().BuildDraft()
		require.NoError(t, err)

		actual, err := draft.Confirm("")
		require.Nil(t, actual)
		require.ErrorIs(t, err, booking.ErrMissingPaymentIntentID)
	})

	t.Run("booking IDs are unique per confirmation", func(t *testing.T) {
		draft, err := builder.NewBookingBuilder().BuildDraft()
		require.NoError(t, err)

		b1, err1 := draft.Confirm("pi_test_1")
		b2, err2 := draft.Confirm("pi_test_2")
		require.NoError(t, err1)
		require.NoError(t, err2)

		assert.NotEqual(t, b1.ID(), b2.ID())
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewBookingBuilder().With(c.mutate).BuildDraft()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
