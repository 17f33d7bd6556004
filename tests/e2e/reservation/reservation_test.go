//go:build e2e

package reservation_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"wild-oasis-api/internal/handler/dto/response"
	"wild-oasis-api/tests/common/authtest"
	"wild-oasis-api/tests/common/builder"
	"wild-oasis-api/tests/common/dbtest"
	"wild-oasis-api/tests/common/httptest"
	"wild-oasis-api/tests/e2e"
	"wild-oasis-api/tests/e2e/stripestub"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reservationsURL  = "/api/reservations"
	paymentIntentURL = "/api/create-payment-intent"
)

type ReservationSuite struct {
	e2e.SharedSuite
}

func (s *ReservationSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReservationSuite))
}

func (s *ReservationSuite) stayDates(daysAhead, nights int) (time.Time, time.Time) {
	start := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, daysAhead)
	return start, start.AddDate(0, 0, nights)
}

// =============================================================================
// TestCreateReservation - Reservation submission API tests
// =============================================================================

func (s *ReservationSuite) TestCreateReservation() {
	s.Run("Normal case: Guest can reserve and pay in one call", func() {
		t := s.T()

		_, token := authtest.CreateAndAuth(t, s.DB, s.Config.JWT, "guest@example.com", "Test Guest")
		cabinID := dbtest.CreateTestCabin(t, s.DB, "Forest Retreat", 4, 250, 50)
		start, end := s.stayDates(7, 3)

		reqBody := builder.NewBookingBuilder().
			WithCabinID(cabinID).
			WithStay(start, end).
			WithNumGuests(2).
			BuildCreateReservationDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, token)

		var created response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		require.Equal(t, cabinID, created.CabinID)
		require.Equal(t, int32(3), created.NumNights)
		require.Equal(t, int64(600), created.CabinPrice) // 3 nights × (250 − 50)
		require.Equal(t, int32(2), created.NumGuests)
		require.Equal(t, "confirmed", created.Status)
		require.NotEmpty(t, created.PaymentIntentID)
	})

	s.Run("Error case: Declined card returns 402 with the processor message", func() {
		t := s.T()

		_, token := authtest.CreateAndAuth(t, s.DB, s.Config.JWT, "declined@example.com", "Declined Guest")
		cabinID := dbtest.CreateTestCabin(t, s.DB, "Lake Cabin", 4, 100, 0)
		start, end := s.stayDates(7, 2)
		intentsBefore := s.Stripe.CreatedIntents()

		b := builder.NewBookingBuilder().
			WithCabinID(cabinID).
			WithStay(start, end)
		b.PaymentMethodID = stripestub.DeclinedPaymentMethod
		reqBody := b.BuildCreateReservationDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, token)
		httptest.AssertErrorResponse(t, w, http.StatusPaymentRequired, stripestub.DeclineMessage)

		// Nothing persisted for a failed charge
		var count int
		err := s.DB.QueryRow(t.Context(), "SELECT count(*) FROM bookings").Scan(&count)
		require.NoError(t, err)
		require.Zero(t, count)

		// Retrying with a valid card succeeds on a fresh intent
		retryBody := builder.NewBookingBuilder().
			WithCabinID(cabinID).
			WithStay(start, end).
			BuildCreateReservationDTO()

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, retryBody, token)

		var created response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		require.NotEmpty(t, created.PaymentIntentID)
		require.Equal(t, intentsBefore+2, s.Stripe.CreatedIntents())
	})

	s.Run("Error case: Overlapping stay for the same cabin returns 409", func() {
		t := s.T()

		_, token := authtest.CreateAndAuth(t, s.DB, s.Config.JWT, "first@example.com", "First Guest")
		cabinID := dbtest.CreateTestCabin(t, s.DB, "Hilltop Cabin", 4, 150, 0)
		start, end := s.stayDates(7, 3)

		reqBody := builder.NewBookingBuilder().
			WithCabinID(cabinID).
			WithStay(start, end).
			BuildCreateReservationDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		_, otherToken := authtest.CreateAndAuth(t, s.DB, s.Config.JWT, "second@example.com", "Second Guest")
		overlapping := builder.NewBookingBuilder().
			WithCabinID(cabinID).
			WithStay(start.AddDate(0, 0, 1), end.AddDate(0, 0, 1)).
			BuildCreateReservationDTO()

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, overlapping, otherToken)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "no longer available")

		// The second charge was captured before the insert failed, so it
		// must land in the reconciliation table with its intent id.
		var intentID string
		err := s.DB.QueryRow(t.Context(),
			"SELECT payment_intent_id FROM payment_reconciliations").Scan(&intentID)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(intentID, "pi_"), intentID)
	})

	s.Run("Error case: Past start date returns 400", func() {
		t := s.T()

		_, token := authtest.CreateAndAuth(t, s.DB, s.Config.JWT, "past@example.com", "Past Guest")
		cabinID := dbtest.CreateTestCabin(t, s.DB, "Old Cabin", 4, 100, 0)
		start, end := s.stayDates(-3, 2)

		reqBody := builder.NewBookingBuilder().
			WithCabinID(cabinID).
			WithStay(start, end).
			BuildCreateReservationDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, token)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid booking data")
	})

	s.Run("Error case: Unknown cabin returns 404", func() {
		t := s.T()

		_, token := authtest.CreateAndAuth(t, s.DB, s.Config.JWT, "nocabin@example.com", "No Cabin")
		start, end := s.stayDates(7, 2)

		reqBody := builder.NewBookingBuilder().
			WithStay(start, end).
			BuildCreateReservationDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, token)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Cabin not found")
	})

	s.Run("Error case: Missing token returns 401", func() {
		t := s.T()

		reqBody := builder.NewBookingBuilder().BuildCreateReservationDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Access token required")
	})
}

// =============================================================================
// TestGetReservations - Read-side API tests
// =============================================================================

func (s *ReservationSuite) TestGetReservations() {
	s.Run("Normal case: Guest can fetch own reservation by ID", func() {
		t := s.T()

		_, token := authtest.CreateAndAuth(t, s.DB, s.Config.JWT, "reader@example.com", "Reader")
		cabinID := dbtest.CreateTestCabin(t, s.DB, "Reader Cabin", 4, 120, 20)
		start, end := s.stayDates(7, 2)

		reqBody := builder.NewBookingBuilder().
			WithCabinID(cabinID).
			WithStay(start, end).
			BuildCreateReservationDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, token)
		var created response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"/"+created.ID.String(), nil, token)
		var fetched response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &fetched)
		require.Equal(t, created.ID, fetched.ID)
		require.Equal(t, created.PaymentIntentID, fetched.PaymentIntentID)
	})

	s.Run("Error case: Another guest's reservation reads as 404", func() {
		t := s.T()

		_, ownerToken := authtest.CreateAndAuth(t, s.DB, s.Config.JWT, "owner@example.com", "Owner")
		cabinID := dbtest.CreateTestCabin(t, s.DB, "Owner Cabin", 4, 100, 0)
		start, end := s.stayDates(7, 2)

		reqBody := builder.NewBookingBuilder().
			WithCabinID(cabinID).
			WithStay(start, end).
			BuildCreateReservationDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, ownerToken)
		var created response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		_, strangerToken := authtest.CreateAndAuth(t, s.DB, s.Config.JWT, "stranger@example.com", "Stranger")
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"/"+created.ID.String(), nil, strangerToken)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Booking not found")
	})

	s.Run("Normal case: Guest lists own reservations only", func() {
		t := s.T()

		_, token := authtest.CreateAndAuth(t, s.DB, s.Config.JWT, "lister@example.com", "Lister")
		cabinID := dbtest.CreateTestCabin(t, s.DB, "Lister Cabin", 4, 100, 0)
		otherCabinID := dbtest.CreateTestCabin(t, s.DB, "Other Cabin", 4, 100, 0)

		start, end := s.stayDates(7, 2)
		first := builder.NewBookingBuilder().WithCabinID(cabinID).WithStay(start, end).BuildCreateReservationDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, first, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		_, otherToken := authtest.CreateAndAuth(t, s.DB, s.Config.JWT, "other@example.com", "Other")
		second := builder.NewBookingBuilder().WithCabinID(otherCabinID).WithStay(start, end).BuildCreateReservationDTO()
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, second, otherToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL, nil, token)
		var items []response.BookingListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &items)
		require.Len(t, items, 1)
		require.Equal(t, cabinID, items[0].CabinID)
	})
}

// =============================================================================
// TestCreatePaymentIntent - Payment intent API tests
// =============================================================================

func (s *ReservationSuite) TestCreatePaymentIntent() {
	s.Run("Normal case: Intent created for a priced stay", func() {
		t := s.T()

		_, token := authtest.CreateAndAuth(t, s.DB, s.Config.JWT, "payer@example.com", "Payer")
		cabinID := dbtest.CreateTestCabin(t, s.DB, "Payer Cabin", 4, 250, 50)
		start, end := s.stayDates(7, 3)

		reqBody := builder.NewBookingBuilder().
			WithCabinID(cabinID).
			WithStay(start, end).
			BuildCreatePaymentIntentDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, paymentIntentURL, reqBody, token)
		var created response.CreatePaymentIntentResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &created)
		require.NotEmpty(t, created.ClientSecret)
		require.NotEmpty(t, created.PaymentIntentID)
	})

	s.Run("Error case: Tampered amount returns 400", func() {
		t := s.T()

		_, token := authtest.CreateAndAuth(t, s.DB, s.Config.JWT, "tamper@example.com", "Tamper")
		cabinID := dbtest.CreateTestCabin(t, s.DB, "Tamper Cabin", 4, 250, 50)
		start, end := s.stayDates(7, 3)

		reqBody := builder.NewBookingBuilder().
			WithCabinID(cabinID).
			WithStay(start, end).
			BuildCreatePaymentIntentDTO()
		reqBody.Amount = 100 // Real price is 600 whole units

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, paymentIntentURL, reqBody, token)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Amount does not match")
	})
}
