//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"wild-oasis-api/internal/domain/booking"
	"wild-oasis-api/internal/infra"
	"wild-oasis-api/internal/infra/inflight"
	"wild-oasis-api/internal/pkg/clock"
	"wild-oasis-api/internal/pkg/config"
	"wild-oasis-api/internal/usecase/commands"
	"wild-oasis-api/tests/common/builder"
	commandsmock "wild-oasis-api/tests/mock/commands"
	queriesmock "wild-oasis-api/tests/mock/queries"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// The transactional persist path needs a live pool and is covered by the e2e
// suite; these tests cover everything that runs before the first write.
type ReservationCommandsTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockCabinRepo *commandsmock.MockCabinRepository
	mockGateway   *commandsmock.MockPaymentGateway
	mockGuard     *commandsmock.MockSubmissionGuard
	useCase       commands.ReservationCommands
	builder       *builder.BookingBuilder
	released      bool
}

func (s *ReservationCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCabinRepo = commandsmock.NewMockCabinRepository(s.mockCtrl)
	s.mockGateway = commandsmock.NewMockPaymentGateway(s.mockCtrl)
	s.mockGuard = commandsmock.NewMockSubmissionGuard(s.mockCtrl)
	s.released = false

	s.builder = builder.NewBookingBuilder()
	services := &booking.Services{
		Clock:           clock.NewMockClock(s.builder.CreatedAt),
		PriceCalculator: booking.NewNightlyPriceCalculator(),
	}

	s.useCase = commands.NewReservationCommands(
		s.mockCabinRepo,
		commandsmock.NewMockBookingRepository(s.mockCtrl),
		commandsmock.NewMockNotificationRepository(s.mockCtrl),
		commandsmock.NewMockReconciliationRepository(s.mockCtrl),
		s.mockGateway,
		s.mockGuard,
		queriesmock.NewMockBookingQueries(s.mockCtrl),
		services,
		nil,
		clock.NewMockClock(s.builder.CreatedAt),
		config.StripeConfig{Currency: "usd"},
	)
}

func (s *ReservationCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationCommandsSuite(t *testing.T) {
	suite.Run(t, new(ReservationCommandsTestSuite))
}

func (s *ReservationCommandsTestSuite) expectGuardAcquired() {
	s.mockGuard.EXPECT().Acquire(gomock.Any(), s.builder.GuestID).
		Return(func() { s.released = true }, nil).Times(1)
}

func (s *ReservationCommandsTestSuite) TestSubmit() {
	ctx := context.Background()
	guest := s.builder.BuildGuestInfo()

	s.Run("error: second submission while one is in flight", func() {
		s.mockGuard.EXPECT().Acquire(gomock.Any(), s.builder.GuestID).
			Return(nil, inflight.ErrHeld).Times(1)

		result, err := s.useCase.Submit(ctx, s.builder.BuildCreateReservationDTO(), guest)
		s.Nil(result)
		s.ErrorIs(err, commands.ErrSubmissionInFlight)
	})

	s.Run("error: guard backend failure", func() {
		s.mockGuard.EXPECT().Acquire(gomock.Any(), s.builder.GuestID).
			Return(nil, errors.New("redis: connection refused")).Times(1)

		result, err := s.useCase.Submit(ctx, s.builder.BuildCreateReservationDTO(), guest)
		s.Nil(result)
		s.ErrorIs(err, commands.ErrDatabaseOperationFailed)
	})

	s.Run("error: unknown cabin releases the guard", func() {
		s.expectGuardAcquired()
		s.mockCabinRepo.EXPECT().FindByID(gomock.Any(), s.builder.CabinID).
			Return(nil, infra.WrapRepoErr("cabin not found", nil, infra.KindNotFound)).Times(1)

		result, err := s.useCase.Submit(ctx, s.builder.BuildCreateReservationDTO(), guest)
		s.Nil(result)
		s.ErrorIs(err, commands.ErrCabinNotFound)
		s.True(s.released)
	})

	s.Run("error: past check-in date fails before any processor call", func() {
		s.expectGuardAcquired()
		s.mockCabinRepo.EXPECT().FindByID(gomock.Any(), s.builder.CabinID).
			Return(s.builder.BuildCabinSnapshot(), nil).Times(1)

		req := s.builder.BuildCreateReservationDTO()
		req.StartDate = s.builder.CreatedAt.AddDate(0, 0, -2)

		result, err := s.useCase.Submit(ctx, req, guest)
		s.Nil(result)
		s.ErrorIs(err, commands.ErrInvalidBookingData)
	})

	s.Run("error: declined card surfaces the processor message", func() {
		declineMsg := "Your card was declined."

		s.expectGuardAcquired()
		s.mockCabinRepo.EXPECT().FindByID(gomock.Any(), s.builder.CabinID).
			Return(s.builder.BuildCabinSnapshot(), nil).Times(1)
		s.mockGateway.EXPECT().CreateIntent(gomock.Any(), gomock.Any()).
			Return(&commands.PaymentIntentResult{PaymentIntentID: "pi_1", ClientSecret: "pi_1_secret"}, nil).Times(1)
		s.mockGateway.EXPECT().ConfirmIntent(gomock.Any(), "pi_1", s.builder.PaymentMethodID, guest.Email).
			Return(&commands.ConfirmationResult{
				PaymentIntentID: "pi_1",
				Status:          "requires_payment_method",
				DeclineMessage:  declineMsg,
			}, nil).Times(1)

		result, err := s.useCase.Submit(ctx, s.builder.BuildCreateReservationDTO(), guest)
		s.Nil(result)

		var declined *commands.DeclinedError
		s.ErrorAs(err, &declined)
		s.Equal(declineMsg, declined.Message)
		s.True(s.released)
	})

	s.Run("error: confirmation ends in a non-final status", func() {
		s.expectGuardAcquired()
		s.mockCabinRepo.EXPECT().FindByID(gomock.Any(), s.builder.CabinID).
			Return(s.builder.BuildCabinSnapshot(), nil).Times(1)
		s.mockGateway.EXPECT().CreateIntent(gomock.Any(), gomock.Any()).
			Return(&commands.PaymentIntentResult{PaymentIntentID: "pi_2", ClientSecret: "pi_2_secret"}, nil).Times(1)
		s.mockGateway.EXPECT().ConfirmIntent(gomock.Any(), "pi_2", s.builder.PaymentMethodID, guest.Email).
			Return(&commands.ConfirmationResult{
				PaymentIntentID: "pi_2",
				Status:          "requires_action",
			}, nil).Times(1)

		result, err := s.useCase.Submit(ctx, s.builder.BuildCreateReservationDTO(), guest)
		s.Nil(result)

		var incomplete *commands.IncompleteError
		s.ErrorAs(err, &incomplete)
		s.Equal("requires_action", incomplete.Status)
	})

	s.Run("error: confirmation transport failure", func() {
		s.expectGuardAcquired()
		s.mockCabinRepo.EXPECT().FindByID(gomock.Any(), s.builder.CabinID).
			Return(s.builder.BuildCabinSnapshot(), nil).Times(1)
		s.mockGateway.EXPECT().CreateIntent(gomock.Any(), gomock.Any()).
			Return(&commands.PaymentIntentResult{PaymentIntentID: "pi_3", ClientSecret: "pi_3_secret"}, nil).Times(1)
		s.mockGateway.EXPECT().ConfirmIntent(gomock.Any(), "pi_3", s.builder.PaymentMethodID, guest.Email).
			Return(nil, errors.New("stripe: timeout")).Times(1)

		result, err := s.useCase.Submit(ctx, s.builder.BuildCreateReservationDTO(), guest)
		s.Nil(result)
		s.ErrorIs(err, commands.ErrPaymentConfirmFailed)
	})

	s.Run("charge amount and currency come from the server-side draft", func() {
		s.expectGuardAcquired()
		s.mockCabinRepo.EXPECT().FindByID(gomock.Any(), s.builder.CabinID).
			Return(s.builder.BuildCabinSnapshot(), nil).Times(1)
		s.mockGateway.EXPECT().CreateIntent(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in commands.CreateIntentInput) (*commands.PaymentIntentResult, error) {
				s.Equal(s.builder.CabinPrice()*100, in.Amount)
				s.Equal("usd", in.Currency)
				s.Equal(s.builder.CabinID.String(), in.Metadata["cabinId"])
				return nil, errors.New("stop before persistence")
			}).Times(1)

		result, err := s.useCase.Submit(ctx, s.builder.BuildCreateReservationDTO(), guest)
		s.Nil(result)
		s.ErrorIs(err, commands.ErrPaymentIntentFailed)
	})
}
