package commands

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"wild-oasis-api/internal/domain/booking"
	"wild-oasis-api/internal/domain/cabin"
	reqdto "wild-oasis-api/internal/handler/dto/request"
	"wild-oasis-api/internal/infra"
	"wild-oasis-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrCabinNotFound       = errs.New("cabin not found")
	ErrInvalidBookingData  = errs.New("invalid booking data")
	ErrAmountMismatch      = errs.New("amount does not match the server-side price")
	ErrPaymentIntentFailed = errs.New("payment intent creation failed")
)

type PaymentCommands interface {
	CreateIntent(ctx context.Context, req reqdto.CreatePaymentIntentRequest, guestID uuid.UUID) (*PaymentIntentResult, error)
}

type paymentUseCaseImpl struct {
	cabinRepo       CabinRepository
	gateway         PaymentGateway
	bookingServices *booking.Services
}

func NewPaymentCommands(
	cabinRepo CabinRepository,
	gateway PaymentGateway,
	bookingServices *booking.Services,
) PaymentCommands {
	return &paymentUseCaseImpl{
		cabinRepo:       cabinRepo,
		gateway:         gateway,
		bookingServices: bookingServices,
	}
}

// CreateIntent asks the processor for a charge intent after recomputing the
// price server-side. Failing attempts are not retried; the client resubmits
// and gets a fresh intent.
func (p *paymentUseCaseImpl) CreateIntent(
	ctx context.Context,
	req reqdto.CreatePaymentIntentRequest,
	guestID uuid.UUID,
) (*PaymentIntentResult, error) {
	draft, err := buildBookingDraft(
		ctx, p.cabinRepo, p.bookingServices,
		req.BookingData.CabinID, guestID,
		req.BookingData.StartDate, req.BookingData.EndDate,
		req.BookingData.NumGuests, req.BookingData.Observations,
	)
	if err != nil {
		return nil, err
	}

	if req.Amount != draft.AmountInSmallestUnit() {
		return nil, ErrAmountMismatch
	}

	result, err := p.gateway.CreateIntent(ctx, CreateIntentInput{
		Amount:   req.Amount,
		Currency: req.Currency,
		Metadata: IntentMetadata(draft),
	})
	if err != nil {
		// Processor details stay in the server log; the client gets a
		// generic failure.
		slog.Error("payment intent creation failed", "error", err.Error(), "guest_id", guestID)
		return nil, errs.Mark(err, ErrPaymentIntentFailed)
	}

	return result, nil
}

// buildBookingDraft rebuilds the draft from authoritative data: the cabin row
// and the server's own price derivation, never the client's numbers.
func buildBookingDraft(
	ctx context.Context,
	cabinRepo CabinRepository,
	services *booking.Services,
	cabinID, guestID uuid.UUID,
	start, end time.Time,
	numGuests int32,
	observations string,
) (*booking.Draft, error) {
	snap, err := cabinRepo.FindByID(ctx, cabinID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCabinNotFound
		}
		return nil, errs.Mark(err, ErrCabinNotFound)
	}

	cabinEntity, err := cabin.NewCabin(snap.ID, snap.Name, snap.MaxCapacity, snap.RegularPrice, snap.Discount)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingData)
	}

	stay, err := booking.NewStayRange(start, end)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingData)
	}

	draft, err := booking.NewDraft(services, cabinEntity, guestID, stay, numGuests, observations)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingData)
	}

	return draft, nil
}

// IntentMetadata stringifies the booking context attached to the intent so
// the charge remains traceable from the processor dashboard alone.
func IntentMetadata(draft *booking.Draft) map[string]string {
	return map[string]string{
		"cabinId":   draft.CabinID().String(),
		"numNights": strconv.FormatInt(int64(draft.NumNights()), 10),
		"numGuests": strconv.FormatInt(int64(draft.NumGuests()), 10),
		"guestId":   draft.GuestID().String(),
	}
}
