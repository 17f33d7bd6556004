package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"wild-oasis-api/internal/domain/booking"
	reqdto "wild-oasis-api/internal/handler/dto/request"
	"wild-oasis-api/internal/infra"
	"wild-oasis-api/internal/infra/db"
	"wild-oasis-api/internal/infra/inflight"
	"wild-oasis-api/internal/pkg/clock"
	"wild-oasis-api/internal/pkg/config"
	"wild-oasis-api/internal/pkg/errs"
	"wild-oasis-api/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrSubmissionInFlight      = errs.New("a submission is already in flight for this guest")
	ErrPaymentConfirmFailed    = errs.New("payment confirmation failed")
	ErrBookingConflict         = errs.New("booking conflicts with an existing reservation")
	ErrBookingPersistFailed    = errs.New("booking could not be persisted after payment")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// DeclinedError carries the processor's own message, which is shown to the
// guest verbatim.
type DeclinedError struct {
	Message string
}

func (e *DeclinedError) Error() string {
	return "payment declined: " + e.Message
}

// IncompleteError covers confirmation outcomes that are neither a decline nor
// a success (requires_action, processing, ...). Nothing is persisted.
type IncompleteError struct {
	Status string
}

func (e *IncompleteError) Error() string {
	return "payment not completed: status " + e.Status
}

type ReservationCommands interface {
	Submit(ctx context.Context, req reqdto.CreateReservationRequest, guest GuestInfo) (*queries.BookingView, error)
}

type reservationUseCaseImpl struct {
	cabinRepo          CabinRepository
	bookingRepo        BookingRepository
	notificationRepo   NotificationRepository
	reconciliationRepo ReconciliationRepository
	gateway            PaymentGateway
	guard              SubmissionGuard
	bookingQueries     queries.BookingQueries
	bookingServices    *booking.Services
	db                 *pgxpool.Pool
	clock              clock.Clock
	currency           string
}

func NewReservationCommands(
	cabinRepo CabinRepository,
	bookingRepo BookingRepository,
	notificationRepo NotificationRepository,
	reconciliationRepo ReconciliationRepository,
	gateway PaymentGateway,
	guard SubmissionGuard,
	bookingQueries queries.BookingQueries,
	bookingServices *booking.Services,
	db *pgxpool.Pool,
	clk clock.Clock,
	stripeCfg config.StripeConfig,
) ReservationCommands {
	return &reservationUseCaseImpl{
		cabinRepo:          cabinRepo,
		bookingRepo:        bookingRepo,
		notificationRepo:   notificationRepo,
		reconciliationRepo: reconciliationRepo,
		gateway:            gateway,
		guard:              guard,
		bookingQueries:     bookingQueries,
		bookingServices:    bookingServices,
		db:                 db,
		clock:              clk,
		currency:           stripeCfg.Currency,
	}
}

// Submit runs the whole reservation flow for one attempt: price the stay,
// create a payment intent, confirm the charge, persist the booking. The
// per-guest guard is released whichever way the attempt ends. A failed
// attempt is never retried here; resubmitting creates a fresh intent.
func (r *reservationUseCaseImpl) Submit(
	ctx context.Context,
	req reqdto.CreateReservationRequest,
	guest GuestInfo,
) (*queries.BookingView, error) {
	release, err := r.guard.Acquire(ctx, guest.ID)
	if err != nil {
		if errors.Is(err, inflight.ErrHeld) {
			return nil, ErrSubmissionInFlight
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer release()

	draft, err := buildBookingDraft(
		ctx, r.cabinRepo, r.bookingServices,
		req.CabinID, guest.ID,
		req.StartDate, req.EndDate,
		req.NumGuests, req.GetObservations(),
	)
	if err != nil {
		return nil, err
	}

	confirmed, err := r.chargeGuest(ctx, draft, req.PaymentMethodID, guest)
	if err != nil {
		return nil, err
	}

	bookingEntity, err := draft.Confirm(confirmed.PaymentIntentID)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingData)
	}

	return r.persistBooking(ctx, bookingEntity)
}

// chargeGuest performs the two sequential processor calls. The confirmation
// never starts unless intent creation resolved.
func (r *reservationUseCaseImpl) chargeGuest(
	ctx context.Context,
	draft *booking.Draft,
	paymentMethodID string,
	guest GuestInfo,
) (*ConfirmationResult, error) {
	intent, err := r.gateway.CreateIntent(ctx, CreateIntentInput{
		Amount:   draft.AmountInSmallestUnit(),
		Currency: r.currency,
		Metadata: IntentMetadata(draft),
	})
	if err != nil {
		slog.Error("payment intent creation failed", "error", err.Error(), "guest_id", draft.GuestID())
		return nil, errs.Mark(err, ErrPaymentIntentFailed)
	}

	result, err := r.gateway.ConfirmIntent(ctx, intent.PaymentIntentID, paymentMethodID, guest.Email)
	if err != nil {
		slog.Error("payment confirmation failed",
			"error", err.Error(),
			"payment_intent_id", intent.PaymentIntentID)
		return nil, errs.Mark(err, ErrPaymentConfirmFailed)
	}

	if result.Declined() {
		return nil, &DeclinedError{Message: result.DeclineMessage}
	}
	if !result.Succeeded() {
		return nil, &IncompleteError{Status: result.Status}
	}

	return result, nil
}

// persistBooking writes the booking and its notification job in one
// transaction. Money has already been captured at this point, so a failure is
// recorded for reconciliation rather than swallowed.
func (r *reservationUseCaseImpl) persistBooking(
	ctx context.Context,
	bookingEntity *booking.Booking,
) (*queries.BookingView, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, r.failAfterCapture(ctx, bookingEntity, errs.Wrap(err, "begin transaction"))
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback transaction", "error", rollbackErr.Error())
		}
	}()

	bookingID, err := r.bookingRepo.Create(ctx, tx, bookingEntity)
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) || infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, r.failAfterCapture(ctx, bookingEntity, errs.Mark(err, ErrBookingConflict))
		}
		return nil, r.failAfterCapture(ctx, bookingEntity, err)
	}

	if err := r.createConfirmationJob(ctx, tx, bookingEntity); err != nil {
		return nil, r.failAfterCapture(ctx, bookingEntity, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, r.failAfterCapture(ctx, bookingEntity, errs.Wrap(err, "commit transaction"))
	}

	// Read-after-write: return the complete view from the read store
	view, err := r.bookingQueries.GetByIDSystem(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return view, nil
}

// failAfterCapture records the captured-but-unpersisted payment before
// surfacing the failure. The reconciliation write must survive a canceled
// request context.
func (r *reservationUseCaseImpl) failAfterCapture(ctx context.Context, b *booking.Booking, cause error) error {
	recordCtx := context.WithoutCancel(ctx)
	recordErr := r.reconciliationRepo.Record(recordCtx, ReconciliationRecord{
		PaymentIntentID: b.PaymentIntentID(),
		GuestID:         b.GuestID(),
		CabinID:         b.CabinID(),
		AmountCents:     b.CabinPrice() * 100,
		Reason:          cause.Error(),
	})
	if recordErr != nil {
		slog.Error("failed to record payment reconciliation",
			"error", recordErr.Error(),
			"payment_intent_id", b.PaymentIntentID())
	}

	if errors.Is(cause, ErrBookingConflict) {
		return cause
	}
	return errs.Mark(cause, ErrBookingPersistFailed)
}

func (r *reservationUseCaseImpl) createConfirmationJob(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id":        b.ID(),
		"payment_intent_id": b.PaymentIntentID(),
		"type":              "booking_confirmed",
	})
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}

	return r.notificationRepo.CreateJob(ctx, tx, "email", "booking_confirmed", payload, r.clock.Now())
}
