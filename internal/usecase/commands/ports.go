package commands

import (
	"context"
	"time"

	"wild-oasis-api/internal/domain/booking"
	"wild-oasis-api/internal/infra/db"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on read-side query types (CQRS separation)
type CabinSnapshot struct {
	ID           uuid.UUID
	Name         string
	MaxCapacity  int32
	RegularPrice int64
	Discount     int64
}

// GuestInfo is the authenticated guest identity from the session token.
// Email and Name feed the processor's billing/receipt details.
type GuestInfo struct {
	ID    uuid.UUID
	Email string
	Name  string
}

type CabinRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CabinSnapshot, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}

// ReconciliationRecord marks a captured payment whose booking could not be
// persisted, so it is never silently lost.
type ReconciliationRecord struct {
	PaymentIntentID string
	GuestID         uuid.UUID
	CabinID         uuid.UUID
	AmountCents     int64
	Reason          string
}

type ReconciliationRepository interface {
	Record(ctx context.Context, rec ReconciliationRecord) error
}

type CreateIntentInput struct {
	Amount   int64 // smallest currency unit
	Currency string
	Metadata map[string]string
}

type PaymentIntentResult struct {
	PaymentIntentID string
	ClientSecret    string
}

// ConfirmationResult is the processor's verdict on one confirmation attempt.
// Exactly one of the three shapes holds: declined (DeclineMessage set),
// succeeded (Status "succeeded"), or incomplete (any other status).
type ConfirmationResult struct {
	PaymentIntentID string
	Status          string
	DeclineMessage  string
}

func (r *ConfirmationResult) Declined() bool {
	return r.DeclineMessage != ""
}

func (r *ConfirmationResult) Succeeded() bool {
	return r.DeclineMessage == "" && r.Status == "succeeded"
}

type PaymentGateway interface {
	CreateIntent(ctx context.Context, in CreateIntentInput) (*PaymentIntentResult, error)
	ConfirmIntent(ctx context.Context, paymentIntentID, paymentMethodID, receiptEmail string) (*ConfirmationResult, error)
}

// SubmissionGuard serializes submissions per guest. Acquire returns a release
// function that must run no matter how the submission ends.
type SubmissionGuard interface {
	Acquire(ctx context.Context, guestID uuid.UUID) (func(), error)
}
