package repository

import (
	"context"

	"wild-oasis-api/internal/infra"
	"wild-oasis-api/internal/infra/db"
	"wild-oasis-api/internal/usecase/commands"
)

// ReconciliationRepository records charges that were captured but whose
// booking failed to persist. Rows here are worked off manually (refund or
// re-create) so no guest is charged for a stay that does not exist.
type ReconciliationRepository struct {
	db db.DBTX
}

func NewReconciliationRepository(pool db.DBTX) *ReconciliationRepository {
	return &ReconciliationRepository{db: pool}
}

const recordReconciliationSQL = `
INSERT INTO payment_reconciliations (payment_intent_id, guest_id, cabin_id, amount_cents, reason)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (payment_intent_id) DO NOTHING`

func (r *ReconciliationRepository) Record(ctx context.Context, rec commands.ReconciliationRecord) error {
	_, err := r.db.Exec(ctx, recordReconciliationSQL,
		rec.PaymentIntentID,
		rec.GuestID,
		rec.CabinID,
		rec.AmountCents,
		rec.Reason,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to record payment reconciliation", err)
	}
	return nil
}
