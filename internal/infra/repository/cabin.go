package repository

import (
	"context"

	"wild-oasis-api/internal/infra"
	"wild-oasis-api/internal/infra/db"
	"wild-oasis-api/internal/pkg/pgconv"
	"wild-oasis-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type CabinRepository struct {
	db db.DBTX
}

func NewCabinRepository(pool db.DBTX) *CabinRepository {
	return &CabinRepository{db: pool}
}

const findCabinByIDSQL = `
SELECT id, name, max_capacity, regular_price, discount
FROM cabins
WHERE id = $1`

func (r *CabinRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.CabinSnapshot, error) {
	var snap commands.CabinSnapshot
	err := r.db.QueryRow(ctx, findCabinByIDSQL, id).Scan(
		&snap.ID,
		&snap.Name,
		&snap.MaxCapacity,
		&snap.RegularPrice,
		&snap.Discount,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("cabin not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find cabin", err)
	}
	return &snap, nil
}
