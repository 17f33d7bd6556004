package readstore

import (
	"context"

	"wild-oasis-api/internal/infra"
	"wild-oasis-api/internal/infra/db"
	"wild-oasis-api/internal/pkg/pgconv"
	"wild-oasis-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type CabinReadStore struct {
	db db.DBTX
}

func NewCabinReadStore(pool db.DBTX) *CabinReadStore {
	return &CabinReadStore{db: pool}
}

const findCabinByIDSQL = `
SELECT id, name, max_capacity, regular_price, discount, description, created_at
FROM cabins
WHERE id = $1`

func (s *CabinReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.CabinView, error) {
	var view queries.CabinView
	err := s.db.QueryRow(ctx, findCabinByIDSQL, id).Scan(
		&view.ID,
		&view.Name,
		&view.MaxCapacity,
		&view.RegularPrice,
		&view.Discount,
		&view.Description,
		&view.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("cabin not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find cabin", err)
	}
	return &view, nil
}

const findAllCabinsSQL = `
SELECT id, name, max_capacity, regular_price, discount, description, created_at
FROM cabins
ORDER BY name`

func (s *CabinReadStore) FindAll(ctx context.Context) ([]*queries.CabinView, error) {
	rows, err := s.db.Query(ctx, findAllCabinsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list cabins", err)
	}
	defer rows.Close()

	views := make([]*queries.CabinView, 0)
	for rows.Next() {
		var view queries.CabinView
		if err := rows.Scan(
			&view.ID,
			&view.Name,
			&view.MaxCapacity,
			&view.RegularPrice,
			&view.Discount,
			&view.Description,
			&view.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan cabin row", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read cabin rows", err)
	}

	return views, nil
}
