package components

import (
	"wild-oasis-api/internal/infra/db"
	"wild-oasis-api/internal/infra/inflight"
	"wild-oasis-api/internal/infra/readstore"
	"wild-oasis-api/internal/infra/repository"
	"wild-oasis-api/internal/usecase/commands"
	"wild-oasis-api/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		// Write side
		fx.Annotate(
			repository.NewCabinRepository,
			fx.As(new(commands.CabinRepository)),
		),
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
		),
		fx.Annotate(
			repository.NewNotificationRepository,
			fx.As(new(commands.NotificationRepository)),
		),
		fx.Annotate(
			repository.NewReconciliationRepository,
			fx.As(new(commands.ReconciliationRepository)),
		),
		// Read side
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewCabinReadStore,
			fx.As(new(queries.CabinReadStore)),
		),
		// Submission guard
		fx.Annotate(
			inflight.NewRedisSubmissionGuard,
			fx.As(new(commands.SubmissionGuard)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
