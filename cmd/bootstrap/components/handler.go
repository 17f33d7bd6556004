package components

import (
	"wild-oasis-api/internal/handler"
	"wild-oasis-api/internal/handler/api"
	"wild-oasis-api/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCabinHandler,
		api.NewPaymentHandler,
		api.NewReservationHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
