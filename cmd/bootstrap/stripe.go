package bootstrap

import (
	"wild-oasis-api/internal/infra/payment"
	"wild-oasis-api/internal/usecase/commands"

	"go.uber.org/fx"
)

var StripeModule = fx.Module("stripe",
	fx.Provide(
		fx.Annotate(
			payment.NewStripeGateway,
			fx.As(new(commands.PaymentGateway)),
		),
	),
)
