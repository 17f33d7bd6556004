package bootstrap

import (
	"wild-oasis-api/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	RedisModule,
	JWTModule,
	StripeModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
