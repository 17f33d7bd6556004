package bootstrap

import (
	"wild-oasis-api/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.CORSConfig { return cfg.CORS },
		func(cfg config.Config) config.RedisConfig { return cfg.Redis },
		func(cfg config.Config) config.StripeConfig { return cfg.Stripe },
		func(cfg config.Config) config.BookingConfig { return cfg.Booking },
	),
)
