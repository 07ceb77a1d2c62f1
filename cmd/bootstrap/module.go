package bootstrap

import (
	"visa-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	JWTModule,
	components.PersistenceModule,
	components.LockModule,
	components.UseCaseModule,
	components.WorkerModule,
	components.HandlerModule,
)
