package graphql

import (
	"go.uber.org/fx"
)

var Module = fx.Module("graphql.schema",
	fx.Provide(NewResolver),
	fx.Provide(NewSchema),
)
