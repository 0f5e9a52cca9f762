package restream

import "go.uber.org/fx"

var Module = fx.Module("restream",
	fx.Provide(New),
)
