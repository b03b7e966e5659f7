package invoicefeed

import "go.uber.org/fx"

var Module = fx.Module("invoicefeed",
	fx.Provide(NewMatcher),
)
