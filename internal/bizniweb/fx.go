package bizniweb

import (
	"go.uber.org/fx"

	"github.com/vevoretail/orderpulse/internal/config"
)

var Module = fx.Module("bizniweb",
	fx.Provide(ProvideConfig),
	fx.Provide(NewClient),
	fx.Provide(func(c *Client) PageSource { return c }),
	fx.Provide(NewFetcher),
)

func ProvideConfig(cfg config.Config) Config {
	return Config{
		APIURL:   cfg.BizniWebAPIURL,
		APIToken: cfg.BizniWebAPIToken,
		PageSize: cfg.Pipeline.PageSize,
	}
}
