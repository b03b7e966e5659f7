package adspend

import (
	"net/http"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/vevoretail/orderpulse/internal/adspend/domain"
	"github.com/vevoretail/orderpulse/internal/adspend/providers/facebook"
	"github.com/vevoretail/orderpulse/internal/adspend/providers/googleads"
	"github.com/vevoretail/orderpulse/internal/adspend/repository"
	"github.com/vevoretail/orderpulse/internal/adspend/service"
	"github.com/vevoretail/orderpulse/internal/clock"
	"github.com/vevoretail/orderpulse/internal/config"
)

var Module = fx.Module("adspend",
	fx.Provide(
		provideHTTPClient,
		repository.NewStore,
		provideGoogleAds,
		provideFacebook,
		provideProviders,
		provideCache,
	),
)

func provideHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

func provideGoogleAds(cfg config.Config, httpClient *http.Client, log *zap.Logger) *googleads.Provider {
	return googleads.New(googleads.Config{
		CustomerID:     cfg.GoogleAds.CustomerID,
		DeveloperToken: cfg.GoogleAds.DeveloperToken,
		AccessToken:    cfg.GoogleAds.AccessToken,
	}, httpClient, log)
}

func provideFacebook(cfg config.Config, httpClient *http.Client, log *zap.Logger) *facebook.Provider {
	return facebook.New(facebook.Config{
		AdAccountID: cfg.Facebook.AdAccountID,
		AccessToken: cfg.Facebook.AccessToken,
	}, httpClient, log)
}

func provideProviders(google *googleads.Provider, fb *facebook.Provider) []domain.Provider {
	return []domain.Provider{google, fb}
}

func provideCache(store *repository.Store, providers []domain.Provider, clk clock.Clock, cfg config.Config, log *zap.Logger) *service.Cache {
	return service.NewCache(store, providers, clk, cfg.Pipeline.CacheFreshDays, log)
}
