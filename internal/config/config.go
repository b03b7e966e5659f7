// Package config loads credentials from the environment and pipeline
// settings from an optional orderpulse.yml.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Module provides the loaded configuration to the fx graph.
var Module = fx.Module("config",
	fx.Provide(Load),
)

// Config holds application configuration. Credentials come from environment
// variables (a .env file is honored in dev); tunables live in Pipeline.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	LogLevel  string
	LogFormat string

	BizniWebAPIURL   string
	BizniWebAPIToken string

	GoogleAds GoogleAdsConfig
	Facebook  FacebookConfig

	Pipeline Pipeline
}

// GoogleAdsConfig identifies the Google Ads account the spend series is read
// from. Token refresh happens outside this process; the pipeline receives a
// ready-to-use access token.
type GoogleAdsConfig struct {
	CustomerID     string
	DeveloperToken string
	AccessToken    string
}

// FacebookConfig identifies the Meta ad account.
type FacebookConfig struct {
	AdAccountID string
	AccessToken string
}

// Load reads the .env file (when present) and the environment.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:     getenv("APP_SERVICE", "orderpulse"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),

		LogLevel:  strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getenv("LOG_FORMAT", "json")),

		BizniWebAPIURL:   getenv("BIZNISWEB_API_URL", "https://vevo.flox.sk/api/graphql"),
		BizniWebAPIToken: strings.TrimSpace(getenv("BIZNISWEB_API_TOKEN", "")),

		GoogleAds: GoogleAdsConfig{
			CustomerID:     strings.ReplaceAll(getenv("GOOGLE_ADS_CUSTOMER_ID", ""), "-", ""),
			DeveloperToken: strings.TrimSpace(getenv("GOOGLE_ADS_DEVELOPER_TOKEN", "")),
			AccessToken:    strings.TrimSpace(getenv("GOOGLE_ADS_ACCESS_TOKEN", "")),
		},
		Facebook: FacebookConfig{
			AdAccountID: strings.TrimSpace(getenv("FACEBOOK_AD_ACCOUNT_ID", "")),
			AccessToken: strings.TrimSpace(getenv("FACEBOOK_ACCESS_TOKEN", "")),
		},

		Pipeline: LoadPipeline(),
	}
	return cfg
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
