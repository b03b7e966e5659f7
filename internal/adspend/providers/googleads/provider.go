// Package googleads reads the daily cost series from the Google Ads API.
package googleads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vevoretail/orderpulse/internal/adspend/domain"
)

const defaultEndpoint = "https://googleads.googleapis.com/v17"

// Doer is the authorized HTTP capability the provider consumes. OAuth token
// refresh happens outside the pipeline.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	CustomerID     string
	DeveloperToken string
	AccessToken    string
	Endpoint       string
	Currency       string
}

func (c Config) configured() bool {
	return c.CustomerID != "" && c.DeveloperToken != "" && c.AccessToken != ""
}

type Provider struct {
	cfg  Config
	http Doer
	log  *zap.Logger
}

func New(cfg Config, httpClient Doer, log *zap.Logger) *Provider {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.Currency == "" {
		cfg.Currency = "EUR"
	}
	return &Provider{cfg: cfg, http: httpClient, log: log.Named("googleads")}
}

func (p *Provider) Platform() domain.Platform { return domain.PlatformGoogleAds }

type searchRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	Results []struct {
		Segments struct {
			Date string `json:"date"`
		} `json:"segments"`
		Metrics struct {
			CostMicros string `json:"costMicros"`
		} `json:"metrics"`
	} `json:"results"`
}

// DailySpend queries account-level cost per day over the range. Cost comes
// back in micros and is converted with decimal arithmetic.
func (p *Provider) DailySpend(ctx context.Context, from, to time.Time) ([]domain.SpendRecord, error) {
	if !p.cfg.configured() {
		return nil, domain.ErrNotConfigured
	}

	query := fmt.Sprintf(
		"SELECT segments.date, metrics.cost_micros FROM customer WHERE segments.date BETWEEN '%s' AND '%s' ORDER BY segments.date",
		from.Format("2006-01-02"),
		to.Format("2006-01-02"),
	)
	body, err := json.Marshal(searchRequest{Query: query})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/customers/%s/googleAds:search", p.cfg.Endpoint, p.cfg.CustomerID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.cfg.AccessToken)
	req.Header.Set("developer-token", p.cfg.DeveloperToken)

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google ads search: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("google ads search: status %d: %s", resp.StatusCode, payload)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("google ads response: %w", err)
	}

	records := make([]domain.SpendRecord, 0, len(decoded.Results))
	for _, result := range decoded.Results {
		date, err := time.Parse("2006-01-02", result.Segments.Date)
		if err != nil {
			p.log.Warn("skipping row with bad date", zap.String("date", result.Segments.Date))
			continue
		}
		micros, err := strconv.ParseInt(result.Metrics.CostMicros, 10, 64)
		if err != nil {
			p.log.Warn("skipping row with bad cost", zap.String("cost_micros", result.Metrics.CostMicros))
			continue
		}
		records = append(records, domain.SpendRecord{
			Date:     date,
			Platform: domain.PlatformGoogleAds,
			Amount:   decimal.New(micros, -6),
			Currency: p.cfg.Currency,
		})
	}
	return records, nil
}
