// Package facebook reads the daily spend series from the Meta insights API.
package facebook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vevoretail/orderpulse/internal/adspend/domain"
)

const defaultEndpoint = "https://graph.facebook.com/v19.0"

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	AdAccountID string // with or without the act_ prefix
	AccessToken string
	Endpoint    string
}

func (c Config) configured() bool {
	return c.AdAccountID != "" && c.AccessToken != ""
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
	return &Provider{cfg: cfg, http: httpClient, log: log.Named("facebook")}
}

func (p *Provider) Platform() domain.Platform { return domain.PlatformFacebook }

type insightsResponse struct {
	Data []struct {
		Spend           string `json:"spend"`
		DateStart       string `json:"date_start"`
		AccountCurrency string `json:"account_currency"`
	} `json:"data"`
}

// DailySpend queries account-level insights with a daily breakdown.
func (p *Provider) DailySpend(ctx context.Context, from, to time.Time) ([]domain.SpendRecord, error) {
	if !p.cfg.configured() {
		return nil, domain.ErrNotConfigured
	}

	account := p.cfg.AdAccountID
	if len(account) < 4 || account[:4] != "act_" {
		account = "act_" + account
	}

	params := url.Values{}
	params.Set("fields", "spend,date_start,account_currency")
	params.Set("level", "account")
	params.Set("time_increment", "1")
	params.Set("time_range", fmt.Sprintf(`{"since":"%s","until":"%s"}`,
		from.Format("2006-01-02"), to.Format("2006-01-02")))
	params.Set("access_token", p.cfg.AccessToken)

	endpoint := fmt.Sprintf("%s/%s/insights?%s", p.cfg.Endpoint, account, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("facebook insights: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("facebook insights: status %d: %s", resp.StatusCode, payload)
	}

	var decoded insightsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("facebook response: %w", err)
	}

	records := make([]domain.SpendRecord, 0, len(decoded.Data))
	for _, day := range decoded.Data {
		date, err := time.Parse("2006-01-02", day.DateStart)
		if err != nil {
			p.log.Warn("skipping row with bad date", zap.String("date_start", day.DateStart))
			continue
		}
		amount, err := decimal.NewFromString(day.Spend)
		if err != nil {
			p.log.Warn("skipping row with bad spend", zap.String("spend", day.Spend))
			continue
		}
		records = append(records, domain.SpendRecord{
			Date:     date,
			Platform: domain.PlatformFacebook,
			Amount:   amount,
			Currency: day.AccountCurrency,
		})
	}
	return records, nil
}
