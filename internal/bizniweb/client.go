// Package bizniweb talks to the BizniWeb GraphQL API and turns its paginated
// order list into domain orders.
package bizniweb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/machinebox/graphql"
	"go.uber.org/zap"

	"github.com/vevoretail/orderpulse/internal/order"
)

// ErrAuthentication marks an upstream credential rejection. It is always
// terminal for a run.
var ErrAuthentication = errors.New("authentication_failed")

const defaultPageSize = 30

// Config carries the upstream endpoint and credential.
type Config struct {
	APIURL   string
	APIToken string
	PageSize int
}

// PageRequest addresses one page. Cursor is preferred when known; Index is
// the 1-based fallback used to step over a failed page.
type PageRequest struct {
	Cursor string
	Index  int
}

// Page is one decoded page of orders plus the continuation state.
type Page struct {
	Orders     []order.Order
	Skipped    int
	NextCursor string
	HasNext    bool
	PageIndex  int
	TotalPages int
}

// PageSource is the capability the fetch loop consumes. *Client implements
// it; tests substitute a stub.
type PageSource interface {
	FetchPage(ctx context.Context, from, to time.Time, req PageRequest) (Page, error)
}

// Client wraps a machinebox GraphQL client with the BW-API-Key credential.
type Client struct {
	gql      *graphql.Client
	token    string
	pageSize int
	log      *zap.Logger
}

func NewClient(cfg Config, log *zap.Logger) *Client {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Client{
		gql:      graphql.NewClient(cfg.APIURL),
		token:    cfg.APIToken,
		pageSize: pageSize,
		log:      log.Named("bizniweb"),
	}
}

// FetchPage runs the order list query for one page of the date range and
// decodes the result. Orders that fail decoding are skipped with a warning
// and counted in Page.Skipped.
func (c *Client) FetchPage(ctx context.Context, from, to time.Time, req PageRequest) (Page, error) {
	gqlReq := graphql.NewRequest(orderListQuery)
	gqlReq.Header.Set("BW-API-Key", "Token "+c.token)

	gqlReq.Var("filter", map[string]any{
		"pur_date_from": from.Format("2006-01-02"),
		"pur_date_to":   to.Format("2006-01-02"),
	})
	params := map[string]any{
		"limit":    c.pageSize,
		"order_by": "pur_date",
		"sort":     "ASC",
	}
	if req.Cursor != "" {
		params["cursor"] = req.Cursor
	} else if req.Index > 1 {
		params["page"] = req.Index
	}
	gqlReq.Var("params", params)

	var resp orderListResponse
	if err := c.gql.Run(ctx, gqlReq, &resp); err != nil {
		if isAuthMessage(err) {
			return Page{}, fmt.Errorf("%w: %v", ErrAuthentication, err)
		}
		return Page{}, fmt.Errorf("getOrderList page %d: %w", req.Index, err)
	}

	page := Page{
		NextCursor: resp.GetOrderList.PageInfo.NextCursor,
		HasNext:    resp.GetOrderList.PageInfo.HasNextPage,
		PageIndex:  resp.GetOrderList.PageInfo.PageIndex,
		TotalPages: resp.GetOrderList.PageInfo.TotalPages,
	}
	page.Orders = make([]order.Order, 0, len(resp.GetOrderList.Data))
	for _, raw := range resp.GetOrderList.Data {
		decoded, err := decodeOrder(raw)
		if err != nil {
			page.Skipped++
			c.log.Warn("skipping malformed order", zap.Error(err))
			continue
		}
		page.Orders = append(page.Orders, decoded)
	}
	return page, nil
}

func isAuthMessage(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"unauthorized", "unauthenticated", "forbidden", "invalid token", "api key"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
