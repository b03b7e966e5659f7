// Package invoicefeed selects orders that still need an invoice. It only
// produces the decision artifact; invoice creation itself happens elsewhere.
package invoicefeed

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vevoretail/orderpulse/internal/order"
)

// Candidate is one order selected for invoice creation.
type Candidate struct {
	OrderID      string
	OrderNumber  string
	PurchaseDate time.Time
	StatusLabel  string
	Payment      order.PaymentMethod

	CustomerName  string
	CustomerEmail string

	Total    decimal.Decimal
	Currency string
	Items    int
}

type Matcher struct {
	log *zap.Logger
}

func NewMatcher(log *zap.Logger) *Matcher {
	return &Matcher{log: log.Named("invoicefeed")}
}

// Select filters orders down to invoice candidates within the date range.
// The pass is independent of the aggregation path and shares no state with
// it. Cancelled orders can never match: the eligibility statuses exclude
// them by construction.
func (m *Matcher) Select(orders []order.Order, from, to time.Time) []Candidate {
	fromDay := truncate(from)
	toDay := truncate(to)

	candidates := make([]Candidate, 0)
	for _, o := range orders {
		day := o.Date()
		if day.Before(fromDay) || day.After(toDay) {
			continue
		}
		if !order.InvoiceEligible(o) {
			continue
		}
		m.log.Debug("order eligible for invoice",
			zap.String("order_num", o.Number),
			zap.String("status", string(o.Status)),
		)
		candidates = append(candidates, Candidate{
			OrderID:       o.ID,
			OrderNumber:   o.Number,
			PurchaseDate:  o.PurchaseDate,
			StatusLabel:   o.StatusLabel,
			Payment:       o.Payment,
			CustomerName:  o.Customer.Name,
			CustomerEmail: o.Customer.Email,
			Total:         o.TotalWithTax,
			Currency:      o.Currency,
			Items:         len(o.Items),
		})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].PurchaseDate.Equal(candidates[j].PurchaseDate) {
			return candidates[i].PurchaseDate.Before(candidates[j].PurchaseDate)
		}
		return candidates[i].OrderNumber < candidates[j].OrderNumber
	})
	return candidates
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
