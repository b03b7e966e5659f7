package invoicefeed

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vevoretail/orderpulse/internal/order"
)

func eligibleOrder(id, num string, date time.Time) order.Order {
	return order.Order{
		ID:           id,
		Number:       num,
		PurchaseDate: date,
		Status:       order.StatusSent,
		StatusLabel:  "Odoslaná",
		Payment:      order.PaymentCashOnDelivery,
		HasInvoice:   false,
		Currency:     "EUR",
		TotalWithTax: decimal.RequireFromString("36.00"),
		Customer:     order.Customer{Name: "Jana Nováková", Email: "jana@example.sk"},
		Items:        []order.LineItem{{Label: "Widget", Quantity: 1}},
	}
}

func TestSelectEligibility(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	mid := time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC)

	eligible := eligibleOrder("1", "ORD-1", mid)

	awaiting := eligibleOrder("2", "ORD-2", mid)
	awaiting.Status = order.StatusAwaitingProcessing

	invoiced := eligibleOrder("3", "ORD-3", mid)
	invoiced.HasInvoice = true

	cardPaid := eligibleOrder("4", "ORD-4", mid)
	cardPaid.Payment = order.PaymentCard

	cancelled := eligibleOrder("5", "ORD-5", mid)
	cancelled.Status = order.StatusCancelled

	matcher := NewMatcher(zap.NewNop())
	candidates := matcher.Select([]order.Order{eligible, awaiting, invoiced, cardPaid, cancelled}, from, to)

	require.Len(t, candidates, 2)
	assert.Equal(t, "ORD-1", candidates[0].OrderNumber)
	assert.Equal(t, "ORD-2", candidates[1].OrderNumber)
}

func TestSelectDateRange(t *testing.T) {
	from := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)

	before := eligibleOrder("1", "ORD-1", time.Date(2024, 1, 9, 23, 59, 0, 0, time.UTC))
	onFrom := eligibleOrder("2", "ORD-2", time.Date(2024, 1, 10, 0, 1, 0, 0, time.UTC))
	onTo := eligibleOrder("3", "ORD-3", time.Date(2024, 1, 20, 18, 0, 0, 0, time.UTC))
	after := eligibleOrder("4", "ORD-4", time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC))

	matcher := NewMatcher(zap.NewNop())
	candidates := matcher.Select([]order.Order{before, onFrom, onTo, after}, from, to)

	require.Len(t, candidates, 2)
	assert.Equal(t, "ORD-2", candidates[0].OrderNumber)
	assert.Equal(t, "ORD-3", candidates[1].OrderNumber)
}

func TestSelectSortedByDateThenNumber(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	d1 := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 12, 10, 0, 0, 0, time.UTC)

	matcher := NewMatcher(zap.NewNop())
	candidates := matcher.Select([]order.Order{
		eligibleOrder("1", "ORD-9", d2),
		eligibleOrder("2", "ORD-5", d1),
		eligibleOrder("3", "ORD-2", d2),
	}, from, to)

	require.Len(t, candidates, 3)
	assert.Equal(t, "ORD-5", candidates[0].OrderNumber)
	assert.Equal(t, "ORD-2", candidates[1].OrderNumber)
	assert.Equal(t, "ORD-9", candidates[2].OrderNumber)
}

func TestSelectCopiesOrderFields(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	o := eligibleOrder("42", "ORD-42", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))

	matcher := NewMatcher(zap.NewNop())
	candidates := matcher.Select([]order.Order{o}, from, to)
	require.Len(t, candidates, 1)

	c := candidates[0]
	assert.Equal(t, "42", c.OrderID)
	assert.Equal(t, "Jana Nováková", c.CustomerName)
	assert.Equal(t, order.PaymentCashOnDelivery, c.Payment)
	assert.True(t, c.Total.Equal(decimal.RequireFromString("36.00")))
	assert.Equal(t, 1, c.Items)
}
