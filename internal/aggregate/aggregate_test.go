package aggregate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vevoretail/orderpulse/internal/flatten"
	"github.com/vevoretail/orderpulse/internal/order"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func row(orderID, product, date string, qty int64, netTotal string) flatten.Row {
	return flatten.Row{
		OrderID:             orderID,
		Date:                day(date),
		ItemLabel:           product,
		ItemQuantity:        qty,
		ItemTotalWithoutTax: decimal.RequireFromString(netTotal),
	}
}

func TestAccumulateThreeGroupings(t *testing.T) {
	acc := New()
	acc.AccumulateAll([]flatten.Row{
		row("1", "A", "2024-01-01", 2, "20.00"),
		row("1", "B", "2024-01-01", 1, "5.00"),
		row("2", "A", "2024-01-01", 3, "30.00"),
		row("3", "A", "2024-01-02", 1, "10.00"),
	})
	snap := acc.Snapshot()

	require.Len(t, snap.ByDateProduct, 3)
	require.Len(t, snap.ByDate, 2)
	require.Len(t, snap.ByProduct, 2)

	// (2024-01-01, A): two orders, combined quantity and revenue.
	dpA := snap.ByDateProduct[0]
	assert.Equal(t, "A", dpA.Product)
	assert.Equal(t, int64(5), dpA.Quantity)
	assert.True(t, dpA.Revenue.Equal(decimal.RequireFromString("50.00")))
	assert.Equal(t, 2, dpA.OrderCount)

	// Date grouping counts distinct orders, not rows.
	d1 := snap.ByDate[0]
	assert.Equal(t, day("2024-01-01"), d1.Date)
	assert.Equal(t, int64(6), d1.Quantity)
	assert.True(t, d1.Revenue.Equal(decimal.RequireFromString("55.00")))
	assert.Equal(t, 2, d1.OrderCount)
	assert.Equal(t, 3, d1.RowCount)

	// Product grouping is sorted by descending revenue.
	assert.Equal(t, "A", snap.ByProduct[0].Product)
	assert.True(t, snap.ByProduct[0].Revenue.Equal(decimal.RequireFromString("60.00")))
	assert.Equal(t, 3, snap.ByProduct[0].OrderCount)
	assert.Equal(t, "B", snap.ByProduct[1].Product)
}

func TestDateOrderingAscending(t *testing.T) {
	acc := New()
	acc.AccumulateAll([]flatten.Row{
		row("1", "A", "2024-03-05", 1, "1.00"),
		row("2", "A", "2024-01-20", 1, "1.00"),
		row("3", "A", "2024-02-11", 1, "1.00"),
	})
	snap := acc.Snapshot()
	require.Len(t, snap.ByDate, 3)
	assert.Equal(t, day("2024-01-20"), snap.ByDate[0].Date)
	assert.Equal(t, day("2024-02-11"), snap.ByDate[1].Date)
	assert.Equal(t, day("2024-03-05"), snap.ByDate[2].Date)
}

func TestSnapshotIdempotent(t *testing.T) {
	acc := New()
	acc.AccumulateAll([]flatten.Row{
		row("1", "A", "2024-01-01", 2, "20.00"),
		row("2", "B", "2024-01-02", 1, "7.50"),
	})
	first := acc.Snapshot()
	second := acc.Snapshot()
	assert.Equal(t, first, second)
}

func TestCancelledOrderExcludedScenario(t *testing.T) {
	// Filtering runs before aggregation; the accumulator only ever sees
	// rows from the kept orders.
	orders := []order.Order{
		{
			ID: "1", Number: "ORD-1", Status: order.StatusSent,
			PurchaseDate: day("2024-01-01"),
			Items: []order.LineItem{
				{Label: "A", Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
			},
		},
		{
			ID: "2", Number: "ORD-2", Status: order.StatusCancelled,
			PurchaseDate: day("2024-01-01"),
			Items: []order.LineItem{
				{Label: "B", Quantity: 5, UnitPrice: decimal.NewFromInt(3)},
			},
		},
	}
	kept, dropped := order.Partition(orders, order.NotCancelled)
	assert.Equal(t, 1, dropped)

	acc := New()
	acc.AccumulateAll(flatten.FlattenAll(kept))
	snap := acc.Snapshot()

	require.Len(t, snap.ByDate, 1)
	assert.Equal(t, int64(2), snap.ByDate[0].Quantity)
	assert.True(t, snap.ByDate[0].Revenue.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, 1, snap.ByDate[0].OrderCount)
	for _, rec := range snap.ByProduct {
		assert.NotEqual(t, "B", rec.Product)
	}
}

// TestCompletenessAgainstNaiveRecomputation cross-checks the single-pass
// accumulator against a direct per-key recomputation over the same rows.
func TestCompletenessAgainstNaiveRecomputation(t *testing.T) {
	rows := []flatten.Row{
		row("1", "A", "2024-01-01", 2, "20.00"),
		row("1", "A", "2024-01-01", 1, "10.00"),
		row("2", "B", "2024-01-01", 4, "12.00"),
		row("3", "A", "2024-01-02", 1, "10.00"),
		row("3", "B", "2024-01-02", 2, "6.00"),
		row("4", "C", "2024-01-03", 7, "70.70"),
	}
	acc := New()
	acc.AccumulateAll(rows)
	snap := acc.Snapshot()

	for _, rec := range snap.ByDateProduct {
		qty := int64(0)
		revenue := decimal.Zero
		orderIDs := map[string]struct{}{}
		for _, r := range rows {
			if r.Date.Equal(rec.Date) && r.ItemLabel == rec.Product {
				qty += r.ItemQuantity
				revenue = revenue.Add(r.ItemTotalWithoutTax)
				orderIDs[r.OrderID] = struct{}{}
			}
		}
		assert.Equal(t, qty, rec.Quantity, "key (%s, %s)", rec.Date, rec.Product)
		assert.True(t, revenue.Equal(rec.Revenue), "key (%s, %s)", rec.Date, rec.Product)
		assert.Equal(t, len(orderIDs), rec.OrderCount, "key (%s, %s)", rec.Date, rec.Product)
	}
}
