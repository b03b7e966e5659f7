// Package aggregate computes grouped order summaries in a single pass over
// the flattened row stream.
package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vevoretail/orderpulse/internal/flatten"
)

// Record is one grouped summary line. Date is zero for product-only
// groupings and Product empty for date-only ones. Revenue is tax-exclusive.
type Record struct {
	Date       time.Time
	Product    string
	Quantity   int64
	Revenue    decimal.Decimal
	OrderCount int
	RowCount   int
}

// Snapshot holds the three simultaneous groupings, each sorted for output:
// date-keyed groupings ascending by date, product-only by descending revenue.
type Snapshot struct {
	ByDateProduct []Record
	ByDate        []Record
	ByProduct     []Record
}

type bucket struct {
	date     time.Time
	product  string
	quantity int64
	revenue  decimal.Decimal
	orders   map[string]struct{}
	rows     int
}

// Accumulator folds flattened rows into per-key buckets. It is not safe for
// concurrent use; the pipeline feeds it from a single goroutine.
type Accumulator struct {
	byDateProduct map[string]*bucket
	byDate        map[string]*bucket
	byProduct     map[string]*bucket
}

func New() *Accumulator {
	return &Accumulator{
		byDateProduct: make(map[string]*bucket),
		byDate:        make(map[string]*bucket),
		byProduct:     make(map[string]*bucket),
	}
}

// Accumulate folds one row into all three groupings. Revenue uses the
// tax-exclusive line total so every aggregate shares the same basis.
func (a *Accumulator) Accumulate(row flatten.Row) {
	day := row.Date.Format("2006-01-02")
	a.add(a.byDateProduct, day+"\x00"+row.ItemLabel, row.Date, row.ItemLabel, row)
	a.add(a.byDate, day, row.Date, "", row)
	a.add(a.byProduct, row.ItemLabel, time.Time{}, row.ItemLabel, row)
}

// AccumulateAll folds a whole row stream.
func (a *Accumulator) AccumulateAll(rows []flatten.Row) {
	for _, row := range rows {
		a.Accumulate(row)
	}
}

func (a *Accumulator) add(group map[string]*bucket, key string, date time.Time, product string, row flatten.Row) {
	b, ok := group[key]
	if !ok {
		b = &bucket{
			date:    date,
			product: product,
			revenue: decimal.Zero,
			orders:  make(map[string]struct{}),
		}
		group[key] = b
	}
	b.quantity += row.ItemQuantity
	b.revenue = b.revenue.Add(row.ItemTotalWithoutTax)
	// Distinct orders, not rows: one order can hit the same key with
	// several line items.
	b.orders[row.OrderID] = struct{}{}
	b.rows++
}

// Snapshot renders the current buckets as sorted read-only records. Calling
// it does not disturb accumulator state, so repeated snapshots over the same
// input are identical.
func (a *Accumulator) Snapshot() Snapshot {
	snap := Snapshot{
		ByDateProduct: collect(a.byDateProduct),
		ByDate:        collect(a.byDate),
		ByProduct:     collect(a.byProduct),
	}
	sort.Slice(snap.ByDateProduct, func(i, j int) bool {
		ri, rj := snap.ByDateProduct[i], snap.ByDateProduct[j]
		if !ri.Date.Equal(rj.Date) {
			return ri.Date.Before(rj.Date)
		}
		return ri.Product < rj.Product
	})
	sort.Slice(snap.ByDate, func(i, j int) bool {
		return snap.ByDate[i].Date.Before(snap.ByDate[j].Date)
	})
	sort.Slice(snap.ByProduct, func(i, j int) bool {
		ri, rj := snap.ByProduct[i], snap.ByProduct[j]
		if !ri.Revenue.Equal(rj.Revenue) {
			return ri.Revenue.GreaterThan(rj.Revenue)
		}
		return ri.Product < rj.Product
	})
	return snap
}

func collect(group map[string]*bucket) []Record {
	records := make([]Record, 0, len(group))
	for _, b := range group {
		records = append(records, Record{
			Date:       b.date,
			Product:    b.product,
			Quantity:   b.quantity,
			Revenue:    b.revenue,
			OrderCount: len(b.orders),
			RowCount:   b.rows,
		})
	}
	return records
}
