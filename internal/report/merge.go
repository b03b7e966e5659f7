// Package report joins daily order aggregates with ad spend and renders the
// daily summary artifacts.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	adsdomain "github.com/vevoretail/orderpulse/internal/adspend/domain"
	"github.com/vevoretail/orderpulse/internal/aggregate"
)

var hundred = decimal.NewFromInt(100)

// DailySummary is one merged day. ROIValid is false when there was no spend
// for the day; the ROI column is then reported as undefined rather than a
// fabricated zero.
type DailySummary struct {
	Date       time.Time
	Quantity   int64
	Revenue    decimal.Decimal
	OrderCount int
	RowCount   int

	GoogleSpend   decimal.Decimal
	FacebookSpend decimal.Decimal
	TotalSpend    decimal.Decimal

	ROIValid   bool
	ROIPercent decimal.Decimal
}

// Merge outer-joins the date aggregates with the per-platform spend series.
// A date with orders but no spend gets zero spend; a date with spend but no
// orders gets zero order metrics.
func Merge(byDate []aggregate.Record, spend map[adsdomain.Platform]map[string]adsdomain.SpendRecord) []DailySummary {
	days := make(map[string]*DailySummary)

	get := func(key string, date time.Time) *DailySummary {
		if row, ok := days[key]; ok {
			return row
		}
		row := &DailySummary{
			Date:          date,
			Revenue:       decimal.Zero,
			GoogleSpend:   decimal.Zero,
			FacebookSpend: decimal.Zero,
			TotalSpend:    decimal.Zero,
			ROIPercent:    decimal.Zero,
		}
		days[key] = row
		return row
	}

	for _, rec := range byDate {
		row := get(rec.Date.Format("2006-01-02"), rec.Date)
		row.Quantity = rec.Quantity
		row.Revenue = rec.Revenue
		row.OrderCount = rec.OrderCount
		row.RowCount = rec.RowCount
	}

	for platform, series := range spend {
		for key, rec := range series {
			row := get(key, adsdomain.Day(rec.Date))
			switch platform {
			case adsdomain.PlatformGoogleAds:
				row.GoogleSpend = row.GoogleSpend.Add(rec.Amount)
			case adsdomain.PlatformFacebook:
				row.FacebookSpend = row.FacebookSpend.Add(rec.Amount)
			}
		}
	}

	out := make([]DailySummary, 0, len(days))
	for _, row := range days {
		row.TotalSpend = row.GoogleSpend.Add(row.FacebookSpend)
		if row.TotalSpend.IsPositive() {
			row.ROIValid = true
			row.ROIPercent = row.Revenue.Div(row.TotalSpend).Mul(hundred).Round(1)
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Totals folds a merged series into a single summary line for the report
// header. The total ROI is computed over the summed values, not averaged.
func Totals(rows []DailySummary) DailySummary {
	total := DailySummary{
		Revenue:       decimal.Zero,
		GoogleSpend:   decimal.Zero,
		FacebookSpend: decimal.Zero,
		TotalSpend:    decimal.Zero,
		ROIPercent:    decimal.Zero,
	}
	for _, row := range rows {
		total.Quantity += row.Quantity
		total.Revenue = total.Revenue.Add(row.Revenue)
		total.OrderCount += row.OrderCount
		total.RowCount += row.RowCount
		total.GoogleSpend = total.GoogleSpend.Add(row.GoogleSpend)
		total.FacebookSpend = total.FacebookSpend.Add(row.FacebookSpend)
	}
	total.TotalSpend = total.GoogleSpend.Add(total.FacebookSpend)
	if total.TotalSpend.IsPositive() {
		total.ROIValid = true
		total.ROIPercent = total.Revenue.Div(total.TotalSpend).Mul(hundred).Round(1)
	}
	return total
}
