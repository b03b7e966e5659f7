package export

import (
	"fmt"
	"time"

	"github.com/vevoretail/orderpulse/internal/clock"
)

// ResolveRange turns optional YYYY-MM-DD flag values into a concrete range.
// An empty "to" means today; an empty "from" means defaultDays before "to".
func ResolveRange(fromStr, toStr string, defaultDays int, clk clock.Clock) (DateRange, error) {
	to := day(clk.Now())
	if toStr != "" {
		parsed, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid to date %q: %w", toStr, err)
		}
		to = parsed
	}

	from := to.AddDate(0, 0, -defaultDays)
	if fromStr != "" {
		parsed, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid from date %q: %w", fromStr, err)
		}
		from = parsed
	}

	if to.Before(from) {
		return DateRange{}, fmt.Errorf("invalid date range: %s after %s",
			from.Format("2006-01-02"), to.Format("2006-01-02"))
	}
	return DateRange{From: from, To: to}, nil
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
