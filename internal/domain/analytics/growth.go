package analytics

import (
	"time"

	"github.com/okian/dexkeeper/internal/domain/model"
)

// fallbackYears is how far back the series starts when no record is dated.
const fallbackYears = 10

// MonthBucket holds the catches of one calendar month.
type MonthBucket struct {
	Month      string    `json:"month"` // "2006-01"
	Start      time.Time `json:"start"`
	Caught     int       `json:"caught"`
	Shiny      int       `json:"shiny"`
	Cumulative int       `json:"cumulative"`
}

type monthCount struct {
	caught int
	shiny  int
}

// GrowthSeries buckets dated records by capture month, from the earliest
// capture month through the month of now. Records without a usable capture
// date are skipped, as are months after now. When no record is dated the
// series starts ten years before now; when every record is dated after now it
// holds just the month of now.
func GrowthSeries(records []model.Pokemon, now time.Time) []MonthBucket {
	byMonth := make(map[time.Time]*monthCount)
	var earliest time.Time
	dated := false

	for _, p := range records {
		at, ok := p.CaughtAt()
		if !ok {
			continue
		}
		m := monthStart(at)
		c := byMonth[m]
		if c == nil {
			c = &monthCount{}
			byMonth[m] = c
		}
		c.caught++
		if p.Shiny {
			c.shiny++
		}
		if !dated || m.Before(earliest) {
			earliest = m
			dated = true
		}
	}

	end := monthStart(now)
	start := monthStart(now.AddDate(-fallbackYears, 0, 0))
	if dated {
		start = earliest
	}
	if start.After(end) {
		start = end
	}

	out := make([]MonthBucket, 0)
	cumulative := 0
	for m := start; !m.After(end); m = m.AddDate(0, 1, 0) {
		b := MonthBucket{Month: m.Format("2006-01"), Start: m}
		if c := byMonth[m]; c != nil {
			b.Caught = c.caught
			b.Shiny = c.shiny
		}
		cumulative += b.Caught
		b.Cumulative = cumulative
		out = append(out, b)
	}
	return out
}

// monthStart truncates t to the first day of its calendar month in UTC.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
