package usage

import "time"

// DayFormat is the layout of day keys in usage storage and reports.
const DayFormat = "2006-01-02"

// DailyCount is the number of performed searches on one UTC day.
type DailyCount struct {
	day      time.Time
	searches int64
}

// NewDailyCount creates a DailyCount. The day is truncated to UTC midnight.
func NewDailyCount(day time.Time, searches int64) DailyCount {
	return DailyCount{day: TruncateToDay(day), searches: searches}
}

// Day returns the UTC midnight of the counted day.
func (d DailyCount) Day() time.Time { return d.day }

// Searches returns the number of performed searches.
func (d DailyCount) Searches() int64 { return d.searches }

// Report is the search usage of one index over consecutive days, oldest first.
type Report struct {
	index string
	days  []DailyCount
}

// NewReport creates a usage report.
func NewReport(index string, days []DailyCount) Report {
	return Report{index: index, days: days}
}

// Index returns the index the report covers.
func (r Report) Index() string { return r.index }

// Days returns the per-day counts, oldest first.
func (r Report) Days() []DailyCount { return r.days }

// Total sums the searches over all days.
func (r Report) Total() int64 {
	var total int64
	for _, d := range r.days {
		total += d.searches
	}
	return total
}

// TruncateToDay returns UTC midnight of t's day.
func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
