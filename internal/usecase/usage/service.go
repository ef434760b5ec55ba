package usage

import (
	"context"
	"fmt"
	"time"

	domusage "github.com/kailas-cloud/localsearch/internal/domain/usage"
)

// Report window limits, in days.
const (
	DefaultReportDays = 7
	MaxReportDays     = 31
)

// Service builds search usage reports.
type Service struct {
	counter Counter
	now     func() time.Time
}

// New creates a Service.
func New(counter Counter) *Service {
	return &Service{counter: counter, now: time.Now}
}

// GetReport returns the daily search counts of index for the last days days,
// today included, oldest first. days is clamped to [1, MaxReportDays]; zero
// means DefaultReportDays.
func (s *Service) GetReport(ctx context.Context, index string, days int) (domusage.Report, error) {
	switch {
	case days <= 0:
		days = DefaultReportDays
	case days > MaxReportDays:
		days = MaxReportDays
	}

	today := domusage.TruncateToDay(s.now())
	counts := make([]domusage.DailyCount, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		n, err := s.counter.Count(ctx, index, day)
		if err != nil {
			return domusage.Report{}, fmt.Errorf("count %s: %w", day.Format(domusage.DayFormat), err)
		}
		counts = append(counts, domusage.NewDailyCount(day, n))
	}
	return domusage.NewReport(index, counts), nil
}
