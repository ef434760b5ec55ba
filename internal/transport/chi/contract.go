package chi

import (
	"context"

	domusage "github.com/kailas-cloud/localsearch/internal/domain/usage"
	healthuc "github.com/kailas-cloud/localsearch/internal/usecase/health"
	localsearch "github.com/kailas-cloud/localsearch/pkg/sdk"
)

// IndexRegistry resolves indexes by ID.
type IndexRegistry interface {
	GetIndex(ctx context.Context, id string, backend localsearch.Backend) (localsearch.Index, error)
	Lookup(id string) (localsearch.Index, error)
	IDs() []string
}

// UsageReporter builds daily search usage reports.
type UsageReporter interface {
	GetReport(ctx context.Context, index string, days int) (domusage.Report, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
