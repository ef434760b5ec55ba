package health

import (
	"context"
	"sort"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

type namedChecker struct {
	name    string
	checker Checker
}

// Service coordinates health checks over named components.
type Service struct {
	checks []namedChecker
}

// New creates a Service with no components; it reports Healthy.
func New() *Service {
	return &Service{}
}

// With registers a component. A nil checker is ignored.
func (s *Service) With(name string, c Checker) *Service {
	if c != nil {
		s.checks = append(s.checks, namedChecker{name: name, checker: c})
		sort.SliceStable(s.checks, func(i, j int) bool { return s.checks[i].name < s.checks[j].name })
	}
	return s
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.checks))
	status := Healthy

	for _, nc := range s.checks {
		if err := nc.checker.Ping(ctx); err != nil {
			checks[nc.name] = CheckError
			status = Degraded
			continue
		}
		checks[nc.name] = CheckOK
	}

	return Report{Status: status, Checks: checks}
}
