package health

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// Launch gate exit codes.
const (
	ExitOK      = 0
	ExitBlocked = 1
)

// Summary counts results by status.
type Summary struct {
	Total    int `json:"total"`
	Passed   int `json:"passed"`
	Failed   int `json:"failed"`
	TimedOut int `json:"timedOut"`
	Errored  int `json:"errored"`
}

// Report is the aggregated outcome of one validation run.
//
// A Report is never modified after Build returns it; consumers should treat
// its slices as read-only.
type Report struct {
	RunID            string        `json:"runId"`
	Overall          Overall       `json:"overall"`
	CriticalFailures []CheckResult `json:"criticalFailures"`
	Warnings         []CheckResult `json:"warnings"`
	AllResults       []CheckResult `json:"allResults"`
	Summary          Summary       `json:"summary"`
	GeneratedAt      time.Time     `json:"generatedAt"`
}

// ExitCode maps the verdict to a launch gate exit status.
func (r Report) ExitCode() int {
	if len(r.CriticalFailures) > 0 {
		return ExitBlocked
	}
	return ExitOK
}

// Result returns the result recorded for id.
func (r Report) Result(id string) (CheckResult, bool) {
	for _, result := range r.AllResults {
		if result.ID == id {
			return result, true
		}
	}
	return CheckResult{}, false
}

// ReportBuilder assembles reports.
type ReportBuilder struct {
	// Now stamps GeneratedAt.
	// Default: time.Now
	Now func() time.Time

	// NewID generates run ids.
	// Default: random UUID
	NewID func() string
}

// Build returns an immutable report. The input slices are copied.
func (b ReportBuilder) Build(overall Overall, critical, warnings, all []CheckResult) Report {
	now := b.Now
	if now == nil {
		now = time.Now
	}
	newID := b.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	return Report{
		RunID:            newID(),
		Overall:          overall,
		CriticalFailures: cloneResults(critical),
		Warnings:         cloneResults(warnings),
		AllResults:       cloneResults(all),
		Summary:          summarize(all),
		GeneratedAt:      now().UTC(),
	}
}

func summarize(results []CheckResult) Summary {
	s := Summary{Total: len(results)}
	for _, result := range results {
		switch result.Status {
		case StatusPass:
			s.Passed++
		case StatusFail:
			s.Failed++
		case StatusTimeout:
			s.TimedOut++
		case StatusError:
			s.Errored++
		}
	}
	return s
}

// cloneResults copies results and their Details maps.
func cloneResults(results []CheckResult) []CheckResult {
	out := make([]CheckResult, len(results))
	for i, result := range results {
		result.Details = maps.Clone(result.Details)
		out[i] = result
	}
	return out
}
