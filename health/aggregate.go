package health

// Aggregate reduces results into the verdict, the critical failures and the
// warnings. Non-passing CRITICAL results become critical failures, non-passing
// WARNING results become warnings and INFO results are ignored. Order within
// each sequence follows the order of results.
func Aggregate(results []CheckResult) (Overall, []CheckResult, []CheckResult) {
	critical := make([]CheckResult, 0)
	warnings := make([]CheckResult, 0)

	for _, result := range results {
		if result.Status == StatusPass {
			continue
		}
		switch result.Severity {
		case SeverityCritical:
			critical = append(critical, result)
		case SeverityWarning:
			warnings = append(warnings, result)
		}
	}

	return Verdict(len(critical), len(warnings)), critical, warnings
}

// Verdict applies the three-tier rule to failure counts.
func Verdict(criticalFailures, warnings int) Overall {
	switch {
	case criticalFailures > 0:
		return OverallFailed
	case warnings > 0:
		return OverallDegraded
	default:
		return OverallHealthy
	}
}
