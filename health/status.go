package health

import (
	"fmt"
	"strings"
)

// Severity classifies how a failing check affects the overall verdict.
type Severity int

const (
	// SeverityCritical failures block launch.
	SeverityCritical Severity = iota
	// SeverityWarning failures degrade but do not block.
	SeverityWarning
	// SeverityInfo results are informational only.
	SeverityInfo
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether s is one of the defined severities.
func (s Severity) Valid() bool {
	return s >= SeverityCritical && s <= SeverityInfo
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("health: unknown severity %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity parses a severity name, ignoring case and surrounding space.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "CRITICAL":
		return SeverityCritical, nil
	case "WARNING", "WARN":
		return SeverityWarning, nil
	case "INFO":
		return SeverityInfo, nil
	default:
		return 0, fmt.Errorf("health: unknown severity %q", name)
	}
}

// CheckStatus is the terminal state of one probe execution.
type CheckStatus int

const (
	// StatusPass indicates the probe completed and reported success.
	StatusPass CheckStatus = iota
	// StatusFail indicates the probe completed and reported failure.
	StatusFail
	// StatusTimeout indicates the probe did not complete within its timeout.
	StatusTimeout
	// StatusError indicates the probe returned an error or panicked.
	StatusError
)

// String returns the string representation of the status.
func (s CheckStatus) String() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusFail:
		return "FAIL"
	case StatusTimeout:
		return "TIMEOUT"
	case StatusError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s CheckStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *CheckStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "PASS":
		*s = StatusPass
	case "FAIL":
		*s = StatusFail
	case "TIMEOUT":
		*s = StatusTimeout
	case "ERROR":
		*s = StatusError
	default:
		return fmt.Errorf("health: unknown status %q", text)
	}
	return nil
}

// Overall is the readiness verdict of a validation run.
type Overall int

const (
	// OverallHealthy indicates no CRITICAL or WARNING check failed.
	OverallHealthy Overall = iota
	// OverallDegraded indicates only WARNING checks failed.
	OverallDegraded
	// OverallFailed indicates at least one CRITICAL check failed.
	OverallFailed
)

// String returns the string representation of the verdict.
func (o Overall) String() string {
	switch o {
	case OverallHealthy:
		return "HEALTHY"
	case OverallDegraded:
		return "DEGRADED"
	case OverallFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Overall) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Overall) UnmarshalText(text []byte) error {
	switch string(text) {
	case "HEALTHY":
		*o = OverallHealthy
	case "DEGRADED":
		*o = OverallDegraded
	case "FAILED":
		*o = OverallFailed
	default:
		return fmt.Errorf("health: unknown verdict %q", text)
	}
	return nil
}
