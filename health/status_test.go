package health

import (
	"testing"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in      string
		want    Severity
		wantErr bool
	}{
		{"CRITICAL", SeverityCritical, false},
		{"critical", SeverityCritical, false},
		{" warning ", SeverityWarning, false},
		{"warn", SeverityWarning, false},
		{"Info", SeverityInfo, false},
		{"fatal", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSeverity(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSeverity(%q) error = %v", tt.in, err)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseSeverity(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTextEncoding(t *testing.T) {
	for _, s := range []CheckStatus{StatusPass, StatusFail, StatusTimeout, StatusError} {
		text, _ := s.MarshalText()
		var back CheckStatus
		if err := back.UnmarshalText(text); err != nil || back != s {
			t.Errorf("status %v round-tripped to %v (%v)", s, back, err)
		}
	}
	for _, o := range []Overall{OverallHealthy, OverallDegraded, OverallFailed} {
		text, _ := o.MarshalText()
		var back Overall
		if err := back.UnmarshalText(text); err != nil || back != o {
			t.Errorf("overall %v round-tripped to %v (%v)", o, back, err)
		}
	}

	var s CheckStatus
	if err := s.UnmarshalText([]byte("MAYBE")); err == nil {
		t.Error("unknown status should fail")
	}
}

func TestStringsUnknown(t *testing.T) {
	if CheckStatus(99).String() != "UNKNOWN" || Overall(99).String() != "UNKNOWN" || Severity(99).String() != "UNKNOWN" {
		t.Error("out-of-range values should print UNKNOWN")
	}
	if Severity(99).Valid() {
		t.Error("Severity(99) should be invalid")
	}
}
