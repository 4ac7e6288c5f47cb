package report

import (
	"encoding/json"
	"io"

	"github.com/jonwraymond/launchgate/health"
)

// Encode writes r to w as indented JSON followed by a newline.
func Encode(w io.Writer, r health.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Decode reads a report written by Encode.
func Decode(rd io.Reader) (health.Report, error) {
	var r health.Report
	err := json.NewDecoder(rd).Decode(&r)
	return r, err
}
