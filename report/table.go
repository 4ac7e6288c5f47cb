package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/jonwraymond/launchgate/health"
)

// RenderTable renders every result in registration order, with the verdict
// and summary in the footer.
func RenderTable(r health.Report, colorize bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	tw.AppendHeader(table.Row{"Check", "Severity", "Status", "Duration", "Message"})
	for _, result := range r.AllResults {
		tw.AppendRow(table.Row{
			result.ID,
			result.Severity.String(),
			paint(result.Status.String(), statusColor(result.Status), colorize),
			formatDuration(result.Duration),
			result.Message,
		})
	}

	tw.AppendFooter(table.Row{
		"Overall",
		"",
		paint(r.Overall.String(), overallColor(r.Overall), colorize),
		"",
		fmt.Sprintf("%d passed, %d failed, %d timed out, %d errored",
			r.Summary.Passed, r.Summary.Failed, r.Summary.TimedOut, r.Summary.Errored),
	})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, WidthMax: 60},
	})

	return tw.Render()
}

// Headline summarizes the verdict in one line, naming the checks behind it.
func Headline(r health.Report) string {
	switch r.Overall {
	case health.OverallFailed:
		return fmt.Sprintf("launch blocked by %d critical failure(s): %s",
			len(r.CriticalFailures), describe(r.CriticalFailures))
	case health.OverallDegraded:
		return fmt.Sprintf("launch degraded by %d warning(s): %s",
			len(r.Warnings), describe(r.Warnings))
	default:
		return fmt.Sprintf("launch ready: %d check(s) evaluated", r.Summary.Total)
	}
}

func describe(results []health.CheckResult) string {
	parts := make([]string, 0, len(results))
	for _, result := range results {
		parts = append(parts, fmt.Sprintf("%s (%s)", result.ID, result.Status))
	}
	return strings.Join(parts, ", ")
}

func statusColor(s health.CheckStatus) text.Colors {
	switch s {
	case health.StatusPass:
		return text.Colors{text.FgGreen}
	case health.StatusFail, health.StatusError:
		return text.Colors{text.FgRed}
	default:
		return text.Colors{text.FgYellow}
	}
}

func overallColor(o health.Overall) text.Colors {
	switch o {
	case health.OverallHealthy:
		return text.Colors{text.FgGreen, text.Bold}
	case health.OverallDegraded:
		return text.Colors{text.FgYellow, text.Bold}
	default:
		return text.Colors{text.FgRed, text.Bold}
	}
}

func paint(s string, colors text.Colors, colorize bool) string {
	if !colorize {
		return s
	}
	return colors.Sprint(s)
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return d.Round(10 * time.Millisecond).String()
	case d >= time.Millisecond:
		return d.Round(100 * time.Microsecond).String()
	default:
		return d.String()
	}
}
