package main

import (
	"fmt"
	"net/url"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonwraymond/launchgate/config"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the configured checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(cfg.Checks) == 0 {
				fmt.Fprintln(out, "No checks configured.")
				return nil
			}

			tw := table.NewWriter()
			tw.SetStyle(table.StyleLight)
			tw.AppendHeader(table.Row{"ID", "Severity", "Timeout", "Type", "Target"})
			for _, check := range cfg.Checks {
				tw.AppendRow(table.Row{check.ID, check.Severity, check.Timeout, check.Type, target(check)})
			}
			fmt.Fprintln(out, tw.Render())
			return nil
		},
	}
}

// target names what a check probes, without credentials.
func target(check config.Check) string {
	switch check.Type {
	case config.TypeHTTP:
		if u, err := url.Parse(check.URL); err == nil {
			return u.Redacted()
		}
		return check.URL
	case config.TypeTCP:
		return check.Address
	case config.TypeCommand:
		if check.VersionConstraint != "" {
			return check.Command + " " + check.VersionConstraint
		}
		return check.Command
	case config.TypeDirectory:
		if check.Writable {
			return check.Path + " (rw)"
		}
		return check.Path
	case config.TypeSQLite:
		return "sqlite"
	case config.TypeMemory:
		return fmt.Sprintf("heap < %.0f%%", check.HeapRatio()*100)
	case config.TypeEnv:
		return fmt.Sprintf("%d variable(s)", len(check.Vars))
	default:
		return ""
	}
}
