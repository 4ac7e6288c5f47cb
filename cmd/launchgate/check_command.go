package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/launchgate/health"
	"github.com/jonwraymond/launchgate/observe"
	"github.com/jonwraymond/launchgate/report"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var reportPath string
	var format string
	var only []string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the launch checks and gate on the verdict",
		Long: `Run every configured check concurrently and print the report.

Exits 1 when a CRITICAL check did not pass. Warnings are printed but do not
block the launch.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if format != "table" && format != "json" {
				return fmt.Errorf("unknown format %q (want table or json)", format)
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			reg, err := selectedRegistry(cfg, only)
			if err != nil {
				return err
			}

			rt, err := newRuntime(cmd.Context(), cfg, reg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = rt.close(cmd.Context()) }()

			rt.observer.Logger().Info(cmd.Context(), "launch validation started",
				observe.Field{Key: "checks", Value: reg.Len()},
			)
			r := rt.validator.ValidateAll(cmd.Context())

			path := reportPath
			if !cmd.Flags().Changed("report") {
				path = cfg.Gate.ReportPath
			}
			if path != "" {
				if err := report.WriteFile(cmd.Context(), path, r); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				if err := report.Encode(out, r); err != nil {
					return fmt.Errorf("print report: %w", err)
				}
			default:
				fmt.Fprintln(out, report.RenderTable(r, report.ColorEnabled(out)))
			}

			if r.Overall == health.OverallDegraded {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", report.Headline(r))
			}
			if code := r.ExitCode(); code != health.ExitOK {
				return &gateError{code: code, message: report.Headline(r)}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&reportPath, "report", "", "Write the JSON report to this path (default gate.report_path, empty disables)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table or json")
	cmd.Flags().StringSliceVar(&only, "only", nil, "Run only these check ids (repeatable)")
	return cmd
}
