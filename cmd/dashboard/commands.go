package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/garyjia/p2p-dashboard/internal/config"
	"github.com/garyjia/p2p-dashboard/internal/dashboard"
	"github.com/garyjia/p2p-dashboard/internal/decision"
	"github.com/garyjia/p2p-dashboard/internal/logistics"
	"github.com/garyjia/p2p-dashboard/internal/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// render writes v as JSON or the text rendering, per the configured format
func (a *app) render(cmd *cobra.Command, v any, text func(*report.TextFormatter) string) error {
	out := cmd.OutOrStdout()
	if a.cfg.Report.Format == config.FormatJSON {
		return report.WriteJSON(out, v)
	}
	_, err := fmt.Fprintln(out, text(report.NewTextFormatter()))
	return err
}

// panelCmd builds a command that renders one dashboard panel
func panelCmd(a *app, use, short string, run func(*cobra.Command, *dashboard.Service) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			return run(cmd, svc)
		},
	}
}

func summaryCmd(a *app) *cobra.Command {
	return panelCmd(a, "summary", "Show the executive summary", func(cmd *cobra.Command, svc *dashboard.Service) error {
		s := svc.ExecutiveSummary()
		return a.render(cmd, s, func(f *report.TextFormatter) string { return f.FormatExecutive(s) })
	})
}

func agent1Cmd(a *app) *cobra.Command {
	return panelCmd(a, "agent1", "Show the invoice matching panel", func(cmd *cobra.Command, svc *dashboard.Service) error {
		p := svc.Agent1()
		return a.render(cmd, p, func(f *report.TextFormatter) string { return f.FormatMatch(p) })
	})
}

func agent2Cmd(a *app) *cobra.Command {
	return panelCmd(a, "agent2", "Show the root cause analysis panel", func(cmd *cobra.Command, svc *dashboard.Service) error {
		p := svc.Agent2()
		return a.render(cmd, p, func(f *report.TextFormatter) string { return f.FormatRootCause(p) })
	})
}

func agent3Cmd(a *app) *cobra.Command {
	return panelCmd(a, "agent3", "Show the payment block panel", func(cmd *cobra.Command, svc *dashboard.Service) error {
		p := svc.Agent3()
		return a.render(cmd, p, func(f *report.TextFormatter) string { return f.FormatBlock(p) })
	})
}

func optionsCmd(a *app) *cobra.Command {
	return panelCmd(a, "options", "List the available filter values", func(cmd *cobra.Command, svc *dashboard.Service) error {
		o := svc.Options()
		return a.render(cmd, o, func(f *report.TextFormatter) string { return f.FormatOptions(o) })
	})
}

// decisionsOutput is the JSON shape of the decisions command
type decisionsOutput struct {
	Board   decision.Board          `json:"board"`
	Results []decision.ActionResult `json:"results,omitempty"`
}

func decisionsCmd(a *app) *cobra.Command {
	var (
		selectIDs []string
		action    string
		invoice   string
		rowAction string
	)

	cmd := panelCmd(a, "decisions", "List active exceptions and run Decision Center actions",
		func(cmd *cobra.Command, svc *dashboard.Service) error {
			for _, id := range selectIDs {
				svc.Toggle(id)
			}

			var out decisionsOutput
			if action != "" {
				res, err := svc.Bulk(decision.ActionKind(action))
				if err != nil {
					return err
				}
				out.Results = append(out.Results, res)
			}
			if rowAction != "" {
				if invoice == "" {
					return fmt.Errorf("--invoice is required with --row-action")
				}
				res, err := svc.RowAction(decision.ActionKind(rowAction), invoice)
				if err != nil {
					return err
				}
				out.Results = append(out.Results, res)
			}
			out.Board = svc.DecisionCenter()

			return a.render(cmd, out, func(f *report.TextFormatter) string {
				text := f.FormatBoard(out.Board)
				for _, res := range out.Results {
					text += "\n\n" + f.FormatAction(res)
				}
				return text
			})
		})

	cmd.Flags().StringSliceVar(&selectIDs, "select", nil, "invoice ids to toggle into the selection")
	cmd.Flags().StringVar(&action, "action", "", "bulk action over the selection (Apply Resolution, Escalate, Defer)")
	cmd.Flags().StringVar(&invoice, "invoice", "", "invoice id for --row-action")
	cmd.Flags().StringVar(&rowAction, "row-action", "", "per-invoice action (Apply, Escalate, Defer, Initiate GR Posting, Amend PO, Trigger Auto-Release, Escalate to Manager)")
	return cmd
}

func logisticsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logistics",
		Short: "Show warehouse capacity and shift staffing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l := a.cfg.Logistics
			p := logistics.BuildPanel(l.Warehouse, l.Shifts, l.Factors)
			if p.Capacity.CriticalAlert {
				a.logger.Warn("Warehouse understaffed",
					zap.String("depot", p.Capacity.Depot),
					zap.Int("missing_staff", p.Capacity.MissingStaff))
			}
			return a.render(cmd, p, func(f *report.TextFormatter) string { return f.FormatLogistics(p) })
		},
	}
}

func exportCmd(a *app) *cobra.Command {
	var output string

	cmd := panelCmd(a, "export", "Export every panel to an Excel workbook", func(cmd *cobra.Command, svc *dashboard.Service) error {
		now := time.Now()
		path := output
		if path == "" {
			if err := os.MkdirAll(a.cfg.Report.OutputDir, 0755); err != nil {
				return fmt.Errorf("failed to create output dir: %w", err)
			}
			path = filepath.Join(a.cfg.Report.OutputDir, fmt.Sprintf("dashboard-%s.xlsx", now.Format("20060102-150405")))
		}

		snap := report.Snapshot{
			GeneratedAt: now,
			Filters:     svc.Filters(),
			Executive:   svc.ExecutiveSummary(),
			Match:       svc.Agent1(),
			RootCause:   svc.Agent2(),
			Block:       svc.Agent3(),
			Board:       svc.DecisionCenter(),
			Records:     svc.Filtered(),
		}
		if err := report.NewWorkbookExporter(a.logger).Export(snap, path); err != nil {
			return err
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
		return err
	})

	cmd.Flags().StringVarP(&output, "output", "o", "", "workbook path (default: <report.output_dir>/dashboard-<timestamp>.xlsx)")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		// skip config loading
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dashboard %s\n", version)
		},
	}
}
