package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/activat-sync-engine/internal/adapters/export"
	"github.com/comitanigiacomo/activat-sync-engine/internal/bootstrap"
	"github.com/comitanigiacomo/activat-sync-engine/internal/core/domain"
	"github.com/comitanigiacomo/activat-sync-engine/internal/core/services"
)

type storeOpener func(ctx context.Context) (*bootstrap.Store, error)

// cli holds what every subcommand needs once the store is open.
type cli struct {
	open    storeOpener
	store   *bootstrap.Store
	history *services.HistoryService
	daily   *services.DailyService
	now     func() time.Time
}

func newRootCmd(open storeOpener) *cobra.Command {
	c := &cli{open: open, now: time.Now}

	root := &cobra.Command{
		Use:   "activatctl",
		Short: "Inspect and export recorded walking sessions",
		Long:  "activatctl reads the same store as the API server. Store settings come from the environment or a .env file.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			c.store = store
			c.history = services.NewHistoryService(store.Sessions)
			c.daily = services.NewDailyService(store.Sessions)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.store == nil {
				return nil
			}
			return c.store.Close()
		},
		SilenceUsage: true,
	}

	root.AddCommand(
		c.historyCmd(),
		c.summaryCmd(),
		c.exportCmd(),
		c.todayCmd(),
	)
	return root
}

func (c *cli) historyCmd() *cobra.Command {
	var (
		period string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List sessions of a period",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := domain.ParsePeriod(period)
			if err != nil {
				return err
			}
			sessions, err := c.history.List(cmd.Context(), p)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if sessions == nil {
					sessions = []*domain.Session{}
				}
				return writeJSON(out, sessions)
			}
			if len(sessions) == 0 {
				fmt.Fprintf(out, "No sessions in the last %s.\n", p)
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\tTIME\tSTEPS\tDURATION\tDISTANCE")
			for _, s := range sessions {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%.2f km\n",
					s.Timestamp.Format(domain.DateLayout),
					s.Timestamp.Format("15:04"),
					s.StepCount,
					s.FormattedDuration(),
					s.DistanceKm,
				)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&period, "period", "p", string(domain.PeriodWeek), "day, week or month")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (c *cli) summaryCmd() *cobra.Command {
	var (
		period string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Totals and chart of a period",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := domain.ParsePeriod(period)
			if err != nil {
				return err
			}
			summary, err := c.history.Summary(cmd.Context(), p)
			if err != nil {
				return err
			}
			chart, err := c.history.Chart(cmd.Context(), p)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if chart == nil {
					chart = []domain.ChartPoint{}
				}
				return writeJSON(out, map[string]any{"summary": summary, "chart": chart})
			}

			fmt.Fprintf(out, "Period:    %s\n", summary.Period)
			fmt.Fprintf(out, "Sessions:  %d\n", summary.Sessions)
			fmt.Fprintf(out, "Steps:     %d (avg %d)\n", summary.TotalSteps, summary.AverageSteps)
			fmt.Fprintf(out, "Duration:  %s\n", time.Duration(summary.TotalDurationSeconds)*time.Second)
			fmt.Fprintf(out, "Distance:  %.2f km\n", summary.TotalDistanceKm)
			for _, point := range chart {
				fmt.Fprintf(out, "  %-6s %d\n", point.Label, point.Steps)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&period, "period", "p", string(domain.PeriodWeek), "day, week or month")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (c *cli) exportCmd() *cobra.Command {
	var (
		period  string
		outPath string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write sessions to a Parquet file",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				sessions []*domain.Session
				err      error
			)
			if period == "" {
				sessions, err = c.history.All(cmd.Context())
			} else {
				p, perr := domain.ParsePeriod(period)
				if perr != nil {
					return perr
				}
				sessions, err = c.history.List(cmd.Context(), p)
			}
			if err != nil {
				return err
			}

			data, err := export.MarshalSessionsParquet(sessions)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d sessions to %s\n", len(sessions), outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&period, "period", "p", "", "day, week or month (default: every session)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "sessions.parquet", "output file")
	return cmd
}

func (c *cli) todayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Stored progress towards today's goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			now := c.now()

			today, err := c.daily.GetSnapshot(ctx, now)
			if err != nil {
				return err
			}
			profile, err := c.store.Sessions.ReadProfile(ctx)
			if err != nil {
				return err
			}

			total := domain.TotalStepsToday(today, domain.LiveSession{State: domain.SessionIdle})
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date:      %s\n", today.Date)
			fmt.Fprintf(out, "Steps:     %d / %d (%.0f%%)\n", total, profile.DailyStepGoal, domain.GoalPercentage(total, profile.DailyStepGoal)*100)
			fmt.Fprintf(out, "Remaining: %d\n", domain.RemainingSteps(total, profile.DailyStepGoal))
			fmt.Fprintf(out, "Sessions:  %d\n", today.SessionsCompleted)
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
