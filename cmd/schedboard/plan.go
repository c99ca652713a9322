package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gyeh/schedboard/internal/exitcode"
	"github.com/gyeh/schedboard/internal/logging"
	"github.com/gyeh/schedboard/internal/model"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run: load the sheet and report what would be charted",
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := cfg.ValidateWithSource(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.ConfigError)
	}

	_, where := buildSource(log, nil)
	chart := loadChart(cmd.Context(), log)
	sum := chart.Summary

	managerColumn := sum.ManagerColumn
	if managerColumn == "" {
		managerColumn = "(none, all rows " + model.UnknownManager + ")"
	}

	fmt.Println("=== schedboard plan ===")
	fmt.Printf("Source:       %s\n", where)
	fmt.Printf("Run:          %s\n", sum.RunID)
	fmt.Printf("Name column:  %s\n", sum.NameColumn)
	fmt.Printf("End column:   %s\n", sum.EndDateColumn)
	fmt.Printf("Manager:      %s\n", managerColumn)
	fmt.Printf("Lookahead:    %d days\n", cfg.LookaheadDays)
	fmt.Println()
	fmt.Printf("Rows read:       %d\n", sum.RowsRead)
	fmt.Printf("Rows missing:    %d (blank name or end date)\n", sum.RowsMissing)
	fmt.Printf("Rows unresolved: %d (end date not a date)\n", sum.RowsUnresolved)
	fmt.Printf("Rows charted:    %d\n", sum.RowsRendered)
	fmt.Printf("Managers:        %d\n", sum.Categories)

	if len(chart.Rows) > 0 {
		first, last := *chart.Rows[0].Start, *chart.Rows[0].End
		overdue := 0
		for i, r := range chart.Rows {
			if r.Start.Before(first) {
				first = *r.Start
			}
			if r.End.After(last) {
				last = *r.End
			}
			if chart.Annotations[i].Days < 0 {
				overdue++
			}
		}
		fmt.Printf("Span:            %s → %s\n", first.Format(model.DateLayout), last.Format(model.DateLayout))
		fmt.Printf("Overdue:         %d\n", overdue)
	}
	fmt.Printf("\nResolve time: %s, total: %s\n",
		sum.DurationResolve.Round(time.Microsecond), sum.DurationTotal.Round(time.Microsecond))
	return nil
}
