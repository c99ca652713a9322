package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gyeh/schedboard/internal/exitcode"
	"github.com/gyeh/schedboard/internal/logging"
	"github.com/gyeh/schedboard/internal/normalize"
	"github.com/gyeh/schedboard/internal/render"
)

var parseColumn string

var parseCmd = &cobra.Command{
	Use:   "parse [VALUE...]",
	Short: "Show how raw end-date cells resolve",
	Long: "Resolves each VALUE, or with --column every cell of that column of the " +
		"configured sheet, and prints the derived start and end.",
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseColumn, "column", "", "Resolve every cell of the sheet column matching this keyword")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	r := normalize.NewResolver(cfg.Sentinels...)

	if parseColumn == "" {
		if len(args) == 0 {
			return errors.New("give at least one VALUE or --column")
		}
		rows := make([][]string, 0, len(args))
		for _, raw := range args {
			rows = append(rows, parsedRow(raw, r.Resolve(raw)))
		}
		fmt.Print(render.RenderTable([]string{"raw", "start", "end"}, rows))
		return nil
	}

	log := logging.Setup(cfg.LogFormat)
	if err := cfg.ValidateWithSource(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.ConfigError)
	}

	src, where := buildSource(log, nil)
	t, err := src.Load(cmd.Context())
	if err != nil {
		log.Error().Err(err).Str("source", where).Msg("failed to load sheet")
		os.Exit(exitcode.FetchError)
	}
	col := normalize.ColumnIndex(t.Columns, parseColumn)
	if col < 0 {
		log.Error().Str("column", parseColumn).Strs("columns", t.Columns).Msg("column not found")
		os.Exit(exitcode.ColumnError)
	}

	rows := make([][]string, 0, len(t.Rows))
	for i := range t.Rows {
		cell := t.Cell(i, col)
		raw := ""
		if cell != nil {
			raw = *cell
		}
		rows = append(rows, append([]string{fmt.Sprint(i + 1)}, parsedRow(raw, r.ResolveCell(cell))...))
	}
	fmt.Print(render.RenderTable([]string{"row", t.Columns[col], "start", "end"}, rows))
	return nil
}

func parsedRow(raw string, end *time.Time) []string {
	if end == nil {
		return []string{raw, "-", "-"}
	}
	return []string{
		raw,
		end.Add(-cfg.Lookahead()).Format("2006-01-02 15:04"),
		end.Format("2006-01-02 15:04"),
	}
}
