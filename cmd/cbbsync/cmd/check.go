package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	checkSheetID string
	checkTab     string
)

func init() {
	checkCmd.Flags().StringVar(&checkSheetID, "sheet-id", "", "Spreadsheet identifier.")
	checkCmd.Flags().StringVar(&checkTab, "tab", "Games", "Tab to probe.")
	checkCmd.MarkFlagRequired("sheet-id")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe sheet access: print the title, header row and the last few game rows.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cleanup := setupTelemetry(ctx, "cbbsync:check")
		defer cleanup()

		sh, tab, err := openTab(ctx, checkSheetID, checkTab)
		if err != nil {
			fatal("failed to open spreadsheet", err)
		}

		// quick positioning: column values run up to the last non-empty
		// cell, their count is the last used row
		colA, err := tab.ColumnValues(ctx, "A")
		if err != nil {
			fatal("failed to read column A", err)
		}
		lastRow := len(colA)

		header, err := tab.Get(ctx, "A1:F1")
		if err != nil {
			fatal("failed to read header row", err)
		}

		fmt.Printf("Opened sheet: %s\n", sh.Title())
		fmt.Printf("Opened tab: %s\n", checkTab)
		fmt.Printf("Column A last non-empty row: %d\n", lastRow)
		if len(header) > 0 {
			fmt.Printf("Header (row 1): %v\n", header[0])
		}

		if lastRow < 2 {
			return
		}
		start := lastRow - 4
		if start < 2 {
			start = 2
		}
		rng := fmt.Sprintf("A%d:F%d", start, lastRow)
		tail, err := tab.Get(ctx, rng)
		if err != nil {
			fatal("failed to read preview rows", err)
		}

		fmt.Printf("\nLast rows preview (%s):\n", rng)
		var headerRow []string
		if len(header) > 0 {
			headerRow = header[0]
		}
		renderRows(headerRow, tail)
	},
}
