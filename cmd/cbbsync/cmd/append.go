package cmd

import (
	"fmt"

	"cbbsync/lib/csvio"
	"cbbsync/lib/sheetsync"

	"github.com/spf13/cobra"
)

var (
	appendSheetID  string
	appendTab      string
	appendCsv      string
	appendLookback int
)

func init() {
	appendCmd.Flags().StringVar(&appendSheetID, "sheet-id", "", "Spreadsheet identifier.")
	appendCmd.Flags().StringVar(&appendTab, "tab", "Games", "Destination tab name.")
	appendCmd.Flags().StringVar(&appendCsv, "csv", "", "Games CSV to append.")
	appendCmd.Flags().IntVar(&appendLookback, "dedupe-lookback", 300, "How many existing rows to consult for duplicates before appending.")
	appendCmd.MarkFlagRequired("sheet-id")
	appendCmd.MarkFlagRequired("csv")
	rootCmd.AddCommand(appendCmd)
}

var appendCmd = &cobra.Command{
	Use:   "append",
	Short: "Write a games CSV into the first blank row of column A (columns A-F only), skipping recent duplicates, and verify.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cleanup := setupTelemetry(ctx, "cbbsync:append")
		defer cleanup()

		csvTable, err := csvio.Read(appendCsv)
		if err != nil {
			fatal("failed to read csv", err)
		}
		rows, err := csvio.GameRows(csvTable)
		if err != nil {
			fatal("bad csv shape", err)
		}

		sh, tab, err := openTab(ctx, appendSheetID, appendTab)
		if err != nil {
			fatal("failed to open spreadsheet", err)
		}

		report, err := sheetsync.Append(ctx, tab, rows, appendLookback)
		if err != nil {
			fatal("failed to append rows", err)
		}

		fmt.Printf("Opened sheet: %s\n", sh.Title())
		fmt.Printf("Tab: %s\n", appendTab)
		fmt.Printf("Last non-empty row in column A: %d\n", report.LastRow)
		fmt.Printf("Rows in CSV: %d\n", len(rows))
		fmt.Printf("Duplicate rows skipped: %d\n", report.Duplicates)

		if report.Intended == 0 {
			fmt.Println("Nothing new to write.")
			return
		}

		fmt.Printf("Intended write range: %s\n", report.Range)
		fmt.Printf("Rows written: %d\n", report.Intended)
		fmt.Printf("Rows read back from sheet: %d\n", report.ReadBack)
		if report.ReadBack != report.Intended {
			fmt.Println("WARNING: read-back row count does not match the intended write, check the sheet.")
		}

		fmt.Println("\nFirst rows read back:")
		renderRows(csvio.GameColumns, report.First)
		fmt.Println("\nLast rows read back:")
		renderRows(csvio.GameColumns, report.Last)
	},
}
