package cmd

import (
	"fmt"

	"cbbsync/lib/csvio"
	"cbbsync/lib/sheetsync"

	"github.com/spf13/cobra"
)

var (
	overwriteSheetID    string
	overwriteTab        string
	overwriteCsv        string
	overwriteClearBelow int
)

func init() {
	overwriteCmd.Flags().StringVar(&overwriteSheetID, "sheet-id", "", "Spreadsheet identifier.")
	overwriteCmd.Flags().StringVar(&overwriteTab, "tab", "", "Destination tab name.")
	overwriteCmd.Flags().StringVar(&overwriteCsv, "csv", "", "CSV whose header and rows replace the tab.")
	overwriteCmd.Flags().IntVar(&overwriteClearBelow, "clear-below", 500, "How many extra rows to blank out below the new data.")
	overwriteCmd.MarkFlagRequired("sheet-id")
	overwriteCmd.MarkFlagRequired("tab")
	overwriteCmd.MarkFlagRequired("csv")
	rootCmd.AddCommand(overwriteCmd)
}

var overwriteCmd = &cobra.Command{
	Use:   "overwrite",
	Short: "Overwrite a sheet tab with CSV contents starting at A1.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cleanup := setupTelemetry(ctx, "cbbsync:overwrite")
		defer cleanup()

		csvTable, err := csvio.Read(overwriteCsv)
		if err != nil {
			fatal("failed to read csv", err)
		}

		_, tab, err := openTab(ctx, overwriteSheetID, overwriteTab)
		if err != nil {
			fatal("failed to open spreadsheet", err)
		}

		report, err := sheetsync.Overwrite(ctx, tab, csvTable.Header, csvTable.Rows, overwriteClearBelow)
		if err != nil {
			fatal("failed to overwrite tab", err)
		}

		fmt.Printf("Overwrote tab '%s' with %d rows and %d cols.\n", overwriteTab, report.Rows, report.Columns)
		fmt.Printf("Wrote range: %s\n", report.Range)
		if report.Blanked != "" {
			fmt.Printf("Blanked range: %s\n", report.Blanked)
		}
	},
}
