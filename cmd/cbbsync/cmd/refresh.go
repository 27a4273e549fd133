package cmd

import (
	"fmt"

	"cbbsync/lib/csvio"
	"cbbsync/lib/sheetsync"

	"github.com/spf13/cobra"
)

var (
	refreshSheetID   string
	refreshGamesCsv  string
	refreshKenpomCsv string
	refreshGamesTab  string
	refreshKenpomTab string
)

func init() {
	refreshCmd.Flags().StringVar(&refreshSheetID, "sheet-id", "", "Spreadsheet identifier.")
	refreshCmd.Flags().StringVar(&refreshGamesCsv, "games-csv", "", "Games CSV to load.")
	refreshCmd.Flags().StringVar(&refreshKenpomCsv, "kenpom-csv", "", "KenPom CSV to load.")
	refreshCmd.Flags().StringVar(&refreshGamesTab, "games-tab", "", "Tab to overwrite with the games CSV.")
	refreshCmd.Flags().StringVar(&refreshKenpomTab, "kenpom-tab", "", "Tab to overwrite with the KenPom CSV.")
	refreshCmd.MarkFlagRequired("sheet-id")
	refreshCmd.MarkFlagRequired("games-csv")
	refreshCmd.MarkFlagRequired("kenpom-csv")
	refreshCmd.MarkFlagRequired("games-tab")
	refreshCmd.MarkFlagRequired("kenpom-tab")
	rootCmd.AddCommand(refreshCmd)
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Overwrite the games and KenPom tabs from their CSVs in one run.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cleanup := setupTelemetry(ctx, "cbbsync:refresh")
		defer cleanup()

		games, err := csvio.Read(refreshGamesCsv)
		if err != nil {
			fatal("failed to read games csv", err)
		}
		ratings, err := csvio.Read(refreshKenpomCsv)
		if err != nil {
			fatal("failed to read kenpom csv", err)
		}

		sh, gamesTab, err := openTab(ctx, refreshSheetID, refreshGamesTab)
		if err != nil {
			fatal("failed to open spreadsheet", err)
		}
		kenpomTab := sh.Tab(refreshKenpomTab)

		gamesReport, err := sheetsync.Overwrite(ctx, gamesTab, games.Header, games.Rows, 0)
		if err != nil {
			fatal("failed to overwrite games tab", err)
		}
		ratingsReport, err := sheetsync.Overwrite(ctx, kenpomTab, ratings.Header, ratings.Rows, 0)
		if err != nil {
			fatal("failed to overwrite kenpom tab", err)
		}

		fmt.Printf("Opened sheet: %s\n", sh.Title())
		fmt.Printf(
			"Overwrote tab '%s' with %d rows (%s).\n",
			refreshGamesTab, gamesReport.Rows, gamesReport.Range,
		)
		fmt.Printf(
			"Overwrote tab '%s' with %d rows (%s).\n",
			refreshKenpomTab, ratingsReport.Rows, ratingsReport.Range,
		)
	},
}
