package cmd

import (
	"fmt"
	"os"

	"cbbsync/lib/csvio"
	"cbbsync/lib/scrapers/kenpom"

	"github.com/spf13/cobra"
)

var (
	kenpomOut    string
	kenpomSeason int
)

func init() {
	kenpomCmd.Flags().StringVar(&kenpomOut, "out", "kenpom.csv", "Output CSV path.")
	kenpomCmd.Flags().IntVar(&kenpomSeason, "season", 0, "Season year (optional). Omit for the current season.")
	rootCmd.AddCommand(kenpomCmd)
}

var kenpomCmd = &cobra.Command{
	Use:   "kenpom",
	Short: "Download the KenPom efficiency table and save CSV.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cleanup := setupTelemetry(ctx, "cbbsync:kenpom")
		defer cleanup()

		user := os.Getenv("KENPOM_USER")
		pass := os.Getenv("KENPOM_PASS")
		if user == "" || pass == "" {
			fatal("missing credentials", fmt.Errorf("missing KENPOM_USER or KENPOM_PASS env vars"))
		}

		client, err := kenpom.NewClient(kenpom.ClientOptions{})
		if err != nil {
			fatal("failed to create kenpom client", err)
		}
		if err := client.Login(ctx, user, pass); err != nil {
			fatal("failed to login to kenpom", err)
		}

		ratings, err := client.FetchEfficiency(ctx, kenpomSeason)
		if err != nil {
			fatal("failed to fetch efficiency table", err)
		}

		err = csvio.Write(kenpomOut, csvio.Table{Header: ratings.Header, Rows: ratings.Rows})
		if err != nil {
			fatal("failed to write csv", err)
		}

		fmt.Printf(
			"Saved KenPom efficiency CSV: %s (%d teams, %d cols)\n",
			kenpomOut, len(ratings.Rows), len(ratings.Header),
		)
		preview := ratings.Rows
		if len(preview) > 3 {
			preview = preview[:3]
		}
		renderRows(ratings.Header, preview)
	},
}
