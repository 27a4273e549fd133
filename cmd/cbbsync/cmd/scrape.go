package cmd

import (
	"fmt"
	"time"

	"cbbsync/lib/csvio"
	"cbbsync/lib/scrapers/scoreboard"
	"cbbsync/lib/timezone"

	"github.com/spf13/cobra"
)

var (
	scrapeEndDate string
	scrapeOut     string
	scrapePerDay  bool
)

func init() {
	scrapeCmd.Flags().StringVar(&scrapeEndDate, "end-date", "", "End date in YYYY-MM-DD (inclusive). If omitted, only the start date is scraped.")
	scrapeCmd.Flags().StringVarP(&scrapeOut, "out", "o", "", "Combined output CSV path (default: update_for_YYYYMMDD.csv, or update_for_YYYYMMDD_YYYYMMDD.csv for ranges).")
	scrapeCmd.Flags().BoolVar(&scrapePerDay, "per-day", false, "Also write a per-day CSV for each date.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape <date>",
	Short: "Scrape all completed D-I games for a date or date range and save CSV.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cleanup := setupTelemetry(ctx, "cbbsync:scrape")
		defer cleanup()

		start, err := time.ParseInLocation("2006-01-02", args[0], timezone.Location)
		if err != nil {
			fatal("invalid start date, expected YYYY-MM-DD", err)
		}
		end := start
		if scrapeEndDate != "" {
			end, err = time.ParseInLocation("2006-01-02", scrapeEndDate, timezone.Location)
			if err != nil {
				fatal("invalid end date, expected YYYY-MM-DD", err)
			}
			if end.Before(start) {
				fatal("invalid date range", fmt.Errorf("end date %s is before start date %s", scrapeEndDate, args[0]))
			}
		}

		client := scoreboard.NewClient(scoreboard.ClientOptions{})

		days := timezone.DateRange(start, end)
		var combined [][]string
		for _, day := range days {
			events, err := client.FetchDay(ctx, day)
			if err != nil {
				fatal("failed to fetch scoreboard", err)
			}
			games := scoreboard.CompletedGames(ctx, events, day.Format("01-02-2006"))

			rows := make([][]string, len(games))
			for i, g := range games {
				rows[i] = g.Row()
			}

			if scrapePerDay {
				if len(rows) == 0 {
					fmt.Printf("%s: 0 completed D-I games\n", day.Format("2006-01-02"))
				} else {
					out := fmt.Sprintf("update_for_%s.csv", day.Format("20060102"))
					err := csvio.Write(out, csvio.Table{Header: csvio.GameColumns, Rows: rows})
					if err != nil {
						fatal("failed to write per-day csv", err)
					}
					fmt.Printf("%s: saved %s with %d completed D-I games\n", day.Format("2006-01-02"), out, len(rows))
				}
			}
			combined = append(combined, rows...)
		}

		if len(combined) == 0 {
			fmt.Printf(
				"No completed D-I games found for range %s to %s.\n",
				start.Format("2006-01-02"), end.Format("2006-01-02"),
			)
			return
		}

		out := scrapeOut
		if out == "" {
			if start.Equal(end) {
				out = fmt.Sprintf("update_for_%s.csv", start.Format("20060102"))
			} else {
				out = fmt.Sprintf(
					"update_for_%s_%s.csv",
					start.Format("20060102"), end.Format("20060102"),
				)
			}
		}
		err = csvio.Write(out, csvio.Table{Header: csvio.GameColumns, Rows: combined})
		if err != nil {
			fatal("failed to write combined csv", err)
		}

		fmt.Printf(
			"Saved combined %s with %d completed D-I games across %d day(s).\n",
			out, len(combined), len(days),
		)
		preview := combined
		if len(preview) > 5 {
			preview = preview[:5]
		}
		renderRows(csvio.GameColumns, preview)
	},
}
