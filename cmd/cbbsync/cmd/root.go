package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"cbbsync/lib/sheets"
	"cbbsync/lib/telemetry"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cbbsync",
	Short: "cbbsync scrapes college basketball results and ratings and syncs them into a shared spreadsheet.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fatal(message string, err error) {
	slog.Error(message, "err", err.Error())
	os.Exit(1)
}

func setupTelemetry(ctx context.Context, name string) func() {
	tel, err := telemetry.SetupFromEnv(ctx, name)
	if err != nil {
		slog.Warn("failed to setup telemetry", "err", err)
		return func() {}
	}
	return func() {
		err := tel.Shutdown(context.Background())
		if err != nil {
			slog.Warn("failed to shutdown telemetry", "err", err)
		}
	}
}

// sheetsConfigFromEnv is the only place the service account blob leaves
// the environment, everything downstream receives it as config.
func sheetsConfigFromEnv() (sheets.Config, error) {
	blob := os.Getenv("GOOGLE_SA_JSON")
	if blob == "" {
		return sheets.Config{}, fmt.Errorf("missing GOOGLE_SA_JSON env var")
	}
	return sheets.Config{CredentialsJSON: []byte(blob)}, nil
}

func openTab(ctx context.Context, sheetID, tabName string) (*sheets.Spreadsheet, *sheets.Tab, error) {
	config, err := sheetsConfigFromEnv()
	if err != nil {
		return nil, nil, err
	}
	client, err := sheets.NewClient(ctx, config)
	if err != nil {
		return nil, nil, err
	}
	sh, err := client.Open(ctx, sheetID)
	if err != nil {
		return nil, nil, err
	}
	return sh, sh.Tab(tabName), nil
}

func renderRows(header []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)

	headerRow := make(table.Row, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		cells := make(table.Row, len(row))
		for i, v := range row {
			cells[i] = v
		}
		t.AppendRow(cells)
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}
