// Package sheetsync holds the two write workflows against a spreadsheet
// tab: incremental append (locate the first unused row, drop rows that
// duplicate a recent window, write a bounded block and read it back)
// and full refresh (clear and rewrite from row one).
package sheetsync

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"cbbsync/lib/csvio"
	"cbbsync/lib/sheets"
	"cbbsync/lib/textutil"
)

// Tab is the slice of a spreadsheet tab the workflows need.
// *sheets.Tab satisfies it, tests substitute an in-memory fake.
type Tab interface {
	Get(ctx context.Context, a1Range string) ([][]string, error)
	Update(ctx context.Context, a1Range string, values [][]string) error
	Clear(ctx context.Context) error
}

// LastNonEmptyRow scans the whole column and returns the 1-based index
// of the deepest non-empty cell, or 0 for an empty column. A filled
// cell below a gap still advances the result, so the next write never
// lands inside existing data.
func LastNonEmptyRow(ctx context.Context, t Tab, col string) (int, error) {
	rows, err := t.Get(ctx, fmt.Sprintf("%s:%s", col, col))
	if err != nil {
		return 0, err
	}

	last := 0
	for i, row := range rows {
		v := ""
		if len(row) > 0 {
			v = row[0]
		}
		if textutil.Normalize(v) != "" {
			last = i + 1
		}
	}
	return last, nil
}

// fingerprint is the identity of a row for dedupe purposes: the six
// normalized game columns joined with a separator no cell contains.
func fingerprint(row []string) string {
	parts := make([]string, len(csvio.GameColumns))
	for i := range parts {
		if i < len(row) {
			parts[i] = textutil.Normalize(row[i])
		}
	}
	return strings.Join(parts, "\x1f")
}

func normalizeRow(row []string, width int) []string {
	out := make([]string, width)
	for i := range out {
		if i < len(row) {
			out[i] = textutil.Normalize(row[i])
		}
	}
	return out
}

// existingFingerprints reads the lookback window [max(1, last-lookback+1),
// last] across the game columns and collects each row's fingerprint.
func existingFingerprints(ctx context.Context, t Tab, lastRow, lookback int) (map[string]bool, error) {
	set := map[string]bool{}
	if lastRow == 0 || lookback <= 0 {
		return set, nil
	}

	start := lastRow - lookback + 1
	if start < 1 {
		start = 1
	}
	endCol := sheets.ColumnLetter(len(csvio.GameColumns))
	rows, err := t.Get(ctx, sheets.RangeRef("A", start, endCol, lastRow))
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		set[fingerprint(row)] = true
	}
	return set, nil
}

type AppendReport struct {
	// LastRow is the locator's result before the write.
	LastRow int
	// Range is the bounded write range, empty when nothing was written.
	Range string
	// Duplicates counts incoming rows dropped against the lookback window.
	Duplicates int
	// Intended and ReadBack are the written and re-read row counts. A
	// mismatch is reported, never raised.
	Intended int
	ReadBack int
	First    [][]string
	Last     [][]string
}

// Append writes the non-duplicate rows right after the last used row of
// column A as one bounded block, then reads the identical range back.
// A row is a duplicate only against the pre-existing window: a dropped
// row is not added to the set, and two identical incoming rows are both
// kept when the window has no match.
func Append(ctx context.Context, t Tab, rows [][]string, lookback int) (AppendReport, error) {
	lastRow, err := LastNonEmptyRow(ctx, t, "A")
	if err != nil {
		return AppendReport{}, err
	}
	existing, err := existingFingerprints(ctx, t, lastRow, lookback)
	if err != nil {
		return AppendReport{}, err
	}

	report := AppendReport{LastRow: lastRow}

	width := len(csvio.GameColumns)
	var fresh [][]string
	for _, row := range rows {
		norm := normalizeRow(row, width)
		if existing[fingerprint(norm)] {
			report.Duplicates++
			continue
		}
		fresh = append(fresh, norm)
	}
	if len(fresh) == 0 {
		return report, nil
	}

	start := lastRow + 1
	end := start + len(fresh) - 1
	rng := sheets.RangeRef("A", start, sheets.ColumnLetter(width), end)
	report.Range = rng
	report.Intended = len(fresh)

	if err := t.Update(ctx, rng, fresh); err != nil {
		return report, err
	}

	back, err := t.Get(ctx, rng)
	if err != nil {
		return report, err
	}
	report.ReadBack = len(back)
	report.First = headRows(back, 3)
	report.Last = tailRows(back, 3)

	if report.ReadBack != report.Intended {
		slog.WarnContext(
			ctx,
			"read-back row count does not match intended write",
			"intended", report.Intended,
			"read_back", report.ReadBack,
			"range", rng,
		)
	}
	return report, nil
}

type OverwriteReport struct {
	Rows    int
	Columns int
	// Range covers the header plus data rows written from A1.
	Range string
	// Blanked is the range of trailing rows erased below the new data,
	// empty when clearBelow is 0.
	Blanked string
}

// Overwrite clears the tab and rewrites it from row 1 with a header row
// plus data rows, then blanks clearBelow further rows to erase stale
// leftovers from a previous, larger write.
func Overwrite(ctx context.Context, t Tab, header []string, rows [][]string, clearBelow int) (OverwriteReport, error) {
	width := len(header)
	values := make([][]string, 0, len(rows)+1)
	values = append(values, header)
	for _, row := range rows {
		values = append(values, normalizeRow(row, width))
	}

	endRow := len(values)
	endCol := sheets.ColumnLetter(width)
	rng := sheets.RangeRef("A", 1, endCol, endRow)

	if err := t.Clear(ctx); err != nil {
		return OverwriteReport{}, err
	}
	if err := t.Update(ctx, rng, values); err != nil {
		return OverwriteReport{}, err
	}

	report := OverwriteReport{
		Rows:    len(rows),
		Columns: width,
		Range:   rng,
	}

	if clearBelow > 0 {
		blanks := make([][]string, clearBelow)
		for i := range blanks {
			blanks[i] = make([]string, width)
		}
		report.Blanked = sheets.RangeRef("A", endRow+1, endCol, endRow+clearBelow)
		if err := t.Update(ctx, report.Blanked, blanks); err != nil {
			return report, err
		}
	}
	return report, nil
}

func headRows(rows [][]string, n int) [][]string {
	if len(rows) < n {
		n = len(rows)
	}
	return rows[:n]
}

func tailRows(rows [][]string, n int) [][]string {
	if len(rows) < n {
		n = len(rows)
	}
	return rows[len(rows)-n:]
}
