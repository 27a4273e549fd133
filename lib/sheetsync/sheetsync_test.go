package sheetsync

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeTab is an in-memory grid speaking just enough A1 notation for the
// ranges the workflows issue.
type fakeTab struct {
	grid    [][]string
	updates []string
}

var rangeRegex = regexp.MustCompile(`^([A-Z]+)(\d*):([A-Z]+)(\d*)$`)

func colNumber(letters string) int {
	n := 0
	for _, c := range letters {
		n = n*26 + int(c-'A') + 1
	}
	return n
}

// parseRange returns 1-based bounds, endRow == 0 means unbounded.
func parseRange(a1 string) (startCol, startRow, endCol, endRow int, err error) {
	groups := rangeRegex.FindStringSubmatch(a1)
	if groups == nil {
		return 0, 0, 0, 0, fmt.Errorf("bad range: %s", a1)
	}
	startCol = colNumber(groups[1])
	endCol = colNumber(groups[3])
	startRow = 1
	if groups[2] != "" {
		startRow, _ = strconv.Atoi(groups[2])
	}
	if groups[4] != "" {
		endRow, _ = strconv.Atoi(groups[4])
	}
	return startCol, startRow, endCol, endRow, nil
}

func (f *fakeTab) Get(ctx context.Context, a1Range string) ([][]string, error) {
	startCol, startRow, endCol, endRow, err := parseRange(a1Range)
	if err != nil {
		return nil, err
	}
	if endRow == 0 || endRow > len(f.grid) {
		endRow = len(f.grid)
	}

	var out [][]string
	for r := startRow; r <= endRow; r++ {
		src := f.grid[r-1]
		var row []string
		for c := startCol; c <= endCol && c <= len(src); c++ {
			row = append(row, src[c-1])
		}
		out = append(out, row)
	}
	// the values API never returns trailing empty rows
	for len(out) > 0 && allEmpty(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out, nil
}

func allEmpty(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}

func (f *fakeTab) Update(ctx context.Context, a1Range string, values [][]string) error {
	startCol, startRow, _, _, err := parseRange(a1Range)
	if err != nil {
		return err
	}
	f.updates = append(f.updates, a1Range)

	for i, row := range values {
		r := startRow + i
		for len(f.grid) < r {
			f.grid = append(f.grid, nil)
		}
		for j, v := range row {
			c := startCol + j
			for len(f.grid[r-1]) < c {
				f.grid[r-1] = append(f.grid[r-1], "")
			}
			f.grid[r-1][c-1] = v
		}
	}
	return nil
}

func (f *fakeTab) Clear(ctx context.Context) error {
	f.grid = nil
	return nil
}

func gameRow(date, winner, winScore, loser, loseScore, site string) []string {
	return []string{date, winner, winScore, loser, loseScore, site}
}

func filledTab(rows ...[]string) *fakeTab {
	tab := &fakeTab{}
	for _, row := range rows {
		tab.grid = append(tab.grid, row)
	}
	return tab
}

func TestLastNonEmptyRow(t *testing.T) {
	ctx := context.Background()

	empty := &fakeTab{}
	last, err := LastNonEmptyRow(ctx, empty, "A")
	require.NoError(t, err)
	require.Equal(t, 0, last)

	// rows 1-5 filled, 6-8 empty, 9 filled: the gap does not stop the scan
	gapped := filledTab(
		[]string{"a"}, []string{"b"}, []string{"c"}, []string{"d"}, []string{"e"},
		[]string{""}, []string{""}, []string{""},
		[]string{"i"},
	)
	last, err = LastNonEmptyRow(ctx, gapped, "A")
	require.NoError(t, err)
	require.Equal(t, 9, last)

	// idempotent against an unchanged column
	again, err := LastNonEmptyRow(ctx, gapped, "A")
	require.NoError(t, err)
	require.Equal(t, last, again)

	// junk values do not count as filled
	junk := filledTab([]string{"a"}, []string{"nan"}, []string{"  "})
	last, err = LastNonEmptyRow(ctx, junk, "A")
	require.NoError(t, err)
	require.Equal(t, 1, last)
}

func TestAppendRoundTrip(t *testing.T) {
	ctx := context.Background()
	tab := &fakeTab{}

	rows := [][]string{
		gameRow("11-03-2025", "Duke", "80", "Army", "60", "H"),
		gameRow("11-03-2025", "Gonzaga", "91", "Texas Southern", "62", "N"),
		gameRow("11-03-2025", "Purdue", "72", "Evansville", "45", "H"),
	}

	report, err := Append(ctx, tab, rows, 300)
	require.NoError(t, err)
	require.Equal(t, 0, report.LastRow)
	require.Equal(t, "A1:F3", report.Range)
	require.Equal(t, 0, report.Duplicates)
	require.Equal(t, 3, report.Intended)
	require.Equal(t, 3, report.ReadBack)
	require.Equal(t, rows, tab.grid)
	require.Equal(t, rows, report.First)
	require.Equal(t, rows, report.Last)
}

func TestAppendStartsAfterLastRow(t *testing.T) {
	ctx := context.Background()
	tab := filledTab(
		gameRow("11-01-2025", "Kansas", "78", "Baylor", "70", "H"),
		gameRow("11-02-2025", "UConn", "81", "Rider", "53", "H"),
	)

	report, err := Append(ctx, tab, [][]string{
		gameRow("11-03-2025", "Duke", "80", "Army", "60", "H"),
	}, 300)
	require.NoError(t, err)
	require.Equal(t, 2, report.LastRow)
	require.Equal(t, "A3:F3", report.Range)
	require.Len(t, tab.grid, 3)
	require.Equal(t, gameRow("11-03-2025", "Duke", "80", "Army", "60", "H"), tab.grid[2])
}

func TestAppendDedupe(t *testing.T) {
	ctx := context.Background()
	existing := gameRow("11-02-2025", "UConn", "81", "Rider", "53", "H")
	tab := filledTab(
		gameRow("11-01-2025", "Kansas", "78", "Baylor", "70", "H"),
		existing,
	)

	// two copies of an existing row are each dropped and counted
	batch := [][]string{
		existing,
		gameRow("11-03-2025", "Duke", "80", "Army", "60", "H"),
		existing,
	}
	report, err := Append(ctx, tab, batch, 300)
	require.NoError(t, err)
	require.Equal(t, 2, report.Duplicates)
	require.Equal(t, 1, report.Intended)
	require.Len(t, tab.grid, 3)
}

func TestAppendKeepsSiblingDuplicates(t *testing.T) {
	ctx := context.Background()
	tab := &fakeTab{}

	// identical incoming rows absent from the window are both kept
	row := gameRow("11-03-2025", "Duke", "80", "Army", "60", "H")
	report, err := Append(ctx, tab, [][]string{row, row}, 300)
	require.NoError(t, err)
	require.Equal(t, 0, report.Duplicates)
	require.Equal(t, 2, report.Intended)
	require.Len(t, tab.grid, 2)
}

func TestAppendDedupeWindowed(t *testing.T) {
	ctx := context.Background()
	old := gameRow("11-01-2025", "Kansas", "78", "Baylor", "70", "H")
	recent := gameRow("11-02-2025", "UConn", "81", "Rider", "53", "H")
	tab := filledTab(old, recent)

	// lookback of 1 only covers the most recent row, the older
	// duplicate slips through
	report, err := Append(ctx, tab, [][]string{old, recent}, 1)
	require.NoError(t, err)
	require.Equal(t, 1, report.Duplicates)
	require.Equal(t, 1, report.Intended)
}

func TestAppendZeroLookback(t *testing.T) {
	ctx := context.Background()
	existing := gameRow("11-02-2025", "UConn", "81", "Rider", "53", "H")
	tab := filledTab(existing)

	report, err := Append(ctx, tab, [][]string{existing}, 0)
	require.NoError(t, err)
	require.Equal(t, 0, report.Duplicates)
	require.Equal(t, 1, report.Intended)
}

func TestAppendNormalizesMatches(t *testing.T) {
	ctx := context.Background()
	tab := filledTab(gameRow("11-02-2025", "UConn", "81", "Rider", "53", "H"))

	// whitespace and junk markers are normalized away before comparing
	report, err := Append(ctx, tab, [][]string{
		gameRow(" 11-02-2025 ", "UConn", "81", "Rider", "53", "H"),
	}, 300)
	require.NoError(t, err)
	require.Equal(t, 1, report.Duplicates)
	require.Equal(t, 0, report.Intended)
	require.Empty(t, report.Range)
}

func TestOverwriteClearsBelow(t *testing.T) {
	ctx := context.Background()

	tab := &fakeTab{}
	var stale [][]string
	for i := 0; i < 700; i++ {
		stale = append(stale, gameRow("10-01-2025", "Stale", "1", "Rows", "0", "H"))
	}
	require.NoError(t, tab.Update(ctx, "A1:F700", stale))
	tab.updates = nil

	header := []string{"date", "winner_team", "winner_score", "loser_team", "loser_score", "site_designation"}
	var rows [][]string
	for i := 0; i < 500; i++ {
		rows = append(rows, gameRow("11-03-2025", "Fresh", "2", "Data", "1", "N"))
	}

	report, err := Overwrite(ctx, tab, header, rows, 500)
	require.NoError(t, err)
	require.Equal(t, 500, report.Rows)
	require.Equal(t, 6, report.Columns)
	require.Equal(t, "A1:F501", report.Range)
	require.Equal(t, "A502:F1001", report.Blanked)
	require.Equal(t, []string{"A1:F501", "A502:F1001"}, tab.updates)

	require.Equal(t, header, tab.grid[0])
	require.Equal(t, rows[0], tab.grid[1])
	require.Equal(t, rows[499], tab.grid[500])
	for r := 501; r < len(tab.grid); r++ {
		require.True(t, allEmpty(tab.grid[r]), "stale data left at row %d", r+1)
	}
}

func TestOverwriteNoClearBelow(t *testing.T) {
	ctx := context.Background()
	tab := &fakeTab{}

	header := []string{"Team", "AdjEM", "AdjO"}
	rows := [][]string{
		{"Duke", "+28.5", "122.1"},
		{"Houston", "+27.9", "117.5"},
	}

	report, err := Overwrite(ctx, tab, header, rows, 0)
	require.NoError(t, err)
	require.Equal(t, "A1:C3", report.Range)
	require.Empty(t, report.Blanked)
	require.Equal(t, []string{"A1:C3"}, tab.updates)
}
