package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
)

// GameColumns is the fixed layout of the games CSV and of the A:F
// block of the Games tab.
var GameColumns = []string{
	"date",
	"winner_team",
	"winner_score",
	"loser_team",
	"loser_score",
	"site_designation",
}

var ErrEmpty = fmt.Errorf("csv contains no data rows")

// Table is a header row plus data rows, as read from or written to disk.
type Table struct {
	Header []string
	Rows   [][]string
}

func Read(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// rows may be ragged when trailing cells are empty
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) <= 1 {
		return Table{}, ErrEmpty
	}

	return Table{Header: records[0], Rows: records[1:]}, nil
}

func Write(path string, t Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(t.Header); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// GameRows projects a table onto GameColumns, in order, regardless of
// how the source file arranged or padded its columns. Missing columns
// are an input-shape error raised before anything touches the sheet.
func GameRows(t Table) ([][]string, error) {
	index := map[string]int{}
	for i, name := range t.Header {
		index[name] = i
	}

	var missing []string
	for _, name := range GameColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf(
			"csv missing required columns: %v, found: %v",
			missing, t.Header,
		)
	}

	rows := make([][]string, len(t.Rows))
	for i, src := range t.Rows {
		row := make([]string, len(GameColumns))
		for j, name := range GameColumns {
			if k := index[name]; k < len(src) {
				row[j] = src[k]
			}
		}
		rows[i] = row
	}
	return rows, nil
}
