// Package sheets wraps the Google Sheets values API behind the small
// surface the sync workflows need: bounded range reads and writes,
// whole-tab clears and open-ended appends.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// USER_ENTERED so that values are parsed the way a typist's would be,
// dates and formulas included.
const valueInputOption = "USER_ENTERED"

type Config struct {
	// CredentialsJSON is a service account key blob. It is injected by
	// the CLI boundary, this package never reads the environment.
	CredentialsJSON []byte
}

type Client struct {
	svc *sheets.Service
}

func NewClient(ctx context.Context, config Config) (*Client, error) {
	svc, err := sheets.NewService(
		ctx,
		option.WithCredentialsJSON(config.CredentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Client{svc: svc}, nil
}

type Spreadsheet struct {
	svc   *sheets.Service
	id    string
	title string
}

// Open fetches spreadsheet metadata by its opaque identifier.
func (c *Client) Open(ctx context.Context, spreadsheetID string) (*Spreadsheet, error) {
	meta, err := c.svc.Spreadsheets.Get(spreadsheetID).
		Fields("properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet %s: %w", spreadsheetID, err)
	}
	return &Spreadsheet{
		svc:   c.svc,
		id:    spreadsheetID,
		title: meta.Properties.Title,
	}, nil
}

func (s *Spreadsheet) Title() string {
	return s.title
}

func (s *Spreadsheet) Tab(name string) *Tab {
	return &Tab{svc: s.svc, spreadsheetID: s.id, name: name}
}

// Tab is a handle to one named tab of an opened spreadsheet.
type Tab struct {
	svc           *sheets.Service
	spreadsheetID string
	name          string
}

func (t *Tab) Name() string {
	return t.name
}

func (t *Tab) ref(a1Range string) string {
	return fmt.Sprintf("'%s'!%s", t.name, a1Range)
}

// Get reads a rectangular range in A1 notation, e.g. "A3:F10" or "A:A".
func (t *Tab) Get(ctx context.Context, a1Range string) ([][]string, error) {
	res, err := t.svc.Spreadsheets.Values.Get(t.spreadsheetID, t.ref(a1Range)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", a1Range, err)
	}
	return fromCells(res.Values), nil
}

// Update writes a block of values at exactly the given range.
func (t *Tab) Update(ctx context.Context, a1Range string, values [][]string) error {
	_, err := t.svc.Spreadsheets.Values.Update(t.spreadsheetID, t.ref(a1Range), &sheets.ValueRange{
		Values: toCells(values),
	}).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", a1Range, err)
	}
	return nil
}

// Clear blanks the entire tab.
func (t *Tab) Clear(ctx context.Context) error {
	_, err := t.svc.Spreadsheets.Values.Clear(t.spreadsheetID, t.ref("A:ZZ"), &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to clear tab %s: %w", t.name, err)
	}
	return nil
}

// Append adds rows after the tab's used range, letting the backend pick
// the destination. The incremental append workflow avoids this call,
// it cannot guarantee where the rows land.
func (t *Tab) Append(ctx context.Context, values [][]string) error {
	_, err := t.svc.Spreadsheets.Values.Append(t.spreadsheetID, t.ref("A1"), &sheets.ValueRange{
		Values: toCells(values),
	}).
		ValueInputOption(valueInputOption).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append to tab %s: %w", t.name, err)
	}
	return nil
}

// ColumnValues reads a single column up to its last non-empty cell, the
// quick positioning strategy the access probe uses.
func (t *Tab) ColumnValues(ctx context.Context, col string) ([]string, error) {
	rows, err := t.Get(ctx, fmt.Sprintf("%s:%s", col, col))
	if err != nil {
		return nil, err
	}
	values := make([]string, len(rows))
	for i, row := range rows {
		if len(row) > 0 {
			values[i] = row[0]
		}
	}
	return values, nil
}

func toCells(values [][]string) [][]any {
	cells := make([][]any, len(values))
	for i, row := range values {
		cells[i] = make([]any, len(row))
		for j, v := range row {
			cells[i][j] = v
		}
	}
	return cells
}

func fromCells(cells [][]any) [][]string {
	values := make([][]string, len(cells))
	for i, row := range cells {
		values[i] = make([]string, len(row))
		for j, v := range row {
			if v == nil {
				continue
			}
			values[i][j] = fmt.Sprint(v)
		}
	}
	return values
}
