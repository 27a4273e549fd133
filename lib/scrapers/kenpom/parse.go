package kenpom

import (
	"fmt"
	"io"
	"strings"

	"cbbsync/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// Table is a parsed ratings grid, a header row plus data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

func parseRatingsTable(r io.Reader) (Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Table{}, err
	}

	root := doc.Find("table#ratings-table")
	if root.Length() == 0 {
		return Table{}, fmt.Errorf("could not find the ratings table")
	}

	// the last header row carries the per-column labels, rows above it
	// are grouping banners
	var header []string
	root.Find("thead tr").Last().Find("th").Each(func(_ int, cell *goquery.Selection) {
		for _, node := range cell.Nodes {
			header = append(header, strings.TrimSpace(htmlutil.GetText(node)))
		}
	})

	var rows [][]string
	root.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		// the site repeats its header mid-table every forty rows
		if tr.HasClass("thead") {
			return
		}
		var row []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			row = append(row, strings.TrimSpace(td.Text()))
		})
		if len(row) == 0 {
			return
		}
		rows = append(rows, row)
	})

	return Table{Header: header, Rows: rows}, nil
}
