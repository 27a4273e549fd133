package sheets

import "fmt"

// ColumnLetter converts a 1-based column number to its A1 letter form,
// e.g. 1 -> "A", 27 -> "AA".
func ColumnLetter(n int) string {
	var out []byte
	for n > 0 {
		n--
		out = append([]byte{byte('A' + n%26)}, out...)
		n /= 26
	}
	return string(out)
}

// RangeRef formats a rectangular A1 range from 1-based coordinates.
func RangeRef(startCol string, startRow int, endCol string, endRow int) string {
	return fmt.Sprintf("%s%d:%s%d", startCol, startRow, endCol, endRow)
}
