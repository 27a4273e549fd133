package sheets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColumnLetter(t *testing.T) {
	testCases := []struct {
		n        int
		expected string
	}{
		{1, "A"},
		{2, "B"},
		{6, "F"},
		{26, "Z"},
		{27, "AA"},
		{28, "AB"},
		{52, "AZ"},
		{53, "BA"},
		{702, "ZZ"},
		{703, "AAA"},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, ColumnLetter(test.n), "n=%d", test.n)
	}
}

func TestRangeRef(t *testing.T) {
	require.Equal(t, "A6:F10", RangeRef("A", 6, "F", 10))
	require.Equal(t, "A1:ZZ500", RangeRef("A", 1, "ZZ", 500))
}
