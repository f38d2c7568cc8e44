package catalog

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortDayKeys sorts keys in place: pairs that both parse as numbers compare
// numerically, any other pair compares in Korean collation order. Equal keys
// keep their relative order.
func SortDayKeys(keys []string) {
	col := collate.New(language.Korean)
	slices.SortStableFunc(keys, func(a, b string) int {
		return compareDayKeys(col, a, b)
	})
}

func compareDayKeys(col *collate.Collator, a, b string) int {
	na, aErr := parseNumber(a)
	nb, bErr := parseNumber(b)
	if aErr == nil && bErr == nil {
		if c := cmp.Compare(na, nb); c != 0 {
			return c
		}
	}
	if c := col.CompareString(a, b); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func parseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err == nil && math.IsNaN(f) {
		return 0, strconv.ErrSyntax
	}
	return f, err
}
