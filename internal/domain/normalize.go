package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// meaningDelimiters separate alternative meanings inside one spreadsheet cell.
const meaningDelimiters = "/,;|"

// meaningPunct is the fixed set of characters ignored when comparing meanings.
// Do not extend it: a broader set would start accepting answers that used to be wrong.
var meaningPunct = strings.NewReplacer(
	".", "", ",", "", "!", "", "?", "",
	"(", "", ")", "", "{", "", "}", "", "[", "", "]", "",
	"'", "", "\"", "", "“", "", "”", "", "‘", "", "’", "",
)

// SplitMeaningList splits a meaning cell on / , ; | and returns the trimmed,
// non-empty pieces in their original order.
func SplitMeaningList(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(meaningDelimiters, r)
	})

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NormalizeMeaning prepares a meaning for exact comparison:
//   - collapses whitespace runs into one space and trims the ends
//   - strips the fixed punctuation set
//
// Case is preserved. The result is collapsed again after stripping, so
// NormalizeMeaning(NormalizeMeaning(s)) == NormalizeMeaning(s).
func NormalizeMeaning(text string) string {
	return collapseSpaces(meaningPunct.Replace(collapseSpaces(text)))
}

// NormalizeWord collapses whitespace, trims and lower-cases a headword.
func NormalizeWord(text string) string {
	return strings.ToLower(collapseSpaces(text))
}

// FormatDayKey turns a decoded cell value into a day key.
// Numbers keep their shortest natural form ("3", "3.5"); strings are only
// trimmed, so "3" and "3.0" stay distinct keys.
func FormatDayKey(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case fmt.Stringer:
		return strings.TrimSpace(v.String())
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
