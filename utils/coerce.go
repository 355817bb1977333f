// utils/coerce.go - Tolerant per-field value coercion for ingested rows
package utils

import (
	"regexp"
	"strconv"
	"strings"
)

// CellValue is one spreadsheet cell as read from the workbook: the raw text
// plus the native numeric value when the cell carried one.
type CellValue struct {
	Raw    string
	Number *float64
}

// IsEmpty reports whether the cell holds nothing usable.
func (v CellValue) IsEmpty() bool {
	return v.Number == nil && strings.TrimSpace(v.Raw) == ""
}

var (
	yearPattern        = regexp.MustCompile(`(19|20)\d{2}`)
	whitespacePattern  = regexp.MustCompile(`\s+`)
	scaleWordPattern   = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)\s*(crore|cr|lakh|lac|million|mn|mil|billion|bn|thousand|k)\b`)
	tightSuffixPattern = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)(k|m|b)\b`)
	plainNumberPattern = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)
)

var scaleFactors = map[string]float64{
	"crore": 1e7, "cr": 1e7,
	"lakh": 1e5, "lac": 1e5,
	"million": 1e6, "mn": 1e6, "mil": 1e6,
	"billion": 1e9, "bn": 1e9,
	"thousand": 1e3, "k": 1e3,
}

var suffixFactors = map[string]float64{"k": 1e3, "m": 1e6, "b": 1e9}

// CoerceString trims the cell text; an empty result is nil.
func CoerceString(v CellValue) *string {
	if v.Number != nil {
		s := strconv.FormatFloat(*v.Number, 'f', -1, 64)
		return &s
	}
	s := strings.TrimSpace(v.Raw)
	if s == "" {
		return nil
	}
	return &s
}

// CoerceInt extracts an integer, preferring a 4-digit 19xx/20xx token when
// the cell is text (year columns arrive as "Funded in 2019" and similar).
// Returns nil on anything unparseable.
func CoerceInt(v CellValue) *int {
	if v.Number != nil {
		n := int(*v.Number)
		return &n
	}
	s := strings.TrimSpace(v.Raw)
	if s == "" {
		return nil
	}
	if match := yearPattern.FindString(s); match != "" {
		n, _ := strconv.Atoi(match)
		return &n
	}
	if n, err := strconv.Atoi(s); err == nil {
		return &n
	}
	return nil
}

// CoerceAmount parses free-text funding figures in mixed conventions:
// Indian crore/lakh, western million/billion, and tight k/m/b suffixes.
// A text with more than one scaled figure is ambiguous and yields nil
// rather than a guess. The result keeps whatever currency unit the source
// used; nothing here converts between currencies.
func CoerceAmount(v CellValue) *float64 {
	if v.Number != nil {
		f := *v.Number
		return &f
	}

	text := strings.ToLower(strings.TrimSpace(v.Raw))
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, ",", "")
	text = strings.ReplaceAll(text, "us$", "")
	text = strings.ReplaceAll(text, "$", "")
	text = strings.ReplaceAll(text, "₹", " ")
	text = strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))

	if matches := scaleWordPattern.FindAllStringSubmatch(text, -1); len(matches) == 1 {
		n, err := strconv.ParseFloat(matches[0][1], 64)
		if err != nil {
			return nil
		}
		f := n * scaleFactors[matches[0][2]]
		return &f
	} else if len(matches) > 1 {
		return nil
	}

	if matches := tightSuffixPattern.FindAllStringSubmatch(text, -1); len(matches) == 1 {
		n, err := strconv.ParseFloat(matches[0][1], 64)
		if err != nil {
			return nil
		}
		f := n * suffixFactors[matches[0][2]]
		return &f
	} else if len(matches) > 1 {
		return nil
	}

	if match := plainNumberPattern.FindString(text); match != "" {
		n, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return nil
		}
		return &n
	}
	return nil
}
