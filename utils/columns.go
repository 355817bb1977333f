// utils/columns.go - Spreadsheet header normalization and canonical field resolution
package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// RequiredColumn is the only canonical field an upload must resolve.
const RequiredColumn = "startup_name"

// columnAliases binds each canonical startup field to the header variants it
// accepts, in match priority order. Kept as data so adding a variant is a
// one-line change.
var columnAliases = []struct {
	Canonical string
	Aliases   []string
}{
	{"startup_name", []string{"startup", "startup_name", "company", "company_name", "name"}},
	{"sector", []string{"sector", "industry", "category", "vertical"}},
	{"city", []string{"city", "hq_city", "location_city"}},
	{"address", []string{"address", "hq_address", "location_address"}},
	{"amount", []string{"amount", "amount_raised", "funding_amount", "raise_amount", "funding"}},
	{"year", []string{"year", "funding_year", "raised_year"}},
	{"website", []string{"website", "web", "url", "company_website"}},
	{"leadership", []string{"leadership", "founder", "founders", "leadership_team", "leadership_founders"}},
	{"source_link", []string{"sourcelink", "source_link", "source", "article", "citation_link", "reference_link"}},
	{"contact", []string{"contact", "contact_details", "email", "phone"}},
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeColumnName lowercases a header and collapses every run of
// non-alphanumeric characters into a single underscore.
func NormalizeColumnName(name string) string {
	normalized := nonAlphanumeric.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
	return strings.Trim(normalized, "_")
}

// NormalizeColumns normalizes all headers of an upload. Headers that collide
// after normalization get a numeric suffix (_2, _3, ...) in first-seen order
// so every original column stays addressable.
func NormalizeColumns(headers []string) []string {
	seen := make(map[string]int, len(headers))
	columns := make([]string, 0, len(headers))
	for _, header := range headers {
		name := NormalizeColumnName(header)
		seen[name]++
		if count := seen[name]; count > 1 {
			name = fmt.Sprintf("%s_%d", name, count)
		}
		columns = append(columns, name)
	}
	return columns
}

// ResolveCanonicalColumns maps each canonical field to the normalized column
// that feeds it: the column named exactly like the canonical field wins,
// otherwise the first alias present in the upload. Canonical fields with no
// match are absent from the result.
func ResolveCanonicalColumns(columns []string) map[string]string {
	present := make(map[string]bool, len(columns))
	for _, column := range columns {
		present[column] = true
	}

	resolved := make(map[string]string)
	for _, entry := range columnAliases {
		if present[entry.Canonical] {
			resolved[entry.Canonical] = entry.Canonical
			continue
		}
		for _, alias := range entry.Aliases {
			if present[alias] {
				resolved[entry.Canonical] = alias
				break
			}
		}
	}
	return resolved
}

// CanonicalFields returns the canonical field names in declaration order.
func CanonicalFields() []string {
	fields := make([]string, 0, len(columnAliases))
	for _, entry := range columnAliases {
		fields = append(fields, entry.Canonical)
	}
	return fields
}

// AliasesFor returns the accepted header variants of a canonical field, in
// priority order. Used by the detail view to recover unparsed values from
// the fallback payload.
func AliasesFor(canonical string) []string {
	for _, entry := range columnAliases {
		if entry.Canonical == canonical {
			return entry.Aliases
		}
	}
	return nil
}
