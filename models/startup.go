package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Startup is one row of the uploaded startup master. StartupName is the
// natural key: re-ingestion upserts by name and overwrites every other
// column. Amount is best-effort only — source spreadsheets mix currency and
// scale conventions and the figure is never normalized to a single unit, so
// downstream consumers must not treat it as a reliable financial value. The
// original row survives verbatim in RawJSON for display fallback.
type Startup struct {
	ID          int      `gorm:"primaryKey;column:id" json:"id"`
	StartupName string   `gorm:"column:startup_name;unique" json:"startup_name"`
	Sector      *string  `gorm:"column:sector" json:"sector,omitempty"`
	City        *string  `gorm:"column:city" json:"city,omitempty"`
	Year        *int     `gorm:"column:year" json:"year,omitempty"`
	Amount      *float64 `gorm:"column:amount" json:"amount,omitempty"`
	Website     *string  `gorm:"column:website" json:"website,omitempty"`
	Leadership  *string  `gorm:"column:leadership" json:"leadership,omitempty"`
	SourceLink  *string  `gorm:"column:source_link" json:"source_link,omitempty"`
	Address     *string  `gorm:"column:address" json:"address,omitempty"`
	Contact     *string  `gorm:"column:contact" json:"contact,omitempty"`
	RawJSON     string   `gorm:"column:raw_json;type:text" json:"-"`
}

// TableName overrides
func (Startup) TableName() string {
	return "startups"
}

// RawValue is one cell of the original spreadsheet row kept as the fallback
// payload: a string, a number, or null. Modeled explicitly instead of an
// untyped interface so callers can tell the three cases apart.
type RawValue struct {
	Str *string
	Num *float64
}

// RawString builds a string RawValue.
func RawString(s string) RawValue { return RawValue{Str: &s} }

// RawNumber builds a numeric RawValue.
func RawNumber(n float64) RawValue { return RawValue{Num: &n} }

// IsNull reports whether the original cell was empty.
func (v RawValue) IsNull() bool {
	return v.Str == nil && v.Num == nil
}

// Display returns the value as shown to users; empty string for null.
func (v RawValue) Display() string {
	switch {
	case v.Num != nil:
		return strconv.FormatFloat(*v.Num, 'f', -1, 64)
	case v.Str != nil:
		return strings.TrimSpace(*v.Str)
	default:
		return ""
	}
}

func (v RawValue) MarshalJSON() ([]byte, error) {
	switch {
	case v.Num != nil:
		return json.Marshal(*v.Num)
	case v.Str != nil:
		return json.Marshal(*v.Str)
	default:
		return []byte("null"), nil
	}
}

func (v *RawValue) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*v = RawValue{}
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v.Str, v.Num = &s, nil
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	v.Num, v.Str = &n, nil
	return nil
}

// RawPayload decodes the stored fallback payload. A missing or corrupt
// payload comes back empty rather than failing the caller.
func (s *Startup) RawPayload() map[string]RawValue {
	if s.RawJSON == "" {
		return map[string]RawValue{}
	}
	payload := map[string]RawValue{}
	if err := json.Unmarshal([]byte(s.RawJSON), &payload); err != nil {
		return map[string]RawValue{}
	}
	return payload
}
