package utils

import (
	"reflect"
	"testing"
)

func TestNormalizeColumnNameVariantsCollapse(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Startup Name", "startup_name"},
		{"startup_name", "startup_name"},
		{"STARTUP-NAME", "startup_name"},
		{"  Amount Raised ($)  ", "amount_raised"},
		{"City//HQ", "city_hq"},
		{"___", ""},
	}
	for _, tc := range cases {
		if got := NormalizeColumnName(tc.in); got != tc.want {
			t.Fatalf("NormalizeColumnName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeColumnsSuffixesDuplicatesInOrder(t *testing.T) {
	got := NormalizeColumns([]string{"Amount", "amount", "AMOUNT!", "City"})
	want := []string{"amount", "amount_2", "amount_3", "city"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeColumns = %v, want %v", got, want)
	}
}

func TestResolveCanonicalColumnsPrefersExactName(t *testing.T) {
	resolved := ResolveCanonicalColumns([]string{"company", "startup_name", "industry"})
	if resolved["startup_name"] != "startup_name" {
		t.Fatalf("expected exact column to win, got %q", resolved["startup_name"])
	}
	if resolved["sector"] != "industry" {
		t.Fatalf("expected sector to bind to industry, got %q", resolved["sector"])
	}
}

func TestResolveCanonicalColumnsFirstAliasWins(t *testing.T) {
	// "startup" precedes "company" in the alias list even though company
	// appears first in the upload.
	resolved := ResolveCanonicalColumns([]string{"company", "startup"})
	if resolved["startup_name"] != "startup" {
		t.Fatalf("expected first alias to win, got %q", resolved["startup_name"])
	}
}

func TestResolveCanonicalColumnsAbsentFieldsOmitted(t *testing.T) {
	resolved := ResolveCanonicalColumns([]string{"startup"})
	if _, ok := resolved["amount"]; ok {
		t.Fatal("amount should be absent when no alias matches")
	}
}
