package domain

import "testing"

func TestParsePropertyOrdering(t *testing.T) {
	cases := []struct {
		name       string
		raw        string
		wantColumn string
		wantDesc   bool
	}{
		{"ascending price", "price", "price", false},
		{"descending price", "-price", "price", true},
		{"rating", "rating", "rating", false},
		{"area descending", "-area", "area", true},
		{"empty falls back to newest first", "", "created_at", true},
		{"unknown column falls back", "password_hash", "created_at", true},
		{"sql injection attempt falls back", "price; DROP TABLE properties", "created_at", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			column, desc := ParsePropertyOrdering(tc.raw)
			if column != tc.wantColumn || desc != tc.wantDesc {
				t.Errorf("ParsePropertyOrdering(%q) = (%q, %v), want (%q, %v)",
					tc.raw, column, desc, tc.wantColumn, tc.wantDesc)
			}
		})
	}
}

func TestParseAgentOrdering(t *testing.T) {
	column, desc := ParseAgentOrdering("")
	if column != "average_rating" || !desc {
		t.Errorf("default agent ordering = (%q, %v), want (average_rating, true)", column, desc)
	}

	column, desc = ParseAgentOrdering("total_properties_sold")
	if column != "total_properties_sold" || desc {
		t.Errorf("ordering = (%q, %v), want (total_properties_sold, false)", column, desc)
	}
}
