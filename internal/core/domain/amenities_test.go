package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestRawAmenitiesUnmarshal(t *testing.T) {
	cases := []struct {
		name  string
		input string
		valid bool
		want  []string
	}{
		{"json array", `["pool", "gym"]`, true, []string{"pool", "gym"}},
		{"empty array", `[]`, true, []string{}},
		{"string-encoded array", `"[\"water\", \"electricity\"]"`, true, []string{"water", "electricity"}},
		{"string with garbage inside", `"just words"`, false, []string{}},
		{"number", `42`, false, []string{}},
		{"object", `{"a": 1}`, false, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var r RawAmenities
			if err := json.Unmarshal([]byte(tc.input), &r); err != nil {
				t.Fatalf("unmarshal must never fail, got %v", err)
			}
			if r.Valid() != tc.valid {
				t.Errorf("Valid() = %v, want %v", r.Valid(), tc.valid)
			}
			if got := r.Resolve(nil); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Resolve(nil) = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRawAmenitiesResolve(t *testing.T) {
	t.Run("invalid value keeps previous list", func(t *testing.T) {
		r := ParseAmenitiesString("not json")
		previous := []string{"water"}
		if got := r.Resolve(previous); !reflect.DeepEqual(got, previous) {
			t.Errorf("Resolve = %v, want previous %v", got, previous)
		}
	})

	t.Run("valid value wins over previous", func(t *testing.T) {
		r := ParseAmenitiesString(`["gym"]`)
		if got := r.Resolve([]string{"water"}); !reflect.DeepEqual(got, []string{"gym"}) {
			t.Errorf("Resolve = %v, want [gym]", got)
		}
	})

	t.Run("invalid value without previous gives empty list", func(t *testing.T) {
		var r RawAmenities
		got := r.Resolve(nil)
		if got == nil || len(got) != 0 {
			t.Errorf("Resolve = %v, want empty non-nil list", got)
		}
	})
}
