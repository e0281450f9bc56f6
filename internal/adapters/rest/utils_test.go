package rest

import (
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestParsePagination(t *testing.T) {
	cases := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", 20, 0},
		{"explicit page", "page=3&page_size=10", 10, 20},
		{"zero page clamps to first", "page=0", 20, 0},
		{"negative page clamps to first", "page=-5", 20, 0},
		{"oversized page_size falls back", "page_size=500", 20, 0},
		{"garbage values fall back", "page=abc&page_size=xyz", 20, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			query, _ := url.ParseQuery(tc.query)
			limit, offset := parsePagination(query)
			if limit != tc.wantLimit || offset != tc.wantOffset {
				t.Errorf("parsePagination(%q) = (%d, %d), want (%d, %d)",
					tc.query, limit, offset, tc.wantLimit, tc.wantOffset)
			}
		})
	}
}

func TestQueryParamHelpers(t *testing.T) {
	query, _ := url.ParseQuery("min_price=1000.5&bedrooms=3&featured=true&bad_float=abc&bad_int=1.5&bad_bool=yes-please")

	if v := parseFloat(query, "min_price"); v == nil || *v != 1000.5 {
		t.Errorf("parseFloat = %v, want 1000.5", v)
	}
	if v := parseInt(query, "bedrooms"); v == nil || *v != 3 {
		t.Errorf("parseInt = %v, want 3", v)
	}
	if v := parseBool(query, "featured"); v == nil || !*v {
		t.Errorf("parseBool = %v, want true", v)
	}

	// политика validate-or-ignore: мусор дает nil, а не ошибку
	if v := parseFloat(query, "bad_float"); v != nil {
		t.Errorf("parseFloat on garbage = %v, want nil", v)
	}
	if v := parseInt(query, "bad_int"); v != nil {
		t.Errorf("parseInt on garbage = %v, want nil", v)
	}
	if v := parseBool(query, "bad_bool"); v != nil {
		t.Errorf("parseBool on garbage = %v, want nil", v)
	}
	if v := parseUUID(query, "missing"); v != nil {
		t.Errorf("parseUUID on missing key = %v, want nil", v)
	}
}

func TestClientIP(t *testing.T) {
	t.Run("prefers first X-Forwarded-For entry", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "10.0.0.1:12345"
		r.Header.Set("X-Forwarded-For", "203.0.113.7, 70.41.3.18")

		if got := clientIP(r); got != "203.0.113.7" {
			t.Errorf("clientIP = %q, want 203.0.113.7", got)
		}
	})

	t.Run("falls back to remote addr host", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "192.0.2.44:54321"

		if got := clientIP(r); got != "192.0.2.44" {
			t.Errorf("clientIP = %q, want 192.0.2.44", got)
		}
	})

	t.Run("remote addr without port is returned as is", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "192.0.2.44"

		if got := clientIP(r); got != "192.0.2.44" {
			t.Errorf("clientIP = %q, want 192.0.2.44", got)
		}
	})
}
