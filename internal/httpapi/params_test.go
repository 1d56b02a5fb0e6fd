package httpapi

import (
	"net/url"
	"testing"
)

func TestParseReaches(t *testing.T) {
	cases := []struct {
		query   string
		want    []int
		wantErr bool
	}{
		{query: "", want: nil},
		{query: "reach=2", want: []int{2}},
		{query: "reach=5&reach=2", want: []int{5, 2}},
		{query: "reach=1", wantErr: true},
		{query: "reach=6", wantErr: true},
		{query: "reach=", wantErr: true},
		{query: "reach=2.5", wantErr: true},
		{query: "reach=2&reach=x", wantErr: true},
	}
	for _, c := range cases {
		q, _ := url.ParseQuery(c.query)
		got, err := parseReaches(q)
		if c.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", c.query)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", c.query, err)
		}
		if len(got) != len(c.want) {
			t.Fatalf("%q: got %v want %v", c.query, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("%q: got %v want %v", c.query, got, c.want)
			}
		}
	}
}

func TestParseHours(t *testing.T) {
	cases := []struct {
		query   string
		want    int
		wantErr bool
	}{
		{query: "", want: 24},
		{query: "hours=1", want: 1},
		{query: "hours=48", want: 48},
		{query: "hours=36", want: 36},
		{query: "hours=4", wantErr: true},
		{query: "hours=-1", wantErr: true},
		{query: "hours=24.0", wantErr: true},
		{query: "hours=lots", wantErr: true},
	}
	for _, c := range cases {
		q, _ := url.ParseQuery(c.query)
		got, err := parseHours(q)
		if c.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", c.query)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", c.query, err)
		}
		if got != c.want {
			t.Fatalf("%q: got %d want %d", c.query, got, c.want)
		}
	}
}
