package settings

import (
	"context"
	"encoding/json"
	"testing"
)

func TestReverseColor(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"ffffff", "#000000"},
		{"000000", "#ffffff"},
		{"#fbca04", "#000000"},
		{"0e8a16", "#ffffff"},
		{"808080", "#000000"},
		{"7f7f7f", "#ffffff"},
		{"zzzzzz", "#ffffff"},
		{"fff", "#ffffff"},
	}
	for _, tc := range cases {
		if got := ReverseColor(tc.in); got != tc.want {
			t.Errorf("ReverseColor(%q)=%s want %s", tc.in, got, tc.want)
		}
	}
}

func TestFromSearchItem(t *testing.T) {
	const body = `{"total_count":1,"items":[{
		"id": 42, "number": 1234, "title": "[FIX] web: stuff",
		"html_url": "https://github.com/odoo/odoo/pull/1234",
		"body": "  Description\n",
		"labels": [{"id": 7, "name": "RD", "color": "fbca04"}]
	}]}`
	var res SearchResult
	if err := json.Unmarshal([]byte(body), &res); err != nil {
		t.Fatal(err)
	}
	p := FromSearchItem(res.Items[0], TypeCommunity)

	if p.ID != 42 || p.Number != 1234 || p.Type != TypeCommunity || p.URL != "https://github.com/odoo/odoo/pull/1234" {
		t.Fatalf("unexpected pull request: %+v", p)
	}
	if p.Body != "Description" {
		t.Fatalf("Body=%q", p.Body)
	}
	want := Label{ID: 7, Name: "RD", Color: "#fbca04", ReverseColor: "#000000"}
	if len(p.Labels) != 1 || p.Labels[0] != want {
		t.Fatalf("Labels=%+v want [%+v]", p.Labels, want)
	}

	s, _ := newLoadedStore(t, nil)
	if on, err := s.ToggleFavorite(context.Background(), p); err != nil || !on {
		t.Fatalf("ToggleFavorite=%v err=%v", on, err)
	}
	favs, err := s.Favorites(context.Background(), TypeCommunity)
	if err != nil || len(favs) != 1 || favs[0].Labels[0].ReverseColor != "#000000" {
		t.Fatalf("favorites=%+v err=%v", favs, err)
	}
}
