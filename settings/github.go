package settings

import (
	"strconv"
	"strings"
)

// SearchResult is the body of a GitHub issue search response.
type SearchResult struct {
	TotalCount int          `json:"total_count"`
	Items      []SearchItem `json:"items"`
}

// SearchItem is one pull request as returned by the GitHub search API.
type SearchItem struct {
	ID      int64         `json:"id"`
	Number  int           `json:"number"`
	Title   string        `json:"title"`
	HTMLURL string        `json:"html_url"`
	Body    string        `json:"body"`
	Labels  []SearchLabel `json:"labels"`
}

// SearchLabel is a label of a SearchItem. Color is hex without the leading '#'.
type SearchLabel struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// FromSearchItem converts a search result into a favorite of type t.
func FromSearchItem(item SearchItem, t string) PullRequest {
	p := PullRequest{
		ID:     item.ID,
		Number: item.Number,
		Title:  item.Title,
		URL:    item.HTMLURL,
		Type:   t,
		Body:   strings.TrimSpace(item.Body),
	}
	for _, l := range item.Labels {
		color := strings.TrimPrefix(l.Color, "#")
		p.Labels = append(p.Labels, Label{
			ID:           l.ID,
			Name:         l.Name,
			Color:        "#" + color,
			ReverseColor: ReverseColor(color),
		})
	}
	return p
}

// ReverseColor returns "#000000" for light backgrounds and "#ffffff" for dark
// ones. hex is "rrggbb" with or without '#'; anything unparsable counts as dark.
func ReverseColor(hex string) string {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) < 6 {
		return "#ffffff"
	}
	var sum uint64
	for i := 0; i < 6; i += 2 {
		c, err := strconv.ParseUint(hex[i:i+2], 16, 8)
		if err != nil {
			return "#ffffff"
		}
		sum += c
	}
	if 2*sum > 3*255 {
		return "#000000"
	}
	return "#ffffff"
}
