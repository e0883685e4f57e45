package news

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// CleanSummary strips markup from an RSS description and collapses whitespace.
func CleanSummary(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var parts []string
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				return strings.Join(strings.Fields(s), " ")
			}
			return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
		case html.TextToken:
			parts = append(parts, string(z.Text()))
		}
	}
}
