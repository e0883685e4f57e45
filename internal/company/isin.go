package company

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/traditionalchinese"

	"TWStockBoard/internal/httpx"
	"TWStockBoard/internal/model"
)

const isinColumn = "有價證券代號及名稱"

// The ISIN page separates code and name with an ideographic space.
var codeNamePattern = regexp.MustCompile(`^(\d{4})[\s\x{3000}]+(.+)$`)

// ISIN scrapes the ISIN registry page, whose first table carries a combined
// "code + name" column.
type ISIN struct {
	URL    string
	Client *http.Client
}

func (s *ISIN) Name() string { return "isin" }

func (s *ISIN) Load(ctx context.Context) ([]model.CompanyRecord, error) {
	body, err := httpx.Get(ctx, s.Client, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch isin page: %w", err)
	}
	return parseISIN(body)
}

func parseISIN(body []byte) ([]model.CompanyRecord, error) {
	if !utf8.Valid(body) {
		decoded, err := io.ReadAll(traditionalchinese.Big5.NewDecoder().Reader(bytes.NewReader(body)))
		if err != nil {
			return nil, fmt.Errorf("decode big5: %w", err)
		}
		body = decoded
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse isin html: %w", err)
	}
	rows := firstTableRows(doc)
	if len(rows) < 2 {
		return nil, fmt.Errorf("isin page: no table rows")
	}

	col := -1
	for i, h := range rows[0] {
		if strings.TrimSpace(h) == isinColumn {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("%w (isin header %q)", ErrColumnsNotFound, rows[0])
	}

	t := Table{Header: []string{"code", "name"}}
	for _, row := range rows[1:] {
		if col >= len(row) {
			continue
		}
		code, name := splitCodeName(row[col])
		t.Rows = append(t.Rows, []string{code, name})
	}
	return Normalize(t)
}

func splitCodeName(s string) (code, name string) {
	s = strings.TrimSpace(s)
	if m := codeNamePattern.FindStringSubmatch(s); m != nil {
		return m[1], strings.TrimSpace(m[2])
	}
	return "", s
}

// firstTableRows returns the cell texts of every row of the first <table>.
func firstTableRows(doc *html.Node) [][]string {
	var table *html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if table != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "table" {
			table = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(doc)
	if table == nil {
		return nil
	}

	var rows [][]string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var cells []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					cells = append(cells, strings.TrimSpace(extractText(c)))
				}
			}
			rows = append(rows, cells)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)
	return rows
}

func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(extractText(c))
	}
	return b.String()
}
