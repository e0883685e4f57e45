package company

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"TWStockBoard/internal/model"
)

// ErrColumnsNotFound is returned when a table has no recognizable code or name column.
var ErrColumnsNotFound = errors.New("company table: code/name columns not found")

var codePattern = regexp.MustCompile(`^\d{4}$`)

// Table is a raw company table as read from any source, before normalization.
type Table struct {
	Header []string
	Rows   [][]string
}

func isCodeColumn(h string) bool {
	return strings.Contains(h, "公司代號") || strings.Contains(h, "證券代號") || strings.EqualFold(h, "code")
}

func isNameColumn(h string) bool {
	return strings.Contains(h, "公司名稱") || strings.Contains(h, "證券名稱") || strings.EqualFold(h, "name")
}

// Normalize extracts (code, name) pairs from t. Codes are cleaned of a trailing
// ".0" float artifact and filtered to exactly four digits; the first row wins
// for duplicate codes.
func Normalize(t Table) ([]model.CompanyRecord, error) {
	codeCol, nameCol := -1, -1
	for i, h := range t.Header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if codeCol < 0 && isCodeColumn(h) {
			codeCol = i
		}
		if nameCol < 0 && isNameColumn(h) {
			nameCol = i
		}
	}
	if codeCol < 0 || nameCol < 0 {
		return nil, fmt.Errorf("%w (header %q)", ErrColumnsNotFound, t.Header)
	}

	seen := make(map[string]struct{}, len(t.Rows))
	out := make([]model.CompanyRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		if codeCol >= len(row) || nameCol >= len(row) {
			continue
		}
		code := cleanCode(row[codeCol])
		if !codePattern.MatchString(code) {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, model.CompanyRecord{Code: code, Name: strings.TrimSpace(row[nameCol])})
	}
	return out, nil
}

func cleanCode(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ".0")
	return strings.TrimSpace(s)
}
