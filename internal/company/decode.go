package company

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// decodeJSONTable reads a JSON array of flat objects. Column order follows the
// key order of the objects as they appear in the document.
func decodeJSONTable(data []byte) (Table, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return Table{}, err
	}

	var t Table
	index := make(map[string]int)
	for dec.More() {
		if err := expectDelim(dec, '{'); err != nil {
			return Table{}, err
		}
		row := make([]string, len(t.Header))
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return Table{}, fmt.Errorf("read key: %w", err)
			}
			key, ok := tok.(string)
			if !ok {
				return Table{}, fmt.Errorf("unexpected key token %v", tok)
			}
			var raw any
			if err := dec.Decode(&raw); err != nil {
				return Table{}, fmt.Errorf("read value of %q: %w", key, err)
			}
			col, ok := index[key]
			if !ok {
				col = len(t.Header)
				index[key] = col
				t.Header = append(t.Header, key)
			}
			for len(row) <= col {
				row = append(row, "")
			}
			row[col] = stringify(raw)
		}
		if err := expectDelim(dec, '}'); err != nil {
			return Table{}, err
		}
		t.Rows = append(t.Rows, row)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return Table{}, err
	}
	if len(t.Rows) == 0 {
		return Table{}, errors.New("empty JSON table")
	}
	return t, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// decodeCSVTable reads a CSV table whose first record is the header. Records
// with a malformed quote or a field count different from the header are skipped.
func decodeCSVTable(data []byte) (Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return Table{}, fmt.Errorf("read csv header: %w", err)
	}
	t := Table{Header: header}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				continue
			}
			return Table{}, fmt.Errorf("read csv: %w", err)
		}
		if len(rec) != len(header) {
			continue
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}
