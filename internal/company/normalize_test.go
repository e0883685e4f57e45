package company

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	tbl := Table{
		Header: []string{" 出表日期", "公司代號 ", "公司名稱", "公司簡稱"},
		Rows: [][]string{
			{"1130520", "2330.0", "台灣積體電路製造股份有限公司", "台積電"},
			{"1130520", "abc", "bad code", "x"},
			{"1130520", " 1101 ", " 臺灣水泥股份有限公司 ", "台泥"},
			{"1130520", "2330", "duplicate", "dup"},
			{"1130520", "12345", "five digits", "x"},
			{"1130520"},
		},
	}
	recs, err := Normalize(tbl)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d: %+v", len(recs), recs)
	}
	if recs[0].Code != "2330" || recs[0].Name != "台灣積體電路製造股份有限公司" {
		t.Errorf("first record = %+v", recs[0])
	}
	if recs[1].Code != "1101" || recs[1].Name != "臺灣水泥股份有限公司" {
		t.Errorf("second record = %+v", recs[1])
	}
}

func TestNormalizeLiteralHeaders(t *testing.T) {
	recs, err := Normalize(Table{
		Header: []string{"CODE", "Name"},
		Rows:   [][]string{{"2317", "鴻海"}},
	})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(recs) != 1 || recs[0].Code != "2317" {
		t.Errorf("unexpected records %+v", recs)
	}
}

func TestNormalizeMissingColumns(t *testing.T) {
	_, err := Normalize(Table{Header: []string{"foo", "name"}, Rows: [][]string{{"2330", "x"}}})
	if !errors.Is(err, ErrColumnsNotFound) {
		t.Fatalf("expected ErrColumnsNotFound, got %v", err)
	}
}

func TestDecodeJSONTableKeepsKeyOrder(t *testing.T) {
	data := []byte(`[{"證券代號":"2330","公司代號":"9999","公司名稱":"台積電"},{"公司名稱":"鴻海","證券代號":2317.0}]`)
	tbl, err := decodeJSONTable(data)
	if err != nil {
		t.Fatalf("decodeJSONTable: %v", err)
	}
	if tbl.Header[0] != "證券代號" {
		t.Fatalf("header order lost: %q", tbl.Header)
	}
	recs, err := Normalize(tbl)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(recs) != 2 || recs[0].Code != "2330" || recs[1].Code != "2317" || recs[1].Name != "鴻海" {
		t.Errorf("unexpected records %+v", recs)
	}
}

func TestDecodeCSVTableSkipsBadLines(t *testing.T) {
	data := []byte("\ufeff公司代號,公司名稱\n2330,台積電\n1101,台泥,extra\n2317,鴻海\n")
	recs, err := normalizeCSV(data)
	if err != nil {
		t.Fatalf("normalizeCSV: %v", err)
	}
	if len(recs) != 2 || recs[1].Code != "2317" {
		t.Errorf("unexpected records %+v", recs)
	}
}

func TestSplitCodeName(t *testing.T) {
	tests := []struct {
		in, code, name string
	}{
		{"2330　台積電", "2330", "台積電"},
		{"1101 台泥", "1101", "台泥"},
		{"股票", "", "股票"},
		{"TW0002330008", "", "TW0002330008"},
	}
	for _, tt := range tests {
		code, name := splitCodeName(tt.in)
		if code != tt.code || name != tt.name {
			t.Errorf("splitCodeName(%q) = (%q, %q), want (%q, %q)", tt.in, code, name, tt.code, tt.name)
		}
	}
}
