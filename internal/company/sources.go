package company

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"TWStockBoard/internal/httpx"
	"TWStockBoard/internal/model"
)

// Source is one place the company table can be loaded from.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]model.CompanyRecord, error)
}

// LocalFile reads a saved copy of the exchange's company listing (JSON or CSV).
type LocalFile struct {
	Path string
}

func (s *LocalFile) Name() string { return "local:" + s.Path }

func (s *LocalFile) Load(_ context.Context) ([]model.CompanyRecord, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read company file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".json":
		return normalizeJSON(data)
	case ".csv":
		return normalizeCSV(data)
	default:
		if recs, err := normalizeJSON(data); err == nil {
			return recs, nil
		}
		return normalizeCSV(data)
	}
}

// OpenData fetches the listing from the exchange's open-data endpoint,
// preferring JSON and falling back to a lenient CSV parse of the same body.
type OpenData struct {
	URL    string
	Client *http.Client
}

func (s *OpenData) Name() string { return "opendata" }

func (s *OpenData) Load(ctx context.Context) ([]model.CompanyRecord, error) {
	body, err := httpx.Get(ctx, s.Client, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch open data: %w", err)
	}
	if recs, err := normalizeJSON(body); err == nil {
		return recs, nil
	} else if errors.Is(err, ErrColumnsNotFound) {
		return nil, err
	}
	return normalizeCSV([]byte(strings.TrimSpace(string(body))))
}

func normalizeJSON(data []byte) ([]model.CompanyRecord, error) {
	t, err := decodeJSONTable(data)
	if err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return Normalize(t)
}

func normalizeCSV(data []byte) ([]model.CompanyRecord, error) {
	t, err := decodeCSVTable(data)
	if err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}
	return Normalize(t)
}
