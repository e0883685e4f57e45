// Package company resolves listed-company names and codes from a reference
// table that is loaded once per process from an ordered list of sources.
package company

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"golang.org/x/text/width"

	"TWStockBoard/internal/model"
)

// ErrEmptyTable is returned for a source that loaded but yielded no usable rows.
var ErrEmptyTable = errors.New("company table is empty")

// Attempt records the outcome of one source during Load.
type Attempt struct {
	Source  string
	Records int
	Err     error
}

// OK reports whether the attempt produced the table.
func (a Attempt) OK() bool { return a.Err == nil }

// Directory is the company reference table. The first successful source wins;
// when every source fails the table is empty. The table never changes after
// the first Load.
type Directory struct {
	sources []Source

	once     sync.Once
	table    []model.CompanyRecord
	attempts []Attempt
}

// NewDirectory creates a Directory that tries sources in the given order.
func NewDirectory(sources ...Source) *Directory {
	return &Directory{sources: sources}
}

// Load returns the company table, loading it on first use. The table outlives
// the first caller, so its cancellation is ignored and only the source client
// timeouts bound the load.
func (d *Directory) Load(ctx context.Context) []model.CompanyRecord {
	d.once.Do(func() {
		d.table, d.attempts = load(context.WithoutCancel(ctx), d.sources)
	})
	return d.table
}

// Attempts returns what happened to each source during the first Load.
func (d *Directory) Attempts() []Attempt {
	out := make([]Attempt, len(d.attempts))
	copy(out, d.attempts)
	return out
}

func load(ctx context.Context, sources []Source) ([]model.CompanyRecord, []Attempt) {
	attempts := make([]Attempt, 0, len(sources))
	for _, src := range sources {
		log.Printf("[INFO] loading company table from %s", src.Name())
		recs, err := loadOne(ctx, src)
		attempts = append(attempts, Attempt{Source: src.Name(), Records: len(recs), Err: err})
		if err != nil {
			log.Printf("[WARN] company source %s failed: %v", src.Name(), err)
			continue
		}
		log.Printf("[INFO] company table loaded from %s: %d records", src.Name(), len(recs))
		return recs, attempts
	}
	log.Println("[WARN] all company sources failed, using empty table")
	return []model.CompanyRecord{}, attempts
}

func loadOne(ctx context.Context, src Source) (recs []model.CompanyRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			recs, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	recs, err = src.Load(ctx)
	if err == nil && len(recs) == 0 {
		err = ErrEmptyTable
	}
	return recs, err
}

// Search returns every record whose name or code contains keyword. Matching is
// case-insensitive and folds full-width characters and whitespace runs.
func (d *Directory) Search(ctx context.Context, keyword string) []model.CompanyRecord {
	table := d.Load(ctx)
	k := normalizeKeyword(keyword)

	var out []model.CompanyRecord
	for _, rec := range table {
		if strings.Contains(normalizeKeyword(rec.Name), k) || strings.Contains(rec.Code, k) {
			out = append(out, rec)
		}
	}
	return out
}

// Lookup returns the record with exactly this code.
func (d *Directory) Lookup(ctx context.Context, code string) (model.CompanyRecord, bool) {
	code = strings.TrimSpace(code)
	for _, rec := range d.Load(ctx) {
		if rec.Code == code {
			return rec, true
		}
	}
	return model.CompanyRecord{}, false
}

func normalizeKeyword(s string) string {
	s = width.Fold.String(s)
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
