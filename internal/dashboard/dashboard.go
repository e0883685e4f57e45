// Package dashboard runs the full pipeline behind one dashboard view:
// resolve the company, fetch its history, annotate it, summarize it and
// attach the monthly news timeline.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"TWStockBoard/internal/calculator"
	"TWStockBoard/internal/model"
	"TWStockBoard/internal/strategy"
)

var (
	ErrCompanyNotFound  = errors.New("company not found")
	ErrAmbiguousCompany = errors.New("company query is ambiguous")
	ErrNoData           = errors.New("no trading data in range")
	ErrInvalidRange     = errors.New("start date is after end date")
)

// AmbiguousError lists the candidates of a query matching several companies.
type AmbiguousError struct {
	Query      string
	Candidates []model.CompanyRecord
}

func (e *AmbiguousError) Error() string {
	labels := make([]string, 0, len(e.Candidates))
	for _, c := range e.Candidates {
		labels = append(labels, c.Label())
	}
	return fmt.Sprintf("%q matches %d companies: %s", e.Query, len(e.Candidates), strings.Join(labels, ", "))
}

func (e *AmbiguousError) Is(target error) bool { return target == ErrAmbiguousCompany }

// CompanyFinder resolves a free-text keyword to company records.
type CompanyFinder interface {
	Search(ctx context.Context, keyword string) []model.CompanyRecord
}

// PriceSource returns the daily series of a ticker.
type PriceSource interface {
	FetchRange(ctx context.Context, code string, start, end time.Time) model.PriceSeries
}

// NewsSource returns the monthly headline timeline of a keyword.
type NewsSource interface {
	MonthlyTopNews(ctx context.Context, keyword string, start, end time.Time, perMonth int) (model.MonthlyNews, error)
}

// Query is one dashboard request.
type Query struct {
	Keyword      string    `json:"keyword"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	NewsPerMonth int       `json:"news_per_month"`
}

// Report is everything one dashboard view shows.
type Report struct {
	ID          string              `json:"id"`
	GeneratedAt time.Time           `json:"generated_at"`
	Query       Query               `json:"query"`
	Company     model.CompanyRecord `json:"company"`
	Series      model.PriceSeries   `json:"series"`
	Indicators  model.Indicators    `json:"indicators"`
	Summary     *model.Summary      `json:"summary,omitempty"`
	Badges      *model.Badges       `json:"badges,omitempty"`
	News        model.MonthlyNews   `json:"news"`
	NewsError   string              `json:"news_error,omitempty"`
}

// Service wires the directory, price history and news together. News may be
// nil, in which case reports carry no timeline.
type Service struct {
	Companies    CompanyFinder
	Prices       PriceSource
	News         NewsSource
	NewsPerMonth int
	Now          func() time.Time
}

// NewService creates a Service.
func NewService(companies CompanyFinder, prices PriceSource, news NewsSource, newsPerMonth int) *Service {
	return &Service{
		Companies:    companies,
		Prices:       prices,
		News:         news,
		NewsPerMonth: newsPerMonth,
		Now:          time.Now,
	}
}

// Resolve picks the single company a keyword refers to. With several
// matches an exact code or name match wins.
func (s *Service) Resolve(ctx context.Context, keyword string) (model.CompanyRecord, []model.CompanyRecord, error) {
	matches := s.Companies.Search(ctx, keyword)
	switch len(matches) {
	case 0:
		return model.CompanyRecord{}, nil, fmt.Errorf("%w: %q", ErrCompanyNotFound, keyword)
	case 1:
		return matches[0], matches, nil
	}
	kw := strings.TrimSpace(keyword)
	for _, m := range matches {
		if m.Code == kw || m.Name == kw {
			return m, matches, nil
		}
	}
	return model.CompanyRecord{}, matches, &AmbiguousError{Query: keyword, Candidates: matches}
}

// Build runs the pipeline for q. Company and price failures are returned as
// errors; a news failure only sets Report.NewsError.
func (s *Service) Build(ctx context.Context, q Query) (*Report, error) {
	if q.Start.After(q.End) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange, q.Start.Format("2006-01-02"), q.End.Format("2006-01-02"))
	}
	id := uuid.NewString()

	company, _, err := s.Resolve(ctx, q.Keyword)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] report %s: %s %s..%s", id, company.Label(), q.Start.Format("2006-01-02"), q.End.Format("2006-01-02"))

	series := s.Prices.FetchRange(ctx, company.Code, q.Start, q.End)
	if series.Empty() {
		return nil, fmt.Errorf("%w: %s %s..%s", ErrNoData, company.Code, q.Start.Format("2006-01-02"), q.End.Format("2006-01-02"))
	}

	ind := calculator.Annotate(series)
	r := &Report{
		ID:          id,
		GeneratedAt: s.now(),
		Query:       q,
		Company:     company,
		Series:      series,
		Indicators:  ind,
		News:        model.MonthlyNews{},
	}
	if sum, ok := strategy.Summarize(series, ind); ok {
		r.Summary = sum
	}
	if b, ok := strategy.Badges(series, ind); ok {
		r.Badges = b
	}

	if s.News != nil {
		perMonth := q.NewsPerMonth
		if perMonth <= 0 {
			perMonth = s.NewsPerMonth
		}
		// The timeline stops at the last trading day shown, not the requested end.
		news, err := s.News.MonthlyTopNews(ctx, company.Name, q.Start, series.Last().Date, perMonth)
		if err != nil {
			log.Printf("[WARN] report %s: news timeline unavailable: %v", id, err)
			r.NewsError = err.Error()
		} else {
			r.News = news
		}
	}

	log.Printf("[INFO] report %s: %d trading days, %d news months", id, len(series.Bars), len(r.News))
	return r, nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
