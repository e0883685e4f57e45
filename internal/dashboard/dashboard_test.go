package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"TWStockBoard/internal/cache"
	"TWStockBoard/internal/collector"
	"TWStockBoard/internal/company"
	"TWStockBoard/internal/model"
)

type fakeNews struct {
	err        error
	start, end time.Time
	keyword    string
}

func (f *fakeNews) MonthlyTopNews(_ context.Context, keyword string, start, end time.Time, _ int) (model.MonthlyNews, error) {
	f.keyword, f.start, f.end = keyword, start, end
	if f.err != nil {
		return nil, f.err
	}
	return model.MonthlyNews{{Month: "2024-01", Items: []model.NewsItem{{Title: "台積電法說會"}}}}, nil
}

func writeDirectory(t *testing.T) *company.Directory {
	t.Helper()
	path := filepath.Join(t.TempDir(), "companies.json")
	data := `[{"公司代號":"2330","公司名稱":"台積電"},{"公司代號":"2303","公司名稱":"聯電"},{"公司代號":"2302","公司名稱":"麗正"}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return company.NewDirectory(&company.LocalFile{Path: path})
}

func stockDayServer(t *testing.T, calls *int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		month, err := time.Parse("20060102", r.URL.Query().Get("date"))
		if err != nil {
			http.Error(w, "bad date", http.StatusBadRequest)
			return
		}
		w.Write(collector.GenerateMonthPayload(month, 600))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func date(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestBuildEndToEnd(t *testing.T) {
	calls := 0
	srv := stockDayServer(t, &calls)
	history := collector.NewHistory(collector.NewTWSEFetcher(srv.URL, 5*time.Second, "", 0), cache.NewMemory(0))
	news := &fakeNews{}
	svc := NewService(writeDirectory(t), history, news, 5)

	q := Query{Keyword: "2330", Start: date(2024, 1, 1), End: date(2024, 3, 31)}
	r, err := svc.Build(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Company.Code != "2330" || r.Company.Name != "台積電" {
		t.Errorf("unexpected company %+v", r.Company)
	}
	if calls != 3 {
		t.Errorf("expected 3 month requests, got %d", calls)
	}

	bars := r.Series.Bars
	if bars[0].Date.Month() != time.January || r.Series.Last().Date.Month() != time.March {
		t.Errorf("expected series spanning Jan-Mar, got %s..%s", bars[0].Date, r.Series.Last().Date)
	}
	if !bars[0].Date.Equal(date(2024, 1, 1)) || !r.Series.Last().Date.Equal(date(2024, 3, 29)) {
		t.Errorf("unexpected first/last trading day %s..%s", bars[0].Date, r.Series.Last().Date)
	}
	if len(r.Indicators.RSI) != len(bars) || len(r.Indicators.MA[20]) != len(bars) {
		t.Error("expected indicator columns aligned with the series")
	}
	if r.Summary == nil || r.Badges == nil {
		t.Fatal("expected summary and badges")
	}
	if r.ID == "" {
		t.Error("expected a report id")
	}

	if news.keyword != "台積電" {
		t.Errorf("expected news keyed by company name, got %q", news.keyword)
	}
	if !news.end.Equal(r.Series.Last().Date) {
		t.Errorf("expected news window to end at last trading day, got %s", news.end)
	}
	if len(r.News) != 1 || r.NewsError != "" {
		t.Errorf("unexpected news %+v (%s)", r.News, r.NewsError)
	}

	if _, err := svc.Build(context.Background(), q); err != nil {
		t.Fatal(err)
	}
	if calls != 3 {
		t.Errorf("expected cached months on rebuild, got %d requests", calls)
	}
}

func TestBuildNewsFailureIsNonFatal(t *testing.T) {
	history := collector.NewHistory(&collector.MockFetcher{BasePrice: 50}, nil)
	svc := NewService(writeDirectory(t), history, &fakeNews{err: errors.New("feed down")}, 5)
	r, err := svc.Build(context.Background(), Query{Keyword: "聯電", Start: date(2024, 1, 1), End: date(2024, 1, 31)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.NewsError == "" {
		t.Error("expected news error to be reported")
	}
	if len(r.News) != 0 {
		t.Errorf("expected empty timeline, got %d months", len(r.News))
	}
}

func TestBuildErrors(t *testing.T) {
	dir := writeDirectory(t)
	ctx := context.Background()
	q := Query{Start: date(2024, 1, 1), End: date(2024, 1, 31)}

	svc := NewService(dir, collector.NewHistory(&collector.MockFetcher{}, nil), nil, 5)
	q.Keyword = "鴻海"
	if _, err := svc.Build(ctx, q); !errors.Is(err, ErrCompanyNotFound) {
		t.Errorf("expected ErrCompanyNotFound, got %v", err)
	}

	q.Keyword = "230"
	_, err := svc.Build(ctx, q)
	if !errors.Is(err, ErrAmbiguousCompany) {
		t.Fatalf("expected ErrAmbiguousCompany, got %v", err)
	}
	var amb *AmbiguousError
	if !errors.As(err, &amb) || len(amb.Candidates) != 2 {
		t.Errorf("expected 2 candidates, got %v", err)
	}

	empty := &collector.MockFetcher{Payloads: map[string][]byte{"20240101": collector.EmptyPayload}}
	svc = NewService(dir, collector.NewHistory(empty, nil), nil, 5)
	q.Keyword = "2330"
	if _, err := svc.Build(ctx, q); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}

	q.Start, q.End = q.End, q.Start
	if _, err := svc.Build(ctx, q); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestResolveExactMatchWins(t *testing.T) {
	dir := company.NewDirectory(&staticSource{recs: []model.CompanyRecord{
		{Code: "2330", Name: "台積電"},
		{Code: "1233", Name: "2330 概念股"},
	}})
	svc := NewService(dir, nil, nil, 5)
	rec, matches, err := svc.Resolve(context.Background(), "2330")
	if err != nil || rec.Name != "台積電" || len(matches) != 2 {
		t.Errorf("expected exact code match among 2, got %+v %d %v", rec, len(matches), err)
	}
}

type staticSource struct{ recs []model.CompanyRecord }

func (s *staticSource) Name() string { return "static" }

func (s *staticSource) Load(context.Context) ([]model.CompanyRecord, error) { return s.recs, nil }

func TestParseWindow(t *testing.T) {
	today := date(2024, 5, 20)
	from, to, err := ParseWindow("", "", today)
	if err != nil || !from.Equal(date(2024, 2, 1)) || !to.Equal(today) {
		t.Errorf("unexpected default window %s..%s (%v)", from, to, err)
	}
	from, to, err = ParseWindow("113/01/02", "2024-03", today)
	if err != nil || !from.Equal(date(2024, 1, 2)) || !to.Equal(date(2024, 3, 31)) {
		t.Errorf("unexpected window %s..%s (%v)", from, to, err)
	}
	from, to, err = ParseWindow("2024-02", "2024-02", today)
	if err != nil || !from.Equal(date(2024, 2, 1)) || !to.Equal(date(2024, 2, 29)) {
		t.Errorf("expected a month-only end to cover the month, got %s..%s (%v)", from, to, err)
	}
	if _, _, err := ParseWindow("2024-05-01", "2024-04-01", today); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
	if _, _, err := ParseWindow("yesterday", "", today); err == nil {
		t.Error("expected error for unparsable date")
	}
}
