package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"TWStockBoard/internal/model"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>台積電 - Google 新聞</title>
<item><title>台積電法說會 - 經濟日報</title><link>https://example.com/a</link>
<pubDate>Wed, 17 Jan 2024 06:00:00 GMT</pubDate>
<description>&lt;a href="https://example.com/a"&gt;台積電法說會&lt;/a&gt;&amp;nbsp;&amp;nbsp;&lt;font color="#6f6f6f"&gt;經濟日報&lt;/font&gt;</description></item>
<item><title>一月營收 - 工商時報</title><link>https://example.com/b</link>
<pubDate>Fri, 09 Feb 2024 02:00:00 GMT</pubDate><description>&lt;p&gt;營收  創新高&lt;/p&gt;</description></item>
<item><title>二月展望</title><link>https://example.com/c</link>
<pubDate>Tue, 20 Feb 2024 02:00:00 GMT</pubDate><description>展望</description></item>
<item><title>沒有時間</title><link>https://example.com/d</link><pubDate>sometime</pubDate></item>
<item><title>範圍外</title><link>https://example.com/e</link>
<pubDate>Mon, 01 Apr 2024 02:00:00 GMT</pubDate></item>
</channel></rss>`

func feedServer(t *testing.T, gotQuery *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotQuery != nil {
			*gotQuery = r.URL.RawQuery
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleFeed))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchSkipsUndatedEntries(t *testing.T) {
	var q string
	c := NewClient(feedServer(t, &q).URL, "zh-TW", "TW", 5*time.Second, "")
	items, err := c.Fetch(context.Background(), " 台積電 ")

	assert.Equal(t, nil, err)
	assert.Equal(t, 4, len(items))
	assert.Equal(t, "ceid=TW%3Azh-Hant&gl=TW&hl=zh-TW&q=%E5%8F%B0%E7%A9%8D%E9%9B%BB", q)

	first := items[0]
	assert.Equal(t, "台積電法說會 - 經濟日報", first.Title)
	assert.Equal(t, "https://example.com/a", first.Link)
	assert.Equal(t, "台積電法說會 經濟日報", first.Summary)
	assert.Equal(t, "2024-01", first.Month)
	assert.Equal(t, 14, first.Published.Hour())
}

func TestMonthlyTopNews(t *testing.T) {
	c := NewClient(feedServer(t, nil).URL, "", "", 5*time.Second, "")
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	got, err := c.MonthlyTopNews(context.Background(), "台積電", start, end, 5)
	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"2024-01", "2024-02"}, got.Months())

	feb, ok := got.Get("2024-02")
	assert.Equal(t, true, ok)
	assert.Equal(t, 2, len(feb))
	assert.Equal(t, "二月展望", feb[0].Title)
	assert.Equal(t, "營收 創新高", feb[1].Summary)
}

func TestMonthlyTopNewsFeedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "", 5*time.Second, "")
	_, err := c.MonthlyTopNews(context.Background(), "台積電", time.Now(), time.Now(), 5)
	assert.NotEqual(t, nil, err)
}

func TestBucketCapsAndOrders(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, Taipei)
	var items []model.NewsItem
	for i := 0; i < 8; i++ {
		p := base.AddDate(0, 0, i)
		items = append(items, model.NewsItem{Title: p.Format("01-02"), Published: p, Month: p.Format("2006-01")})
	}
	got := Bucket(items, base, base.AddDate(0, 0, 30), 3)
	if len(got) != 1 {
		t.Fatalf("expected one month, got %d", len(got))
	}
	may := got[0].Items
	if len(may) != 3 {
		t.Fatalf("expected cap of 3, got %d", len(may))
	}
	for i := 1; i < len(may); i++ {
		if may[i].Published.After(may[i-1].Published) {
			t.Errorf("expected newest first at %d", i)
		}
	}
	if may[0].Title != "05-08" {
		t.Errorf("expected newest headline first, got %s", may[0].Title)
	}
}

func TestBucketWindowInclusive(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 6, d, 23, 0, 0, 0, Taipei) }
	items := []model.NewsItem{
		{Title: "before", Published: day(9), Month: "2024-06"},
		{Title: "first", Published: day(10), Month: "2024-06"},
		{Title: "last", Published: day(20), Month: "2024-06"},
		{Title: "after", Published: day(21), Month: "2024-06"},
	}
	got := Bucket(items, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC), 0)
	june, _ := got.Get("2024-06")
	if len(june) != 2 || june[0].Title != "last" || june[1].Title != "first" {
		t.Errorf("unexpected bucket: %+v", june)
	}
}

func TestCleanSummary(t *testing.T) {
	cases := map[string]string{
		"":                                 "",
		"plain   text":                     "plain text",
		`<a href="x">A</a>&nbsp;<b>B</b>`:  "A B",
		"<p>one</p><p>two &amp; three</p>": "one two & three",
	}
	for in, want := range cases {
		if got := CleanSummary(in); got != want {
			t.Errorf("CleanSummary(%q) = %q, want %q", in, got, want)
		}
	}
}
