// Package news builds the monthly headline timeline from the Google News RSS
// search feed.
package news

import (
	"context"
	"encoding/xml"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"TWStockBoard/internal/httpx"
	"TWStockBoard/internal/model"
	"TWStockBoard/internal/roc"
)

// DefaultFeedURL is the Google News RSS search endpoint.
const DefaultFeedURL = "https://news.google.com/rss/search"

// Taipei is the zone used to assign headlines to calendar days and months.
var Taipei = time.FixedZone("CST", 8*60*60)

type rssResponse struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	PubDate string `xml:"pubDate"`
	Desc    string `xml:"description"`
}

// Client fetches headlines for a keyword.
type Client struct {
	FeedURL  string
	Language string // hl, e.g. zh-TW
	Region   string // gl, e.g. TW
	HTTP     *http.Client
	Location *time.Location
}

// NewClient creates a news client with a fixed request timeout.
func NewClient(feedURL, language, region string, timeout time.Duration, proxyURL string) *Client {
	if feedURL == "" {
		feedURL = DefaultFeedURL
	}
	return &Client{
		FeedURL:  feedURL,
		Language: language,
		Region:   region,
		HTTP:     httpx.NewClient(timeout, proxyURL),
		Location: Taipei,
	}
}

func (c *Client) query(keyword string) url.Values {
	lang := c.Language
	if lang == "" {
		lang = "zh-TW"
	}
	region := c.Region
	if region == "" {
		region = "TW"
	}
	return url.Values{
		"q":    {strings.TrimSpace(keyword)},
		"hl":   {lang},
		"gl":   {region},
		"ceid": {region + ":zh-Hant"},
	}
}

// Fetch returns every headline of the keyword feed. Entries without a
// parsable publish time are skipped.
func (c *Client) Fetch(ctx context.Context, keyword string) ([]model.NewsItem, error) {
	body, err := httpx.Get(ctx, c.HTTP, c.FeedURL, c.query(keyword))
	if err != nil {
		return nil, fmt.Errorf("fetch news feed: %w", err)
	}

	var rss rssResponse
	if err := xml.Unmarshal(body, &rss); err != nil {
		return nil, fmt.Errorf("decode news feed: %w", err)
	}

	loc := c.Location
	if loc == nil {
		loc = Taipei
	}
	items := make([]model.NewsItem, 0, len(rss.Channel.Items))
	skipped := 0
	for _, it := range rss.Channel.Items {
		pub, err := parsePubDate(it.PubDate)
		if err != nil {
			skipped++
			continue
		}
		pub = pub.In(loc)
		items = append(items, model.NewsItem{
			Title:     strings.TrimSpace(it.Title),
			Link:      strings.TrimSpace(it.Link),
			Published: pub,
			Summary:   CleanSummary(it.Desc),
			Month:     pub.Format("2006-01"),
		})
	}
	if skipped > 0 {
		log.Printf("[WARN] news feed for %q: skipped %d entries without a publish time", keyword, skipped)
	}
	return items, nil
}

// MonthlyTopNews returns at most perMonth headlines per month published
// within [start, end], oldest month first and newest headline first.
func (c *Client) MonthlyTopNews(ctx context.Context, keyword string, start, end time.Time, perMonth int) (model.MonthlyNews, error) {
	items, err := c.Fetch(ctx, keyword)
	if err != nil {
		return nil, err
	}
	return Bucket(items, start, end, perMonth), nil
}

// Bucket groups items by month, keeping those whose publish date falls in
// [start, end].
func Bucket(items []model.NewsItem, start, end time.Time, perMonth int) model.MonthlyNews {
	window := roc.Window{Start: roc.Day(start), End: roc.Day(end)}
	byMonth := make(map[string][]model.NewsItem)
	for _, it := range items {
		if !window.Contains(it.Published) {
			continue
		}
		byMonth[it.Month] = append(byMonth[it.Month], it)
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make(model.MonthlyNews, 0, len(months))
	for _, m := range months {
		list := byMonth[m]
		sort.SliceStable(list, func(i, j int) bool { return list[i].Published.After(list[j].Published) })
		if perMonth > 0 && len(list) > perMonth {
			list = list[:perMonth]
		}
		out = append(out, model.MonthNews{Month: m, Items: list})
	}
	return out
}

var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	time.RFC3339,
}

func parsePubDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised publish time %q", s)
}
