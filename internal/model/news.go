package model

import "time"

// NewsItem is a single headline from the news feed.
type NewsItem struct {
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Published time.Time `json:"published"`
	Summary   string    `json:"summary"`
	Month     string    `json:"month"` // YYYY-MM
}

// MonthNews is the bounded, newest-first headline list of one month.
type MonthNews struct {
	Month string     `json:"month"`
	Items []NewsItem `json:"items"`
}

// MonthlyNews is ordered oldest month first.
type MonthlyNews []MonthNews

// Get returns the items of a month bucket.
func (m MonthlyNews) Get(month string) ([]NewsItem, bool) {
	for _, mn := range m {
		if mn.Month == month {
			return mn.Items, true
		}
	}
	return nil, false
}

// Months lists the bucket keys in order.
func (m MonthlyNews) Months() []string {
	out := make([]string, len(m))
	for i, mn := range m {
		out[i] = mn.Month
	}
	return out
}
