package main

import (
	"fmt"
	"log"

	"TWStockBoard/internal/cache"
	"TWStockBoard/internal/collector"
	"TWStockBoard/internal/company"
	"TWStockBoard/internal/config"
	"TWStockBoard/internal/dashboard"
	"TWStockBoard/internal/httpx"
	"TWStockBoard/internal/news"
)

type rootOptions struct {
	configPath string
	offline    bool
}

// app holds the components shared by every command.
type app struct {
	cfg       *config.Config
	cache     cache.Cache
	directory *company.Directory
	history   *collector.History
	news      *news.Client
	service   *dashboard.Service
}

func newApp(opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	c, err := cache.New(cfg.Cache.Backend, cfg.Cache.MaxEntries, cfg.Cache.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("init cache: %w", err)
	}
	log.Printf("[INFO] month cache: %s", cfg.Cache.Backend)

	dirClient := httpx.NewClient(cfg.Directory.Timeout, cfg.Proxy)
	directory := company.NewDirectory(
		&company.LocalFile{Path: cfg.Directory.LocalFile},
		&company.OpenData{URL: cfg.Directory.OpenDataURL, Client: dirClient},
		&company.ISIN{URL: cfg.Directory.ISINURL, Client: dirClient},
	)

	var fetcher collector.MonthFetcher
	if opts.offline {
		fetcher = &collector.MockFetcher{BasePrice: 100}
	} else {
		fetcher = collector.NewTWSEFetcher(cfg.Exchange.StockDayURL, cfg.Exchange.Timeout, cfg.Proxy, cfg.Exchange.RequestsPerMinute)
	}
	log.Printf("[INFO] price source: %s", fetcher.Name())
	history := collector.NewHistory(fetcher, c)

	a := &app{cfg: cfg, cache: c, directory: directory, history: history}
	var ns dashboard.NewsSource
	if !cfg.News.Disabled && !opts.offline {
		a.news = news.NewClient(cfg.News.FeedURL, cfg.News.Language, cfg.News.Region, cfg.News.Timeout, cfg.Proxy)
		ns = a.news
	}
	a.service = dashboard.NewService(directory, history, ns, cfg.News.PerMonth)
	return a, nil
}

func (a *app) Close() {
	if err := a.cache.Close(); err != nil {
		log.Printf("[WARN] close cache: %v", err)
	}
	st := a.history.Stats()
	log.Printf("[INFO] month fetches: %d network, %d cached, %d failed", st.NetworkCalls, st.CacheHits, st.Failures)
}
