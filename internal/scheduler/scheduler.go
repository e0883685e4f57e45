// Package scheduler sends periodic watchlist reports and answers chat commands.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"TWStockBoard/internal/dashboard"
	"TWStockBoard/internal/model"
	"TWStockBoard/internal/notifier"
	"TWStockBoard/internal/roc"
)

// ReportBuilder builds one dashboard report.
type ReportBuilder interface {
	Build(ctx context.Context, q dashboard.Query) (*dashboard.Report, error)
}

// CompanySearcher lists directory matches for a keyword.
type CompanySearcher interface {
	Search(ctx context.Context, keyword string) []model.CompanyRecord
}

// Sender delivers a message.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages the cron tasks.
type Scheduler struct {
	Cron           *cron.Cron
	Reports        ReportBuilder
	Companies      CompanySearcher
	Notifier       Sender
	Watchlist      []string
	LookbackMonths int
	Ctx            context.Context
	Now            func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, reports ReportBuilder, companies CompanySearcher, sender Sender, watchlist []string, lookbackMonths int) *Scheduler {
	if lookbackMonths <= 0 {
		lookbackMonths = 3
	}
	return &Scheduler{
		Cron:           cron.New(cron.WithSeconds()),
		Reports:        reports,
		Companies:      companies,
		Notifier:       sender,
		Watchlist:      watchlist,
		LookbackMonths: lookbackMonths,
		Ctx:            ctx,
		Now:            time.Now,
	}
}

// RegisterAll registers the watchlist report task.
func (s *Scheduler) RegisterAll(reportCron string) error {
	if _, err := s.Cron.AddFunc(reportCron, s.reportTask); err != nil {
		return fmt.Errorf("register report task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunReportsNow sends the watchlist reports immediately.
func (s *Scheduler) RunReportsNow() {
	s.reportTask()
}

// defaultWindow spans the last LookbackMonths full months plus the current one.
func (s *Scheduler) defaultWindow() (time.Time, time.Time) {
	today := roc.Day(s.Now())
	return roc.MonthStart(today).AddDate(0, -s.LookbackMonths, 0), today
}

func (s *Scheduler) reportTask() {
	if len(s.Watchlist) == 0 {
		log.Println("[INFO] report task: watchlist is empty")
		return
	}
	log.Printf("[INFO] running report task for %d companies", len(s.Watchlist))
	start, end := s.defaultWindow()
	for _, kw := range s.Watchlist {
		if s.Ctx.Err() != nil {
			return
		}
		s.trySend(s.quote(s.Ctx, kw, start, end))
	}
}

func (s *Scheduler) quote(ctx context.Context, keyword string, start, end time.Time) string {
	r, err := s.Reports.Build(ctx, dashboard.Query{Keyword: keyword, Start: start, End: end})
	if err != nil {
		log.Printf("[WARN] report %q: %v", keyword, err)
		return notifier.FormatError(keyword, err)
	}
	return notifier.FormatReport(r)
}

const helpText = "可用命令:\n• /quote 公司名稱或代號 [起始日] [結束日]\n• /search 關鍵字\n日期格式: 2024-01-02、2024-01 或 113/01/02"

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	// Group chats append the bot name: /quote@board_bot
	name, _, _ := strings.Cut(fields[0], "@")
	args := fields[1:]

	switch name {
	case "/quote", "查詢":
		if len(args) == 0 {
			return helpText
		}
		start, end := s.defaultWindow()
		if len(args) > 1 {
			var rest [2]string
			copy(rest[:], args[1:])
			var err error
			start, end, err = dashboard.ParseWindow(rest[0], rest[1], s.Now())
			if err != nil {
				return notifier.FormatError(args[0], err)
			}
		}
		return s.quote(ctx, args[0], start, end)
	case "/search", "搜尋":
		if len(args) == 0 {
			return helpText
		}
		kw := strings.Join(args, " ")
		return notifier.FormatCompanies(kw, s.Companies.Search(ctx, kw), 20)
	default:
		return helpText
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
