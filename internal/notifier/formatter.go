package notifier

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/dustin/go-humanize"

	"TWStockBoard/internal/dashboard"
	"TWStockBoard/internal/model"
)

var biasIcon = map[model.Bias]string{
	model.BiasBullish: "✅",
	model.BiasBearish: "⚠️",
	model.BiasNeutral: "ℹ️",
}

// FormatReport renders a dashboard report as a Telegram HTML message.
func FormatReport(r *dashboard.Report) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s ~ %s\n\n",
		html.EscapeString(r.Company.Label()),
		r.Series.Start.Format("2006-01-02"),
		r.Series.End.Format("2006-01-02")))

	if bd := r.Badges; bd != nil {
		b.WriteString(fmt.Sprintf("📅 %s\n", bd.Date.Format("2006-01-02")))
		b.WriteString(fmt.Sprintf("收盤: %.2f | 最高: %.2f | 最低: %.2f\n", bd.Close, bd.High, bd.Low))
		b.WriteString(fmt.Sprintf("成交量: %s 股\n", humanize.Comma(int64(bd.Volume))))
		if bd.RSIValid {
			b.WriteString(fmt.Sprintf("RSI: %.1f\n", bd.RSI))
		} else {
			b.WriteString("RSI: N/A\n")
		}
		b.WriteString(fmt.Sprintf("區間高低: %.2f / %.2f\n", bd.PeriodHigh, bd.PeriodLow))
	}
	if !r.Series.Empty() && r.Series.Last().Turnover.Valid {
		b.WriteString(fmt.Sprintf("成交金額: %s 元\n", humanize.Comma(int64(r.Series.Last().Turnover.Float64))))
	}
	b.WriteString(fmt.Sprintf("交易日數: %d\n\n", len(r.Series.Bars)))

	b.WriteString("🎯 <b>技術分析總結</b>\n")
	if r.Summary == nil {
		b.WriteString("  資料不足，無法判斷\n")
	} else {
		for _, l := range r.Summary.Lines {
			b.WriteString(fmt.Sprintf("  %s %s\n", biasIcon[l.Bias], l.Commentary))
		}
	}

	if r.NewsError != "" {
		b.WriteString(fmt.Sprintf("\n📰 新聞讀取失敗：%s\n", html.EscapeString(r.NewsError)))
	} else if len(r.News) > 0 {
		b.WriteString("\n📰 <b>每月熱門新聞</b>\n")
		for _, mn := range r.News {
			b.WriteString(fmt.Sprintf("<b>%s</b>\n", mn.Month))
			for _, it := range mn.Items {
				b.WriteString(fmt.Sprintf("  • <a href=\"%s\">%s</a>\n", html.EscapeString(it.Link), html.EscapeString(it.Title)))
			}
		}
	}
	return b.String()
}

// FormatError turns a pipeline error into the message shown to the user.
func FormatError(query string, err error) string {
	var amb *dashboard.AmbiguousError
	switch {
	case errors.As(err, &amb):
		var b strings.Builder
		b.WriteString(fmt.Sprintf("🔎 「%s」符合多家公司，請指定代號：\n", html.EscapeString(query)))
		for _, c := range amb.Candidates {
			b.WriteString(fmt.Sprintf("  %s\n", html.EscapeString(c.Label())))
		}
		return b.String()
	case errors.Is(err, dashboard.ErrCompanyNotFound):
		return fmt.Sprintf("❌ 找不到符合「%s」的公司", html.EscapeString(query))
	case errors.Is(err, dashboard.ErrNoData):
		return fmt.Sprintf("❌ 「%s」在指定期間查無交易資料", html.EscapeString(query))
	case errors.Is(err, dashboard.ErrInvalidRange):
		return "❌ 起始日期晚於結束日期"
	default:
		return fmt.Sprintf("❌ 查詢失敗：%s", html.EscapeString(err.Error()))
	}
}

// FormatCompanies lists directory matches, at most limit of them.
func FormatCompanies(query string, recs []model.CompanyRecord, limit int) string {
	if len(recs) == 0 {
		return fmt.Sprintf("❌ 找不到符合「%s」的公司", html.EscapeString(query))
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔎 「%s」共 %s 筆\n", html.EscapeString(query), humanize.Comma(int64(len(recs)))))
	for i, c := range recs {
		if limit > 0 && i >= limit {
			b.WriteString("  …\n")
			break
		}
		b.WriteString(fmt.Sprintf("  %s\n", html.EscapeString(c.Label())))
	}
	return b.String()
}
