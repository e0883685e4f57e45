// Package httpapi exposes the normalized dashboard data as a JSON API for an
// external presentation layer.
package httpapi

import (
	"context"
	"errors"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"TWStockBoard/internal/calculator"
	"TWStockBoard/internal/collector"
	"TWStockBoard/internal/dashboard"
	"TWStockBoard/internal/model"
)

var codePattern = regexp.MustCompile(`^\d{4}$`)

type Directory interface {
	Load(ctx context.Context) []model.CompanyRecord
	Search(ctx context.Context, keyword string) []model.CompanyRecord
}

type History interface {
	FetchRange(ctx context.Context, code string, start, end time.Time) model.PriceSeries
	Stats() collector.Stats
}

type ReportBuilder interface {
	Build(ctx context.Context, q dashboard.Query) (*dashboard.Report, error)
}

type Handler struct {
	directory    Directory
	history      History
	reports      ReportBuilder
	news         dashboard.NewsSource
	newsPerMonth int
	now          func() time.Time
}

// NewHandler creates the API handler. news may be nil to disable /news.
func NewHandler(directory Directory, history History, reports ReportBuilder, news dashboard.NewsSource, newsPerMonth int) *Handler {
	return &Handler{
		directory:    directory,
		history:      history,
		reports:      reports,
		news:         news,
		newsPerMonth: newsPerMonth,
		now:          time.Now,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	n := len(h.directory.Load(c.Request.Context()))
	status, code := "healthy", http.StatusOK
	if n == 0 {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	c.JSON(code, HealthResponse{Status: status, Companies: n, Fetches: h.history.Stats()})
}

func (h *Handler) GetCompanies(c *gin.Context) {
	q := c.Query("q")
	matches := h.directory.Search(c.Request.Context(), q)
	limit := getQueryLimit(c)
	offset := getQueryOffset(c)

	page := []model.CompanyRecord{}
	if offset < len(matches) {
		page = matches[offset:min(offset+limit, len(matches))]
	}
	c.JSON(http.StatusOK, CompaniesResponse{Query: q, Companies: page, Total: len(matches), Limit: limit, Offset: offset})
}

func (h *Handler) GetPrices(c *gin.Context) {
	code := c.Param("code")
	if !codePattern.MatchString(code) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid stock code"})
		return
	}
	start, end, err := dashboard.ParseWindow(c.Query("start"), c.Query("end"), h.now())
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	series := h.history.FetchRange(c.Request.Context(), code, start, end)
	if series.Empty() {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "No trading data in range"})
		return
	}
	c.JSON(http.StatusOK, PricesResponse{Series: series, Indicators: calculator.Annotate(series)})
}

func (h *Handler) GetReport(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing query parameter q"})
		return
	}
	start, end, err := dashboard.ParseWindow(c.Query("start"), c.Query("end"), h.now())
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	report, err := h.reports.Build(c.Request.Context(), dashboard.Query{
		Keyword:      q,
		Start:        start,
		End:          end,
		NewsPerMonth: getQueryInt("per_month", 0, c),
	})
	if err != nil {
		writeBuildError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) GetNews(c *gin.Context) {
	if h.news == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "News timeline disabled"})
		return
	}
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing query parameter q"})
		return
	}
	start, end, err := dashboard.ParseWindow(c.Query("start"), c.Query("end"), h.now())
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	perMonth := getQueryInt("per_month", h.newsPerMonth, c)
	if perMonth < 1 {
		perMonth = h.newsPerMonth
	}

	months, err := h.news.MonthlyTopNews(c.Request.Context(), q, start, end, perMonth)
	if err != nil {
		log.Printf("[WARN] news %q: %v", q, err)
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "News feed unavailable"})
		return
	}
	c.JSON(http.StatusOK, NewsResponse{Query: q, Months: months})
}

func writeBuildError(c *gin.Context, err error) {
	var amb *dashboard.AmbiguousError
	switch {
	case errors.As(err, &amb):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Candidates: amb.Candidates})
	case errors.Is(err, dashboard.ErrCompanyNotFound), errors.Is(err, dashboard.ErrNoData):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, dashboard.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		log.Printf("[ERROR] build report: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal error"})
	}
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("[WARN] invalid query parameter %s=%q, using %d", name, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getQueryLimit(c *gin.Context) int {
	const (
		defaultLimit = 50
		maxLimit     = 500
	)
	limit := getQueryInt("limit", defaultLimit, c)
	if limit < 1 {
		return defaultLimit
	}
	return min(limit, maxLimit)
}

func getQueryOffset(c *gin.Context) int {
	return max(getQueryInt("offset", 0, c), 0)
}
