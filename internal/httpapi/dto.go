package httpapi

import (
	"TWStockBoard/internal/collector"
	"TWStockBoard/internal/model"
)

type HealthResponse struct {
	Status    string          `json:"status"`
	Companies int             `json:"companies"`
	Fetches   collector.Stats `json:"fetches"`
}

type CompaniesResponse struct {
	Query     string                `json:"query"`
	Companies []model.CompanyRecord `json:"companies"`
	Total     int                   `json:"total"`
	Limit     int                   `json:"limit"`
	Offset    int                   `json:"offset"`
}

type PricesResponse struct {
	Series     model.PriceSeries `json:"series"`
	Indicators model.Indicators  `json:"indicators"`
}

type NewsResponse struct {
	Query  string            `json:"query"`
	Months model.MonthlyNews `json:"months"`
}

type ErrorResponse struct {
	Error      string                `json:"error"`
	Candidates []model.CompanyRecord `json:"candidates,omitempty"`
}
