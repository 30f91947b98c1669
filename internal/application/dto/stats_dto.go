package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyTotalDTO agregados de una moneda. Los importes nunca se suman entre monedas.
type CurrencyTotalDTO struct {
	Moeda        string          `json:"moeda"`
	OrderCount   int             `json:"orderCount"`
	TotalGuia    decimal.Decimal `json:"totalGuia"`
	Quantidade   decimal.Decimal `json:"quantidade"`
	AvgPrecoGuia decimal.Decimal `json:"avgPrecoGuia"`
}

// StatsResponse GET /api/stats.
type StatsResponse struct {
	Total          int                `json:"total"`
	Pendiente      int                `json:"pendiente"`
	Transito       int                `json:"transito"`
	Entregado      int                `json:"entregado"`
	BySituacao     map[string]int     `json:"bySituacao"`
	CurrencyTotals []CurrencyTotalDTO `json:"currencyTotals"`
}

// FinancialStatsResponse GET /api/stats/financial.
type FinancialStatsResponse struct {
	Currencies []CurrencyTotalDTO `json:"currencies"`
}

// CurrencySummaryDTO total de una moneda desglosado por situación.
type CurrencySummaryDTO struct {
	Moeda      string                     `json:"moeda"`
	OrderCount int                        `json:"orderCount"`
	Total      decimal.Decimal            `json:"total"`
	BySituacao map[string]decimal.Decimal `json:"bySituacao"`
}

// FinancialSummaryResponse GET /api/financial/summary.
type FinancialSummaryResponse struct {
	Currencies []CurrencySummaryDTO `json:"currencies"`
}

// ReceivableDTO pedidos abiertos de un cliente en una moneda.
type ReceivableDTO struct {
	ClientID    string          `json:"clientId"`
	ClientName  string          `json:"clientName"`
	Moeda       string          `json:"moeda"`
	OrderCount  int             `json:"orderCount"`
	TotalGuia   decimal.Decimal `json:"totalGuia"`
	OldestOrder string          `json:"oldestOrder"`
	NextArrival *string         `json:"nextArrival"`
}

// CurrencyAmountDTO importe total de una moneda.
type CurrencyAmountDTO struct {
	Moeda      string          `json:"moeda"`
	OrderCount int             `json:"orderCount"`
	Total      decimal.Decimal `json:"total"`
}

// AccountsReceivableResponse GET /api/financial/accounts-receivable.
type AccountsReceivableResponse struct {
	GeneratedAt time.Time           `json:"generatedAt"`
	Items       []ReceivableDTO     `json:"items"`
	Totals      []CurrencyAmountDTO `json:"totals"`
}

// ClientFinancialResponse GET /api/financial/by-client/:id.
type ClientFinancialResponse struct {
	Client     NamedEntityResponse  `json:"client"`
	Currencies []CurrencySummaryDTO `json:"currencies"`
	Orders     []OrderResponse      `json:"orders"`
}

// AnalyticsListRequest parámetro limit de los listados de analítica.
type AnalyticsListRequest struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=50"`
}
