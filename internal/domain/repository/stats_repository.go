package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comex-crm/internal/domain/entity"
)

// SituacaoCount número de pedidos por situación.
type SituacaoCount struct {
	Situacao string
	Count    int
}

// CurrencyTotal agregados por moneda.
type CurrencyTotal struct {
	Moeda        string
	OrderCount   int
	TotalGuia    decimal.Decimal // suma de total_guia (NULL = 0)
	Quantidade   decimal.Decimal
	AvgPrecoGuia decimal.Decimal
}

// CurrencySituacaoTotal suma de total_guia por moneda y situación.
type CurrencySituacaoTotal struct {
	Moeda      string
	Situacao   string
	OrderCount int
	TotalGuia  decimal.Decimal
}

// ReceivableResult pedidos abiertos (pendiente/transito) agrupados por cliente y moneda.
type ReceivableResult struct {
	ClientID    string
	ClientName  string
	Moeda       string
	OrderCount  int
	TotalGuia   decimal.Decimal
	OldestOrder time.Time
	NextArrival *time.Time
}

// StatsRepository consultas de solo lectura para estadísticas, finanzas y analítica.
// Cada llamada es una consulta nueva; no hay cache.
type StatsRepository interface {
	CountBySituacao(ctx context.Context) ([]SituacaoCount, error)
	CurrencyTotals(ctx context.Context, clientID string) ([]CurrencyTotal, error)
	CurrencySituacaoTotals(ctx context.Context, clientID string) ([]CurrencySituacaoTotal, error)
	AccountsReceivable(ctx context.Context) ([]ReceivableResult, error)
	RecentOrders(ctx context.Context, limit int) ([]*entity.OrderDetail, error)
	UpcomingShipments(ctx context.Context, from time.Time, limit int) ([]*entity.OrderDetail, error)
	OrdersByClient(ctx context.Context, clientID string, limit int) ([]*entity.OrderDetail, error)
}
