package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/comex-crm/internal/application/dto"
	"github.com/jhoicas/comex-crm/internal/domain/repository"
)

const (
	defaultListLimit = 10
	maxListLimit     = 50
)

// OrdersAnalyticsUseCase listados de últimos pedidos y próximos embarques.
type OrdersAnalyticsUseCase struct {
	stats repository.StatsRepository
	now   func() time.Time
}

// NewOrdersAnalyticsUseCase construye el caso de uso.
func NewOrdersAnalyticsUseCase(stats repository.StatsRepository) *OrdersAnalyticsUseCase {
	return &OrdersAnalyticsUseCase{stats: stats, now: time.Now}
}

// RecentOrders últimos pedidos creados.
func (uc *OrdersAnalyticsUseCase) RecentOrders(ctx context.Context, limit int) ([]dto.OrderResponse, error) {
	list, err := uc.stats.RecentOrders(ctx, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("analytics: últimos pedidos: %w", err)
	}
	return dto.NewOrderResponses(list), nil
}

// UpcomingShipments pedidos abiertos con embarque (o previsión) desde hoy, ascendente.
func (uc *OrdersAnalyticsUseCase) UpcomingShipments(ctx context.Context, limit int) ([]dto.OrderResponse, error) {
	now := uc.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	list, err := uc.stats.UpcomingShipments(ctx, today, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("analytics: próximos embarques: %w", err)
	}
	return dto.NewOrderResponses(list), nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
