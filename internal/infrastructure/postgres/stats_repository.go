package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/comex-crm/internal/domain/entity"
	"github.com/jhoicas/comex-crm/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas de solo lectura para estadísticas, finanzas y analítica de pedidos.
type StatsRepo struct {
	q Querier
}

// NewStatsRepository construye el adaptador de estadísticas.
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// CountBySituacao número de pedidos por situación.
func (r *StatsRepo) CountBySituacao(ctx context.Context) ([]repository.SituacaoCount, error) {
	rows, err := r.q.Query(ctx, `
		SELECT situacao, COUNT(*)
		FROM orders
		GROUP BY situacao
		ORDER BY situacao`)
	if err != nil {
		return nil, fmt.Errorf("count by situacao: %w", err)
	}
	defer rows.Close()

	var out []repository.SituacaoCount
	for rows.Next() {
		var c repository.SituacaoCount
		if err := rows.Scan(&c.Situacao, &c.Count); err != nil {
			return nil, fmt.Errorf("scan situacao count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CurrencyTotals agregados por moneda. clientID vacío = todos los clientes.
// Los importes nunca se suman entre monedas distintas.
func (r *StatsRepo) CurrencyTotals(ctx context.Context, clientID string) ([]repository.CurrencyTotal, error) {
	const query = `
	SELECT
	    moeda,
	    COUNT(*)                                AS order_count,
	    COALESCE(SUM(total_guia), 0)            AS total_guia,
	    COALESCE(SUM(quantidade), 0)            AS quantidade,
	    COALESCE(ROUND(AVG(preco_guia), 4), 0)  AS avg_preco_guia
	FROM orders
	WHERE ($1 = '' OR client_id::TEXT = $1)
	GROUP BY moeda
	ORDER BY moeda`

	rows, err := r.q.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("currency totals: %w", err)
	}
	defer rows.Close()

	var out []repository.CurrencyTotal
	for rows.Next() {
		var c repository.CurrencyTotal
		if err := rows.Scan(&c.Moeda, &c.OrderCount, &c.TotalGuia, &c.Quantidade, &c.AvgPrecoGuia); err != nil {
			return nil, fmt.Errorf("scan currency total: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CurrencySituacaoTotals suma de total_guia por moneda y situación.
func (r *StatsRepo) CurrencySituacaoTotals(ctx context.Context, clientID string) ([]repository.CurrencySituacaoTotal, error) {
	const query = `
	SELECT moeda, situacao, COUNT(*), COALESCE(SUM(total_guia), 0)
	FROM orders
	WHERE ($1 = '' OR client_id::TEXT = $1)
	GROUP BY moeda, situacao
	ORDER BY moeda, situacao`

	rows, err := r.q.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("currency situacao totals: %w", err)
	}
	defer rows.Close()

	var out []repository.CurrencySituacaoTotal
	for rows.Next() {
		var c repository.CurrencySituacaoTotal
		if err := rows.Scan(&c.Moeda, &c.Situacao, &c.OrderCount, &c.TotalGuia); err != nil {
			return nil, fmt.Errorf("scan currency situacao total: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// AccountsReceivable pedidos abiertos (pendiente o transito) por cliente y moneda.
func (r *StatsRepo) AccountsReceivable(ctx context.Context) ([]repository.ReceivableResult, error) {
	const query = `
	SELECT
	    c.id::TEXT,
	    c.name,
	    o.moeda,
	    COUNT(*)                           AS order_count,
	    COALESCE(SUM(o.total_guia), 0)     AS total_guia,
	    MIN(o.data)                        AS oldest_order,
	    MIN(o.previsao) FILTER (WHERE o.previsao >= CURRENT_DATE) AS next_arrival
	FROM orders o
	JOIN clients c ON c.id = o.client_id
	WHERE o.situacao IN ('pendiente', 'transito')
	GROUP BY c.id, c.name, o.moeda
	ORDER BY total_guia DESC, c.name`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("accounts receivable: %w", err)
	}
	defer rows.Close()

	var out []repository.ReceivableResult
	for rows.Next() {
		var rr repository.ReceivableResult
		if err := rows.Scan(&rr.ClientID, &rr.ClientName, &rr.Moeda, &rr.OrderCount,
			&rr.TotalGuia, &rr.OldestOrder, &rr.NextArrival); err != nil {
			return nil, fmt.Errorf("scan receivable: %w", err)
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

// RecentOrders últimos pedidos creados.
func (r *StatsRepo) RecentOrders(ctx context.Context, limit int) ([]*entity.OrderDetail, error) {
	query := `SELECT ` + orderColumns + orderFrom + ` ORDER BY o.created_at DESC LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}
	return collectOrderDetails(rows)
}

// UpcomingShipments pedidos no entregados con embarque o previsión desde from.
func (r *StatsRepo) UpcomingShipments(ctx context.Context, from time.Time, limit int) ([]*entity.OrderDetail, error) {
	query := `SELECT ` + orderColumns + orderFrom + `
		WHERE o.situacao IN ('pendiente', 'transito')
		  AND COALESCE(o.embarque, o.previsao) >= $1
		ORDER BY COALESCE(o.embarque, o.previsao) ASC, o.pedido
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, from, limit)
	if err != nil {
		return nil, fmt.Errorf("upcoming shipments: %w", err)
	}
	return collectOrderDetails(rows)
}

// OrdersByClient pedidos de un cliente, más recientes primero.
func (r *StatsRepo) OrdersByClient(ctx context.Context, clientID string, limit int) ([]*entity.OrderDetail, error) {
	query := `SELECT ` + orderColumns + orderFrom + ` WHERE o.client_id = $1 ORDER BY o.data DESC, o.pedido LIMIT $2`
	rows, err := r.q.Query(ctx, query, clientID, limit)
	if err != nil {
		return nil, fmt.Errorf("orders by client: %w", err)
	}
	return collectOrderDetails(rows)
}
