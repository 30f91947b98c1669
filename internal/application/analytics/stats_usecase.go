// Package analytics contiene los casos de uso de estadísticas, finanzas y
// listados de analítica sobre los pedidos. Todas las consultas son de solo
// lectura y se ejecutan en cada llamada (sin cache).
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/comex-crm/internal/application/dto"
	"github.com/jhoicas/comex-crm/internal/domain/entity"
	"github.com/jhoicas/comex-crm/internal/domain/repository"
)

// StatsUseCase contadores por situación y totales por moneda.
type StatsUseCase struct {
	stats repository.StatsRepository
}

// NewStatsUseCase construye el caso de uso.
func NewStatsUseCase(stats repository.StatsRepository) *StatsUseCase {
	return &StatsUseCase{stats: stats}
}

// GetStats construye StatsResponse con dos consultas en paralelo:
//  1. CountBySituacao       → Total + contadores por situación
//  2. CurrencyTotals(todos) → CurrencyTotals
func (uc *StatsUseCase) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	type countsResult struct {
		counts []repository.SituacaoCount
		err    error
	}
	type totalsResult struct {
		totals []repository.CurrencyTotal
		err    error
	}

	countsCh := make(chan countsResult, 1)
	totalsCh := make(chan totalsResult, 1)

	go func() {
		c, err := uc.stats.CountBySituacao(ctx)
		countsCh <- countsResult{c, err}
	}()
	go func() {
		t, err := uc.stats.CurrencyTotals(ctx, "")
		totalsCh <- totalsResult{t, err}
	}()

	counts := <-countsCh
	totals := <-totalsCh
	if counts.err != nil {
		return nil, fmt.Errorf("stats: contar por situación: %w", counts.err)
	}
	if totals.err != nil {
		return nil, fmt.Errorf("stats: totales por moneda: %w", totals.err)
	}

	out := &dto.StatsResponse{
		BySituacao:     make(map[string]int, len(counts.counts)),
		CurrencyTotals: toCurrencyTotalDTOs(totals.totals),
	}
	for _, c := range counts.counts {
		out.Total += c.Count
		out.BySituacao[c.Situacao] = c.Count
		switch c.Situacao {
		case entity.SituacaoPendiente:
			out.Pendiente = c.Count
		case entity.SituacaoTransito:
			out.Transito = c.Count
		case entity.SituacaoEntregado:
			out.Entregado = c.Count
		}
	}
	return out, nil
}

// GetFinancialStats cantidad, suma de total guia y promedio de precio guia por moneda.
func (uc *StatsUseCase) GetFinancialStats(ctx context.Context) (*dto.FinancialStatsResponse, error) {
	totals, err := uc.stats.CurrencyTotals(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("stats: totales por moneda: %w", err)
	}
	return &dto.FinancialStatsResponse{Currencies: toCurrencyTotalDTOs(totals)}, nil
}

func toCurrencyTotalDTOs(in []repository.CurrencyTotal) []dto.CurrencyTotalDTO {
	out := make([]dto.CurrencyTotalDTO, 0, len(in))
	for _, t := range in {
		out = append(out, dto.CurrencyTotalDTO{
			Moeda:        t.Moeda,
			OrderCount:   t.OrderCount,
			TotalGuia:    t.TotalGuia,
			Quantidade:   t.Quantidade,
			AvgPrecoGuia: t.AvgPrecoGuia,
		})
	}
	return out
}
