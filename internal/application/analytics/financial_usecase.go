package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comex-crm/internal/application/dto"
	"github.com/jhoicas/comex-crm/internal/domain"
	"github.com/jhoicas/comex-crm/internal/domain/entity"
	"github.com/jhoicas/comex-crm/internal/domain/repository"
)

// clientOrdersLimit pedidos devueltos en el detalle financiero de un cliente.
const clientOrdersLimit = 200

// FinancialUseCase resumen financiero, cuentas por cobrar y detalle por cliente.
// Los importes se agrupan siempre por moneda.
type FinancialUseCase struct {
	stats     repository.StatsRepository
	entities  repository.NamedEntityRepository
	generator ReceivablesPDFGenerator
	now       func() time.Time
}

// NewFinancialUseCase construye el caso de uso. generator puede ser nil si no se exporta PDF.
func NewFinancialUseCase(
	stats repository.StatsRepository,
	entities repository.NamedEntityRepository,
	generator ReceivablesPDFGenerator,
) *FinancialUseCase {
	return &FinancialUseCase{stats: stats, entities: entities, generator: generator, now: time.Now}
}

// Summary total por moneda desglosado por situación.
func (uc *FinancialUseCase) Summary(ctx context.Context) (*dto.FinancialSummaryResponse, error) {
	rows, err := uc.stats.CurrencySituacaoTotals(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("financial: resumen: %w", err)
	}
	return &dto.FinancialSummaryResponse{Currencies: summarize(rows)}, nil
}

// AccountsReceivable pedidos abiertos (pendiente o transito) por cliente y moneda, con totales por moneda.
func (uc *FinancialUseCase) AccountsReceivable(ctx context.Context) (*dto.AccountsReceivableResponse, error) {
	rows, err := uc.stats.AccountsReceivable(ctx)
	if err != nil {
		return nil, fmt.Errorf("financial: cuentas por cobrar: %w", err)
	}

	out := &dto.AccountsReceivableResponse{
		GeneratedAt: uc.now().UTC(),
		Items:       make([]dto.ReceivableDTO, 0, len(rows)),
	}
	totals := map[string]*dto.CurrencyAmountDTO{}
	for _, r := range rows {
		out.Items = append(out.Items, dto.ReceivableDTO{
			ClientID:    r.ClientID,
			ClientName:  r.ClientName,
			Moeda:       r.Moeda,
			OrderCount:  r.OrderCount,
			TotalGuia:   r.TotalGuia,
			OldestOrder: r.OldestOrder.Format("2006-01-02"),
			NextArrival: dto.FormatDatePtr(r.NextArrival),
		})
		t, ok := totals[r.Moeda]
		if !ok {
			t = &dto.CurrencyAmountDTO{Moeda: r.Moeda, Total: decimal.Zero}
			totals[r.Moeda] = t
		}
		t.OrderCount += r.OrderCount
		t.Total = t.Total.Add(r.TotalGuia)
	}
	out.Totals = make([]dto.CurrencyAmountDTO, 0, len(totals))
	for _, t := range totals {
		out.Totals = append(out.Totals, *t)
	}
	sort.Slice(out.Totals, func(i, j int) bool { return out.Totals[i].Moeda < out.Totals[j].Moeda })
	return out, nil
}

// AccountsReceivablePDF genera el PDF de cuentas por cobrar y devuelve bytes y nombre de archivo.
func (uc *FinancialUseCase) AccountsReceivablePDF(ctx context.Context) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("financial: generador de PDF no configurado")
	}
	report, err := uc.AccountsReceivable(ctx)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateReceivablesPDF(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("financial: generar PDF: %w", err)
	}
	filename := fmt.Sprintf("contas-a-receber-%s.pdf", report.GeneratedAt.Format("2006-01-02"))
	return pdf, filename, nil
}

// ByClient totales por moneda y pedidos de un cliente; domain.ErrNotFound si el cliente no existe.
func (uc *FinancialUseCase) ByClient(ctx context.Context, clientID string) (*dto.ClientFinancialResponse, error) {
	client, err := uc.entities.GetByID(ctx, entity.KindClient, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.stats.CurrencySituacaoTotals(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("financial: totales del cliente: %w", err)
	}
	orders, err := uc.stats.OrdersByClient(ctx, clientID, clientOrdersLimit)
	if err != nil {
		return nil, fmt.Errorf("financial: pedidos del cliente: %w", err)
	}
	return &dto.ClientFinancialResponse{
		Client:     dto.NewNamedEntityResponse(client),
		Currencies: summarize(rows),
		Orders:     dto.NewOrderResponses(orders),
	}, nil
}

// summarize agrupa filas moneda×situación en un resumen por moneda (orden por moneda).
func summarize(rows []repository.CurrencySituacaoTotal) []dto.CurrencySummaryDTO {
	byMoeda := map[string]*dto.CurrencySummaryDTO{}
	var order []string
	for _, r := range rows {
		s, ok := byMoeda[r.Moeda]
		if !ok {
			s = &dto.CurrencySummaryDTO{Moeda: r.Moeda, Total: decimal.Zero, BySituacao: map[string]decimal.Decimal{}}
			byMoeda[r.Moeda] = s
			order = append(order, r.Moeda)
		}
		s.OrderCount += r.OrderCount
		s.Total = s.Total.Add(r.TotalGuia)
		s.BySituacao[r.Situacao] = s.BySituacao[r.Situacao].Add(r.TotalGuia)
	}
	sort.Strings(order)
	out := make([]dto.CurrencySummaryDTO, 0, len(order))
	for _, m := range order {
		out = append(out, *byMoeda[m])
	}
	return out
}
