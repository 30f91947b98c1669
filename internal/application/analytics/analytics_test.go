package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comex-crm/internal/application/analytics"
	"github.com/jhoicas/comex-crm/internal/application/dto"
	"github.com/jhoicas/comex-crm/internal/domain"
	"github.com/jhoicas/comex-crm/internal/domain/entity"
	"github.com/jhoicas/comex-crm/internal/domain/repository"
)

// ── fakes ─────────────────────────────────────────────────────────────────────

type fakeStats struct {
	counts      []repository.SituacaoCount
	totals      []repository.CurrencyTotal
	bySituacao  []repository.CurrencySituacaoTotal
	receivables []repository.ReceivableResult
	orders      []*entity.OrderDetail
	err         error

	lastLimit    int
	lastFrom     time.Time
	lastClientID string
}

func (f *fakeStats) CountBySituacao(context.Context) ([]repository.SituacaoCount, error) {
	return f.counts, f.err
}

func (f *fakeStats) CurrencyTotals(_ context.Context, clientID string) ([]repository.CurrencyTotal, error) {
	f.lastClientID = clientID
	return f.totals, f.err
}

func (f *fakeStats) CurrencySituacaoTotals(_ context.Context, clientID string) ([]repository.CurrencySituacaoTotal, error) {
	f.lastClientID = clientID
	return f.bySituacao, f.err
}

func (f *fakeStats) AccountsReceivable(context.Context) ([]repository.ReceivableResult, error) {
	return f.receivables, f.err
}

func (f *fakeStats) RecentOrders(_ context.Context, limit int) ([]*entity.OrderDetail, error) {
	f.lastLimit = limit
	return f.orders, f.err
}

func (f *fakeStats) UpcomingShipments(_ context.Context, from time.Time, limit int) ([]*entity.OrderDetail, error) {
	f.lastFrom, f.lastLimit = from, limit
	return f.orders, f.err
}

func (f *fakeStats) OrdersByClient(_ context.Context, clientID string, limit int) ([]*entity.OrderDetail, error) {
	f.lastClientID, f.lastLimit = clientID, limit
	return f.orders, f.err
}

type fakeEntities struct {
	byID map[string]*entity.NamedEntity
}

func (f *fakeEntities) FindByName(context.Context, entity.EntityKind, string) (*entity.NamedEntity, error) {
	return nil, nil
}

func (f *fakeEntities) GetByID(_ context.Context, kind entity.EntityKind, id string) (*entity.NamedEntity, error) {
	if e, ok := f.byID[id]; ok && e.Kind == kind {
		return e, nil
	}
	return nil, nil
}

func (f *fakeEntities) Create(context.Context, *entity.NamedEntity) error { return nil }

func (f *fakeEntities) List(context.Context, entity.EntityKind) ([]*entity.NamedEntity, error) {
	return nil, nil
}

type fakePDF struct {
	got *dto.AccountsReceivableResponse
}

func (f *fakePDF) GenerateReceivablesPDF(_ context.Context, r *dto.AccountsReceivableResponse) ([]byte, error) {
	f.got = r
	return []byte("%PDF-1.3"), nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Stats
// ──────────────────────────────────────────────────────────────────────────────

func TestGetStats_Contadores(t *testing.T) {
	fs := &fakeStats{
		counts: []repository.SituacaoCount{
			{Situacao: "entregado", Count: 4},
			{Situacao: "pendiente", Count: 2},
			{Situacao: "transito", Count: 1},
			{Situacao: "cancelado", Count: 3},
		},
		totals: []repository.CurrencyTotal{{Moeda: "USD", OrderCount: 7, TotalGuia: d("100.50")}},
	}
	out, err := analytics.NewStatsUseCase(fs).GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, out.Total)
	assert.Equal(t, 2, out.Pendiente)
	assert.Equal(t, 1, out.Transito)
	assert.Equal(t, 4, out.Entregado)
	assert.Equal(t, 3, out.BySituacao["cancelado"])
	require.Len(t, out.CurrencyTotals, 1)
	assert.Equal(t, "USD", out.CurrencyTotals[0].Moeda)
}

func TestGetStats_ErrorDeRepositorio(t *testing.T) {
	fs := &fakeStats{err: errors.New("conexión caída")}
	_, err := analytics.NewStatsUseCase(fs).GetStats(context.Background())
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Financial
// ──────────────────────────────────────────────────────────────────────────────

func TestFinancialSummary_NoMezclaMonedas(t *testing.T) {
	fs := &fakeStats{bySituacao: []repository.CurrencySituacaoTotal{
		{Moeda: "USD", Situacao: "pendiente", OrderCount: 2, TotalGuia: d("100")},
		{Moeda: "BRL", Situacao: "pendiente", OrderCount: 1, TotalGuia: d("50")},
		{Moeda: "USD", Situacao: "entregado", OrderCount: 1, TotalGuia: d("25.5")},
	}}
	out, err := analytics.NewFinancialUseCase(fs, &fakeEntities{}, nil).Summary(context.Background())
	require.NoError(t, err)

	require.Len(t, out.Currencies, 2)
	assert.Equal(t, "BRL", out.Currencies[0].Moeda)
	usd := out.Currencies[1]
	assert.Equal(t, "USD", usd.Moeda)
	assert.Equal(t, 3, usd.OrderCount)
	assert.True(t, d("125.5").Equal(usd.Total))
	assert.True(t, d("25.5").Equal(usd.BySituacao["entregado"]))
}

func TestAccountsReceivable_TotalesPorMoneda(t *testing.T) {
	arrival := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	fs := &fakeStats{receivables: []repository.ReceivableResult{
		{ClientID: "c1", ClientName: "ACME", Moeda: "USD", OrderCount: 2, TotalGuia: d("300"),
			OldestOrder: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), NextArrival: &arrival},
		{ClientID: "c2", ClientName: "Beta", Moeda: "USD", OrderCount: 1, TotalGuia: d("200")},
		{ClientID: "c2", ClientName: "Beta", Moeda: "EUR", OrderCount: 1, TotalGuia: d("80")},
	}}
	out, err := analytics.NewFinancialUseCase(fs, &fakeEntities{}, nil).AccountsReceivable(context.Background())
	require.NoError(t, err)

	require.Len(t, out.Items, 3)
	assert.Equal(t, "2024-01-10", out.Items[0].OldestOrder)
	require.NotNil(t, out.Items[0].NextArrival)
	assert.Equal(t, "2024-05-01", *out.Items[0].NextArrival)
	assert.Nil(t, out.Items[1].NextArrival)

	require.Len(t, out.Totals, 2)
	assert.Equal(t, "EUR", out.Totals[0].Moeda)
	assert.Equal(t, "USD", out.Totals[1].Moeda)
	assert.Equal(t, 3, out.Totals[1].OrderCount)
	assert.True(t, d("500").Equal(out.Totals[1].Total))
}

func TestAccountsReceivablePDF(t *testing.T) {
	gen := &fakePDF{}
	uc := analytics.NewFinancialUseCase(&fakeStats{}, &fakeEntities{}, gen)

	pdf, name, err := uc.AccountsReceivablePDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), pdf)
	assert.Regexp(t, `^contas-a-receber-\d{4}-\d{2}-\d{2}\.pdf$`, name)
	require.NotNil(t, gen.got)
}

func TestAccountsReceivablePDF_SinGenerador(t *testing.T) {
	uc := analytics.NewFinancialUseCase(&fakeStats{}, &fakeEntities{}, nil)
	_, _, err := uc.AccountsReceivablePDF(context.Background())
	assert.Error(t, err)
}

func TestByClient(t *testing.T) {
	ents := &fakeEntities{byID: map[string]*entity.NamedEntity{
		"c1": {ID: "c1", Kind: entity.KindClient, Name: "ACME"},
		"e1": {ID: "e1", Kind: entity.KindExporter, Name: "Exp"},
	}}
	fs := &fakeStats{
		bySituacao: []repository.CurrencySituacaoTotal{{Moeda: "USD", Situacao: "pendiente", OrderCount: 1, TotalGuia: d("10")}},
		orders: []*entity.OrderDetail{{Order: entity.Order{ID: "o1", Pedido: "PED-1", ClientID: "c1",
			Data: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)}, ClientName: "ACME"}},
	}
	uc := analytics.NewFinancialUseCase(fs, ents, nil)

	out, err := uc.ByClient(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "ACME", out.Client.Name)
	assert.Equal(t, "c1", fs.lastClientID)
	require.Len(t, out.Orders, 1)
	assert.Equal(t, "2024-03-15", out.Orders[0].Data)

	_, err = uc.ByClient(context.Background(), "e1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Analytics
// ──────────────────────────────────────────────────────────────────────────────

func TestRecentOrders_Limites(t *testing.T) {
	fs := &fakeStats{}
	uc := analytics.NewOrdersAnalyticsUseCase(fs)
	ctx := context.Background()

	out, err := uc.RecentOrders(ctx, 0)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Equal(t, 10, fs.lastLimit)

	_, err = uc.RecentOrders(ctx, 500)
	require.NoError(t, err)
	assert.Equal(t, 50, fs.lastLimit)

	_, err = uc.RecentOrders(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, fs.lastLimit)
}

func TestUpcomingShipments_DesdeHoy(t *testing.T) {
	fs := &fakeStats{}
	uc := analytics.NewOrdersAnalyticsUseCase(fs)

	_, err := uc.UpcomingShipments(context.Background(), 5)
	require.NoError(t, err)

	now := time.Now()
	assert.Equal(t, 5, fs.lastLimit)
	assert.Equal(t, now.Day(), fs.lastFrom.Day())
	assert.Equal(t, 0, fs.lastFrom.Hour())
}
