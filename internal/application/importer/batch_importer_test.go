package importer_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comex-crm/internal/application/importer"
	"github.com/jhoicas/comex-crm/internal/domain"
	"github.com/jhoicas/comex-crm/internal/domain/entity"
	domimporter "github.com/jhoicas/comex-crm/internal/domain/importer"
)

func newImporter(maxRows int) (*importer.BatchImporter, *memOrders, *memEntities) {
	orders := newMemOrders()
	ents := newMemEntities()
	b := importer.NewBatchImporter(orders, importer.NewEntityResolver(ents), zerolog.Nop(), maxRows)
	return b, orders, ents
}

func pasteLine(pedido string) string {
	return strings.Join([]string{
		pedido, "15/03/24", "Exportadora Sul", "E-1", "Import Co", "I-1",
		"100", "2", "9,90", "990", "", "Cliente A", "",
		"Santos", "Hamburgo", "", "20/03/24", "", "",
		"", "", "11",
	}, "\t")
}

func row(pedido string) domimporter.OrderInput {
	return domimporter.OrderInput{
		Pedido:     pedido,
		Data:       "2024-03-15",
		Exportador: "Exp",
		Importador: "Imp",
		Cliente:    "Cli",
		Quantidade: "5",
		Situacao:   "pendiente",
	}
}

// Escenario completo: dos líneas pegadas, una sin pedido → 1 éxito, 1 fallo.
func TestImportText_PedidoVacioYValido(t *testing.T) {
	b, orders, _ := newImporter(0)
	text := pasteLine("") + "\n" + pasteLine("P-100")

	preview, err := b.PreviewText(text)
	require.NoError(t, err)
	require.Len(t, preview, 2)

	report, created, err := b.ImportText(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Successful)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Results, 2)
	assert.False(t, report.Results[0].Success)
	assert.Contains(t, report.Results[0].Error, "Pedido é obrigatório")
	assert.Equal(t, 1, report.Results[0].Row)
	assert.True(t, report.Results[1].Success)
	assert.Equal(t, 2, report.Results[1].Row)

	require.Len(t, created, 1)
	assert.Equal(t, "P-100", created[0].Pedido)
	assert.True(t, created[0].Quantidade.Equal(decimal.NewFromInt(100)))
	assert.True(t, created[0].PrecoGuia.Decimal.Equal(decimal.RequireFromString("9.9")))
	assert.Nil(t, created[0].ProducerID, "produtor vacío → sin producer_id")
	assert.Equal(t, entity.MoedaBRL, created[0].Moeda)
	_, ok := orders.byPedido["P-100"]
	assert.True(t, ok)
}

func TestImportText_LineaMalformadaNoImportaNada(t *testing.T) {
	b, orders, ents := newImporter(0)
	short := strings.Join(strings.Split(pasteLine("P-2"), "\t")[:21], "\t")

	report, _, err := b.ImportText(context.Background(), pasteLine("P-1")+"\n"+short)
	require.Error(t, err)
	assert.Nil(t, report)

	var fe *domain.FormatError
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe.Error(), "21")
	assert.Contains(t, fe.Error(), "22")
	assert.Empty(t, orders.byPedido)
	assert.Zero(t, ents.creates)
}

func TestImportRows_NuncaPierdeFilas(t *testing.T) {
	b, _, _ := newImporter(0)
	rows := []domimporter.OrderInput{row("A"), row(""), row("A"), row("B")}
	rows[3].Quantidade = "x"

	report, _, err := b.ImportRows(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, len(rows), report.Total)
	assert.Equal(t, report.Total, report.Successful+report.Failed)
	assert.Equal(t, 1, report.Successful)
	assert.Len(t, report.FailedRows(), 3)
}

func TestImportRows_PedidoDuplicadoNoModificaExistente(t *testing.T) {
	b, orders, _ := newImporter(0)
	ctx := context.Background()

	_, _, err := b.ImportRows(ctx, []domimporter.OrderInput{row("DUP-1")})
	require.NoError(t, err)
	before := *orders.byPedido["DUP-1"]

	again := row("DUP-1")
	again.Quantidade = "999"
	again.Observacao = "alterado"
	report, created, err := b.ImportRows(ctx, []domimporter.OrderInput{again})
	require.NoError(t, err)

	assert.Empty(t, created)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, "Pedido duplicado", report.Results[0].Error)
	assert.Equal(t, "DUP-1", report.Results[0].Pedido)

	after := orders.byPedido["DUP-1"]
	assert.True(t, before.Quantidade.Equal(after.Quantidade))
	assert.Equal(t, before.Observacao, after.Observacao)
	assert.Equal(t, before.ID, after.ID)
}

func TestImportRows_EntidadCreadaVisibleParaFilaSiguiente(t *testing.T) {
	b, _, ents := newImporter(0)
	r1, r2 := row("N-1"), row("N-2")
	r1.Produtor, r2.Produtor = "Fazenda X", "Fazenda X"

	report, created, err := b.ImportRows(context.Background(), []domimporter.OrderInput{r1, r2})
	require.NoError(t, err)
	require.Equal(t, 2, report.Successful)

	assert.Equal(t, 1, ents.count(entity.KindExporter))
	assert.Equal(t, 1, ents.count(entity.KindImporter))
	assert.Equal(t, 1, ents.count(entity.KindClient))
	assert.Equal(t, 1, ents.count(entity.KindProducer))
	assert.Equal(t, created[0].ExporterID, created[1].ExporterID)
	require.NotNil(t, created[1].ProducerID)
	assert.Equal(t, *created[0].ProducerID, *created[1].ProducerID)
}

func TestImportRows_ErrorDeInsercionMensajeGenerico(t *testing.T) {
	b, orders, _ := newImporter(0)
	orders.createErr = fmt.Errorf("insert order: %w", errors.New("connection reset"))

	report, _, err := b.ImportRows(context.Background(), []domimporter.OrderInput{row("X"), row("Y")})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Failed)
	assert.NotContains(t, report.Results[0].Error, "connection reset")
	assert.NotEmpty(t, report.Results[0].Error)
}

func TestImportRows_LimiteDeFilas(t *testing.T) {
	b, _, _ := newImporter(2)
	_, _, err := b.ImportRows(context.Background(), []domimporter.OrderInput{row("1"), row("2"), row("3")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestImportSheet_RutaPlanilla(t *testing.T) {
	b, _, _ := newImporter(0)
	sheet := domimporter.Sheet{
		Headers: []string{"PEDIDO", "DATA", "EXPORTADOR", "REFERÊNCIA", "IMPORTADOR", "REFERÊNCIA__1", "QUANTIDADE", "CLIENTE"},
		Rows: []map[string]any{
			{"PEDIDO": "S-1", "DATA": float64(45000), "EXPORTADOR": "E", "REFERÊNCIA": "RE", "IMPORTADOR": "I", "REFERÊNCIA__1": "RI", "QUANTIDADE": float64(10), "CLIENTE": "C"},
			{"PEDIDO": "S-2", "DATA": float64(45000), "EXPORTADOR": "E", "IMPORTADOR": "I", "QUANTIDADE": float64(10)},
		},
	}
	report, created, err := b.ImportSheet(context.Background(), sheet)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Successful)
	assert.Equal(t, 1, report.Failed)
	assert.Contains(t, report.Results[1].Error, "Cliente é obrigatório")
	require.Len(t, created, 1)
	assert.Equal(t, "RE", created[0].ReferenciaExportador)
	assert.Equal(t, "RI", created[0].ReferenciaImportador)
	assert.Equal(t, "2023-03-15", created[0].Data.Format("2006-01-02"))
}
