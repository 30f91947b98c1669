package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/comex-crm/internal/domain"
	"github.com/jhoicas/comex-crm/internal/domain/entity"
	domimporter "github.com/jhoicas/comex-crm/internal/domain/importer"
)

// genericRowError mensaje para fallos cuya causa no es legible para el usuario.
const genericRowError = "Erro ao salvar o pedido; tente novamente"

// BatchImporter procesa filas en orden estricto: Validar → pedido duplicado → resolver
// entidades → insertar. Cada fila termina antes de empezar la siguiente, así una entidad
// creada en la fila N ya existe para la fila N+1. El fallo de una fila no corta el lote.
type BatchImporter struct {
	orders   OrderWriter
	resolver Resolver
	log      zerolog.Logger
	maxRows  int
	now      func() time.Time
}

// NewBatchImporter construye el importador. maxRows <= 0 = sin límite.
func NewBatchImporter(orders OrderWriter, resolver Resolver, log zerolog.Logger, maxRows int) *BatchImporter {
	return &BatchImporter{
		orders:   orders,
		resolver: resolver,
		log:      log,
		maxRows:  maxRows,
		now:      time.Now,
	}
}

// ImportRows importa filas ya mapeadas. Devuelve el reporte y los pedidos creados.
// Solo devuelve error si el lote supera el máximo de filas (no se procesa ninguna).
func (b *BatchImporter) ImportRows(ctx context.Context, rows []domimporter.OrderInput) (*entity.ImportReport, []*entity.Order, error) {
	if b.maxRows > 0 && len(rows) > b.maxRows {
		return nil, nil, fmt.Errorf("lote de %d filas supera el máximo de %d: %w", len(rows), b.maxRows, domain.ErrInvalidInput)
	}

	report := &entity.ImportReport{Results: make([]entity.ImportRowResult, 0, len(rows))}
	created := make([]*entity.Order, 0, len(rows))

	for i, in := range rows {
		res := entity.ImportRowResult{Row: i + 1, Pedido: in.Pedido}
		order, err := b.importRow(ctx, in)
		if err != nil {
			res.Error = rowErrorMessage(err)
			b.log.Debug().Err(err).Int("row", res.Row).Str("pedido", in.Pedido).Msg("importación: fila rechazada")
		} else {
			res.Success = true
			res.OrderID = order.ID
			created = append(created, order)
		}
		report.Add(res)
	}

	b.log.Info().
		Int("total", report.Total).
		Int("successful", report.Successful).
		Int("failed", report.Failed).
		Msg("importación de pedidos finalizada")
	return report, created, nil
}

// ImportSheet ruta de planilla (Excel/CSV): tolerante por fila.
func (b *BatchImporter) ImportSheet(ctx context.Context, sheet domimporter.Sheet) (*entity.ImportReport, []*entity.Order, error) {
	return b.ImportRows(ctx, domimporter.MapSheet(sheet))
}

// PreviewText valida la forma de todo el bloque pegado y devuelve las filas mapeadas.
// Cualquier línea malformada falla el bloque entero (FormatError).
func (b *BatchImporter) PreviewText(text string) ([]domimporter.OrderInput, error) {
	rows, err := domimporter.ParseTabText(text)
	if err != nil {
		return nil, err
	}
	if b.maxRows > 0 && len(rows) > b.maxRows {
		return nil, fmt.Errorf("bloque de %d líneas supera el máximo de %d: %w", len(rows), b.maxRows, domain.ErrInvalidInput)
	}
	return rows, nil
}

// ImportText ruta de texto pegado: estricta en la forma del bloque, luego tolerante por fila.
func (b *BatchImporter) ImportText(ctx context.Context, text string) (*entity.ImportReport, []*entity.Order, error) {
	rows, err := b.PreviewText(text)
	if err != nil {
		return nil, nil, err
	}
	return b.ImportRows(ctx, rows)
}

func (b *BatchImporter) importRow(ctx context.Context, in domimporter.OrderInput) (*entity.Order, error) {
	if msgs := domimporter.ValidateOrderInput(in); len(msgs) > 0 {
		return nil, &domain.ValidationError{Messages: msgs}
	}

	exists, err := b.orders.ExistsByPedido(ctx, in.Pedido)
	if err != nil {
		return nil, fmt.Errorf("verificar pedido: %w", err)
	}
	if exists {
		return nil, &domain.DuplicateKeyError{Pedido: in.Pedido}
	}

	var refs domimporter.ResolvedRefs
	if refs.ClientID, err = b.resolver.Resolve(ctx, entity.KindClient, in.Cliente); err != nil {
		return nil, err
	}
	if refs.ExporterID, err = b.resolver.Resolve(ctx, entity.KindExporter, in.Exportador); err != nil {
		return nil, err
	}
	if refs.ImporterID, err = b.resolver.Resolve(ctx, entity.KindImporter, in.Importador); err != nil {
		return nil, err
	}
	if in.Produtor != "" {
		producerID, err := b.resolver.Resolve(ctx, entity.KindProducer, in.Produtor)
		if err != nil {
			return nil, err
		}
		refs.ProducerID = &producerID
	}

	order, err := domimporter.BuildOrder(in, refs)
	if err != nil {
		return nil, &domain.ValidationError{Messages: []string{err.Error()}}
	}
	now := b.now()
	order.ID = uuid.New().String()
	order.CreatedAt = now
	order.UpdatedAt = now

	if err := b.orders.Create(ctx, order); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, &domain.DuplicateKeyError{Pedido: in.Pedido}
		}
		return nil, fmt.Errorf("insertar pedido: %w", err)
	}
	return order, nil
}

// rowErrorMessage texto que ve el usuario en el reporte.
func rowErrorMessage(err error) string {
	var (
		ve *domain.ValidationError
		de *domain.DuplicateKeyError
		me *domain.MissingRequiredFieldError
	)
	switch {
	case errors.As(err, &ve):
		return ve.Error()
	case errors.As(err, &de):
		return "Pedido duplicado"
	case errors.As(err, &me):
		return me.Error()
	}
	return genericRowError
}
