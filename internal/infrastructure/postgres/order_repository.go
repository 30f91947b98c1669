package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/comex-crm/internal/domain"
	"github.com/jhoicas/comex-crm/internal/domain/entity"
	"github.com/jhoicas/comex-crm/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `
	o.id, o.pedido, o.data, o.exporter_id, o.importer_id, o.client_id, o.producer_id,
	o.referencia_exportador, o.referencia_importador, o.quantidade, o.itens,
	o.preco_guia, o.total_guia, o.etiqueta, o.porto_embarque, o.porto_destino, o.condicao,
	o.embarque, o.previsao, o.chegada, o.observacao, o.situacao, o.semana,
	o.moeda, o.via_transporte, o.incoterm, o.created_at, o.updated_at,
	e.name, i.name, c.name, COALESCE(p.name, '')`

const orderFrom = `
	FROM orders o
	JOIN exporters e ON e.id = o.exporter_id
	JOIN importers i ON i.id = o.importer_id
	JOIN clients   c ON c.id = o.client_id
	LEFT JOIN producers p ON p.id = o.producer_id`

// orderSortColumns lista blanca de columnas de orden (clave = valor de sortBy).
var orderSortColumns = map[string]string{
	"pedido":     "o.pedido",
	"data":       "o.data",
	"embarque":   "o.embarque",
	"previsao":   "o.previsao",
	"chegada":    "o.chegada",
	"situacao":   "o.situacao",
	"total_guia": "o.total_guia",
	"created_at": "o.created_at",
}

// IsValidOrderSort indica si sortBy es una columna de orden permitida.
func IsValidOrderSort(sortBy string) bool {
	_, ok := orderSortColumns[sortBy]
	return ok
}

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste un nuevo pedido.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (
			id, pedido, data, exporter_id, importer_id, client_id, producer_id,
			referencia_exportador, referencia_importador, quantidade, itens,
			preco_guia, total_guia, etiqueta, porto_embarque, porto_destino, condicao,
			embarque, previsao, chegada, observacao, situacao, semana,
			moeda, via_transporte, incoterm, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28
		)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.Pedido, o.Data, o.ExporterID, o.ImporterID, o.ClientID, o.ProducerID,
		o.ReferenciaExportador, o.ReferenciaImportador, o.Quantidade, o.Itens,
		o.PrecoGuia, o.TotalGuia, o.Etiqueta, o.PortoEmbarque, o.PortoDestino, o.Condicao,
		o.Embarque, o.Previsao, o.Chegada, o.Observacao, o.Situacao, o.Semana,
		o.Moeda, o.ViaTransporte, o.Incoterm, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("insert order", err)
	}
	return nil
}

// GetByID obtiene un pedido con los nombres de sus relaciones.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.OrderDetail, error) {
	query := `SELECT ` + orderColumns + orderFrom + ` WHERE o.id = $1`
	d, err := scanOrderDetail(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return d, nil
}

// ExistsByPedido indica si ya existe un pedido con esa clave de negocio.
func (r *OrderRepo) ExistsByPedido(ctx context.Context, pedido string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE pedido = $1)`, pedido).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists order: %w", err)
	}
	return exists, nil
}

// Update reescribe todos los campos editables del pedido.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	query := `
		UPDATE orders SET
			pedido = $2, data = $3, exporter_id = $4, importer_id = $5, client_id = $6, producer_id = $7,
			referencia_exportador = $8, referencia_importador = $9, quantidade = $10, itens = $11,
			preco_guia = $12, total_guia = $13, etiqueta = $14, porto_embarque = $15, porto_destino = $16,
			condicao = $17, embarque = $18, previsao = $19, chegada = $20, observacao = $21,
			situacao = $22, semana = $23, moeda = $24, via_transporte = $25, incoterm = $26,
			updated_at = $27
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		o.ID, o.Pedido, o.Data, o.ExporterID, o.ImporterID, o.ClientID, o.ProducerID,
		o.ReferenciaExportador, o.ReferenciaImportador, o.Quantidade, o.Itens,
		o.PrecoGuia, o.TotalGuia, o.Etiqueta, o.PortoEmbarque, o.PortoDestino,
		o.Condicao, o.Embarque, o.Previsao, o.Chegada, o.Observacao,
		o.Situacao, o.Semana, o.Moeda, o.ViaTransporte, o.Incoterm,
		o.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("update order", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un pedido (borrado físico).
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista pedidos filtrados y paginados; devuelve también el total sin paginar.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.OrderDetail, int, error) {
	where, args := buildOrderWhere(f)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) `+orderFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := `SELECT ` + orderColumns + orderFrom + where + orderBy(f) +
		` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	list, err := collectOrderDetails(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// buildOrderWhere arma la cláusula WHERE con placeholders posicionales.
func buildOrderWhere(f repository.OrderFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(args))))
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		add(`(o.pedido ILIKE ? OR o.referencia_exportador ILIKE ? OR o.referencia_importador ILIKE ?
			OR o.etiqueta ILIKE ? OR o.observacao ILIKE ? OR c.name ILIKE ? OR e.name ILIKE ? OR i.name ILIKE ?)`,
			"%"+s+"%")
	}
	if f.ClientID != "" {
		add("o.client_id = ?", f.ClientID)
	}
	if f.ExporterID != "" {
		add("o.exporter_id = ?", f.ExporterID)
	}
	if f.ImporterID != "" {
		add("o.importer_id = ?", f.ImporterID)
	}
	if f.ProducerID != "" {
		add("o.producer_id = ?", f.ProducerID)
	}
	if f.Situacao != "" {
		add("o.situacao = ?", f.Situacao)
	}
	if f.Moeda != "" {
		add("o.moeda = ?", f.Moeda)
	}
	if f.DateFrom != nil {
		add("o.data >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		add("o.data <= ?", *f.DateTo)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func orderBy(f repository.OrderFilter) string {
	col, ok := orderSortColumns[f.SortBy]
	if !ok {
		return " ORDER BY o.data DESC, o.created_at DESC"
	}
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}
	return " ORDER BY " + col + " " + dir + " NULLS LAST, o.id"
}

func scanOrderDetail(s pgxScanner) (*entity.OrderDetail, error) {
	var d entity.OrderDetail
	err := s.Scan(
		&d.ID, &d.Pedido, &d.Data, &d.ExporterID, &d.ImporterID, &d.ClientID, &d.ProducerID,
		&d.ReferenciaExportador, &d.ReferenciaImportador, &d.Quantidade, &d.Itens,
		&d.PrecoGuia, &d.TotalGuia, &d.Etiqueta, &d.PortoEmbarque, &d.PortoDestino, &d.Condicao,
		&d.Embarque, &d.Previsao, &d.Chegada, &d.Observacao, &d.Situacao, &d.Semana,
		&d.Moeda, &d.ViaTransporte, &d.Incoterm, &d.CreatedAt, &d.UpdatedAt,
		&d.ExporterName, &d.ImporterName, &d.ClientName, &d.ProducerName,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func collectOrderDetails(rows pgx.Rows) ([]*entity.OrderDetail, error) {
	defer rows.Close()
	var list []*entity.OrderDetail
	for rows.Next() {
		d, err := scanOrderDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func mapWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err):
		return domain.ErrInvalidReference
	}
	return fmt.Errorf("%s: %w", op, err)
}
