package repository

import (
	"context"
	"time"

	"github.com/jhoicas/comex-crm/internal/domain/entity"
)

// OrderFilter filtros, orden y paginación del listado de pedidos.
type OrderFilter struct {
	Search     string // ILIKE sobre pedido, referencias, etiqueta y observación
	ClientID   string
	ExporterID string
	ImporterID string
	ProducerID string
	Situacao   string
	Moeda      string
	DateFrom   *time.Time
	DateTo     *time.Time
	SortBy     string // columna ya validada contra la lista blanca
	SortDesc   bool
	Limit      int
	Offset     int
}

// OrderRepository puerto de persistencia para Order.
type OrderRepository interface {
	// Create inserta el pedido; domain.ErrDuplicate si el pedido ya existe,
	// domain.ErrInvalidReference si alguna FK no existe.
	Create(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.OrderDetail, error)
	ExistsByPedido(ctx context.Context, pedido string) (bool, error)
	Update(ctx context.Context, o *entity.Order) error
	// Delete devuelve domain.ErrNotFound si no había fila.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f OrderFilter) ([]*entity.OrderDetail, int, error)
}
