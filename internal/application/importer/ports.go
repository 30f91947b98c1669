package importer

import (
	"context"

	"github.com/jhoicas/comex-crm/internal/domain/entity"
)

// OrderWriter lo mínimo que el importador necesita de la persistencia de pedidos.
// Lo implementa postgres.OrderRepo.
type OrderWriter interface {
	ExistsByPedido(ctx context.Context, pedido string) (bool, error)
	Create(ctx context.Context, o *entity.Order) error
}

// Resolver contrato de resolución "get-or-create" de entidades nombradas.
type Resolver interface {
	Resolve(ctx context.Context, kind entity.EntityKind, name string) (string, error)
}
