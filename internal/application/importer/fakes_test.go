package importer_test

import (
	"context"
	"sync"

	"github.com/jhoicas/comex-crm/internal/domain"
	"github.com/jhoicas/comex-crm/internal/domain/entity"
)

// memEntities repositorio en memoria de entidades nombradas con unicidad por (kind, name).
type memEntities struct {
	mu      sync.Mutex
	byName  map[entity.EntityKind]map[string]*entity.NamedEntity
	creates int
	// raceWinner simula que otra importación crea el nombre justo antes de nuestro insert
	raceWinner *entity.NamedEntity
}

func newMemEntities() *memEntities {
	return &memEntities{byName: map[entity.EntityKind]map[string]*entity.NamedEntity{}}
}

func (m *memEntities) FindByName(_ context.Context, kind entity.EntityKind, name string) (*entity.NamedEntity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.byName[kind][name]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (m *memEntities) GetByID(_ context.Context, kind entity.EntityKind, id string) (*entity.NamedEntity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.byName[kind] {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memEntities) Create(_ context.Context, e *entity.NamedEntity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.byName[e.Kind] == nil {
		m.byName[e.Kind] = map[string]*entity.NamedEntity{}
	}
	if m.raceWinner != nil {
		m.byName[e.Kind][m.raceWinner.Name] = m.raceWinner
		m.raceWinner = nil
	}
	if _, ok := m.byName[e.Kind][e.Name]; ok {
		return domain.ErrDuplicate
	}
	cp := *e
	m.byName[e.Kind][e.Name] = &cp
	m.creates++
	return nil
}

func (m *memEntities) List(_ context.Context, kind entity.EntityKind) ([]*entity.NamedEntity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.NamedEntity
	for _, e := range m.byName[kind] {
		out = append(out, e)
	}
	return out, nil
}

func (m *memEntities) count(kind entity.EntityKind) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byName[kind])
}

// memOrders almacén en memoria de pedidos con UNIQUE(pedido).
type memOrders struct {
	mu        sync.Mutex
	byPedido  map[string]*entity.Order
	createErr error
}

func newMemOrders() *memOrders {
	return &memOrders{byPedido: map[string]*entity.Order{}}
}

func (m *memOrders) ExistsByPedido(_ context.Context, pedido string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.byPedido[pedido]
	return ok, nil
}

func (m *memOrders) Create(_ context.Context, o *entity.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.byPedido[o.Pedido]; ok {
		return domain.ErrDuplicate
	}
	cp := *o
	m.byPedido[o.Pedido] = &cp
	return nil
}
