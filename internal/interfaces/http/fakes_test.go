package http_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/comex-crm/internal/domain"
	"github.com/jhoicas/comex-crm/internal/domain/entity"
	"github.com/jhoicas/comex-crm/internal/domain/repository"
)

// Repositorios en memoria para probar los handlers con los casos de uso reales.
// Como Postgres, fallan con un error genérico si el id no es un UUID.

func checkUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid input syntax for type uuid: %q", id)
	}
	return nil
}

type memEntities struct {
	mu   sync.Mutex
	byID map[string]*entity.NamedEntity
}

func newMemEntities(seed ...*entity.NamedEntity) *memEntities {
	m := &memEntities{byID: map[string]*entity.NamedEntity{}}
	for _, e := range seed {
		m.byID[e.ID] = e
	}
	return m
}

func (m *memEntities) FindByName(_ context.Context, kind entity.EntityKind, name string) (*entity.NamedEntity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.byID {
		if e.Kind == kind && e.Name == name {
			return e, nil
		}
	}
	return nil, nil
}

func (m *memEntities) GetByID(_ context.Context, kind entity.EntityKind, id string) (*entity.NamedEntity, error) {
	if err := checkUUID(id); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.byID[id]; ok && e.Kind == kind {
		return e, nil
	}
	return nil, nil
}

func (m *memEntities) Create(ctx context.Context, e *entity.NamedEntity) error {
	if existing, _ := m.FindByName(ctx, e.Kind, e.Name); existing != nil {
		return domain.ErrDuplicate
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[e.ID] = e
	return nil
}

func (m *memEntities) List(_ context.Context, kind entity.EntityKind) ([]*entity.NamedEntity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.NamedEntity
	for _, e := range m.byID {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memOrders struct {
	mu   sync.Mutex
	byID map[string]entity.Order
}

func newMemOrders() *memOrders {
	return &memOrders{byID: map[string]entity.Order{}}
}

func (m *memOrders) Create(_ context.Context, o *entity.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.byID {
		if x.Pedido == o.Pedido {
			return domain.ErrDuplicate
		}
	}
	m.byID[o.ID] = *o
	return nil
}

func (m *memOrders) GetByID(_ context.Context, id string) (*entity.OrderDetail, error) {
	if err := checkUUID(id); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &entity.OrderDetail{Order: o}, nil
}

func (m *memOrders) ExistsByPedido(_ context.Context, pedido string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.byID {
		if o.Pedido == pedido {
			return true, nil
		}
	}
	return false, nil
}

func (m *memOrders) Update(_ context.Context, o *entity.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[o.ID]; !ok {
		return domain.ErrNotFound
	}
	m.byID[o.ID] = *o
	return nil
}

func (m *memOrders) Delete(_ context.Context, id string) error {
	if err := checkUUID(id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memOrders) List(_ context.Context, f repository.OrderFilter) ([]*entity.OrderDetail, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []*entity.OrderDetail
	for _, o := range m.byID {
		if f.Search != "" && !strings.Contains(o.Pedido, f.Search) {
			continue
		}
		all = append(all, &entity.OrderDetail{Order: o})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Pedido < all[j].Pedido })
	total := len(all)
	if f.Offset >= total {
		return nil, total, nil
	}
	end := min(f.Offset+f.Limit, total)
	return all[f.Offset:end], total, nil
}

func (m *memOrders) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

type memUsers struct {
	mu   sync.Mutex
	byID map[string]*entity.CompanyUser
}

func newMemUsers(seed ...*entity.CompanyUser) *memUsers {
	m := &memUsers{byID: map[string]*entity.CompanyUser{}}
	for _, u := range seed {
		m.byID[u.ID] = u
	}
	return m
}

func (m *memUsers) Create(_ context.Context, u *entity.CompanyUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.byID {
		if x.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.CompanyUser, error) {
	if err := checkUUID(id); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.CompanyUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) List(_ context.Context) ([]*entity.CompanyUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.CompanyUser
	for _, u := range m.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (m *memUsers) Update(_ context.Context, u *entity.CompanyUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	if err := checkUUID(id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memUsers) TouchLastLogin(context.Context, string) error { return nil }
