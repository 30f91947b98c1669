package usecase_test

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/comex-crm/internal/domain"
	"github.com/jhoicas/comex-crm/internal/domain/entity"
	"github.com/jhoicas/comex-crm/internal/domain/repository"
)

// ── entidades con nombre ──────────────────────────────────────────────────────

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

// ── pedidos ───────────────────────────────────────────────────────────────────

type memOrders struct {
	mu       sync.Mutex
	byID     map[string]entity.Order
	entities *memEntities
	lastList repository.OrderFilter
}

func newMemOrders(entities *memEntities) *memOrders {
	return &memOrders{byID: map[string]entity.Order{}, entities: entities}
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

func (m *memOrders) GetByID(ctx context.Context, id string) (*entity.OrderDetail, error) {
	m.mu.Lock()
	o, ok := m.byID[id]
	m.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return m.detail(ctx, o), nil
}

func (m *memOrders) detail(ctx context.Context, o entity.Order) *entity.OrderDetail {
	name := func(kind entity.EntityKind, id string) string {
		if e, _ := m.entities.GetByID(ctx, kind, id); e != nil {
			return e.Name
		}
		return ""
	}
	d := &entity.OrderDetail{
		Order:        o,
		ExporterName: name(entity.KindExporter, o.ExporterID),
		ImporterName: name(entity.KindImporter, o.ImporterID),
		ClientName:   name(entity.KindClient, o.ClientID),
	}
	if o.ProducerID != nil {
		d.ProducerName = name(entity.KindProducer, *o.ProducerID)
	}
	return d
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
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memOrders) List(ctx context.Context, f repository.OrderFilter) ([]*entity.OrderDetail, int, error) {
	m.mu.Lock()
	m.lastList = f
	var all []entity.Order
	for _, o := range m.byID {
		if f.ClientID != "" && o.ClientID != f.ClientID {
			continue
		}
		if f.Situacao != "" && o.Situacao != f.Situacao {
			continue
		}
		if f.Search != "" && !strings.Contains(o.Pedido, f.Search) {
			continue
		}
		all = append(all, o)
	}
	m.mu.Unlock()

	sort.Slice(all, func(i, j int) bool { return all[i].Pedido < all[j].Pedido })
	total := len(all)
	if f.Offset >= total {
		return nil, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	var out []*entity.OrderDetail
	for _, o := range all[f.Offset:end] {
		out = append(out, m.detail(ctx, o))
	}
	return out, total, nil
}

// ── usuarios ──────────────────────────────────────────────────────────────────

type memUsers struct {
	mu      sync.Mutex
	byID    map[string]*entity.CompanyUser
	touched []string
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
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
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
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memUsers) TouchLastLogin(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touched = append(m.touched, id)
	return nil
}
