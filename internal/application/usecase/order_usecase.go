package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/comex-crm/internal/application/dto"
	"github.com/jhoicas/comex-crm/internal/domain"
	"github.com/jhoicas/comex-crm/internal/domain/entity"
	"github.com/jhoicas/comex-crm/internal/domain/importer"
	"github.com/jhoicas/comex-crm/internal/domain/repository"
)

// SortColumns columnas aceptadas en sortBy del listado de pedidos.
var SortColumns = []string{"pedido", "data", "embarque", "previsao", "chegada", "situacao", "total_guia", "created_at"}

// OrderUseCase casos de uso CRUD para pedidos.
type OrderUseCase struct {
	orders   repository.OrderRepository
	entities repository.NamedEntityRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(orders repository.OrderRepository, entities repository.NamedEntityRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, entities: entities}
}

// Create crea un pedido. Pedido repetido = DuplicateKeyError; referencias inexistentes = ErrInvalidReference.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	var msgs []string
	pedido := strings.TrimSpace(in.Pedido)
	if pedido == "" {
		msgs = append(msgs, "Pedido é obrigatório")
	}
	data, err := importer.ParseISODate(in.Data)
	if err != nil || data == nil {
		msgs = append(msgs, "Data inválida: "+in.Data)
	}
	if !in.Quantidade.GreaterThan(decimal.Zero) {
		msgs = append(msgs, "Quantidade deve ser maior que zero")
	}
	embarque, previsao, chegada, dateMsgs := parseOptionalDates(in.Embarque, in.Previsao, in.Chegada)
	msgs = append(msgs, dateMsgs...)
	if len(msgs) > 0 {
		return nil, &domain.ValidationError{Messages: msgs}
	}

	if err := uc.checkReferences(ctx, in.ClientID, in.ExporterID, in.ImporterID, in.ProducerID); err != nil {
		return nil, err
	}
	exists, err := uc.orders.ExistsByPedido(ctx, pedido)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &domain.DuplicateKeyError{Pedido: pedido}
	}

	now := time.Now().UTC()
	o := &entity.Order{
		ID:                   uuid.New().String(),
		Pedido:               pedido,
		Data:                 *data,
		ExporterID:           in.ExporterID,
		ImporterID:           in.ImporterID,
		ClientID:             in.ClientID,
		ProducerID:           emptyToNil(in.ProducerID),
		ReferenciaExportador: in.ReferenciaExportador,
		ReferenciaImportador: in.ReferenciaImportador,
		Quantidade:           in.Quantidade,
		Itens:                in.Itens,
		PrecoGuia:            toNullDecimal(in.PrecoGuia),
		TotalGuia:            toNullDecimal(in.TotalGuia),
		Etiqueta:             in.Etiqueta,
		PortoEmbarque:        in.PortoEmbarque,
		PortoDestino:         in.PortoDestino,
		Condicao:             in.Condicao,
		Embarque:             embarque,
		Previsao:             previsao,
		Chegada:              chegada,
		Observacao:           in.Observacao,
		Situacao:             defaultString(in.Situacao, entity.SituacaoPendiente),
		Semana:               in.Semana,
		Moeda:                defaultString(in.Moeda, entity.MoedaBRL),
		ViaTransporte:        in.ViaTransporte,
		Incoterm:             in.Incoterm,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.orders.Create(ctx, o); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, &domain.DuplicateKeyError{Pedido: pedido}
		}
		return nil, err
	}
	return uc.detail(ctx, o)
}

// GetByID obtiene un pedido; nil, nil si no existe.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	d, err := uc.orders.GetByID(ctx, id)
	if err != nil || d == nil {
		return nil, err
	}
	out := dto.NewOrderResponse(d)
	return &out, nil
}

// Update aplica una actualización parcial; domain.ErrNotFound si el pedido no existe.
func (uc *OrderUseCase) Update(ctx context.Context, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	d, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	o := d.Order

	var msgs []string
	if in.Pedido != nil {
		p := strings.TrimSpace(*in.Pedido)
		if p == "" {
			msgs = append(msgs, "Pedido é obrigatório")
		} else if p != o.Pedido {
			exists, err := uc.orders.ExistsByPedido(ctx, p)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, &domain.DuplicateKeyError{Pedido: p}
			}
		}
		o.Pedido = p
	}
	if in.Data != nil {
		data, err := importer.ParseISODate(*in.Data)
		if err != nil || data == nil {
			msgs = append(msgs, "Data inválida: "+*in.Data)
		} else {
			o.Data = *data
		}
	}
	if in.Quantidade != nil {
		if !in.Quantidade.GreaterThan(decimal.Zero) {
			msgs = append(msgs, "Quantidade deve ser maior que zero")
		}
		o.Quantidade = *in.Quantidade
	}
	applyDate := func(dst **time.Time, src *string, label string) {
		if src == nil {
			return
		}
		t, err := importer.ParseISODate(*src)
		if err != nil {
			msgs = append(msgs, label+": data inválida")
			return
		}
		*dst = t
	}
	applyDate(&o.Embarque, in.Embarque, "Embarque")
	applyDate(&o.Previsao, in.Previsao, "Previsão")
	applyDate(&o.Chegada, in.Chegada, "Chegada")
	if len(msgs) > 0 {
		return nil, &domain.ValidationError{Messages: msgs}
	}

	if in.ExporterID != nil {
		o.ExporterID = *in.ExporterID
	}
	if in.ImporterID != nil {
		o.ImporterID = *in.ImporterID
	}
	if in.ClientID != nil {
		o.ClientID = *in.ClientID
	}
	if in.ProducerID != nil {
		o.ProducerID = emptyToNil(in.ProducerID)
	}
	if err := uc.checkReferences(ctx, o.ClientID, o.ExporterID, o.ImporterID, o.ProducerID); err != nil {
		return nil, err
	}

	setString(&o.ReferenciaExportador, in.ReferenciaExportador)
	setString(&o.ReferenciaImportador, in.ReferenciaImportador)
	setString(&o.Itens, in.Itens)
	setString(&o.Etiqueta, in.Etiqueta)
	setString(&o.PortoEmbarque, in.PortoEmbarque)
	setString(&o.PortoDestino, in.PortoDestino)
	setString(&o.Condicao, in.Condicao)
	setString(&o.Observacao, in.Observacao)
	setString(&o.Situacao, in.Situacao)
	setString(&o.Semana, in.Semana)
	setString(&o.Moeda, in.Moeda)
	setString(&o.ViaTransporte, in.ViaTransporte)
	setString(&o.Incoterm, in.Incoterm)
	if in.PrecoGuia != nil {
		o.PrecoGuia = toNullDecimal(in.PrecoGuia)
	}
	if in.TotalGuia != nil {
		o.TotalGuia = toNullDecimal(in.TotalGuia)
	}
	if o.Situacao == "" {
		o.Situacao = entity.SituacaoPendiente
	}
	if o.Moeda == "" {
		o.Moeda = entity.MoedaBRL
	}

	o.UpdatedAt = time.Now().UTC()
	if err := uc.orders.Update(ctx, &o); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, &domain.DuplicateKeyError{Pedido: o.Pedido}
		}
		return nil, err
	}
	return uc.detail(ctx, &o)
}

// Delete elimina un pedido; domain.ErrNotFound si no existe.
func (uc *OrderUseCase) Delete(ctx context.Context, id string) error {
	return uc.orders.Delete(ctx, id)
}

// List lista pedidos con filtros, orden y paginación.
func (uc *OrderUseCase) List(ctx context.Context, in dto.OrderListRequest) (*dto.OrderListResponse, error) {
	in.DefaultPage()
	if in.SortBy != "" && !entity.Contains(SortColumns, in.SortBy) {
		return nil, &domain.ValidationError{Messages: []string{"sortBy inválido: " + in.SortBy}}
	}

	f := repository.OrderFilter{
		Search:     in.Search,
		ClientID:   in.ClientID,
		ExporterID: in.ExporterID,
		ImporterID: in.ImporterID,
		ProducerID: in.ProducerID,
		Situacao:   in.Situacao,
		Moeda:      in.Moeda,
		SortBy:     in.SortBy,
		SortDesc:   strings.EqualFold(in.SortOrder, "desc"),
		Limit:      in.Limit,
		Offset:     in.Offset(),
	}
	var err error
	if f.DateFrom, err = importer.ParseISODate(in.DateFrom); err != nil {
		return nil, &domain.ValidationError{Messages: []string{"dateFrom inválido: " + in.DateFrom}}
	}
	if f.DateTo, err = importer.ParseISODate(in.DateTo); err != nil {
		return nil, &domain.ValidationError{Messages: []string{"dateTo inválido: " + in.DateTo}}
	}

	list, total, err := uc.orders.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.OrderListResponse{
		Orders:     dto.NewOrderResponses(list),
		Total:      total,
		Page:       in.Page,
		Limit:      in.Limit,
		TotalPages: dto.TotalPages(total, in.Limit),
	}, nil
}

// checkReferences verifica que las entidades referenciadas existan.
func (uc *OrderUseCase) checkReferences(ctx context.Context, clientID, exporterID, importerID string, producerID *string) error {
	refs := []struct {
		kind entity.EntityKind
		id   string
	}{
		{entity.KindClient, clientID},
		{entity.KindExporter, exporterID},
		{entity.KindImporter, importerID},
	}
	if producerID != nil && *producerID != "" {
		refs = append(refs, struct {
			kind entity.EntityKind
			id   string
		}{entity.KindProducer, *producerID})
	}
	for _, r := range refs {
		if _, err := uuid.Parse(r.id); err != nil {
			return domain.ErrInvalidReference
		}
		e, err := uc.entities.GetByID(ctx, r.kind, r.id)
		if err != nil {
			return err
		}
		if e == nil {
			return domain.ErrInvalidReference
		}
	}
	return nil
}

// detail relee el pedido con los nombres de las relaciones para la respuesta.
func (uc *OrderUseCase) detail(ctx context.Context, o *entity.Order) (*dto.OrderResponse, error) {
	d, err := uc.orders.GetByID(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		d = &entity.OrderDetail{Order: *o}
	}
	out := dto.NewOrderResponse(d)
	return &out, nil
}

func parseOptionalDates(embarque, previsao, chegada *string) (e, p, c *time.Time, msgs []string) {
	parse := func(s *string, label string) *time.Time {
		if s == nil {
			return nil
		}
		t, err := importer.ParseISODate(*s)
		if err != nil {
			msgs = append(msgs, label+": data inválida")
			return nil
		}
		return t
	}
	e = parse(embarque, "Embarque")
	p = parse(previsao, "Previsão")
	c = parse(chegada, "Chegada")
	return e, p, c, msgs
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func defaultString(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
