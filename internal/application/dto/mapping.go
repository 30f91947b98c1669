package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comex-crm/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// NewOrderResponse convierte un pedido (con o sin nombres de relaciones) en su salida HTTP.
func NewOrderResponse(d *entity.OrderDetail) OrderResponse {
	o := d.Order
	return OrderResponse{
		ID:                   o.ID,
		Pedido:               o.Pedido,
		Data:                 o.Data.Format(dateLayout),
		ExporterID:           o.ExporterID,
		ExporterName:         d.ExporterName,
		ImporterID:           o.ImporterID,
		ImporterName:         d.ImporterName,
		ClientID:             o.ClientID,
		ClientName:           d.ClientName,
		ProducerID:           o.ProducerID,
		ProducerName:         d.ProducerName,
		ReferenciaExportador: o.ReferenciaExportador,
		ReferenciaImportador: o.ReferenciaImportador,
		Quantidade:           o.Quantidade,
		Itens:                o.Itens,
		PrecoGuia:            nullDecimalPtr(o.PrecoGuia),
		TotalGuia:            nullDecimalPtr(o.TotalGuia),
		Etiqueta:             o.Etiqueta,
		PortoEmbarque:        o.PortoEmbarque,
		PortoDestino:         o.PortoDestino,
		Condicao:             o.Condicao,
		Embarque:             FormatDatePtr(o.Embarque),
		Previsao:             FormatDatePtr(o.Previsao),
		Chegada:              FormatDatePtr(o.Chegada),
		Observacao:           o.Observacao,
		Situacao:             o.Situacao,
		Semana:               o.Semana,
		Moeda:                o.Moeda,
		ViaTransporte:        o.ViaTransporte,
		Incoterm:             o.Incoterm,
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}
}

// NewOrderResponses convierte una lista; nunca devuelve nil.
func NewOrderResponses(list []*entity.OrderDetail) []OrderResponse {
	out := make([]OrderResponse, 0, len(list))
	for _, d := range list {
		out = append(out, NewOrderResponse(d))
	}
	return out
}

// NewNamedEntityResponse salida de una entidad con nombre.
func NewNamedEntityResponse(e *entity.NamedEntity) NamedEntityResponse {
	return NamedEntityResponse{ID: e.ID, Name: e.Name, CreatedAt: e.CreatedAt}
}

// NewCompanyUserResponse salida de un usuario con sus permisos efectivos.
func NewCompanyUserResponse(u *entity.CompanyUser) CompanyUserResponse {
	return CompanyUserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Position:    u.Position,
		Role:        u.Role,
		IsActive:    u.IsActive,
		Permissions: u.EffectivePermissions(),
		LastLogin:   u.LastLogin,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// FormatDatePtr formatea una fecha opcional como YYYY-MM-DD.
func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func nullDecimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

// NewImportResponse arma la respuesta de importación a partir del reporte y los pedidos creados.
// Success indica que el lote se procesó; los fallos por fila van en Errors.
func NewImportResponse(report *entity.ImportReport, created []*entity.Order) ImportResponse {
	out := ImportResponse{
		Success:   true,
		Imported:  report.Successful,
		Failed:    report.Failed,
		Errors:    []ImportErrorDTO{},
		TotalRows: report.Total,
		Orders:    make([]OrderResponse, 0, len(created)),
		Report:    report,
	}
	for _, r := range report.FailedRows() {
		out.Errors = append(out.Errors, ImportErrorDTO{Row: r.Row, Pedido: r.Pedido, Error: r.Error})
	}
	for _, o := range created {
		out.Orders = append(out.Orders, NewOrderResponse(&entity.OrderDetail{Order: *o}))
	}
	return out
}
