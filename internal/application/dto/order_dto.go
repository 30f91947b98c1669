package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest entrada para crear un pedido. Fechas en formato YYYY-MM-DD.
type CreateOrderRequest struct {
	Pedido               string           `json:"pedido" validate:"required,max=100"`
	Data                 string           `json:"data" validate:"required,datetime=2006-01-02"`
	ExporterID           string           `json:"exporterId" validate:"required,uuid"`
	ImporterID           string           `json:"importerId" validate:"required,uuid"`
	ClientID             string           `json:"clientId" validate:"required,uuid"`
	ProducerID           *string          `json:"producerId" validate:"omitempty,uuid"`
	ReferenciaExportador string           `json:"referenciaExportador" validate:"max=200"`
	ReferenciaImportador string           `json:"referenciaImportador" validate:"max=200"`
	Quantidade           decimal.Decimal  `json:"quantidade"`
	Itens                string           `json:"itens"`
	PrecoGuia            *decimal.Decimal `json:"precoGuia"`
	TotalGuia            *decimal.Decimal `json:"totalGuia"`
	Etiqueta             string           `json:"etiqueta"`
	PortoEmbarque        string           `json:"portoEmbarque"`
	PortoDestino         string           `json:"portoDestino"`
	Condicao             string           `json:"condicao"`
	Embarque             *string          `json:"embarque" validate:"omitempty,datetime=2006-01-02"`
	Previsao             *string          `json:"previsao" validate:"omitempty,datetime=2006-01-02"`
	Chegada              *string          `json:"chegada" validate:"omitempty,datetime=2006-01-02"`
	Observacao           string           `json:"observacao"`
	Situacao             string           `json:"situacao" validate:"max=50"`
	Semana               string           `json:"semana" validate:"max=20"`
	Moeda                string           `json:"moeda" validate:"omitempty,oneof=BRL USD EUR"`
	ViaTransporte        string           `json:"viaTransporte" validate:"omitempty,oneof=terrestre maritimo aereo"`
	Incoterm             string           `json:"incoterm" validate:"omitempty,oneof=CIF FOB FCA CFR"`
}

// UpdateOrderRequest actualización parcial: solo se aplican los campos presentes.
// Para las fechas opcionales una cadena vacía limpia el valor.
type UpdateOrderRequest struct {
	Pedido               *string          `json:"pedido" validate:"omitempty,min=1,max=100"`
	Data                 *string          `json:"data" validate:"omitempty,datetime=2006-01-02"`
	ExporterID           *string          `json:"exporterId" validate:"omitempty,uuid"`
	ImporterID           *string          `json:"importerId" validate:"omitempty,uuid"`
	ClientID             *string          `json:"clientId" validate:"omitempty,uuid"`
	ProducerID           *string          `json:"producerId" validate:"omitempty,uuid"`
	ReferenciaExportador *string          `json:"referenciaExportador" validate:"omitempty,max=200"`
	ReferenciaImportador *string          `json:"referenciaImportador" validate:"omitempty,max=200"`
	Quantidade           *decimal.Decimal `json:"quantidade"`
	Itens                *string          `json:"itens"`
	PrecoGuia            *decimal.Decimal `json:"precoGuia"`
	TotalGuia            *decimal.Decimal `json:"totalGuia"`
	Etiqueta             *string          `json:"etiqueta"`
	PortoEmbarque        *string          `json:"portoEmbarque"`
	PortoDestino         *string          `json:"portoDestino"`
	Condicao             *string          `json:"condicao"`
	Embarque             *string          `json:"embarque" validate:"omitempty,datetime=2006-01-02"`
	Previsao             *string          `json:"previsao" validate:"omitempty,datetime=2006-01-02"`
	Chegada              *string          `json:"chegada" validate:"omitempty,datetime=2006-01-02"`
	Observacao           *string          `json:"observacao"`
	Situacao             *string          `json:"situacao" validate:"omitempty,max=50"`
	Semana               *string          `json:"semana" validate:"omitempty,max=20"`
	Moeda                *string          `json:"moeda" validate:"omitempty,oneof=BRL USD EUR"`
	ViaTransporte        *string          `json:"viaTransporte" validate:"omitempty,oneof=terrestre maritimo aereo"`
	Incoterm             *string          `json:"incoterm" validate:"omitempty,oneof=CIF FOB FCA CFR"`
}

// OrderListRequest parámetros de GET /api/orders.
type OrderListRequest struct {
	PageRequest
	Search     string `query:"search"`
	ClientID   string `query:"clientId" validate:"omitempty,uuid"`
	ExporterID string `query:"exporterId" validate:"omitempty,uuid"`
	ImporterID string `query:"importerId" validate:"omitempty,uuid"`
	ProducerID string `query:"producerId" validate:"omitempty,uuid"`
	Situacao   string `query:"situacao"`
	Moeda      string `query:"moeda" validate:"omitempty,oneof=BRL USD EUR"`
	DateFrom   string `query:"dateFrom" validate:"omitempty,datetime=2006-01-02"`
	DateTo     string `query:"dateTo" validate:"omitempty,datetime=2006-01-02"`
	SortBy     string `query:"sortBy"`
	SortOrder  string `query:"sortOrder" validate:"omitempty,oneof=asc desc ASC DESC"`
}

// OrderResponse salida de un pedido con los nombres de sus relaciones.
type OrderResponse struct {
	ID                   string           `json:"id"`
	Pedido               string           `json:"pedido"`
	Data                 string           `json:"data"`
	ExporterID           string           `json:"exporterId"`
	ExporterName         string           `json:"exporterName,omitempty"`
	ImporterID           string           `json:"importerId"`
	ImporterName         string           `json:"importerName,omitempty"`
	ClientID             string           `json:"clientId"`
	ClientName           string           `json:"clientName,omitempty"`
	ProducerID           *string          `json:"producerId"`
	ProducerName         string           `json:"producerName,omitempty"`
	ReferenciaExportador string           `json:"referenciaExportador"`
	ReferenciaImportador string           `json:"referenciaImportador"`
	Quantidade           decimal.Decimal  `json:"quantidade"`
	Itens                string           `json:"itens"`
	PrecoGuia            *decimal.Decimal `json:"precoGuia"`
	TotalGuia            *decimal.Decimal `json:"totalGuia"`
	Etiqueta             string           `json:"etiqueta"`
	PortoEmbarque        string           `json:"portoEmbarque"`
	PortoDestino         string           `json:"portoDestino"`
	Condicao             string           `json:"condicao"`
	Embarque             *string          `json:"embarque"`
	Previsao             *string          `json:"previsao"`
	Chegada              *string          `json:"chegada"`
	Observacao           string           `json:"observacao"`
	Situacao             string           `json:"situacao"`
	Semana               string           `json:"semana"`
	Moeda                string           `json:"moeda"`
	ViaTransporte        string           `json:"viaTransporte,omitempty"`
	Incoterm             string           `json:"incoterm,omitempty"`
	CreatedAt            time.Time        `json:"createdAt"`
	UpdatedAt            time.Time        `json:"updatedAt"`
}

// OrderListResponse lista paginada de pedidos.
type OrderListResponse struct {
	Orders     []OrderResponse `json:"orders"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
}
