package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Situación del pedido (valores convencionales; no se fuerza como enum).
const (
	SituacaoPendiente = "pendiente"
	SituacaoTransito  = "transito"
	SituacaoEntregado = "entregado"
)

// Monedas soportadas.
const (
	MoedaBRL = "BRL"
	MoedaUSD = "USD"
	MoedaEUR = "EUR"
)

// Moedas valores válidos para Order.Moeda.
var Moedas = []string{MoedaBRL, MoedaUSD, MoedaEUR}

// ViasTransporte valores válidos para Order.ViaTransporte.
var ViasTransporte = []string{"terrestre", "maritimo", "aereo"}

// Incoterms valores válidos para Order.Incoterm.
var Incoterms = []string{"CIF", "FOB", "FCA", "CFR"}

// Order pedido de comercio exterior. Pedido es la clave de negocio (única).
type Order struct {
	ID                   string
	Pedido               string
	Data                 time.Time
	ExporterID           string
	ImporterID           string
	ClientID             string
	ProducerID           *string
	ReferenciaExportador string
	ReferenciaImportador string
	Quantidade           decimal.Decimal
	Itens                string
	PrecoGuia            decimal.NullDecimal
	TotalGuia            decimal.NullDecimal
	Etiqueta             string
	PortoEmbarque        string
	PortoDestino         string
	Condicao             string
	Embarque             *time.Time
	Previsao             *time.Time
	Chegada              *time.Time
	Observacao           string
	Situacao             string
	Semana               string
	Moeda                string
	ViaTransporte        string
	Incoterm             string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// OrderDetail pedido con los nombres de las entidades relacionadas (JOIN).
type OrderDetail struct {
	Order
	ExporterName string
	ImporterName string
	ClientName   string
	ProducerName string
}

// Contains indica si v pertenece a values.
func Contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
