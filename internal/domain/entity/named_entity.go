package entity

import "time"

// EntityKind tipo de entidad nombrada referenciada por un pedido.
type EntityKind string

const (
	KindClient   EntityKind = "client"
	KindExporter EntityKind = "exporter"
	KindImporter EntityKind = "importer"
	KindProducer EntityKind = "producer"
)

// Valid indica si el tipo es uno de los cuatro conocidos.
func (k EntityKind) Valid() bool {
	switch k {
	case KindClient, KindExporter, KindImporter, KindProducer:
		return true
	}
	return false
}

// Label nombre legible (portugués) usado en mensajes de importación.
func (k EntityKind) Label() string {
	switch k {
	case KindClient:
		return "Cliente"
	case KindExporter:
		return "Exportador"
	case KindImporter:
		return "Importador"
	case KindProducer:
		return "Produtor"
	}
	return string(k)
}

// NamedEntity forma común de Client, Exporter, Importer y Producer (id + nombre único por tipo).
type NamedEntity struct {
	ID        string
	Kind      EntityKind
	Name      string
	CreatedAt time.Time
}
