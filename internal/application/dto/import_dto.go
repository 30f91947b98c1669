package dto

import (
	"github.com/jhoicas/comex-crm/internal/domain/entity"
	"github.com/jhoicas/comex-crm/internal/domain/importer"
)

// ImportErrorDTO error de una fila importada.
type ImportErrorDTO struct {
	Row    int    `json:"row"`
	Pedido string `json:"pedido,omitempty"`
	Error  string `json:"error"`
}

// ImportResponse resultado de POST /api/import/excel y /api/import/text.
type ImportResponse struct {
	Success   bool                 `json:"success"`
	Imported  int                  `json:"imported"`
	Failed    int                  `json:"failed"`
	Errors    []ImportErrorDTO     `json:"errors"`
	TotalRows int                  `json:"totalRows"`
	Orders    []OrderResponse      `json:"orders"`
	Report    *entity.ImportReport `json:"report"`
}

// ImportTextRequest texto pegado (una línea por pedido, campos separados por tabulación).
type ImportTextRequest struct {
	Text string `json:"text" validate:"required"`
}

// ImportPreviewResponse filas mapeadas del texto pegado, sin persistir.
type ImportPreviewResponse struct {
	Count int                   `json:"count"`
	Rows  []importer.OrderInput `json:"rows"`
	// Issues mensajes de validación por fila (1-based); solo filas con problemas.
	Issues map[int][]string `json:"issues,omitempty"`
}
