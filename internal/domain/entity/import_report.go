package entity

// ImportRowResult resultado de una fila importada (número de fila 1-based).
type ImportRowResult struct {
	Row     int    `json:"row"`
	Pedido  string `json:"pedido"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	OrderID string `json:"orderId,omitempty"`
}

// ImportReport resumen efímero de una importación; no se persiste.
type ImportReport struct {
	Total      int               `json:"total"`
	Successful int               `json:"successful"`
	Failed     int               `json:"failed"`
	Results    []ImportRowResult `json:"results"`
}

// Add registra el resultado de una fila y actualiza los contadores.
func (r *ImportReport) Add(res ImportRowResult) {
	r.Total++
	if res.Success {
		r.Successful++
	} else {
		r.Failed++
	}
	r.Results = append(r.Results, res)
}

// FailedRows devuelve solo las filas con error.
func (r *ImportReport) FailedRows() []ImportRowResult {
	var out []ImportRowResult
	for _, res := range r.Results {
		if !res.Success {
			out = append(out, res)
		}
	}
	return out
}
