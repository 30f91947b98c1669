package importer

// Sheet primera hoja de una planilla ya leída: encabezados en orden de columna (las copias
// repetidas llevan sufijo "__N") y una fila por registro con clave = encabezado.
// Los valores son nil, string o float64.
type Sheet struct {
	Headers []string
	Rows    []map[string]any
}

// MapSheet mapea todas las filas de la hoja al conjunto canónico de campos.
func MapSheet(s Sheet) []OrderInput {
	out := make([]OrderInput, 0, len(s.Rows))
	for _, row := range s.Rows {
		out = append(out, MapHeaderRow(s.Headers, row))
	}
	return out
}
