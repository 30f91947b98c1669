package importer

import (
	"strings"

	"github.com/jhoicas/comex-crm/internal/domain"
)

// Encabezados canónicos de la planilla de pedidos.
const (
	HeaderPedido        = "PEDIDO"
	HeaderData          = "DATA"
	HeaderExportador    = "EXPORTADOR"
	HeaderReferencia    = "REFERÊNCIA"
	HeaderImportador    = "IMPORTADOR"
	HeaderQuantidade    = "QUANTIDADE"
	HeaderItens         = "ITENS"
	HeaderPrecoGuia     = "PREÇO GUIA"
	HeaderTotalGuia     = "TOTAL GUIA"
	HeaderProdutor      = "PRODUTOR"
	HeaderCliente       = "CLIENTE"
	HeaderEtiqueta      = "ETIQUETA"
	HeaderPortoEmbarque = "PORTO EMBARQUE"
	HeaderPortoDestino  = "PORTO DESTINO"
	HeaderCondicao      = "CONDIÇÃO"
	HeaderEmbarque      = "EMBARQUE"
	HeaderPrevisao      = "PREVISÃO"
	HeaderChegada       = "CHEGADA"
	HeaderObservacao    = "OBSERVAÇÃO"
	HeaderSituacao      = "SITUAÇÃO"
	HeaderSemana        = "SEMANA"
	HeaderMoeda         = "MOEDA"
	HeaderViaTransporte = "VIA TRANSPORTE"
	HeaderIncoterm      = "INCOTERM"

	// segunda columna REFERÊNCIA renombrada por el lector de planillas
	HeaderReferenciaDup = HeaderReferencia + "__1"
)

// OrderHeaders orden de columnas de la planilla modelo (las dos REFERÊNCIA incluidas).
var OrderHeaders = []string{
	HeaderPedido, HeaderData, HeaderExportador, HeaderReferencia, HeaderImportador, HeaderReferencia,
	HeaderQuantidade, HeaderItens, HeaderPrecoGuia, HeaderTotalGuia, HeaderProdutor, HeaderCliente,
	HeaderEtiqueta, HeaderPortoEmbarque, HeaderPortoDestino, HeaderCondicao, HeaderEmbarque,
	HeaderPrevisao, HeaderChegada, HeaderObservacao, HeaderSituacao, HeaderSemana,
}

// TabFieldCount número exacto de campos de una línea pegada.
const TabFieldCount = 22

// rowLookup índice de claves plegadas de una fila con encabezados.
type rowLookup struct {
	row    map[string]any
	folded map[string]string
}

func newRowLookup(row map[string]any) rowLookup {
	folded := make(map[string]string, len(row))
	for k := range row {
		fk := foldKey(k)
		// si dos claves pliegan igual gana la exacta en mayúsculas
		if prev, ok := folded[fk]; ok && prev == strings.ToUpper(prev) {
			continue
		}
		folded[fk] = k
	}
	return rowLookup{row: row, folded: folded}
}

// get devuelve el primer valor no vacío entre las claves dadas (exacta primero, luego plegada).
func (l rowLookup) get(keys ...string) string {
	for _, k := range keys {
		if k == "" {
			continue
		}
		if v, ok := l.row[k]; ok {
			if s := strings.TrimSpace(NormalizeCell(v)); s != "" {
				return s
			}
		}
		if orig, ok := l.folded[foldKey(k)]; ok {
			if s := strings.TrimSpace(NormalizeCell(l.row[orig])); s != "" {
				return s
			}
		}
	}
	return ""
}

// referenceKeys determina qué columna REFERÊNCIA pertenece al exportador y cuál al importador
// según su posición respecto de IMPORTADOR. Sin coincidencia usa REFERÊNCIA / REFERÊNCIA__1.
func referenceKeys(headers []string) (exporterKey, importerKey string) {
	importerIdx := -1
	for i, h := range headers {
		if foldKey(h) == foldKey(HeaderImportador) {
			importerIdx = i
			break
		}
	}
	if importerIdx >= 0 {
		for i, h := range headers {
			if !isReferenceHeader(h) {
				continue
			}
			if i < importerIdx && exporterKey == "" {
				exporterKey = h
			}
			if i > importerIdx && importerKey == "" {
				importerKey = h
			}
		}
	}
	if exporterKey == "" {
		exporterKey = HeaderReferencia
	}
	if importerKey == "" {
		importerKey = HeaderReferenciaDup
	}
	return exporterKey, importerKey
}

// isReferenceHeader "REFERÊNCIA" o una de sus copias renombradas ("REFERÊNCIA__1", "REFERÊNCIA_2").
func isReferenceHeader(h string) bool {
	base := foldKey(HeaderReferencia)
	fk := foldKey(h)
	if !strings.HasPrefix(fk, base) {
		return false
	}
	for _, r := range fk[len(base):] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// MapHeaderRow mapea una fila de planilla (clave = encabezado) al conjunto canónico de campos.
// headers es el orden de columnas de la hoja, usado para distinguir las dos REFERÊNCIA.
func MapHeaderRow(headers []string, row map[string]any) OrderInput {
	l := newRowLookup(row)
	expRefKey, impRefKey := referenceKeys(headers)

	in := OrderInput{
		Pedido:               l.get(HeaderPedido, "pedido"),
		Data:                 headerDate(l.get(HeaderData, "data")),
		Exportador:           l.get(HeaderExportador, "exportador"),
		ReferenciaExportador: l.get(expRefKey, "referenciaExportador"),
		Importador:           l.get(HeaderImportador, "importador"),
		ReferenciaImportador: l.get(impRefKey, "referenciaImportador"),
		Quantidade:           l.get(HeaderQuantidade, "quantidade"),
		Itens:                l.get(HeaderItens, "itens"),
		PrecoGuia:            l.get(HeaderPrecoGuia, "precoGuia"),
		TotalGuia:            l.get(HeaderTotalGuia, "totalGuia"),
		Produtor:             l.get(HeaderProdutor, "produtor"),
		Cliente:              l.get(HeaderCliente, "cliente"),
		Etiqueta:             l.get(HeaderEtiqueta, "etiqueta"),
		PortoEmbarque:        l.get(HeaderPortoEmbarque, "portoEmbarque"),
		PortoDestino:         l.get(HeaderPortoDestino, "portoDestino"),
		Condicao:             l.get(HeaderCondicao, "condicao"),
		Embarque:             headerDate(l.get(HeaderEmbarque, "embarque")),
		Previsao:             headerDate(l.get(HeaderPrevisao, "previsao")),
		Chegada:              headerDate(l.get(HeaderChegada, "chegada")),
		Observacao:           l.get(HeaderObservacao, "observacao"),
		Situacao:             l.get(HeaderSituacao, "situacao"),
		Semana:               l.get(HeaderSemana, "semana"),
		Moeda:                normalizeMoeda(l.get(HeaderMoeda, "moeda")),
		ViaTransporte:        normalizeVia(l.get(HeaderViaTransporte, "viaTransporte")),
		Incoterm:             strings.ToUpper(l.get(HeaderIncoterm, "incoterm")),
	}
	in.applyDefaults()
	return in
}

// headerDate las planillas CSV traen fechas como texto DD/MM/AAAA; las celdas numéricas
// ya llegan como ISO desde NormalizeCell.
func headerDate(s string) string {
	if strings.Contains(s, "/") {
		return ConvertDMYDate(s)
	}
	return s
}

func normalizeMoeda(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch s {
	case "R$", "REAL", "REAIS":
		return "BRL"
	case "US$", "DOLAR", "DÓLAR":
		return "USD"
	case "€", "EURO":
		return "EUR"
	}
	return s
}

func normalizeVia(s string) string {
	return strings.ToLower(stripAccents(strings.TrimSpace(s)))
}

// ParseTabLine interpreta una línea pegada de exactamente 22 campos separados por tabulación.
// lineNo se usa solo en el FormatError.
func ParseTabLine(line string, lineNo int) (OrderInput, error) {
	line = strings.TrimRight(line, "\r")
	fields := strings.Split(line, "\t")
	if len(fields) < TabFieldCount {
		return OrderInput{}, &domain.FormatError{Line: lineNo, Expected: TabFieldCount, Actual: len(fields)}
	}
	f := func(i int) string { return strings.TrimSpace(fields[i]) }

	in := OrderInput{
		Pedido:               f(0),
		Data:                 ConvertDMYDate(f(1)),
		Exportador:           f(2),
		ReferenciaExportador: f(3),
		Importador:           f(4),
		ReferenciaImportador: f(5),
		Quantidade:           f(6),
		Itens:                f(7),
		PrecoGuia:            f(8),
		TotalGuia:            f(9),
		Produtor:             f(10),
		Cliente:              f(11),
		Etiqueta:             f(12),
		PortoEmbarque:        f(13),
		PortoDestino:         f(14),
		Condicao:             f(15),
		Embarque:             ConvertDMYDate(f(16)),
		Previsao:             ConvertDMYDate(f(17)),
		Chegada:              ConvertDMYDate(f(18)),
		Observacao:           f(19),
		Situacao:             f(20),
		Semana:               f(21),
	}
	in.applyDefaults()
	return in, nil
}

// ParseTabText interpreta un bloque de texto pegado (una línea por pedido). Si cualquier
// línea tiene menos de 22 campos falla el bloque entero y no se devuelve ninguna fila.
// Se ignoran solo las líneas vacías o de espacios; una línea de tabulaciones es una
// fila con campos vacíos y llega a la validación.
func ParseTabText(text string) ([]OrderInput, error) {
	lines := strings.Split(text, "\n")
	out := make([]OrderInput, 0, len(lines))
	for i, line := range lines {
		if strings.Trim(line, " \r") == "" {
			continue
		}
		in, err := ParseTabLine(line, i+1)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, nil
}
