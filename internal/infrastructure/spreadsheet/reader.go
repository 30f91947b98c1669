// Package spreadsheet lee planillas de pedidos (.xlsx y .csv) y escribe los
// artefactos derivados de una importación (plantilla y reporte de filas fallidas).
package spreadsheet

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/comex-crm/internal/domain"
	"github.com/jhoicas/comex-crm/internal/domain/importer"
)

// ErrUnsupportedFormat extensión de archivo no soportada.
var ErrUnsupportedFormat = fmt.Errorf("%w: formato de archivo no soportado (use .xlsx ou .csv)", domain.ErrInvalidInput)

// Read elige el lector según la extensión del nombre de archivo.
func Read(filename string, r io.Reader) (importer.Sheet, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm", ".xls":
		return ReadWorkbook(r)
	case ".csv":
		return ReadCSV(r)
	default:
		return importer.Sheet{}, ErrUnsupportedFormat
	}
}

// ReadWorkbook lee la primera hoja de un libro Excel. Las celdas numéricas se devuelven
// como float64 (valor crudo, sin formato de visualización) y las de texto como string.
func ReadWorkbook(r io.Reader) (importer.Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return importer.Sheet{}, fmt.Errorf("%w: archivo Excel inválido: %v", domain.ErrInvalidInput, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return importer.Sheet{}, fmt.Errorf("%w: la planilla no tiene hojas", domain.ErrInvalidInput)
	}
	name := sheets[0]

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return importer.Sheet{}, fmt.Errorf("read rows from sheet %s: %w", name, err)
	}
	if len(rows) == 0 {
		return importer.Sheet{}, nil
	}

	headers := dedupeHeaders(rows[0])
	sheet := importer.Sheet{Headers: headers}
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		values := make(map[string]any, len(headers))
		for col, h := range headers {
			if h == "" {
				continue
			}
			if col >= len(row) || row[col] == "" {
				values[h] = nil
				continue
			}
			cellRef, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return importer.Sheet{}, err
			}
			values[h] = typedCell(f, name, cellRef, row[col])
		}
		sheet.Rows = append(sheet.Rows, values)
	}
	return sheet, nil
}

// typedCell convierte el valor crudo según el tipo de la celda.
func typedCell(f *excelize.File, sheet, cellRef, raw string) any {
	typ, err := f.GetCellType(sheet, cellRef)
	if err != nil {
		return raw
	}
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeError:
		return raw
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		return n
	}
	return raw
}

// ReadCSV lee un CSV con encabezado. Detecta el separador (; , o tabulación) en la
// primera línea y decodifica Latin-1 cuando el contenido no es UTF-8 válido.
// Los valores se conservan como texto.
func ReadCSV(r io.Reader) (importer.Sheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return importer.Sheet{}, fmt.Errorf("read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		data, err = charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return importer.Sheet{}, fmt.Errorf("%w: codificación no soportada", domain.ErrInvalidInput)
		}
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = detectDelimiter(data)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return importer.Sheet{}, fmt.Errorf("%w: CSV inválido na linha %d", domain.ErrInvalidInput, pe.Line)
		}
		return importer.Sheet{}, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return importer.Sheet{}, nil
	}

	headers := dedupeHeaders(records[0])
	sheet := importer.Sheet{Headers: headers}
	for _, rec := range records[1:] {
		if isBlankRow(rec) {
			continue
		}
		values := make(map[string]any, len(headers))
		for col, h := range headers {
			if h == "" {
				continue
			}
			if col < len(rec) && rec[col] != "" {
				values[h] = rec[col]
			} else {
				values[h] = nil
			}
		}
		sheet.Rows = append(sheet.Rows, values)
	}
	return sheet, nil
}

func detectDelimiter(data []byte) rune {
	line, _ := bufio.NewReader(bytes.NewReader(data)).ReadString('\n')
	best, bestCount := ',', strings.Count(line, ",")
	for _, d := range []rune{';', '\t'} {
		if n := strings.Count(line, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

// dedupeHeaders recorta los encabezados y renombra las repeticiones como "X__1", "X__2".
func dedupeHeaders(raw []string) []string {
	seen := make(map[string]int, len(raw))
	out := make([]string, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		n := seen[h]
		seen[h] = n + 1
		if n > 0 {
			h = h + "__" + strconv.Itoa(n)
		}
		out[i] = h
	}
	return out
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
