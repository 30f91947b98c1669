package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/comex-crm/internal/domain/entity"
	"github.com/jhoicas/comex-crm/internal/domain/importer"
)

// TemplateHeaders columnas de la planilla modelo de importación.
var TemplateHeaders = append(append([]string{}, importer.OrderHeaders...),
	importer.HeaderMoeda, importer.HeaderViaTransporte, importer.HeaderIncoterm)

// WriteFailedRowsCSV escribe las filas con error de un reporte como "linha;pedido;erro".
func WriteFailedRowsCSV(w io.Writer, report *entity.ImportReport) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write([]string{"linha", "pedido", "erro"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if report != nil {
		for _, res := range report.FailedRows() {
			if err := cw.Write([]string{strconv.Itoa(res.Row), res.Pedido, res.Error}); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTemplate genera la planilla modelo (.xlsx) con los encabezados en negrita y una fila de ejemplo.
func WriteTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Pedidos"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"1F4E78"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("template style: %w", err)
	}

	headers := make([]any, len(TemplateHeaders))
	for i, h := range TemplateHeaders {
		headers[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(TemplateHeaders), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	example := []any{
		"PED-0001", "15/03/2024", "Exportadora Exemplo", "EXP-REF", "Importadora Exemplo", "IMP-REF",
		1000, "Café verde", "2,50", "2.500,00", "", "Cliente Exemplo",
		"", "Santos", "Rotterdam", "", "20/03/2024", "15/04/2024", "", "", "pendiente", "12",
		"USD", "maritimo", "FOB",
	}
	if err := f.SetSheetRow(sheet, "A2", &example); err != nil {
		return err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(TemplateHeaders))
	if err := f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write template: %w", err)
	}
	return nil
}
