package http

import (
	"bytes"
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comex-crm/internal/application/dto"
	"github.com/jhoicas/comex-crm/internal/domain/entity"
	domimporter "github.com/jhoicas/comex-crm/internal/domain/importer"
	"github.com/jhoicas/comex-crm/internal/infrastructure/spreadsheet"
)

// orderImporter contrato del importador por lotes que usa el handler.
// Lo implementa *importer.BatchImporter.
type orderImporter interface {
	ImportSheet(ctx context.Context, sheet domimporter.Sheet) (*entity.ImportReport, []*entity.Order, error)
	PreviewText(text string) ([]domimporter.OrderInput, error)
	ImportText(ctx context.Context, text string) (*entity.ImportReport, []*entity.Order, error)
}

// ImportHandler importación de pedidos desde planilla o texto pegado.
type ImportHandler struct {
	importer       orderImporter
	maxUploadBytes int64
}

// NewImportHandler construye el handler. maxUploadBytes <= 0 = sin límite propio (aplica el de Fiber).
func NewImportHandler(imp orderImporter, maxUploadBytes int64) *ImportHandler {
	return &ImportHandler{importer: imp, maxUploadBytes: maxUploadBytes}
}

// ImportExcel godoc
// @Summary      Importar pedidos desde planilla (.xlsx o .csv, primera hoja)
// @Tags         import
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Planilla"
// @Success      200   {object}  dto.ImportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      413   {object}  dto.ErrorResponse
// @Router       /api/import/excel [post]
func (h *ImportHandler) ImportExcel(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo multipart 'file' requerido"})
	}
	if h.maxUploadBytes > 0 && fh.Size > h.maxUploadBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("archivo de %d bytes supera el máximo de %d", fh.Size, h.maxUploadBytes),
		})
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, fmt.Errorf("abrir archivo subido: %w", err))
	}
	defer f.Close()

	sheet, err := spreadsheet.Read(fh.Filename, f)
	if err != nil {
		return writeError(c, err)
	}
	report, created, err := h.importer.ImportSheet(c.UserContext(), sheet)
	if err != nil {
		return writeError(c, err)
	}
	requestLogger(c).Info().
		Str("file", fh.Filename).
		Int("total", report.Total).
		Int("successful", report.Successful).
		Int("failed", report.Failed).
		Msg("importación de planilla")
	return c.JSON(dto.NewImportResponse(report, created))
}

// PreviewText godoc
// @Summary      Vista previa del texto pegado (sin guardar)
// @Tags         import
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportTextRequest  true  "Texto separado por tabulaciones"
// @Success      200   {object}  dto.ImportPreviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/import/text/preview [post]
func (h *ImportHandler) PreviewText(c *fiber.Ctx) error {
	var in dto.ImportTextRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	rows, err := h.importer.PreviewText(in.Text)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.ImportPreviewResponse{Count: len(rows), Rows: rows}
	for i, r := range rows {
		if msgs := domimporter.ValidateOrderInput(r); len(msgs) > 0 {
			if out.Issues == nil {
				out.Issues = make(map[int][]string)
			}
			out.Issues[i+1] = msgs
		}
	}
	return c.JSON(out)
}

// ImportText godoc
// @Summary      Importar pedidos desde texto pegado
// @Tags         import
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportTextRequest  true  "Texto separado por tabulaciones"
// @Success      200   {object}  dto.ImportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/import/text [post]
func (h *ImportHandler) ImportText(c *fiber.Ctx) error {
	var in dto.ImportTextRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	report, created, err := h.importer.ImportText(c.UserContext(), in.Text)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewImportResponse(report, created))
}

// ReportCSV godoc
// @Summary      Descargar filas con error como CSV
// @Tags         import
// @Security     Bearer
// @Accept       json
// @Produce      text/csv
// @Param        body  body  entity.ImportReport  true  "Reporte devuelto por la importación"
// @Success      200   {file}  binary
// @Router       /api/import/report.csv [post]
func (h *ImportHandler) ReportCSV(c *fiber.Ctx) error {
	var report entity.ImportReport
	if err := c.BodyParser(&report); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	var buf bytes.Buffer
	if err := spreadsheet.WriteFailedRowsCSV(&buf, &report); err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="erros-importacao.csv"`)
	return c.Send(buf.Bytes())
}

// Template godoc
// @Summary      Planilla modelo para importación
// @Tags         import
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/import/template.xlsx [get]
func (h *ImportHandler) Template(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := spreadsheet.WriteTemplate(&buf); err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="modelo-pedidos.xlsx"`)
	return c.Send(buf.Bytes())
}
