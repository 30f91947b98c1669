package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comex-crm/internal/application/analytics"
)

// StatsHandler estadísticas del tablero, reportes financieros y listados analíticos.
type StatsHandler struct {
	stats     *analytics.StatsUseCase
	financial *analytics.FinancialUseCase
	orders    *analytics.OrdersAnalyticsUseCase
}

// NewStatsHandler construye el handler.
func NewStatsHandler(stats *analytics.StatsUseCase, financial *analytics.FinancialUseCase, orders *analytics.OrdersAnalyticsUseCase) *StatsHandler {
	return &StatsHandler{stats: stats, financial: financial, orders: orders}
}

// GetStats godoc
// @Summary      Contadores por situación y totales por moneda
// @Tags         stats
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatsResponse
// @Router       /api/stats [get]
func (h *StatsHandler) GetStats(c *fiber.Ctx) error {
	out, err := h.stats.GetStats(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetFinancialStats godoc
// @Summary      Totales por moneda (cantidad, suma total_guia, promedio preco_guia)
// @Tags         stats
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.FinancialStatsResponse
// @Router       /api/stats/financial [get]
func (h *StatsHandler) GetFinancialStats(c *fiber.Ctx) error {
	out, err := h.stats.GetFinancialStats(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// FinancialSummary godoc
// @Summary      Resumen financiero por moneda y situación
// @Tags         financial
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.FinancialSummaryResponse
// @Router       /api/financial/summary [get]
func (h *StatsHandler) FinancialSummary(c *fiber.Ctx) error {
	out, err := h.financial.Summary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AccountsReceivable godoc
// @Summary      Cuentas por cobrar (pedidos abiertos por cliente y moneda)
// @Tags         financial
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AccountsReceivableResponse
// @Router       /api/financial/accounts-receivable [get]
func (h *StatsHandler) AccountsReceivable(c *fiber.Ctx) error {
	out, err := h.financial.AccountsReceivable(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AccountsReceivablePDF godoc
// @Summary      Cuentas por cobrar en PDF
// @Tags         financial
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/financial/accounts-receivable/pdf [get]
func (h *StatsHandler) AccountsReceivablePDF(c *fiber.Ctx) error {
	data, filename, err := h.financial.AccountsReceivablePDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// ByClient godoc
// @Summary      Totales y pedidos de un cliente
// @Tags         financial
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.ClientFinancialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/financial/by-client/{id} [get]
func (h *StatsHandler) ByClient(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "cliente no encontrado")
	}
	out, err := h.financial.ByClient(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RecentOrders godoc
// @Summary      Últimos pedidos creados
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo 50"  default(10)
// @Success      200    {array}  dto.OrderResponse
// @Router       /api/analytics/recent-orders [get]
func (h *StatsHandler) RecentOrders(c *fiber.Ctx) error {
	out, err := h.orders.RecentOrders(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpcomingShipments godoc
// @Summary      Próximos embarques (desde hoy, ascendente)
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo 50"  default(10)
// @Success      200    {array}  dto.OrderResponse
// @Router       /api/analytics/upcoming-shipments [get]
func (h *StatsHandler) UpcomingShipments(c *fiber.Ctx) error {
	out, err := h.orders.UpcomingShipments(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
