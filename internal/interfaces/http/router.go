package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comex-crm/internal/application/analytics"
	"github.com/jhoicas/comex-crm/internal/application/usecase"
	"github.com/jhoicas/comex-crm/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrderUC         *usecase.OrderUseCase
	EntityUC        *usecase.NamedEntityUseCase
	CompanyUserUC   *usecase.CompanyUserUseCase
	StatsUC         *analytics.StatsUseCase
	FinancialUC     *analytics.FinancialUseCase
	OrdersAnalytics *analytics.OrdersAnalyticsUseCase
	Importer        orderImporter
	MaxUploadBytes  int64
	JWTSecret       string
	JWTIssuer       string
}

// Router registra las rutas de la API. Todas requieren Bearer Token; cada grupo exige su permiso.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	perm := func(p string) fiber.Handler { return RequirePermission(p, deps.CompanyUserUC) }

	userHandler := NewCompanyUserHandler(deps.CompanyUserUC)
	protected.Get("/me", userHandler.Me)

	// Pedidos
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Get("/", perm(entity.PermOrdersView), orderHandler.List)
	orders.Get("/:id", perm(entity.PermOrdersView), orderHandler.GetByID)
	orders.Post("/", perm(entity.PermOrdersCreate), orderHandler.Create)
	orders.Put("/:id", perm(entity.PermOrdersEdit), orderHandler.Update)
	orders.Delete("/:id", perm(entity.PermOrdersDelete), orderHandler.Delete)

	// Clientes, exportadores, importadores y productores
	for prefix, kind := range map[string]entity.EntityKind{
		"/clients":   entity.KindClient,
		"/exporters": entity.KindExporter,
		"/importers": entity.KindImporter,
		"/producers": entity.KindProducer,
	} {
		g := protected.Group(prefix)
		h := NewEntityHandler(deps.EntityUC, kind)
		g.Get("/", perm(entity.PermOrdersView), h.List)
		g.Get("/:id", perm(entity.PermOrdersView), h.GetByID)
		g.Post("/", perm(entity.PermOrdersCreate), h.Create)
	}

	// Estadísticas, finanzas y analítica
	statsHandler := NewStatsHandler(deps.StatsUC, deps.FinancialUC, deps.OrdersAnalytics)
	protected.Get("/stats", perm(entity.PermStatsView), statsHandler.GetStats)
	protected.Get("/stats/financial", perm(entity.PermFinancialView), statsHandler.GetFinancialStats)

	financial := protected.Group("/financial", perm(entity.PermFinancialView))
	financial.Get("/summary", statsHandler.FinancialSummary)
	financial.Get("/accounts-receivable", statsHandler.AccountsReceivable)
	financial.Get("/accounts-receivable/pdf", statsHandler.AccountsReceivablePDF)
	financial.Get("/by-client/:id", statsHandler.ByClient)

	analyticsGroup := protected.Group("/analytics", perm(entity.PermOrdersView))
	analyticsGroup.Get("/recent-orders", statsHandler.RecentOrders)
	analyticsGroup.Get("/upcoming-shipments", statsHandler.UpcomingShipments)

	// Importación
	imports := protected.Group("/import", perm(entity.PermOrdersImport))
	importHandler := NewImportHandler(deps.Importer, deps.MaxUploadBytes)
	imports.Post("/excel", importHandler.ImportExcel)
	imports.Post("/text/preview", importHandler.PreviewText)
	imports.Post("/text", importHandler.ImportText)
	imports.Post("/report.csv", importHandler.ReportCSV)
	imports.Get("/template.xlsx", importHandler.Template)

	// Usuarios de la empresa
	users := protected.Group("/company-users", perm(entity.PermUsersManage))
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Patch("/:id/role", userHandler.UpdateRole)
	users.Patch("/:id/permissions", userHandler.UpdatePermissions)
	users.Patch("/:id/toggle-active", userHandler.ToggleActive)
}
