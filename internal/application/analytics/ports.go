package analytics

import (
	"context"

	"github.com/jhoicas/comex-crm/internal/application/dto"
)

// ReceivablesPDFGenerator genera el PDF del reporte de cuentas por cobrar.
type ReceivablesPDFGenerator interface {
	GenerateReceivablesPDF(ctx context.Context, report *dto.AccountsReceivableResponse) ([]byte, error)
}
