// import_pedidos importa pedidos desde una planilla o un archivo de texto separado por tabulaciones.
//
// Uso: go run ./cmd/import_pedidos <pedidos.xlsx|pedidos.csv|pedidos.tsv>
//
// .xlsx/.xls/.csv se leen por encabezados (primera hoja); .tsv/.txt usan el formato
// estricto de 22 columnas del texto pegado. Si hay filas con error se escribe
// <archivo>.erros.csv junto al original.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/jhoicas/comex-crm/internal/application/importer"
	"github.com/jhoicas/comex-crm/internal/domain/entity"
	"github.com/jhoicas/comex-crm/internal/infrastructure/postgres"
	"github.com/jhoicas/comex-crm/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/comex-crm/pkg/config"
	"github.com/jhoicas/comex-crm/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: import_pedidos <arquivo.xlsx|arquivo.csv|arquivo.tsv>")
		os.Exit(2)
	}
	os.Exit(importFile(os.Args[1]))
}

// importFile devuelve el código de salida: 0 todo importado, 1 error, 3 filas con error.
func importFile(path string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		return 1
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "import_pedidos"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("conexión a PostgreSQL")
		return 1
	}
	defer pool.Close()

	entities := postgres.NewNamedEntityRepository(pool)
	b := importer.NewBatchImporter(
		postgres.NewOrderRepository(pool),
		importer.NewEntityResolver(entities),
		log.Component("importer"),
		cfg.Import.MaxRows,
	)

	report, err := run(ctx, b, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Importar %s: %v\n", path, err)
		return 1
	}

	fmt.Printf("Total: %d  Importados: %d  Com erro: %d\n", report.Total, report.Successful, report.Failed)
	for _, r := range report.FailedRows() {
		fmt.Printf("  linha %d [%s]: %s\n", r.Row, r.Pedido, r.Error)
	}
	if report.Failed == 0 {
		return 0
	}

	out := path + ".erros.csv"
	if err := writeFailedRows(out, report); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir %s: %v\n", out, err)
		return 1
	}
	fmt.Printf("Linhas com erro em %s\n", out)
	return 3
}

func run(ctx context.Context, b *importer.BatchImporter, path string) (*entity.ImportReport, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		report, _, err := b.ImportText(ctx, string(data))
		return report, err
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		sheet, err := spreadsheet.Read(path, f)
		if err != nil {
			return nil, err
		}
		report, _, err := b.ImportSheet(ctx, sheet)
		return report, err
	}
}

func writeFailedRows(path string, report *entity.ImportReport) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := spreadsheet.WriteFailedRowsCSV(f, report); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
