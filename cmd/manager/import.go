package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/renanb12/Projeto-Integrador/internal/application/inventory"
	domaininv "github.com/renanb12/Projeto-Integrador/internal/domain/inventory"
	"github.com/renanb12/Projeto-Integrador/internal/domain/nfe"
	"github.com/renanb12/Projeto-Integrador/internal/infrastructure/postgres"
)

func newImportCmd(e *env) *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "import <archivo.xml>...",
		Short: "Importa una o más NFe desde disco",
		Long: `Importa cada archivo en su propia transacción: un archivo inválido no afecta
a los demás. Con --check solo se interpretan los XML, sin tocar la base.`,
		Example: `  manager import notas/*.xml
  manager import --check nota.xml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if check {
				return checkFiles(cmd, args)
			}
			return importFiles(cmd, e, args)
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "solo valida los XML, no importa")
	return cmd
}

// checkFiles interpreta cada XML y muestra un resumen.
func checkFiles(cmd *cobra.Command, paths []string) error {
	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			failed++
			fmt.Fprintf(out, "%s: ERROR %v\n", path, err)
			continue
		}
		doc, err := nfe.Extract(raw)
		if err != nil {
			failed++
			fmt.Fprintf(out, "%s: ERROR %v\n", path, err)
			continue
		}
		fmt.Fprintf(out, "%s: OK nota=%s proveedor=%q ítems=%d\n",
			path, doc.Invoice.Number, doc.Supplier.Name, len(doc.Items))
	}
	if failed > 0 {
		return fmt.Errorf("%d de %d archivos inválidos", failed, len(paths))
	}
	return nil
}

func importFiles(cmd *cobra.Command, e *env, paths []string) error {
	ctx := cmd.Context()
	pool, err := e.pool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	uc := inventory.NewImportInvoiceUseCase(postgres.NewTxRunner(pool), domaininv.NewReconciler(), e.log.Component("import"))
	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			failed++
			fmt.Fprintf(out, "%s: ERROR %v\n", path, err)
			continue
		}
		abs, _ := filepath.Abs(path)
		res, err := uc.ImportXML(ctx, inventory.ImportInput{Content: raw, SourcePath: abs})
		if err != nil {
			failed++
			fmt.Fprintf(out, "%s: ERROR %v\n", path, err)
			continue
		}
		fmt.Fprintf(out, "%s: entrada %s (%d líneas, %d productos nuevos, %d actualizados)\n",
			path, res.EntryID, res.Lines, res.CreatedProducts, res.UpdatedProducts)
	}
	if failed > 0 {
		return fmt.Errorf("%d de %d archivos no se importaron", failed, len(paths))
	}
	return nil
}
