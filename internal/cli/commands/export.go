package commands

import (
	"RGFlow/internal/cli/bootstrap"
	"RGFlow/internal/config"
	"RGFlow/internal/view"
	"bytes"
	"context"
	"fmt"
	"os"
)

type exportCSVCmd struct{}

func (exportCSVCmd) Name() string        { return "export-csv" }
func (exportCSVCmd) Description() string { return "Exportar atendimentos em CSV (- para stdout)" }
func (exportCSVCmd) Usage() string       { return "export-csv [arquivo|-]" }

func (exportCSVCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 1 {
		return ErrUsage
	}
	path := "atendimentos.csv"
	if len(args) == 1 {
		path = args[0]
	}
	return withApp(ctx, cfg, view.PageAtendimentos, func(app *bootstrap.App) error {
		var buf bytes.Buffer
		if err := app.Services.Tickets.ExportCSV(ctx, &buf); err != nil {
			return err
		}
		if path == "-" {
			_, err := Out.Write(buf.Bytes())
			return err
		}
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(Out, "Exportado: %s\n", path)
		return nil
	})
}

func init() {
	RegisterCmd(exportCSVCmd{})
}
