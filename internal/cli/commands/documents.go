package commands

import (
	"RGFlow/internal/cli/bootstrap"
	"RGFlow/internal/config"
	"RGFlow/internal/view"
	"context"
	"fmt"
	"strings"
)

type docsCmd struct{}

func (docsCmd) Name() string        { return "docs" }
func (docsCmd) Description() string { return "Listar documentos" }
func (docsCmd) Usage() string       { return "docs [busca]" }

func (docsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	return withApp(ctx, cfg, view.PageDocumentos, func(app *bootstrap.App) error {
		list, err := app.Services.Documents.List(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(Out, "Nenhum documento.")
			return nil
		}
		for _, d := range list {
			fmt.Fprintf(Out, "- %s  %s  %s  %s\n", d.ID, d.Name, d.MimeType, humanSize(d.SizeBytes))
		}
		return nil
	})
}

type docUploadCmd struct{}

func (docUploadCmd) Name() string        { return "doc-upload" }
func (docUploadCmd) Description() string { return "Enviar documentos" }
func (docUploadCmd) Usage() string       { return "doc-upload [-ticket id] <arquivo>..." }

func (docUploadCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("doc-upload")
	ticket := fs.String("ticket", "", "id do atendimento")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return ErrUsage
	}
	files, closeFiles, err := openInputs(fs.Args())
	defer closeFiles()
	if err != nil {
		return err
	}
	return withApp(ctx, cfg, view.PageDocumentos, func(app *bootstrap.App) error {
		docs, err := app.Services.Documents.Upload(ctx, files, *ticket)
		if err != nil {
			return err
		}
		for _, d := range docs {
			fmt.Fprintf(Out, "Enviado: %s %s (%s)\n", d.ID, d.Name, humanSize(d.SizeBytes))
		}
		return nil
	})
}

type docDownloadCmd struct{}

func (docDownloadCmd) Name() string        { return "doc-download" }
func (docDownloadCmd) Description() string { return "Baixar documento" }
func (docDownloadCmd) Usage() string       { return "doc-download <id> [diretório]" }

func (docDownloadCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	dir := "."
	if len(args) == 2 {
		dir = args[1]
	}
	return withApp(ctx, cfg, view.PageDocumentos, func(app *bootstrap.App) error {
		d, data, err := app.Services.Documents.Download(ctx, args[0])
		if err != nil {
			return err
		}
		return dirSink(dir)(d.Name, d.MimeType, data)
	})
}

type docDelCmd struct{}

func (docDelCmd) Name() string        { return "doc-del" }
func (docDelCmd) Description() string { return "Excluir documento (com confirmação)" }
func (docDelCmd) Usage() string       { return "doc-del <id>" }

func (docDelCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	return withApp(ctx, cfg, view.PageDocumentos, func(app *bootstrap.App) error {
		if err := app.Services.Documents.Delete(ctx, args[0], confirmer(cfg)); err != nil {
			return err
		}
		fmt.Fprintln(Out, "Documento excluído.")
		return nil
	})
}

func init() {
	RegisterCmd(docsCmd{})
	RegisterCmd(docUploadCmd{})
	RegisterCmd(docDownloadCmd{})
	RegisterCmd(docDelCmd{})
}
