package commands

import (
	"RGFlow/internal/cli/bootstrap"
	"RGFlow/internal/config"
	"RGFlow/internal/datauri"
	"RGFlow/internal/model"
	"RGFlow/internal/service"
	"RGFlow/internal/view"
	"context"
	"fmt"
	"strings"
)

type ticketsCmd struct{}

func (ticketsCmd) Name() string        { return "tickets" }
func (ticketsCmd) Description() string { return "Listar atendimentos (mais recentes primeiro)" }
func (ticketsCmd) Usage() string       { return "tickets [busca]" }

func (ticketsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	return withApp(ctx, cfg, view.PageAtendimentos, func(app *bootstrap.App) error {
		list, err := app.Services.Tickets.List(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(Out, "Nenhum atendimento.")
			return nil
		}
		for _, t := range list {
			fmt.Fprintf(Out, "- %s  %s  [%s]  %s\n", t.ID, t.Client, t.CreatedAt.Local().Format("02/01/2006 15:04"), shorten(t.Description, 120))
			if t.Priority != "" || t.Type != "" {
				fmt.Fprintf(Out, "    tipo=%s prioridade=%s\n", t.Type, t.Priority)
			}
			if n := len(t.Attachments); n > 0 {
				fmt.Fprintf(Out, "    anexos: %d\n", n)
			}
		}
		fmt.Fprintf(Out, "Total: %d\n", len(list))
		return nil
	})
}

type ticketAddCmd struct{}

func (ticketAddCmd) Name() string        { return "ticket-add" }
func (ticketAddCmd) Description() string { return "Criar atendimento com anexos opcionais" }
func (ticketAddCmd) Usage() string {
	return "ticket-add -client <nome> [-desc ..] [-email ..] [-phone ..] [-type ..] [-priority ..] [-assignee ..] [arquivo...]"
}

func (ticketAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("ticket-add")
	client := fs.String("client", "", "cliente")
	desc := fs.String("desc", "", "descrição")
	email := fs.String("email", "", "email do cliente")
	phone := fs.String("phone", "", "telefone")
	typ := fs.String("type", "", "tipo")
	priority := fs.String("priority", "", "prioridade")
	assignee := fs.String("assignee", "", "responsável")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if strings.TrimSpace(*client) == "" {
		return ErrUsage
	}

	files, closeFiles, err := openInputs(fs.Args())
	defer closeFiles()
	if err != nil {
		return err
	}

	return withApp(ctx, cfg, view.PageAtendimentos, func(app *bootstrap.App) error {
		t, err := app.Services.Tickets.Create(ctx, service.TicketInput{
			Client:      *client,
			Description: *desc,
			Email:       *email,
			Phone:       *phone,
			Type:        model.TicketType(*typ),
			Priority:    model.Priority(*priority),
			Assignee:    *assignee,
			Files:       files,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "Atendimento criado: %s (%d anexos)\n", t.ID, len(t.Attachments))
		return nil
	})
}

type ticketFilesCmd struct{}

func (ticketFilesCmd) Name() string        { return "ticket-files" }
func (ticketFilesCmd) Description() string { return "Baixar todos os anexos de um atendimento" }
func (ticketFilesCmd) Usage() string       { return "ticket-files <id> [diretório]" }

func (ticketFilesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	dir := "."
	if len(args) == 2 {
		dir = args[1]
	}
	return withApp(ctx, cfg, view.PageAtendimentos, func(app *bootstrap.App) error {
		atts, err := app.Services.Tickets.Attachments(ctx, args[0])
		if err != nil {
			return err
		}
		if len(atts) == 0 {
			fmt.Fprintln(Out, "Nenhum arquivo anexado.")
			return nil
		}
		return datauri.DownloadAll(ctx, atts, dirSink(dir))
	})
}

type ticketDelCmd struct{}

func (ticketDelCmd) Name() string        { return "ticket-del" }
func (ticketDelCmd) Description() string { return "Excluir atendimento (com confirmação)" }
func (ticketDelCmd) Usage() string       { return "ticket-del <id>" }

func (ticketDelCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	return withApp(ctx, cfg, view.PageAtendimentos, func(app *bootstrap.App) error {
		if err := app.Services.Tickets.Delete(ctx, args[0], confirmer(cfg)); err != nil {
			return err
		}
		fmt.Fprintln(Out, "Atendimento excluído.")
		return nil
	})
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

func init() {
	RegisterCmd(ticketsCmd{})
	RegisterCmd(ticketAddCmd{})
	RegisterCmd(ticketFilesCmd{})
	RegisterCmd(ticketDelCmd{})
}
