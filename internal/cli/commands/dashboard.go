package commands

import (
	"RGFlow/internal/cli/bootstrap"
	"RGFlow/internal/config"
	"RGFlow/internal/report"
	"RGFlow/internal/view"
	"bytes"
	"context"
	"fmt"
	"os"
)

type dashboardCmd struct{}

func (dashboardCmd) Name() string        { return "dashboard" }
func (dashboardCmd) Description() string { return "Mostrar os indicadores do painel" }
func (dashboardCmd) Usage() string       { return "dashboard" }

func (dashboardCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withApp(ctx, cfg, view.PageDashboard, func(app *bootstrap.App) error {
		m, err := app.Services.Dashboard.Metrics(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "Atendimentos: %d\n", m.Tickets)
		fmt.Fprintf(Out, "Tarefas:      %d (concluídas %d, pendentes %d, atrasadas %d)\n",
			m.Tasks, m.TasksCompleted, m.TasksPending, m.TasksOverdue)
		fmt.Fprintf(Out, "Conclusão:    %d%%\n", m.CompletionRate)
		fmt.Fprintf(Out, "Documentos:   %d (%s)\n", m.Documents, humanSize(m.DocumentBytes))
		fmt.Fprintf(Out, "Notificações: %d (não lidas %d)\n", m.Notifications, m.UnreadNotifications)
		fmt.Fprintln(Out, "Últimos 7 dias:")
		for _, p := range m.Weekly {
			fmt.Fprintf(Out, "  %-4s %s  atendimentos=%d tarefas=%d\n", p.Label, p.Start.Format("02/01"), p.Tickets, p.Tasks)
		}
		return nil
	})
}

type reportCmd struct{}

func (reportCmd) Name() string        { return "report" }
func (reportCmd) Description() string { return "Gerar relatório HTML com gráficos" }
func (reportCmd) Usage() string       { return "report [-o arquivo.html]" }

func (reportCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("report")
	out := fs.String("o", "relatorio.html", "arquivo de saída")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return ErrUsage
	}
	return withApp(ctx, cfg, view.PageRelatorios, func(app *bootstrap.App) error {
		m, err := app.Services.Dashboard.Metrics(ctx)
		if err != nil {
			return err
		}
		b := report.NewBoard(view.Title(view.PageRelatorios))
		report.ReportCharts(b, m)

		var buf bytes.Buffer
		if err := b.WriteHTML(&buf); err != nil {
			return err
		}
		if err := os.WriteFile(*out, buf.Bytes(), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(Out, "Relatório salvo em %s (%d gráficos)\n", *out, b.Len())
		return nil
	})
}

func init() {
	RegisterCmd(dashboardCmd{})
	RegisterCmd(reportCmd{})
}
