package commands

import (
	"RGFlow/internal/cli/bootstrap"
	"RGFlow/internal/config"
	"RGFlow/internal/model"
	"RGFlow/internal/service"
	"RGFlow/internal/view"
	"context"
	"fmt"
	"strings"
	"time"
)

type tasksCmd struct{}

func (tasksCmd) Name() string        { return "tasks" }
func (tasksCmd) Description() string { return "Listar tarefas" }
func (tasksCmd) Usage() string       { return "tasks [busca]" }

func (tasksCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	return withApp(ctx, cfg, view.PageTarefas, func(app *bootstrap.App) error {
		list, err := app.Services.Tasks.List(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(Out, "Nenhuma tarefa.")
			return nil
		}
		now := time.Now()
		for _, t := range list {
			fmt.Fprintf(Out, "%s %s  %s", checkbox(t.Done), t.ID, t.Title)
			if t.DueDate != nil {
				fmt.Fprintf(Out, "  até %s", t.DueDate.Local().Format("02/01/2006"))
			}
			if t.Overdue(now) {
				fmt.Fprint(Out, "  (atrasada)")
			}
			fmt.Fprintln(Out)
			if t.Priority != "" || t.Category != "" || t.Progress > 0 {
				fmt.Fprintf(Out, "    prioridade=%s categoria=%s progresso=%d%%\n", t.Priority, t.Category, t.Progress)
			}
		}
		return nil
	})
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

type taskAddCmd struct{}

func (taskAddCmd) Name() string        { return "task-add" }
func (taskAddCmd) Description() string { return "Criar tarefa" }
func (taskAddCmd) Usage() string {
	return "task-add [-due AAAA-MM-DD] [-priority ..] [-category ..] [-ticket id] [-desc ..] <título>"
}

func (taskAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("task-add")
	due := fs.String("due", "", "prazo (AAAA-MM-DD)")
	priority := fs.String("priority", "", "prioridade")
	category := fs.String("category", "", "categoria")
	ticket := fs.String("ticket", "", "id do atendimento")
	desc := fs.String("desc", "", "descrição")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	title := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if title == "" {
		return ErrUsage
	}
	in := service.TaskInput{
		Title:       title,
		Description: *desc,
		Priority:    model.Priority(*priority),
		Category:    *category,
		TicketID:    *ticket,
	}
	if *due != "" {
		d, err := time.ParseInLocation("2006-01-02", *due, time.Local)
		if err != nil {
			return &service.ValidationError{Field: "due_date", Message: "expected YYYY-MM-DD"}
		}
		in.DueDate = &d
	}

	return withApp(ctx, cfg, view.PageTarefas, func(app *bootstrap.App) error {
		t, err := app.Services.Tasks.Create(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "Tarefa criada: %s\n", t.ID)
		return nil
	})
}

type taskToggleCmd struct{}

func (taskToggleCmd) Name() string        { return "task-toggle" }
func (taskToggleCmd) Description() string { return "Marcar/desmarcar tarefa como concluída" }
func (taskToggleCmd) Usage() string       { return "task-toggle <id>" }

func (taskToggleCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	return withApp(ctx, cfg, view.PageTarefas, func(app *bootstrap.App) error {
		t, err := app.Services.Tasks.Toggle(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "%s %s\n", checkbox(t.Done), t.Title)
		return nil
	})
}

type taskDelCmd struct{}

func (taskDelCmd) Name() string        { return "task-del" }
func (taskDelCmd) Description() string { return "Excluir tarefa (com confirmação)" }
func (taskDelCmd) Usage() string       { return "task-del <id>" }

func (taskDelCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	return withApp(ctx, cfg, view.PageTarefas, func(app *bootstrap.App) error {
		if err := app.Services.Tasks.Delete(ctx, args[0], confirmer(cfg)); err != nil {
			return err
		}
		fmt.Fprintln(Out, "Tarefa excluída.")
		return nil
	})
}

func init() {
	RegisterCmd(tasksCmd{})
	RegisterCmd(taskAddCmd{})
	RegisterCmd(taskToggleCmd{})
	RegisterCmd(taskDelCmd{})
}
