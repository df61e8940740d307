package commands

import (
	"RGFlow/internal/cli/bootstrap"
	"RGFlow/internal/config"
	"RGFlow/internal/view"
	"context"
	"fmt"
)

type notificationsCmd struct{}

func (notificationsCmd) Name() string        { return "notifications" }
func (notificationsCmd) Description() string { return "Listar notificações" }
func (notificationsCmd) Usage() string       { return "notifications" }

func (notificationsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withApp(ctx, cfg, view.PageDashboard, func(app *bootstrap.App) error {
		list, err := app.Services.Notifications.List(ctx)
		if err != nil {
			return err
		}
		unread := 0
		for _, n := range list {
			mark := " "
			if !n.Read {
				mark = "*"
				unread++
			}
			fmt.Fprintf(Out, "%s %s [%s] %s: %s\n", mark, n.ID, n.Kind, n.Title, n.Message)
		}
		fmt.Fprintf(Out, "Não lidas: %d\n", unread)
		return nil
	})
}

type notificationReadCmd struct{}

func (notificationReadCmd) Name() string        { return "notification-read" }
func (notificationReadCmd) Description() string { return "Marcar notificação como lida" }
func (notificationReadCmd) Usage() string       { return "notification-read <id>" }

func (notificationReadCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	return withApp(ctx, cfg, view.PageDashboard, func(app *bootstrap.App) error {
		return app.Services.Notifications.MarkRead(ctx, args[0])
	})
}

func init() {
	RegisterCmd(notificationsCmd{})
	RegisterCmd(notificationReadCmd{})
}
