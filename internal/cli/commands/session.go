package commands

import (
	"RGFlow/internal/cli/bootstrap"
	"RGFlow/internal/cli/prompt"
	"RGFlow/internal/config"
	"RGFlow/internal/view"
	"context"
	"fmt"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Entrar (senha pedida sem eco, se omitida)" }
func (loginCmd) Usage() string       { return "login <email> [password]" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	email := args[0]
	var password string
	if len(args) == 2 {
		password = args[1]
	} else {
		pw, err := prompt.ReadPassword(In, Out, "Senha: ")
		if err != nil {
			return err
		}
		password = pw
	}

	return withApp(ctx, cfg, view.PageLogin, func(app *bootstrap.App) error {
		sess, err := app.Services.Session.Login(ctx, email, password)
		if err != nil {
			return err
		}
		if err := app.Router.Show(view.PageDashboard, true); err != nil {
			return err
		}
		fmt.Fprintf(Out, "Logged in as %s\n", sess.Email)
		return nil
	})
}

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Sair (com confirmação)" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withApp(ctx, cfg, view.PageLogin, func(app *bootstrap.App) error {
		sess, err := app.Services.Session.Current(ctx)
		if err != nil {
			return err
		}
		if sess == nil {
			fmt.Fprintln(Out, "Not logged in")
			return nil
		}
		if err := app.Services.Session.Logout(ctx, confirmer(cfg)); err != nil {
			return err
		}
		app.Router.Reset()
		fmt.Fprintln(Out, "Logged out")
		return nil
	})
}

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Mostrar a sessão atual" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withApp(ctx, cfg, view.PageLogin, func(app *bootstrap.App) error {
		sess, err := app.Services.Session.Current(ctx)
		if err != nil {
			return err
		}
		if sess == nil {
			fmt.Fprintln(Out, "Status: anonymous")
			return nil
		}
		unread, err := app.Services.Notifications.Unread(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "Status: logged in as %s since %s\n", sess.Email, sess.LoginAt.Local().Format("02/01/2006 15:04"))
		fmt.Fprintf(Out, "Notificações não lidas: %d\n", unread)
		return nil
	})
}

func init() {
	RegisterCmd(loginCmd{})
	RegisterCmd(logoutCmd{})
	RegisterCmd(statusCmd{})
}
