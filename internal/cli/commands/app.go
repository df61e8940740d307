package commands

import (
	"RGFlow/internal/cli/bootstrap"
	"RGFlow/internal/cli/prompt"
	"RGFlow/internal/config"
	"RGFlow/internal/service"
	"RGFlow/internal/view"
	"context"
	"flag"
	"io"
)

var openApp = bootstrap.Open

// withApp открывает локальное приложение, проводит через ворота страницы page и вызывает fn.
// Для view.PageLogin ворота не проверяются.
func withApp(ctx context.Context, cfg *config.Config, page view.Page, fn func(*bootstrap.App) error) error {
	app, done, err := openApp(cfg, Logger)
	if err != nil {
		return err
	}
	defer func() { _ = done() }()

	if page != view.PageLogin {
		if err := app.Show(ctx, page); err != nil {
			return err
		}
	}
	return fn(app)
}

func confirmer(cfg *config.Config) service.Confirmer {
	return prompt.NewConfirmer(In, Out, cfg.AssumeYes)
}

// newFlagSet — флаги подкоманды; ошибки разбора превращаются в ErrUsage.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	return nil
}
