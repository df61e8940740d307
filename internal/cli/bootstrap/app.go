package bootstrap

import (
	"RGFlow/internal/auth"
	"RGFlow/internal/config"
	"RGFlow/internal/repo"
	"RGFlow/internal/service"
	"RGFlow/internal/store"
	"RGFlow/internal/view"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// App — локальное приложение: сервисы поверх Store и роутер страниц.
type App struct {
	Services service.Services
	Router   *view.Router
}

// Open открывает локальную БД клиента, применяет миграции и собирает сервисы.
// cleanup закрывает соединение с БД.
func Open(cfg *config.Config, logger *zap.SugaredLogger) (*App, func() error, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	dsn, err := cfg.ClientDSN()
	if err != nil {
		return nil, nil, err
	}
	db, err := repo.InitDB(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open local db: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("open local db: %w", err)
	}
	authenticator, err := auth.FromConfig(cfg.Credentials, cfg.DevMode)
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("credentials: %w", err)
	}

	st := store.New(repo.NewKVRepository(db), logger)
	app := &App{
		Services: service.New(st, authenticator, logger, cfg.MaxAttachmentBytes()),
		Router:   view.NewRouter(),
	}
	return app, sqlDB.Close, nil
}

// Show пропускает на страницу только при активной сессии.
func (a *App) Show(ctx context.Context, page view.Page) error {
	sess, err := a.Services.Session.Current(ctx)
	if err != nil {
		return err
	}
	if err := a.Router.Show(page, sess != nil); err != nil {
		if errors.Is(err, view.ErrLoginRequired) {
			return fmt.Errorf("%w: run `rgcli login <email>` first", err)
		}
		return err
	}
	return nil
}
