package service

import "context"

// Confirmer спрашивает подтверждение разрушительного действия (удаление, выход).
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc адаптирует функцию к Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

var (
	AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) bool { return true })
	NeverConfirm  Confirmer = ConfirmFunc(func(context.Context, string) bool { return false })
)

func confirmed(ctx context.Context, c Confirmer, prompt string) bool {
	return c != nil && c.Confirm(ctx, prompt)
}
