package service

import (
	"RGFlow/internal/auth"
	"RGFlow/internal/model"
	"RGFlow/internal/store"
	"context"
	"time"

	"go.uber.org/zap"
)

// SessionService — вход и выход единственного пользователя.
type SessionService struct {
	store  *store.Store
	auth   auth.Authenticator
	logger *zap.SugaredLogger
	now    func() time.Time
}

func NewSessionService(st *store.Store, a auth.Authenticator, logger *zap.SugaredLogger) *SessionService {
	if a == nil {
		a = auth.DenyAll{}
	}
	return &SessionService{store: st, auth: a, logger: logger, now: time.Now}
}

// Authenticate проверяет пару email/пароль, не трогая хранилище.
// Возвращает нормализованный email.
func (s *SessionService) Authenticate(ctx context.Context, email, password string) (string, error) {
	if auth.NormalizeEmail(email) == "" {
		return "", &ValidationError{Field: "email", Message: "email is required"}
	}
	if password == "" {
		return "", &ValidationError{Field: "password", Message: "password is required"}
	}
	norm := auth.NormalizeEmail(email)
	if err := s.auth.Authenticate(ctx, norm, password); err != nil {
		s.logger.Warnw("Login failed", "email", norm)
		return "", err
	}
	return norm, nil
}

// Login проверяет учётные данные и сохраняет флаг сессии.
func (s *SessionService) Login(ctx context.Context, email, password string) (*model.Session, error) {
	norm, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	sess := model.Session{Email: norm, LoggedIn: true, LoginAt: s.now().UTC()}
	if err := s.store.SaveSession(ctx, sess); err != nil {
		return nil, err
	}
	s.logger.Infow("Login", "email", norm)
	return &sess, nil
}

// Logout снимает флаг сессии после подтверждения. Данные остаются.
func (s *SessionService) Logout(ctx context.Context, c Confirmer) error {
	if !confirmed(ctx, c, "Deseja realmente sair?") {
		return ErrNotConfirmed
	}
	return s.store.ClearSession(ctx)
}

// Current возвращает активную сессию или nil.
func (s *SessionService) Current(ctx context.Context) (*model.Session, error) {
	return s.store.LoadSession(ctx)
}
