package service

import (
	"RGFlow/internal/model"
	"RGFlow/internal/store"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationService — уведомления, созданные доменными действиями.
type NotificationService struct {
	store  *store.Store
	logger *zap.SugaredLogger
	now    func() time.Time
}

func NewNotificationService(st *store.Store, logger *zap.SugaredLogger) *NotificationService {
	return &NotificationService{store: st, logger: logger, now: time.Now}
}

// List — все уведомления, новые первыми.
func (s *NotificationService) List(ctx context.Context) ([]model.Notification, error) {
	st, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return newestFirst(st.Notifications, func(model.Notification) bool { return true }), nil
}

// Unread — количество непрочитанных.
func (s *NotificationService) Unread(ctx context.Context) (int, error) {
	st, err := s.store.Read(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, nt := range st.Notifications {
		if !nt.Read {
			n++
		}
	}
	return n, nil
}

// Push создаёт уведомление.
func (s *NotificationService) Push(ctx context.Context, kind model.NotificationKind, title, message string) (*model.Notification, error) {
	if !kind.Valid() {
		return nil, &ValidationError{Field: "kind", Message: fmt.Sprintf("unknown kind %q", kind)}
	}
	if strings.TrimSpace(title) == "" {
		return nil, &ValidationError{Field: "title", Message: "title is required"}
	}
	var created model.Notification
	err := s.store.Update(ctx, func(st *model.State) error {
		created = appendNotification(st, kind, title, message, s.now())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// MarkRead отмечает уведомление прочитанным.
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	err := s.store.Update(ctx, func(st *model.State) error {
		for i := range st.Notifications {
			if st.Notifications[i].ID == id {
				if st.Notifications[i].Read {
					return errUnchanged
				}
				st.Notifications[i].Read = true
				return nil
			}
		}
		return ErrNotFound
	})
	if errors.Is(err, errUnchanged) {
		return nil
	}
	return err
}

func appendNotification(st *model.State, kind model.NotificationKind, title, message string, now time.Time) model.Notification {
	n := model.Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Title:     title,
		Message:   message,
		CreatedAt: now.UTC(),
	}
	st.Notifications = append(st.Notifications, n)
	return n
}
