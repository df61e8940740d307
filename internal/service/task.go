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

// TaskInput — поля быстрого добавления задачи.
type TaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    model.Priority
	Category    string
	TicketID    string
}

// TaskChanges — частичное обновление. nil-поля не меняются.
type TaskChanges struct {
	Title        *string
	Description  *string
	Done         *bool
	DueDate      *time.Time
	ClearDueDate bool
	Priority     *model.Priority
	Category     *string
	Progress     *int
}

// TaskService — панель задач.
type TaskService struct {
	store  *store.Store
	logger *zap.SugaredLogger
	now    func() time.Time
}

func NewTaskService(st *store.Store, logger *zap.SugaredLogger) *TaskService {
	return &TaskService{store: st, logger: logger, now: time.Now}
}

// List — задачи новые первыми; filter ищет по заголовку и описанию.
func (s *TaskService) List(ctx context.Context, filter string) ([]model.Task, error) {
	st, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return newestFirst(st.Tasks, func(t model.Task) bool {
		return matches(filter, t.Title, t.Description)
	}), nil
}

// Create добавляет задачу и уведомление о ней.
func (s *TaskService) Create(ctx context.Context, in TaskInput) (*model.Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	if in.Title == "" {
		return nil, &ValidationError{Field: "title", Message: "title is required"}
	}
	if !in.Priority.Valid() {
		return nil, &ValidationError{Field: "priority", Message: fmt.Sprintf("unknown priority %q", in.Priority)}
	}

	now := s.now().UTC()
	t := model.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		Category:    in.Category,
		TicketID:    in.TicketID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := s.store.Update(ctx, func(st *model.State) error {
		if t.TicketID != "" && !hasTicket(st, t.TicketID) {
			return &ValidationError{Field: "ticket_id", Message: "ticket does not exist"}
		}
		st.Tasks = append(st.Tasks, t)
		appendNotification(st, model.NotificationSuccess, "Tarefa Criada",
			fmt.Sprintf("Tarefa %q foi criada com sucesso", t.Title), now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Toggle переключает признак завершения.
func (s *TaskService) Toggle(ctx context.Context, id string) (*model.Task, error) {
	var out model.Task
	err := s.store.Update(ctx, func(st *model.State) error {
		t := findTask(st, id)
		if t == nil {
			return ErrNotFound
		}
		setDone(t, !t.Done)
		t.UpdatedAt = s.now().UTC()
		out = *t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update применяет частичные изменения.
func (s *TaskService) Update(ctx context.Context, id string, ch TaskChanges) (*model.Task, error) {
	if ch.Title != nil && strings.TrimSpace(*ch.Title) == "" {
		return nil, &ValidationError{Field: "title", Message: "title is required"}
	}
	if ch.Priority != nil && !ch.Priority.Valid() {
		return nil, &ValidationError{Field: "priority", Message: fmt.Sprintf("unknown priority %q", *ch.Priority)}
	}
	if ch.Progress != nil && (*ch.Progress < 0 || *ch.Progress > 100) {
		return nil, &ValidationError{Field: "progress", Message: "progress must be between 0 and 100"}
	}

	var out model.Task
	err := s.store.Update(ctx, func(st *model.State) error {
		t := findTask(st, id)
		if t == nil {
			return ErrNotFound
		}
		if ch.Title != nil {
			t.Title = strings.TrimSpace(*ch.Title)
		}
		if ch.Description != nil {
			t.Description = strings.TrimSpace(*ch.Description)
		}
		if ch.Priority != nil {
			t.Priority = *ch.Priority
		}
		if ch.Category != nil {
			t.Category = strings.TrimSpace(*ch.Category)
		}
		if ch.ClearDueDate {
			t.DueDate = nil
		} else if ch.DueDate != nil {
			d := *ch.DueDate
			t.DueDate = &d
		}
		if ch.Progress != nil {
			t.Progress = *ch.Progress
		}
		switch {
		case ch.Done != nil:
			setDone(t, *ch.Done)
		case ch.Progress != nil:
			// 100% закрывает задачу, меньше 100% снова открывает её
			t.Done = t.Progress == 100
		}
		t.UpdatedAt = s.now().UTC()
		out = *t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete удаляет задачу после подтверждения. Отсутствующий id игнорируется.
func (s *TaskService) Delete(ctx context.Context, id string, c Confirmer) error {
	if !confirmed(ctx, c, "Excluir tarefa?") {
		return ErrNotConfirmed
	}
	err := s.store.Update(ctx, func(st *model.State) error {
		for i := range st.Tasks {
			if st.Tasks[i].ID == id {
				st.Tasks = append(st.Tasks[:i], st.Tasks[i+1:]...)
				return nil
			}
		}
		return errUnchanged
	})
	if errors.Is(err, errUnchanged) {
		return nil
	}
	return err
}

func findTask(st *model.State, id string) *model.Task {
	for i := range st.Tasks {
		if st.Tasks[i].ID == id {
			return &st.Tasks[i]
		}
	}
	return nil
}

// setDone держит прогресс согласованным с признаком завершения.
func setDone(t *model.Task, done bool) {
	t.Done = done
	switch {
	case done:
		t.Progress = 100
	case t.Progress == 100:
		t.Progress = 0
	}
}

func hasTicket(st *model.State, id string) bool {
	for _, t := range st.Tickets {
		if t.ID == id {
			return true
		}
	}
	return false
}
