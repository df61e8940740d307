package service

import (
	"RGFlow/internal/datauri"
	"RGFlow/internal/model"
	"RGFlow/internal/report"
	"RGFlow/internal/store"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FileInput — выбранный пользователем файл до кодирования.
type FileInput struct {
	Name     string
	MimeType string
	Reader   io.Reader
}

// TicketInput — поля формы создания атендимента.
type TicketInput struct {
	Client      string
	Description string
	Email       string
	Phone       string
	Type        model.TicketType
	Priority    model.Priority
	Assignee    string
	Files       []FileInput
}

// TicketService — панель атендиментов.
type TicketService struct {
	store         *store.Store
	logger        *zap.SugaredLogger
	now           func() time.Time
	maxAttachment int64
}

// NewTicketService создаёт сервис. При maxAttachment <= 0 берётся лимит по умолчанию (10 MiB).
func NewTicketService(st *store.Store, logger *zap.SugaredLogger, maxAttachment int64) *TicketService {
	if maxAttachment <= 0 {
		maxAttachment = datauri.DefaultMaxBytes
	}
	return &TicketService{store: st, logger: logger, now: time.Now, maxAttachment: maxAttachment}
}

// List — атендименты новые первыми; filter ищет по клиенту и описанию.
func (s *TicketService) List(ctx context.Context, filter string) ([]model.Ticket, error) {
	st, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return newestFirst(st.Tickets, func(t model.Ticket) bool {
		return matches(filter, t.Client, t.Description)
	}), nil
}

// Get возвращает атендимент по id.
func (s *TicketService) Get(ctx context.Context, id string) (*model.Ticket, error) {
	st, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	for i := range st.Tickets {
		if st.Tickets[i].ID == id {
			return &st.Tickets[i], nil
		}
	}
	return nil, ErrNotFound
}

// Create проверяет форму, кодирует все файлы и только потом сохраняет.
// Ошибка любого файла отменяет создание целиком.
func (s *TicketService) Create(ctx context.Context, in TicketInput) (*model.Ticket, error) {
	if err := validateTicket(&in); err != nil {
		return nil, err
	}

	atts := make([]model.Attachment, 0, len(in.Files))
	for _, f := range in.Files {
		a, err := datauri.ReadFile(ctx, f.Name, f.MimeType, f.Reader, s.maxAttachment)
		if err != nil {
			s.logger.Warnw("Ticket create: attachment rejected", "file", f.Name, "error", err)
			return nil, err
		}
		atts = append(atts, a)
	}

	now := s.now().UTC()
	t := model.Ticket{
		ID:          uuid.NewString(),
		Client:      in.Client,
		Description: in.Description,
		Email:       in.Email,
		Phone:       in.Phone,
		Type:        in.Type,
		Priority:    in.Priority,
		Assignee:    in.Assignee,
		Attachments: atts,
		CreatedAt:   now,
	}
	err := s.store.Update(ctx, func(st *model.State) error {
		st.Tickets = append(st.Tickets, t)
		appendNotification(st, model.NotificationSuccess, "Atendimento Criado",
			fmt.Sprintf("Atendimento para %s foi criado com sucesso", t.Client), now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Infow("Ticket created", "id", t.ID, "attachments", len(atts))
	return &t, nil
}

func validateTicket(in *TicketInput) error {
	in.Client = strings.TrimSpace(in.Client)
	in.Description = strings.TrimSpace(in.Description)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Assignee = strings.TrimSpace(in.Assignee)

	if in.Client == "" {
		return &ValidationError{Field: "client", Message: "client is required"}
	}
	if in.Email != "" && !validEmail(in.Email) {
		return &ValidationError{Field: "email", Message: "invalid email"}
	}
	if in.Phone != "" && !validPhone(in.Phone) {
		return &ValidationError{Field: "phone", Message: "expected format (11) 98765-4321"}
	}
	if !in.Type.Valid() {
		return &ValidationError{Field: "type", Message: fmt.Sprintf("unknown type %q", in.Type)}
	}
	if !in.Priority.Valid() {
		return &ValidationError{Field: "priority", Message: fmt.Sprintf("unknown priority %q", in.Priority)}
	}
	return nil
}

// Delete удаляет атендимент после подтверждения. Отсутствующий id игнорируется.
func (s *TicketService) Delete(ctx context.Context, id string, c Confirmer) error {
	if !confirmed(ctx, c, "Excluir atendimento?") {
		return ErrNotConfirmed
	}
	err := s.store.Update(ctx, func(st *model.State) error {
		for i := range st.Tickets {
			if st.Tickets[i].ID == id {
				st.Tickets = append(st.Tickets[:i], st.Tickets[i+1:]...)
				return nil
			}
		}
		return errUnchanged
	})
	if errors.Is(err, errUnchanged) {
		return nil
	}
	if err == nil {
		s.logger.Infow("Ticket deleted", "id", id)
	}
	return err
}

// Attachments возвращает вложения атендимента.
func (s *TicketService) Attachments(ctx context.Context, id string) ([]model.Attachment, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return t.Attachments, nil
}

// ExportCSV пишет все атендименты в порядке создания.
func (s *TicketService) ExportCSV(ctx context.Context, w io.Writer) error {
	st, err := s.store.Read(ctx)
	if err != nil {
		return err
	}
	return report.ExportTicketsCSV(w, st.Tickets)
}
