package service

import (
	"RGFlow/internal/datauri"
	"RGFlow/internal/model"
	"RGFlow/internal/store"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocumentService — файловый менеджер документов.
type DocumentService struct {
	store         *store.Store
	logger        *zap.SugaredLogger
	now           func() time.Time
	maxAttachment int64
}

func NewDocumentService(st *store.Store, logger *zap.SugaredLogger, maxAttachment int64) *DocumentService {
	if maxAttachment <= 0 {
		maxAttachment = datauri.DefaultMaxBytes
	}
	return &DocumentService{store: st, logger: logger, now: time.Now, maxAttachment: maxAttachment}
}

// List — документы новые первыми; filter ищет по имени и MIME-типу.
func (s *DocumentService) List(ctx context.Context, filter string) ([]model.Document, error) {
	st, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return newestFirst(st.Documents, func(d model.Document) bool {
		return matches(filter, d.Name, d.MimeType)
	}), nil
}

// Get возвращает документ вместе с содержимым.
func (s *DocumentService) Get(ctx context.Context, id string) (*model.Document, error) {
	st, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	for i := range st.Documents {
		if st.Documents[i].ID == id {
			return &st.Documents[i], nil
		}
	}
	return nil, ErrNotFound
}

// Upload загружает пачку файлов одним сохранением: либо все, либо ничего.
func (s *DocumentService) Upload(ctx context.Context, files []FileInput, ticketID string) ([]model.Document, error) {
	if len(files) == 0 {
		return nil, &ValidationError{Field: "files", Message: "at least one file is required"}
	}

	now := s.now().UTC()
	docs := make([]model.Document, 0, len(files))
	for _, f := range files {
		a, err := datauri.ReadFile(ctx, f.Name, f.MimeType, f.Reader, s.maxAttachment)
		if err != nil {
			s.logger.Warnw("Document upload: file rejected", "file", f.Name, "error", err)
			return nil, err
		}
		if err := datauri.Verify(a); err != nil {
			return nil, &FileReadError{Name: f.Name, Err: err}
		}
		docs = append(docs, model.Document{
			ID:         uuid.NewString(),
			Name:       a.Name,
			MimeType:   a.MimeType,
			SizeBytes:  a.SizeBytes,
			Payload:    a.Payload,
			TicketID:   ticketID,
			UploadedAt: now,
		})
	}

	err := s.store.Update(ctx, func(st *model.State) error {
		if ticketID != "" && !hasTicket(st, ticketID) {
			return &ValidationError{Field: "ticket_id", Message: "ticket does not exist"}
		}
		st.Documents = append(st.Documents, docs...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Infow("Documents uploaded", "count", len(docs))
	return docs, nil
}

// Download декодирует содержимое документа.
func (s *DocumentService) Download(ctx context.Context, id string) (*model.Document, []byte, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	_, data, err := datauri.Decode(d.Payload)
	if err != nil {
		return nil, nil, err
	}
	return d, data, nil
}

// Delete удаляет документ после подтверждения. Отсутствующий id игнорируется.
func (s *DocumentService) Delete(ctx context.Context, id string, c Confirmer) error {
	if !confirmed(ctx, c, "Excluir documento?") {
		return ErrNotConfirmed
	}
	err := s.store.Update(ctx, func(st *model.State) error {
		for i := range st.Documents {
			if st.Documents[i].ID == id {
				st.Documents = append(st.Documents[:i], st.Documents[i+1:]...)
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
