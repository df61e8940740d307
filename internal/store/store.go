// Package store — локальное хранилище RGFlow: один JSON-документ с данными и один с сессией
// поверх key-value репозитория. Все мутации проходят через одну критическую секцию.
package store

import (
	"RGFlow/internal/model"
	"RGFlow/internal/repo"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Ключи key-value хранилища.
const (
	SessionKey = "rgflow_session"
	DataKey    = "rgflow_data"
)

// ErrUnsupportedVersion — документ записан более новой версией приложения.
var ErrUnsupportedVersion = errors.New("unsupported data version")

// Store — репозиторий состояния. Безопасен для конкурентного использования.
type Store struct {
	mu     sync.Mutex
	kv     repo.KVRepository
	logger *zap.SugaredLogger
}

// New создаёт Store поверх key-value репозитория.
func New(kv repo.KVRepository, logger *zap.SugaredLogger) *Store {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Store{kv: kv, logger: logger}
}

// Read возвращает копию текущего состояния. При первом обращении сохраняет пустое состояние.
func (s *Store) Read(ctx context.Context) (model.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		return model.State{}, err
	}
	return st.Clone(), nil
}

// Update выполняет read-modify-write атомарно относительно других вызовов Update.
// Если fn вернула ошибку, ничего не записывается.
func (s *Store) Update(ctx context.Context, fn func(*model.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(&st); err != nil {
		return err
	}
	return s.save(ctx, st)
}

// load читает и разбирает документ данных. Вызывается под s.mu.
func (s *Store) load(ctx context.Context) (model.State, error) {
	raw, found, err := s.kv.Get(ctx, DataKey)
	if err != nil {
		return model.State{}, fmt.Errorf("read data: %w", err)
	}
	if !found {
		st := model.NewState()
		if err := s.save(ctx, st); err != nil {
			return model.State{}, err
		}
		return st, nil
	}

	st, err := decodeState([]byte(raw))
	switch {
	case err == nil:
		return st, nil
	case errors.Is(err, ErrUnsupportedVersion):
		return model.State{}, err
	default:
		// повреждённый документ: сбрасываем на пустое состояние, но не молча
		s.logger.Warnw("Store: unparseable data, resetting to default", "key", DataKey, "error", err, "size", len(raw))
		st = model.NewState()
		if err := s.save(ctx, st); err != nil {
			return model.State{}, err
		}
		return st, nil
	}
}

func (s *Store) save(ctx context.Context, st model.State) error {
	st.Version = model.CurrentStateVersion
	b, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode data: %w", err)
	}
	if err := s.kv.Set(ctx, DataKey, string(b)); err != nil {
		return fmt.Errorf("write data: %w", err)
	}
	return nil
}

// decodeState разбирает документ данных любой известной версии.
func decodeState(b []byte) (model.State, error) {
	var probe struct {
		Version *int `json:"version"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return model.State{}, err
	}
	if probe.Version == nil {
		return migrateLegacy(b)
	}
	if *probe.Version != model.CurrentStateVersion {
		return model.State{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, *probe.Version)
	}

	var st model.State
	if err := json.Unmarshal(b, &st); err != nil {
		return model.State{}, err
	}
	normalize(&st)
	return st, nil
}

// normalize заменяет nil-срезы пустыми, чтобы JSON-ответы содержали [] вместо null.
func normalize(st *model.State) {
	if st.Tickets == nil {
		st.Tickets = []model.Ticket{}
	}
	if st.Tasks == nil {
		st.Tasks = []model.Task{}
	}
	if st.Documents == nil {
		st.Documents = []model.Document{}
	}
	if st.Notifications == nil {
		st.Notifications = []model.Notification{}
	}
	for i := range st.Tickets {
		if st.Tickets[i].Attachments == nil {
			st.Tickets[i].Attachments = []model.Attachment{}
		}
	}
}

// LoadSession возвращает сохранённую сессию или nil, если входа не было.
func (s *Store) LoadSession(ctx context.Context) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, found, err := s.kv.Get(ctx, SessionKey)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if !found {
		return nil, nil
	}
	var sess model.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		s.logger.Warnw("Store: unparseable session, clearing", "key", SessionKey, "error", err)
		if err := s.kv.Remove(ctx, SessionKey); err != nil {
			return nil, fmt.Errorf("clear session: %w", err)
		}
		return nil, nil
	}
	if !sess.LoggedIn {
		return nil, nil
	}
	return &sess, nil
}

// SaveSession сохраняет флаг входа.
func (s *Store) SaveSession(ctx context.Context, sess model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.kv.Set(ctx, SessionKey, string(b)); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// ClearSession удаляет флаг входа. Данные не трогает.
func (s *Store) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(ctx, SessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
