package service

import (
	"RGFlow/internal/auth"
	"RGFlow/internal/model"
	"RGFlow/internal/repo"
	"RGFlow/internal/store"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memKV — in-memory KVRepository.
type memKV struct {
	mu   sync.Mutex
	data map[string]string
	sets int
}

func newMemKV() *memKV { return &memKV{data: map[string]string{}} }

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.sets++
	return nil
}

func (m *memKV) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memKV) setCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}

var _ repo.KVRepository = (*memKV)(nil)

// мок Authenticator
type mockAuth struct{ mock.Mock }

func (m *mockAuth) Authenticate(ctx context.Context, email, password string) error {
	return m.Called(ctx, email, password).Error(0)
}

var _ auth.Authenticator = (*mockAuth)(nil)

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	kv            *memKV
	store         *store.Store
	tickets       *TicketService
	tasks         *TaskService
	docs          *DocumentService
	notifications *NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	kv := newMemKV()
	logger := zap.NewNop().Sugar()
	st := store.New(kv, logger)

	env := &testEnv{
		kv:            kv,
		store:         st,
		tickets:       NewTicketService(st, logger, 0),
		tasks:         NewTaskService(st, logger),
		docs:          NewDocumentService(st, logger, 0),
		notifications: NewNotificationService(st, logger),
	}
	clock := func() time.Time { return fixedNow }
	env.tickets.now = clock
	env.tasks.now = clock
	env.docs.now = clock
	env.notifications.now = clock
	return env
}

func (e *testEnv) state(t *testing.T) model.State {
	t.Helper()
	st, err := e.store.Read(context.Background())
	require.NoError(t, err)
	return st
}
