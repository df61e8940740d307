package store

import (
	"RGFlow/internal/repo"
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
)

// memKV — простая in-memory реализация KVRepository для тестов.
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

var _ repo.KVRepository = (*memKV)(nil)

type mockKV struct{ mock.Mock }

func (m *mockKV) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}
func (m *mockKV) Set(ctx context.Context, key, value string) error {
	return m.Called(ctx, key, value).Error(0)
}
func (m *mockKV) Remove(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

var _ repo.KVRepository = (*mockKV)(nil)
