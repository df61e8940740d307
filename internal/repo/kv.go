package repo

import (
	"RGFlow/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVRepository — минимальный контракт key-value хранилища.
type KVRepository interface {
	// Get возвращает значение ключа. found=false, если ключа нет.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set создаёт или перезаписывает значение ключа.
	Set(ctx context.Context, key, value string) error
	// Remove удаляет ключ. Отсутствующий ключ не ошибка.
	Remove(ctx context.Context, key string) error
}

type kvRepo struct {
	db *gorm.DB
}

// NewKVRepository создаёт реализацию KVRepository поверх gorm.
func NewKVRepository(db *gorm.DB) KVRepository {
	return &kvRepo{db: db}
}

func (r *kvRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var e model.KVEntry
	err := r.db.WithContext(ctx).Where("kv_key = ?", key).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Value, true, nil
}

// Set делает upsert по первичному ключу.
func (r *kvRepo) Set(ctx context.Context, key, value string) error {
	e := &model.KVEntry{Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kv_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"kv_value", "updated_at"}),
	}).Create(e).Error
}

func (r *kvRepo) Remove(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("kv_key = ?", key).Delete(&model.KVEntry{}).Error
}
