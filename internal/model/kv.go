package model

import "time"

// KVEntry — строка key-value хранилища (аналог localStorage браузера).
type KVEntry struct {
	Key       string    `gorm:"primaryKey;column:kv_key;size:128"`
	Value     string    `gorm:"column:kv_value;type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName фиксирует имя таблицы.
func (KVEntry) TableName() string { return "kv_entries" }
