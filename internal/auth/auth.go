// Package auth — политика проверки учётных данных для входа в RGFlow.
//
// Хеширование есть, но ограничения числа попыток и блокировки нет. Для сетевого
// развёртывания этого недостаточно.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials — общий отказ без указания, какое поле неверно.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Демо-учётка первых прототипов. Только для тестов и dev-режима.
const (
	FixtureEmail    = "admin@rgflow.com"
	FixturePassword = "123456"
)

// Authenticator проверяет пару email/пароль.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) error
}

// NormalizeEmail приводит email к виду, в котором он хранится.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CredentialSet — набор bcrypt-хешей по email.
type CredentialSet struct {
	hashes map[string][]byte
}

func NewCredentialSet() *CredentialSet {
	return &CredentialSet{hashes: map[string][]byte{}}
}

// Add добавляет готовый bcrypt-хеш.
func (c *CredentialSet) Add(email string, hash []byte) {
	c.hashes[NormalizeEmail(email)] = hash
}

// AddPassword хеширует пароль и добавляет его.
func (c *CredentialSet) AddPassword(email, password string, cost int) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	c.Add(email, hash)
	return nil
}

// Len — количество учёток.
func (c *CredentialSet) Len() int { return len(c.hashes) }

func (c *CredentialSet) Authenticate(_ context.Context, email, password string) error {
	hash, ok := c.hashes[NormalizeEmail(email)]
	if !ok || password == "" {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// ParseCredentials разбирает строку вида "email:bcrypt-hash,email:bcrypt-hash".
func ParseCredentials(raw string) (*CredentialSet, error) {
	set := NewCredentialSet()
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		email, hash, ok := strings.Cut(part, ":")
		if !ok || NormalizeEmail(email) == "" || hash == "" {
			return nil, fmt.Errorf("invalid credential entry %q: expected email:bcrypt-hash", part)
		}
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("invalid bcrypt hash for %q: %w", email, err)
		}
		set.Add(email, []byte(hash))
	}
	return set, nil
}

// NewFixture возвращает набор с одной демо-учёткой.
func NewFixture() *CredentialSet {
	set := NewCredentialSet()
	// MinCost: фикстура, а не секрет
	if err := set.AddPassword(FixtureEmail, FixturePassword, bcrypt.MinCost); err != nil {
		panic(err)
	}
	return set
}

// DenyAll отклоняет любой вход. Используется, когда учётки не настроены.
type DenyAll struct{}

func (DenyAll) Authenticate(context.Context, string, string) error { return ErrInvalidCredentials }

// FromConfig выбирает политику: заданные учётки, плюс демо-учётка в dev-режиме. Без учёток и без dev возвращает DenyAll.
func FromConfig(credentials string, devMode bool) (Authenticator, error) {
	set, err := ParseCredentials(credentials)
	if err != nil {
		return nil, err
	}
	if devMode {
		set.Add(FixtureEmail, NewFixture().hashes[FixtureEmail])
	}
	if set.Len() == 0 {
		return DenyAll{}, nil
	}
	return set, nil
}
