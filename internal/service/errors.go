package service

import (
	"RGFlow/internal/auth"
	"RGFlow/internal/datauri"
	"errors"
)

var (
	// ErrNotFound — запись с таким id отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrNotConfirmed — пользователь отказался от разрушительного действия.
	ErrNotConfirmed = errors.New("action not confirmed")
	// ErrInvalidCredentials — общий отказ во входе.
	ErrInvalidCredentials = auth.ErrInvalidCredentials
)

// errUnchanged прерывает Update без записи: состояние не менялось.
var errUnchanged = errors.New("unchanged")

// ValidationError — не заполнено или неверно заполнено поле формы.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// FileReadError — псевдоним для ошибки чтения вложения.
type FileReadError = datauri.FileReadError
