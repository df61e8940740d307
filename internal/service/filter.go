package service

import (
	"strings"

	"golang.org/x/text/cases"
)

// matches — регистронезависимый поиск подстроки хотя бы в одном из полей.
// Пустой запрос совпадает со всем.
func matches(query string, fields ...string) bool {
	q := strings.TrimSpace(query)
	if q == "" {
		return true
	}
	fold := cases.Fold()
	q = fold.String(q)
	for _, f := range fields {
		if strings.Contains(fold.String(f), q) {
			return true
		}
	}
	return false
}

// newestFirst возвращает элементы, прошедшие фильтр, в обратном порядке вставки.
func newestFirst[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		if keep(items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}
