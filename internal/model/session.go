package model

import "time"

// Session — флаг входа. Не является токеном безопасности.
type Session struct {
	Email    string    `json:"email"`
	LoggedIn bool      `json:"logged"`
	LoginAt  time.Time `json:"login_at,omitempty"`
}
