package model

import "time"

// Priority — приоритет атендимента или задачи.
type Priority string

const (
	PriorityLow    Priority = "Baixa"
	PriorityMedium Priority = "Média"
	PriorityHigh   Priority = "Alta"
	PriorityUrgent Priority = "Urgente"
)

// Priorities перечисляет приоритеты в порядке отображения в отчётах (от срочного к низкому).
var Priorities = []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}

// Valid сообщает, что значение входит в перечисление. Пустой приоритет допустим.
func (p Priority) Valid() bool {
	switch p {
	case "", PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// TicketType — тип атендимента.
type TicketType string

const (
	TicketAdministrative TicketType = "Administrativo"
	TicketFinancial      TicketType = "Financeiro"
	TicketLegal          TicketType = "Jurídico"
	TicketTechnical      TicketType = "Técnico"
	TicketCommercial     TicketType = "Comercial"
	TicketOther          TicketType = "Outro"
)

// Valid сообщает, что тип известен. Пустой тип допустим.
func (t TicketType) Valid() bool {
	switch t {
	case "", TicketAdministrative, TicketFinancial, TicketLegal, TicketTechnical, TicketCommercial, TicketOther:
		return true
	}
	return false
}

// Ticket — атендимент (обращение клиента). После создания не изменяется.
type Ticket struct {
	ID          string       `json:"id"`
	Client      string       `json:"client"`
	Description string       `json:"description"`
	Email       string       `json:"email,omitempty"`
	Phone       string       `json:"phone,omitempty"`
	Type        TicketType   `json:"type,omitempty"`
	Priority    Priority     `json:"priority,omitempty"`
	Assignee    string       `json:"assignee,omitempty"`
	Attachments []Attachment `json:"attachments"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Attachment — файл, встроенный в атендимент. Payload хранится как data URL.
type Attachment struct {
	Name      string `json:"name"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
	Payload   string `json:"payload"`
}
