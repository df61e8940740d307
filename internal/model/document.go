package model

import "time"

// Document — загруженный файл. TicketID ссылается на атендимент по значению.
type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	MimeType   string    `json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	Payload    string    `json:"payload"`
	TicketID   string    `json:"ticket_id,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}
