package store

import (
	"RGFlow/internal/model"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Документ без поля version — форма первых прототипов:
// {clients, atendimentos, documentos, tarefas} с короткими именами полей.
type legacyDB struct {
	Atendimentos []legacyTicket   `json:"atendimentos"`
	Documentos   []legacyDocument `json:"documentos"`
	Tarefas      []legacyTask     `json:"tarefas"`
}

type legacyTicket struct {
	ID      string       `json:"id"`
	Client  string       `json:"client"`
	Desc    string       `json:"desc"`
	Files   []legacyFile `json:"files"`
	Created string       `json:"created"`
}

type legacyFile struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
	Data string `json:"data"`
}

type legacyTask struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Done    bool   `json:"done"`
	Due     string `json:"due"`
	Created string `json:"created"`
}

type legacyDocument struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Size     int64  `json:"size"`
	Data     string `json:"data"`
	Uploaded string `json:"uploaded"`
}

// migrateLegacy переводит документ старой формы в текущую версию.
// Порядок вставки сохраняется.
func migrateLegacy(b []byte) (model.State, error) {
	var old legacyDB
	if err := json.Unmarshal(b, &old); err != nil {
		return model.State{}, err
	}

	st := model.NewState()
	for _, a := range old.Atendimentos {
		t := model.Ticket{
			ID:          legacyID(a.ID),
			Client:      a.Client,
			Description: a.Desc,
			Attachments: make([]model.Attachment, 0, len(a.Files)),
			CreatedAt:   parseLegacyTime(a.Created),
		}
		for _, f := range a.Files {
			t.Attachments = append(t.Attachments, model.Attachment{
				Name:      f.Name,
				MimeType:  f.Type,
				SizeBytes: f.Size,
				Payload:   f.Data,
			})
		}
		st.Tickets = append(st.Tickets, t)
	}
	for _, lt := range old.Tarefas {
		created := parseLegacyTime(lt.Created)
		t := model.Task{
			ID:        legacyID(lt.ID),
			Title:     lt.Title,
			Done:      lt.Done,
			CreatedAt: created,
			UpdatedAt: created,
		}
		if lt.Due != "" {
			if due := parseLegacyTime(lt.Due); !due.IsZero() {
				t.DueDate = &due
			}
		}
		if t.Done {
			t.Progress = 100
		}
		st.Tasks = append(st.Tasks, t)
	}
	for _, d := range old.Documentos {
		st.Documents = append(st.Documents, model.Document{
			ID:         legacyID(d.ID),
			Name:       d.Name,
			MimeType:   d.Type,
			SizeBytes:  d.Size,
			Payload:    d.Data,
			UploadedAt: parseLegacyTime(d.Uploaded),
		})
	}
	return st, nil
}

func legacyID(id string) string {
	if strings.TrimSpace(id) == "" {
		return uuid.NewString()
	}
	return id
}

// parseLegacyTime понимает ISO-строки Date.toISOString() и даты вида 2006-01-02.
func parseLegacyTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
