package model

// CurrentStateVersion — версия канонической формы данных.
const CurrentStateVersion = 1

// State — всё содержимое локального хранилища под ключом данных.
type State struct {
	Version       int            `json:"version"`
	Tickets       []Ticket       `json:"tickets"`
	Tasks         []Task         `json:"tasks"`
	Documents     []Document     `json:"documents"`
	Notifications []Notification `json:"notifications"`
}

// NewState возвращает пустое состояние текущей версии.
func NewState() State {
	return State{
		Version:       CurrentStateVersion,
		Tickets:       []Ticket{},
		Tasks:         []Task{},
		Documents:     []Document{},
		Notifications: []Notification{},
	}
}

// Clone делает глубокую копию, чтобы вызывающий код не мог изменить внутреннее состояние хранилища.
func (s State) Clone() State {
	out := State{
		Version:       s.Version,
		Tickets:       make([]Ticket, len(s.Tickets)),
		Tasks:         make([]Task, len(s.Tasks)),
		Documents:     make([]Document, len(s.Documents)),
		Notifications: make([]Notification, len(s.Notifications)),
	}
	for i, t := range s.Tickets {
		t.Attachments = append([]Attachment(nil), t.Attachments...)
		if t.Attachments == nil {
			t.Attachments = []Attachment{}
		}
		out.Tickets[i] = t
	}
	for i, t := range s.Tasks {
		if t.DueDate != nil {
			d := *t.DueDate
			t.DueDate = &d
		}
		out.Tasks[i] = t
	}
	copy(out.Documents, s.Documents)
	copy(out.Notifications, s.Notifications)
	return out
}
