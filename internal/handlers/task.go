package handlers

import (
	"RGFlow/internal/model"
	"RGFlow/internal/service"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TaskHandler — задачи.
type TaskHandler struct {
	TaskService *service.TaskService
	Logger      *zap.SugaredLogger
}

func NewTaskHandler(taskService *service.TaskService, logger *zap.SugaredLogger) *TaskHandler {
	return &TaskHandler{TaskService: taskService, Logger: logger}
}

type taskRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	DueDate     string         `json:"due_date"`
	Priority    model.Priority `json:"priority"`
	Category    string         `json:"category"`
	TicketID    string         `json:"ticket_id"`
}

type taskPatchRequest struct {
	Title        *string         `json:"title"`
	Description  *string         `json:"description"`
	Done         *bool           `json:"done"`
	DueDate      *string         `json:"due_date"`
	ClearDueDate bool            `json:"clear_due_date"`
	Priority     *model.Priority `json:"priority"`
	Category     *string         `json:"category"`
	Progress     *int            `json:"progress"`
}

// parseDueDate принимает RFC 3339 или дату YYYY-MM-DD.
func parseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, &service.ValidationError{Field: "due_date", Message: "expected RFC 3339 or YYYY-MM-DD"}
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.TaskService.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, h.Logger, "Tasks list", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Task create: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	due, err := parseDueDate(req.DueDate)
	if err != nil {
		writeServiceError(w, h.Logger, "Task create", err)
		return
	}
	t, err := h.TaskService.Create(r.Context(), service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
		Priority:    req.Priority,
		Category:    req.Category,
		TicketID:    req.TicketID,
	})
	if err != nil {
		writeServiceError(w, h.Logger, "Task create", err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	t, err := h.TaskService.Toggle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.Logger, "Task toggle", err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req taskPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Task update: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	ch := service.TaskChanges{
		Title:        req.Title,
		Description:  req.Description,
		Done:         req.Done,
		ClearDueDate: req.ClearDueDate,
		Priority:     req.Priority,
		Category:     req.Category,
		Progress:     req.Progress,
	}
	if req.DueDate != nil {
		due, err := parseDueDate(*req.DueDate)
		if err != nil {
			writeServiceError(w, h.Logger, "Task update", err)
			return
		}
		ch.DueDate = due
		ch.ClearDueDate = ch.ClearDueDate || due == nil
	}
	t, err := h.TaskService.Update(r.Context(), chi.URLParam(r, "id"), ch)
	if err != nil {
		writeServiceError(w, h.Logger, "Task update", err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.TaskService.Delete(r.Context(), chi.URLParam(r, "id"), confirmation(r)); err != nil {
		writeServiceError(w, h.Logger, "Task delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
