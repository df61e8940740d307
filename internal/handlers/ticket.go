package handlers

import (
	"RGFlow/internal/config"
	"RGFlow/internal/datauri"
	"RGFlow/internal/model"
	"RGFlow/internal/service"
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TicketHandler — атендименты.
type TicketHandler struct {
	TicketService *service.TicketService
	Logger        *zap.SugaredLogger
	Config        *config.Config
}

func NewTicketHandler(ticketService *service.TicketService, logger *zap.SugaredLogger, cfg *config.Config) *TicketHandler {
	return &TicketHandler{TicketService: ticketService, Logger: logger, Config: cfg}
}

type ticketRequest struct {
	Client      string           `json:"client"`
	Description string           `json:"description"`
	Email       string           `json:"email"`
	Phone       string           `json:"phone"`
	Type        model.TicketType `json:"type"`
	Priority    model.Priority   `json:"priority"`
	Assignee    string           `json:"assignee"`
}

// List — GET /api/tickets?q=
func (h *TicketHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.TicketService.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, h.Logger, "Tickets list", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Create принимает JSON без файлов или multipart/form-data с полями формы и файлами "files".
func (h *TicketHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.TicketInput

	if isMultipart(r) {
		limitBody(w, r, h.Config.MaxAttachmentBytes())
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			writeServiceError(w, h.Logger, "Ticket create", multipartError(err))
			return
		}
		in = service.TicketInput{
			Client:      r.FormValue("client"),
			Description: r.FormValue("description"),
			Email:       r.FormValue("email"),
			Phone:       r.FormValue("phone"),
			Type:        model.TicketType(r.FormValue("type")),
			Priority:    model.Priority(r.FormValue("priority")),
			Assignee:    r.FormValue("assignee"),
		}
		files, closeFiles, err := openFiles(r.MultipartForm, "files")
		defer closeFiles()
		if err != nil {
			writeServiceError(w, h.Logger, "Ticket create", err)
			return
		}
		in.Files = files
	} else {
		var req ticketRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.Logger.Warnw("Ticket create: invalid request body", "error", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		in = service.TicketInput{
			Client:      req.Client,
			Description: req.Description,
			Email:       req.Email,
			Phone:       req.Phone,
			Type:        req.Type,
			Priority:    req.Priority,
			Assignee:    req.Assignee,
		}
	}

	t, err := h.TicketService.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, h.Logger, "Ticket create", err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *TicketHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.TicketService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.Logger, "Ticket get", err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// Delete — DELETE /api/tickets/{id}?confirm=true
func (h *TicketHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.TicketService.Delete(r.Context(), chi.URLParam(r, "id"), confirmation(r)); err != nil {
		writeServiceError(w, h.Logger, "Ticket delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Attachment отдаёт n-е вложение (с нуля) декодированным.
func (h *TicketHandler) Attachment(w http.ResponseWriter, r *http.Request) {
	atts, err := h.TicketService.Attachments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.Logger, "Ticket attachment", err)
		return
	}
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil || n < 0 || n >= len(atts) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	a := atts[n]
	mimeType, data, err := datauri.Decode(a.Payload)
	if err != nil {
		h.Logger.Errorw("Ticket attachment: corrupt payload", "name", a.Name, "error", err)
		http.Error(w, "corrupt attachment", http.StatusInternalServerError)
		return
	}
	if a.MimeType != "" {
		mimeType = a.MimeType
	}
	writeFile(w, a.Name, mimeType, data)
}

// ExportCSV — GET /api/tickets/export.csv
func (h *TicketHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.TicketService.ExportCSV(r.Context(), &buf); err != nil {
		writeServiceError(w, h.Logger, "Tickets export", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="atendimentos.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
