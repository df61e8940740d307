package handlers

import (
	"RGFlow/internal/config"
	"RGFlow/internal/model"
	"RGFlow/internal/service"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DocumentHandler — файловый менеджер.
type DocumentHandler struct {
	DocumentService *service.DocumentService
	Logger          *zap.SugaredLogger
	Config          *config.Config
}

func NewDocumentHandler(documentService *service.DocumentService, logger *zap.SugaredLogger, cfg *config.Config) *DocumentHandler {
	return &DocumentHandler{DocumentService: documentService, Logger: logger, Config: cfg}
}

// documentView — документ без содержимого; содержимое отдаётся через /download.
type documentView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MimeType   string `json:"mime_type"`
	SizeBytes  int64  `json:"size_bytes"`
	TicketID   string `json:"ticket_id,omitempty"`
	UploadedAt string `json:"uploaded_at"`
}

func toDocumentView(d model.Document) documentView {
	return documentView{
		ID:         d.ID,
		Name:       d.Name,
		MimeType:   d.MimeType,
		SizeBytes:  d.SizeBytes,
		TicketID:   d.TicketID,
		UploadedAt: d.UploadedAt.UTC().Format(time.RFC3339),
	}
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.DocumentService.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, h.Logger, "Documents list", err)
		return
	}
	out := make([]documentView, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentView(d))
	}
	writeJSON(w, http.StatusOK, out)
}

// Upload — multipart/form-data: файлы в поле "files", необязательный ticket_id.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	limitBody(w, r, h.Config.MaxAttachmentBytes())
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		writeServiceError(w, h.Logger, "Document upload", multipartError(err))
		return
	}
	files, closeFiles, err := openFiles(r.MultipartForm, "files")
	defer closeFiles()
	if err != nil {
		writeServiceError(w, h.Logger, "Document upload", err)
		return
	}

	docs, err := h.DocumentService.Upload(r.Context(), files, r.FormValue("ticket_id"))
	if err != nil {
		writeServiceError(w, h.Logger, "Document upload", err)
		return
	}
	out := make([]documentView, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentView(d))
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	d, data, err := h.DocumentService.Download(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.Logger, "Document download", err)
		return
	}
	writeFile(w, d.Name, d.MimeType, data)
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.DocumentService.Delete(r.Context(), chi.URLParam(r, "id"), confirmation(r)); err != nil {
		writeServiceError(w, h.Logger, "Document delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
