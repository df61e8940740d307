package handlers

import (
	"RGFlow/internal/datauri"
	"RGFlow/internal/service"
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError переводит ошибку сервиса в HTTP-ответ.
func writeServiceError(w http.ResponseWriter, logger *zap.SugaredLogger, op string, err error) {
	var ve *service.ValidationError
	var fe *service.FileReadError
	var mbe *http.MaxBytesError

	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]string{"field": ve.Field, "message": ve.Message})
	case errors.Is(err, service.ErrInvalidCredentials):
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, datauri.ErrTooLarge), errors.As(err, &mbe):
		logger.Warnw(op+": payload too large", "error", err)
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
	case errors.As(err, &fe):
		logger.Warnw(op+": file rejected", "file", fe.Name, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, service.ErrNotConfirmed):
		http.Error(w, "confirmation required", http.StatusPreconditionRequired)
	default:
		logger.Errorw(op+": service error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// confirmation — разрушительные запросы подтверждаются параметром ?confirm=true.
func confirmation(r *http.Request) service.Confirmer {
	if r.URL.Query().Get("confirm") == "true" {
		return service.AlwaysConfirm
	}
	return service.NeverConfirm
}

// writeFile отдаёт содержимое как скачиваемый файл.
func writeFile(w http.ResponseWriter, name, mimeType string, data []byte) {
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
