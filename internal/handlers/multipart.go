package handlers

import (
	"RGFlow/internal/service"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

const multipartMemory = 32 << 20

// limitBody ограничивает тело запроса: несколько файлов по лимиту плюс запас на поля формы.
func limitBody(w http.ResponseWriter, r *http.Request, maxFile int64) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFile*8+1<<20)
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// openFiles открывает файлы поля field. Вызывающий закрывает их через возвращённую функцию.
func openFiles(form *multipart.Form, field string) ([]service.FileInput, func(), error) {
	var closers []io.Closer
	closeAll := func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}
	if form == nil {
		return nil, closeAll, nil
	}
	headers := form.File[field]
	files := make([]service.FileInput, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, &service.FileReadError{Name: fh.Filename, Err: err}
		}
		closers = append(closers, f)
		files = append(files, service.FileInput{
			Name:     fh.Filename,
			MimeType: mimeOf(fh),
			Reader:   f,
		})
	}
	return files, closeAll, nil
}

// mimeOf — тип из заголовка части; octet-stream считается неизвестным и определяется по содержимому.
func mimeOf(fh *multipart.FileHeader) string {
	ct := fh.Header.Get("Content-Type")
	if ct == "application/octet-stream" {
		return ""
	}
	return ct
}

// multipartError сохраняет превышение лимита (413), остальное считается ошибкой формы (400).
func multipartError(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return err
	}
	return &service.ValidationError{Field: "form", Message: "invalid multipart form"}
}
