// Package datauri кодирует файлы во вложения формата data:<mime>;base64,<payload> и обратно.
package datauri

import (
	"RGFlow/internal/model"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxBytes — лимит размера одного вложения (10 MiB).
const DefaultMaxBytes int64 = 10 << 20

const (
	defaultMime = "application/octet-stream"
	// RFC 2397: media type по умолчанию
	implicitMime = "text/plain;charset=US-ASCII"
)

var (
	ErrMalformed    = errors.New("malformed data url")
	ErrTooLarge     = errors.New("file exceeds size limit")
	ErrSizeMismatch = errors.New("declared size does not match payload")
)

// FileReadError — файл не удалось прочитать или закодировать. Name — имя файла для сообщения пользователю.
type FileReadError struct {
	Name string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("read file %q: %v", e.Name, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// Encode собирает data URL. Пустой mime заменяется на application/octet-stream.
func Encode(mime string, data []byte) string {
	if mime == "" {
		mime = defaultMime
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Decode разбирает data URL в base64 или percent-encoded форме.
func Decode(s string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrMalformed
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrMalformed
	}

	isBase64 := false
	if m, found := strings.CutSuffix(meta, ";base64"); found {
		meta = m
		isBase64 = true
	}
	mime = meta
	if mime == "" {
		mime = implicitMime
	}

	if !isBase64 {
		raw, err := url.PathUnescape(payload)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return mime, []byte(raw), nil
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// некоторые кодировщики отбрасывают паддинг
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}
	return mime, data, nil
}

// ReadFile читает содержимое файла и возвращает готовое вложение.
// Чтение прерывается по ctx. Пустой mime определяется по содержимому.
func ReadFile(ctx context.Context, name, mime string, r io.Reader, maxBytes int64) (model.Attachment, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(ctxReader{ctx: ctx, r: r}, maxBytes+1))
	if err != nil {
		return model.Attachment{}, &FileReadError{Name: name, Err: err}
	}
	if int64(len(data)) > maxBytes {
		return model.Attachment{}, &FileReadError{Name: name, Err: fmt.Errorf("%w (%d bytes max)", ErrTooLarge, maxBytes)}
	}
	if mime == "" {
		mime = mimetype.Detect(data).String()
	}
	return model.Attachment{
		Name:      name,
		MimeType:  mime,
		SizeBytes: int64(len(data)),
		Payload:   Encode(mime, data),
	}, nil
}

// Verify проверяет, что заявленный размер совпадает с длиной декодированного содержимого.
func Verify(a model.Attachment) error {
	_, data, err := Decode(a.Payload)
	if err != nil {
		return err
	}
	if int64(len(data)) != a.SizeBytes {
		return fmt.Errorf("%w: %q declares %d, payload has %d", ErrSizeMismatch, a.Name, a.SizeBytes, len(data))
	}
	return nil
}

// Sink получает декодированный файл (например, пишет его на диск или в HTTP-ответ).
type Sink func(name, mime string, data []byte) error

// DownloadAll декодирует каждое вложение отдельно и передаёт в sink.
// Ошибка одного вложения не мешает остальным; все ошибки возвращаются вместе.
func DownloadAll(ctx context.Context, atts []model.Attachment, sink Sink) error {
	var errs []error
	for _, a := range atts {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		mime, data, err := Decode(a.Payload)
		if err != nil {
			errs = append(errs, &FileReadError{Name: a.Name, Err: err})
			continue
		}
		if a.MimeType != "" {
			mime = a.MimeType
		}
		if err := sink(a.Name, mime, data); err != nil {
			errs = append(errs, &FileReadError{Name: a.Name, Err: err})
		}
	}
	return errors.Join(errs...)
}

// ctxReader прерывает чтение при отмене контекста.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
