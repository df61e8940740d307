package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type docView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
}

func TestDocuments_UploadDownloadDelete(t *testing.T) {
	s := newTestServer(t)
	body, ct := multipartBody(t, nil, []formFile{
		{name: "a.txt", mime: "text/plain", data: []byte("alpha")},
		{name: "b.pdf", mime: "application/pdf", data: []byte("%PDF-1.4 beta")},
	})

	rr := s.do(t, http.MethodPost, "/api/documents", body, ct, true)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	docs := decode[[]docView](t, rr)
	require.Len(t, docs, 2)
	assert.Equal(t, int64(5), docs[0].SizeBytes)

	list := decode[[]docView](t, s.doJSON(t, http.MethodGet, "/api/documents", ""))
	require.Len(t, list, 2)
	assert.Equal(t, "b.pdf", list[0].Name)

	list = decode[[]docView](t, s.doJSON(t, http.MethodGet, "/api/documents?q=pdf", ""))
	require.Len(t, list, 1)

	rr = s.doJSON(t, http.MethodGet, "/api/documents/"+docs[0].ID+"/download", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "alpha", rr.Body.String())

	assert.Equal(t, http.StatusPreconditionRequired, s.doJSON(t, http.MethodDelete, "/api/documents/"+docs[0].ID, "").Code)
	assert.Equal(t, http.StatusNoContent, s.doJSON(t, http.MethodDelete, "/api/documents/"+docs[0].ID+"?confirm=true", "").Code)
	assert.Equal(t, http.StatusNotFound, s.doJSON(t, http.MethodGet, "/api/documents/"+docs[0].ID+"/download", "").Code)
}

func TestDocuments_UploadErrors(t *testing.T) {
	s := newTestServer(t)

	body, ct := multipartBody(t, nil, nil)
	rr := s.do(t, http.MethodPost, "/api/documents", body, ct, true)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	body, ct = multipartBody(t, map[string]string{"ticket_id": "nope"}, []formFile{{name: "a.txt", data: []byte("a")}})
	rr = s.do(t, http.MethodPost, "/api/documents", body, ct, true)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "ticket_id", decode[map[string]string](t, rr)["field"])

	rr = s.doJSON(t, http.MethodPost, "/api/documents", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
