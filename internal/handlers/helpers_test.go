package handlers_test

import (
	"RGFlow/internal/auth"
	"RGFlow/internal/config"
	"RGFlow/internal/handlers"
	"RGFlow/internal/middleware"
	"RGFlow/internal/repo"
	"RGFlow/internal/service"
	"RGFlow/internal/store"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret = "test-secret"
	testEmail  = "admin@rgflow.com"
)

type testServer struct {
	router http.Handler
	cfg    *config.Config
	svc    service.Services
}

// newTestServer поднимает полный стек поверх in-memory SQLite.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := repo.InitDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)

	logger := zap.NewNop().Sugar()
	creds := auth.NewCredentialSet()
	require.NoError(t, creds.AddPassword(testEmail, "123456", bcrypt.MinCost))

	cfg := &config.Config{AuthSecret: testSecret, MaxAttachmentMB: 1}
	st := store.New(repo.NewKVRepository(db), logger)
	svc := service.New(st, creds, logger, cfg.MaxAttachmentBytes())

	h := handlers.NewHandler(svc, logger, cfg)
	return &testServer{router: h.Router, cfg: cfg, svc: svc}
}

func addAuthCookie(t *testing.T, req *http.Request, email, secret string) {
	t.Helper()
	rr := httptest.NewRecorder()
	_ = middleware.SetLoginCookie(rr, email, secret)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}

// do выполняет запрос; authed — с cookie вошедшего пользователя.
func (s *testServer) do(t *testing.T, method, target string, body io.Reader, contentType string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authed {
		addAuthCookie(t, req, testEmail, testSecret)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func (s *testServer) doJSON(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	return s.do(t, method, target, r, "application/json", true)
}

type formFile struct {
	name, mime string
	data       []byte
}

func multipartBody(t *testing.T, fields map[string]string, files []formFile) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		h := make(map[string][]string)
		h["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="files"; filename=%q`, f.name)}
		if f.mime != "" {
			h["Content-Type"] = []string{f.mime}
		}
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&v))
	return v
}
