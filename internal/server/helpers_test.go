package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"taskdeck/internal/config"
	"taskdeck/internal/storage/object"
	"taskdeck/internal/storage/sqlite"
)

type testServer struct {
	srv     *Server
	store   *sqlite.Store
	objects *object.MemoryStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := sqlite.Open(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	objects := object.NewMemoryStore()
	cfg := &config.Config{
		Addr:       ":0",
		DBPath:     ":memory:",
		Env:        "development",
		SessionTTL: time.Hour,
	}
	return &testServer{
		srv:     New(cfg, store, objects, nil),
		store:   store,
		objects: objects,
	}
}

// do sends a JSON request through the engine. A non-empty cookie is attached
// as the session cookie value.
func (ts *testServer) do(t *testing.T, method, path, cookie string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookie})
	}

	w := httptest.NewRecorder()
	ts.srv.Engine().ServeHTTP(w, req)
	return w
}

// register creates an account and returns its session cookie value.
func (ts *testServer) register(t *testing.T, email string) string {
	t.Helper()

	w := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "correct horse battery",
		"name":     "Test User",
	})
	require.Equal(t, http.StatusOK, w.Code, "register failed: %s", w.Body.String())

	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookie && c.Value != "" {
			return c.Value
		}
	}
	t.Fatal("register did not set a session cookie")
	return ""
}

// decode unmarshals the response body into out.
func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// upload sends a multipart file upload with an explicit part content type.
func (ts *testServer) upload(t *testing.T, cookie, filename, mime string, content []byte, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", mime)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/files", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookie})
	}

	w := httptest.NewRecorder()
	ts.srv.Engine().ServeHTTP(w, req)
	return w
}
