package httpapi

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"businessCard/internal/auth"
	"businessCard/internal/config"
	"businessCard/internal/db"
	"businessCard/internal/testutil"
	"businessCard/repository"
)

type testAPI struct {
	h http.Handler
	d *db.DB
}

func newTestAPI(t *testing.T, name, contactsAuth string) *testAPI {
	t.Helper()
	d := testutil.OpenInMemoryDB(t, name)
	h := NewRouter(Options{
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		DB:            d,
		Editors:       repository.NewEditorRepository(d),
		Contacts:      repository.NewContactRepository(d),
		AdminSettings: repository.NewAdminSettingRepository(d),
		Hasher:        auth.SHA256Hasher{},
		ContactsAuth:  contactsAuth,
	})
	return &testAPI{h: h, d: d}
}

func newEditorAPI(t *testing.T, name string) *testAPI {
	return newTestAPI(t, name, config.ContactsAuthEditor)
}

func sha(t *testing.T, s string) string {
	t.Helper()
	h, err := auth.SHA256Hasher{}.Hash(s)
	require.NoError(t, err)
	return h
}

// seedStandard adds an active super-admin "root" (rootpw), an active editor
// "alice" (pw) and an inactive editor "bob" (pw).
func (a *testAPI) seedStandard(t *testing.T) (rootID, aliceID, bobID int64) {
	t.Helper()
	rootID = testutil.SeedEditor(t, a.d, "root", sha(t, "rootpw"), true, true)
	aliceID = testutil.SeedEditor(t, a.d, "alice", sha(t, "pw"), false, true)
	bobID = testutil.SeedEditor(t, a.d, "bob", sha(t, "pw"), false, false)
	return rootID, aliceID, bobID
}

func editorHeaders(username, password string) http.Header {
	h := http.Header{}
	h.Set(auth.HeaderEditorUsername, username)
	h.Set(auth.HeaderEditorPassword, password)
	return h
}

// do sends a request and decodes a JSON object response (nil for an empty body).
func (a *testAPI) do(t *testing.T, method, path string, body any, headers http.Header) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	for k, vs := range headers {
		req.Header[k] = vs
	}
	rec := httptest.NewRecorder()
	a.h.ServeHTTP(rec, req)

	if rec.Body.Len() == 0 {
		return rec, nil
	}
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec, out
}
