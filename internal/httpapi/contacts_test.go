package httpapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"businessCard/internal/config"
	"businessCard/models"
	"businessCard/repository"
)

func contactNames(t *testing.T, body map[string]any) []string {
	t.Helper()
	list, ok := body["contacts"].([]any)
	require.True(t, ok, "contacts array expected")
	names := make([]string, 0, len(list))
	for _, c := range list {
		names = append(names, c.(map[string]any)["name"].(string))
	}
	return names
}

func TestContacts_PublicListAndMutationGate(t *testing.T) {
	api := newEditorAPI(t, "apicontacts")
	api.seedStandard(t)
	alice := editorHeaders("alice", "pw")

	rec, body := api.do(t, http.MethodGet, "/contacts", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, contactNames(t, body))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	newContact := map[string]any{"name": "Ivan", "telegram_username": "ivan", "position": "CEO", "display_order": 2}

	rec, _ = api.do(t, http.MethodPost, "/contacts", newContact, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec, _ = api.do(t, http.MethodPost, "/contacts", newContact, editorHeaders("alice", "nope"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec, _ = api.do(t, http.MethodPost, "/contacts", newContact, editorHeaders("bob", "pw"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Any active editor may mutate; no super-admin needed.
	rec, body = api.do(t, http.MethodPost, "/contacts", newContact, alice)
	require.Equal(t, http.StatusCreated, rec.Code)
	c := body["contact"].(map[string]any)
	assert.Equal(t, "Ivan", c["name"])
	assert.Equal(t, "CEO", c["position"])
	assert.Equal(t, "", c["avatar_url"])
	assert.EqualValues(t, 2, c["display_order"])
	assert.NotZero(t, c["id"])

	rec, _ = api.do(t, http.MethodPost, "/contacts", map[string]any{"name": "Anna", "telegram_username": "anna", "display_order": 1}, alice)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = api.do(t, http.MethodPost, "/contacts", map[string]any{"name": "Boris", "telegram_username": "boris", "display_order": 2}, alice)
	require.Equal(t, http.StatusCreated, rec.Code)

	_, body = api.do(t, http.MethodGet, "/contacts", nil, nil)
	assert.Equal(t, []string{"Anna", "Ivan", "Boris"}, contactNames(t, body))

	rec, _ = api.do(t, http.MethodPost, "/contacts", map[string]any{"telegram_username": "x"}, alice)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContacts_UpdateOverwritesAllFields(t *testing.T) {
	api := newEditorAPI(t, "apicontactupdate")
	api.seedStandard(t)
	alice := editorHeaders("alice", "pw")

	_, body := api.do(t, http.MethodPost, "/contacts", map[string]any{
		"name": "Ivan", "telegram_username": "ivan", "position": "CEO",
		"avatar_url": "https://example.com/i.png", "display_order": 7,
	}, alice)
	id := body["contact"].(map[string]any)["id"]

	rec, body := api.do(t, http.MethodPut, "/contacts", map[string]any{"id": id, "name": "Ivan", "telegram_username": "ivan"}, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	c := body["contact"].(map[string]any)
	assert.Equal(t, "", c["position"])
	assert.Equal(t, "", c["avatar_url"])
	assert.EqualValues(t, 0, c["display_order"])

	// Only id: every other column is reset.
	rec, body = api.do(t, http.MethodPut, "/contacts", map[string]any{"id": id}, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	c = body["contact"].(map[string]any)
	assert.Equal(t, "", c["name"])
	assert.Equal(t, "", c["telegram_username"])

	rec, body = api.do(t, http.MethodPut, "/contacts", map[string]any{"id": 999, "name": "ghost"}, alice)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, body, "contact")

	rec, _ = api.do(t, http.MethodPut, "/contacts", map[string]any{"name": "no id"}, alice)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContacts_DeleteIsObservablyIdempotent(t *testing.T) {
	api := newEditorAPI(t, "apicontactdelete")
	api.seedStandard(t)
	alice := editorHeaders("alice", "pw")

	_, body := api.do(t, http.MethodPost, "/contacts", map[string]any{"name": "Ivan", "telegram_username": "ivan"}, alice)
	id := body["contact"].(map[string]any)["id"]

	rec, body := api.do(t, http.MethodDelete, "/contacts", map[string]any{"id": id}, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])

	rec, body = api.do(t, http.MethodDelete, "/contacts", map[string]any{"id": id}, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["success"])

	rec, _ = api.do(t, http.MethodDelete, "/contacts", nil, alice)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = api.do(t, http.MethodPatch, "/contacts", nil, alice)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestContacts_AdminPasswordVariant(t *testing.T) {
	api := newTestAPI(t, "apicontactadmin", config.ContactsAuthAdmin)
	api.seedStandard(t)
	adminHeaders := func(pw string) http.Header {
		h := http.Header{}
		h.Set("X-Admin-Password", pw)
		return h
	}
	newContact := map[string]any{"name": "Ivan", "telegram_username": "ivan"}

	// No admin_settings row yet: nothing verifies.
	rec, _ := api.do(t, http.MethodPost, "/contacts", newContact, adminHeaders("admin123"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	settings := repository.NewAdminSettingRepository(api.d)
	require.NoError(t, settings.SetPasswordHash(context.Background(), sha(t, "admin123")))

	rec, _ = api.do(t, http.MethodPost, "/contacts", newContact, adminHeaders("wrong"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Editor credentials do not open the admin variant.
	rec, _ = api.do(t, http.MethodPost, "/contacts", newContact, editorHeaders("root", "rootpw"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = api.do(t, http.MethodPost, "/contacts", newContact, adminHeaders("admin123"))
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = api.do(t, http.MethodOptions, "/contacts", nil, nil)
	assert.Equal(t, "Content-Type, X-Editor-Username, X-Editor-Password, X-Admin-Password", rec.Header().Get("Access-Control-Allow-Headers"))
}

type failingContacts struct{ repository.ContactRepositoryI }

func (failingContacts) List(context.Context) ([]models.Contact, error) {
	return nil, errors.New("dial tcp 10.0.0.5:5432: connection refused")
}

type downDB struct{}

func (downDB) PingContext(context.Context) error { return errors.New("connection refused") }

func TestInternalErrorsAreGeneric(t *testing.T) {
	h := NewRouter(Options{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		DB:       downDB{},
		Contacts: failingContacts{},
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/contacts", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "5432")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthz(t *testing.T) {
	api := newEditorAPI(t, "apihealth")
	rec, body := api.do(t, http.MethodGet, "/healthz", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}
