package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"businessCard/internal/auth"
	"businessCard/models"
	"businessCard/repository"
)

// Editor request actions, carried in the JSON body.
const (
	actionLogin          = "login"
	actionCreateEditor   = "create_editor"
	actionChangePassword = "change_password"
)

// EditorHandler serves /auth: login, editor management and password change.
type EditorHandler struct {
	Editors repository.EditorRepositoryI
	Hasher  auth.Hasher
	Logger  *slog.Logger

	// Authn verifies any active editor; Super additionally requires the
	// super-admin flag.
	Authn auth.Gate
	Super auth.Gate
}

type editorRequest struct {
	Action      string  `json:"action"`
	Username    string  `json:"username"`
	Password    *string `json:"password"`
	FullName    string  `json:"full_name"`
	OldPassword string  `json:"old_password"`
	NewPassword string  `json:"new_password"`
	ID          int64   `json:"id"`
}

type loginResponse struct {
	Success bool           `json:"success"`
	Editor  *models.Editor `json:"editor"`
}

type editorResponse struct {
	Editor *models.Editor `json:"editor"`
}

type editorsResponse struct {
	Editors []models.Editor `json:"editors"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// ServeHTTP dispatches on method and action. Login is the only operation
// that does not need credential headers.
func (h *EditorHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req editorRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if r.Method == http.MethodPost && req.Action == actionLogin {
		h.login(w, r, req)
		return
	}

	p, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	r = r.WithContext(auth.WithPrincipal(r.Context(), p))

	switch {
	case r.Method == http.MethodGet:
		h.list(w, r, p)
	case r.Method == http.MethodPost && req.Action == actionCreateEditor:
		h.create(w, r, p, req)
	case r.Method == http.MethodPut && req.Action == actionChangePassword:
		h.changePassword(w, r, p, req)
	case r.Method == http.MethodDelete:
		h.delete(w, r, p, req)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not supported")
	}
}

func (h *EditorHandler) login(w http.ResponseWriter, r *http.Request, req editorRequest) {
	if req.Username == "" || req.Password == nil || *req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}
	p, err := h.Authn.Authorize(r.Context(), auth.Credentials{Username: req.Username, Password: *req.Password})
	if errors.Is(err, auth.ErrUnauthenticated) {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}
	if err != nil {
		internalError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Success: true, Editor: publicEditor(p.Editor)})
}

// authenticate verifies the credential headers and writes a 401 on failure.
func (h *EditorHandler) authenticate(w http.ResponseWriter, r *http.Request) (*auth.Principal, bool) {
	p, err := h.Authn.Authorize(r.Context(), auth.EditorCredentials(r.Header))
	switch {
	case errors.Is(err, auth.ErrMissingCredentials):
		writeError(w, http.StatusUnauthorized, "authorization required")
		return nil, false
	case errors.Is(err, auth.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return nil, false
	case err != nil:
		internalError(w, r, h.Logger, err)
		return nil, false
	}
	return p, true
}

// permitSuper applies the super-admin requirement and writes a 403 on failure.
func (h *EditorHandler) permitSuper(w http.ResponseWriter, p *auth.Principal) bool {
	if err := h.Super.Permit(p); err != nil {
		writeError(w, http.StatusForbidden, "access denied")
		return false
	}
	return true
}

func (h *EditorHandler) list(w http.ResponseWriter, r *http.Request, p *auth.Principal) {
	if !h.permitSuper(w, p) {
		return
	}
	editors, err := h.Editors.List(r.Context())
	if err != nil {
		internalError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, editorsResponse{Editors: editors})
}

func (h *EditorHandler) create(w http.ResponseWriter, r *http.Request, p *auth.Principal, req editorRequest) {
	if !h.permitSuper(w, p) {
		return
	}
	if req.Username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}
	password := auth.DefaultEditorPassword
	// An explicit "" counts as not supplied; an empty password is never stored.
	if req.Password != nil && *req.Password != "" {
		password = *req.Password
	}
	hash, err := h.Hasher.Hash(password)
	if err != nil {
		internalError(w, r, h.Logger, err)
		return
	}
	e, err := h.Editors.Create(r.Context(), models.NewEditor{
		Username:     req.Username,
		PasswordHash: hash,
		FullName:     req.FullName,
	})
	if errors.Is(err, repository.ErrAlreadyExists) {
		writeError(w, http.StatusConflict, "username already taken")
		return
	}
	if err != nil {
		internalError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, editorResponse{Editor: e})
}

// changePassword only ever touches the caller's own account: the target is
// the header username, and the old password must verify against it.
func (h *EditorHandler) changePassword(w http.ResponseWriter, r *http.Request, p *auth.Principal, req editorRequest) {
	if req.OldPassword == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "old and new password are required")
		return
	}
	self, err := h.Editors.GetByUsername(r.Context(), p.Name)
	if err != nil {
		internalError(w, r, h.Logger, err)
		return
	}
	if self == nil || !h.Hasher.Verify(req.OldPassword, self.PasswordHash) {
		writeJSON(w, http.StatusOK, successResponse{Success: false})
		return
	}
	hash, err := h.Hasher.Hash(req.NewPassword)
	if err != nil {
		internalError(w, r, h.Logger, err)
		return
	}
	ok, err := h.Editors.UpdatePassword(r.Context(), p.Name, hash)
	if err != nil {
		internalError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: ok})
}

func (h *EditorHandler) delete(w http.ResponseWriter, r *http.Request, p *auth.Principal, req editorRequest) {
	if req.ID == 0 {
		writeError(w, http.StatusBadRequest, "editor id is required")
		return
	}
	if !h.permitSuper(w, p) {
		return
	}
	ok, err := h.Editors.DeleteNonSuperAdmin(r.Context(), req.ID)
	if err != nil {
		internalError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: ok})
}

// publicEditor copies e with only the fields a login response carries.
func publicEditor(e *models.Editor) *models.Editor {
	if e == nil {
		return nil
	}
	out := *e
	out.PasswordHash = ""
	out.CreatedAt = nil
	out.UpdatedAt = nil
	return &out
}
