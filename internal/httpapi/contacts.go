package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"businessCard/internal/auth"
	"businessCard/models"
	"businessCard/repository"
)

// ContactHandler serves /contacts: public listing and gated mutation.
type ContactHandler struct {
	Contacts repository.ContactRepositoryI
	Logger   *slog.Logger

	// Gate guards create, update and delete. Depending on configuration it
	// verifies editor credentials or the shared admin password.
	Gate        auth.Gate
	Credentials auth.CredentialReader
}

type contactRequest struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	TelegramUsername string `json:"telegram_username"`
	Position         string `json:"position"`
	AvatarURL        string `json:"avatar_url"`
	DisplayOrder     int    `json:"display_order"`
}

func (c contactRequest) fields() models.ContactFields {
	return models.ContactFields{
		Name:             c.Name,
		TelegramUsername: c.TelegramUsername,
		Position:         c.Position,
		AvatarURL:        c.AvatarURL,
		DisplayOrder:     c.DisplayOrder,
	}
}

type contactResponse struct {
	Contact *models.Contact `json:"contact"`
}

type contactsResponse struct {
	Contacts []models.Contact `json:"contacts"`
}

func (h *ContactHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.list(w, r)
		return
	}

	p, err := h.Gate.Authorize(r.Context(), h.Credentials(r.Header))
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	case err != nil:
		internalError(w, r, h.Logger, err)
		return
	}
	r = r.WithContext(auth.WithPrincipal(r.Context(), p))

	var req contactRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch r.Method {
	case http.MethodPost:
		h.create(w, r, req)
	case http.MethodPut:
		h.update(w, r, req)
	case http.MethodDelete:
		h.delete(w, r, req)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not supported")
	}
}

func (h *ContactHandler) list(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.Contacts.List(r.Context())
	if err != nil {
		internalError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, contactsResponse{Contacts: contacts})
}

func (h *ContactHandler) create(w http.ResponseWriter, r *http.Request, req contactRequest) {
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "contact name is required")
		return
	}
	c, err := h.Contacts.Create(r.Context(), req.fields())
	if err != nil {
		internalError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, contactResponse{Contact: c})
}

// update rewrites every field; anything missing from the body is stored as
// its zero value.
func (h *ContactHandler) update(w http.ResponseWriter, r *http.Request, req contactRequest) {
	if req.ID == 0 {
		writeError(w, http.StatusBadRequest, "contact id is required")
		return
	}
	c, err := h.Contacts.Update(r.Context(), req.ID, req.fields())
	if err != nil {
		internalError(w, r, h.Logger, err)
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "contact not found")
		return
	}
	writeJSON(w, http.StatusOK, contactResponse{Contact: c})
}

func (h *ContactHandler) delete(w http.ResponseWriter, r *http.Request, req contactRequest) {
	if req.ID == 0 {
		writeError(w, http.StatusBadRequest, "contact id is required")
		return
	}
	ok, err := h.Contacts.Delete(r.Context(), req.ID)
	if err != nil {
		internalError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: ok})
}
