package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"businessCard/internal/auth"
	"businessCard/internal/config"
	"businessCard/repository"
)

const requestTimeout = 30 * time.Second

// Pinger reports database reachability for /healthz.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Options are the collaborators of the HTTP API.
type Options struct {
	Logger        *slog.Logger
	DB            Pinger
	Editors       repository.EditorRepositoryI
	Contacts      repository.ContactRepositoryI
	AdminSettings repository.AdminSettingRepositoryI
	Hasher        auth.Hasher
	// ContactsAuth selects the contacts gate: config.ContactsAuthEditor or
	// config.ContactsAuthAdmin.
	ContactsAuth string
}

// NewRouter builds the chi router serving /auth, /contacts and /healthz.
func NewRouter(o Options) http.Handler {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Hasher == nil {
		o.Hasher = auth.SHA256Hasher{}
	}

	editorAuthn := auth.EditorAuthenticator{Editors: o.Editors, Hasher: o.Hasher}
	editors := &EditorHandler{
		Editors: o.Editors,
		Hasher:  o.Hasher,
		Logger:  o.Logger,
		Authn:   auth.Gate{Authenticator: editorAuthn, Require: auth.AnyPrincipal},
		Super:   auth.Gate{Authenticator: editorAuthn, Require: auth.SuperAdmin},
	}

	contacts := &ContactHandler{
		Contacts:    o.Contacts,
		Logger:      o.Logger,
		Gate:        auth.Gate{Authenticator: editorAuthn, Require: auth.AnyPrincipal},
		Credentials: auth.EditorCredentials,
	}
	contactHeaders := []string{auth.HeaderEditorUsername, auth.HeaderEditorPassword}
	if o.ContactsAuth == config.ContactsAuthAdmin {
		contacts.Gate = auth.Gate{
			Authenticator: auth.AdminPasswordAuthenticator{Settings: o.AdminSettings, Hasher: o.Hasher},
			Require:       auth.AnyPrincipal,
		}
		contacts.Credentials = auth.AdminCredentials
		contactHeaders = append(contactHeaders, auth.HeaderAdminPassword)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(o.Logger))
	r.Use(recoverer(o.Logger))
	r.Use(timeout(requestTimeout))
	r.Use(middleware.StripSlashes)

	r.With(corsMiddleware(auth.HeaderEditorUsername, auth.HeaderEditorPassword)).Handle("/auth", editors)
	r.With(corsMiddleware(contactHeaders...)).Handle("/contacts", contacts)
	r.Get("/healthz", healthHandler(o.DB, o.Logger))

	return r
}

type healthResponse struct {
	Status string `json:"status"`
}

func healthHandler(db Pinger, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db == nil {
			writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			logger.WarnContext(r.Context(), "health check failed", slog.Any("error", err))
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
	}
}
