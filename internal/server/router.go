package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	opsmiddleware "github.com/heliowatt/opsportal/internal/middleware"
	"github.com/heliowatt/opsportal/internal/repository"
	"github.com/heliowatt/opsportal/internal/session"
)

// RouterOptions controls the construction of the portal HTTP router. The
// zero value is valid for tests that only need a subset of routes; sensible
// defaults are applied where fields are not set.
type RouterOptions struct {
	Directory     Directory
	Sessions      *session.Store
	Telemetry     repository.TelemetryRepository
	Files         FileBrowser
	Inbox         InboxLister
	Contact       ContactSender
	CORSOptions   *cors.Options
	Middleware    []func(http.Handler) http.Handler
	HealthHandler http.HandlerFunc
}

// DefaultCORSOptions returns the policy for the telemetry JSON endpoint,
// sized for the dashboard dev server.
func DefaultCORSOptions() cors.Options {
	return cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
}

func defaultHealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// NewRouter assembles a chi.Router with shared middleware and the portal
// handlers mounted. Admin routes sit behind the RequireAdmin guard; every
// other route still resolves the session so pages can show login state.
func NewRouter(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	// Baseline middleware shared across entrypoints.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	corsCfg := DefaultCORSOptions()
	if opts.CORSOptions != nil {
		corsCfg = *opts.CORSOptions
	}
	r.Use(cors.Handler(corsCfg))

	if opts.Sessions != nil {
		r.Use(opsmiddleware.WithPrincipal(opts.Sessions))
	}

	// Apply custom middleware passed from the caller.
	for _, mw := range opts.Middleware {
		if mw != nil {
			r.Use(mw)
		}
	}

	r.Get("/", HandleIndex())
	r.Get("/generation/", HandleGeneration(opts.Telemetry))
	r.Get("/api/generation", HandleGenerationAPI(opts.Telemetry))
	r.Get("/contact/", HandleContactForm())
	r.Post("/contact/", HandleContactSubmit(opts.Contact))
	r.Get("/login/", HandleLoginForm())

	if opts.Directory != nil && opts.Sessions != nil {
		r.Post("/login/", HandleLogin(opts.Directory, opts.Sessions))
		r.Get("/logout", HandleLogout(opts.Sessions))
	}

	if opts.Sessions != nil {
		r.Route("/admin", func(ar chi.Router) {
			ar.Use(opsmiddleware.RequireAdmin(opts.Sessions))
			ar.Get("/", HandleAdminHome())
			ar.Get("/files", HandleFiles(opts.Files))
			ar.Get("/files/download", HandleFileDownload(opts.Files))
			ar.Get("/mail", HandleMail(opts.Inbox))
		})
	}

	healthHandler := opts.HealthHandler
	if healthHandler == nil {
		healthHandler = defaultHealthHandler
	}
	r.Get("/health", healthHandler)

	return r
}
