// Package server mounts the portal's HTTP surface: public pages, the login
// flow, the admin area, and the telemetry JSON endpoint.
package server

import (
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/heliowatt/opsportal/internal/auth"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// pageData is the context handed to every page template.
type pageData struct {
	Title     string
	Principal *auth.Principal
	Data      any
	Error     string
	Notice    string
}

// renderPage writes one of the embedded templates with the session principal
// resolved from the request context.
func renderPage(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	if p, ok := auth.PrincipalFromContext(r.Context()); ok {
		data.Principal = &p
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
	}
}

// renderError shows the shared error page. The message is the full detail
// shown to the user; internal causes must be stripped by the caller.
func renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	renderPage(w, r, status, "error.html", pageData{
		Title: "Error",
		Data:  message,
	})
}
