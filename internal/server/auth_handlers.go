package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/heliowatt/opsportal/internal/auth"
	"github.com/heliowatt/opsportal/internal/session"
)

// HandleLoginForm serves the login page. An already signed-in user is sent
// back to the home page.
func HandleLoginForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.PrincipalFromContext(r.Context()); ok {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		renderPage(w, r, http.StatusOK, "login.html", pageData{Title: "Sign in"})
	}
}

// HandleLogin verifies the submitted credentials against the directory and,
// on success, establishes a session and redirects home.
//
// An empty username or password is rejected before any directory call: some
// directories treat an empty password bind as anonymous and would report
// success.
func HandleLogin(dir Directory, sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			renderError(w, r, http.StatusBadRequest, "Malformed login request.")
			return
		}
		username := r.PostFormValue("u")
		password := r.PostFormValue("p")
		if username == "" || password == "" {
			renderPage(w, r, http.StatusUnauthorized, "login.html", pageData{
				Title: "Sign in",
				Error: "Username and password are required.",
			})
			return
		}

		entry, err := dir.Authenticate(r.Context(), username, password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				renderPage(w, r, http.StatusUnauthorized, "login.html", pageData{
					Title: "Sign in",
					Error: "Login failed.",
				})
				return
			}
			log.Printf("login: directory error for %q: %v", username, err)
			renderError(w, r, http.StatusInternalServerError, "The directory is unavailable. Try again later.")
			return
		}

		p := auth.Principal{
			Name:  entry.DisplayName,
			Admin: auth.IsAdmin(entry.Groups),
		}
		if err := sessions.Save(w, r, p); err != nil {
			log.Printf("login: save session for %q: %v", p.Name, err)
			renderError(w, r, http.StatusInternalServerError, "Could not establish a session.")
			return
		}
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// HandleLogout clears the session cookie and redirects home. Logging out
// without a session is a no-op.
func HandleLogout(sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions.Clear(w)
		http.Redirect(w, r, "/", http.StatusFound)
	}
}
