package server

import (
	"log"
	"net/http"

	"github.com/heliowatt/opsportal/internal/files"
)

// HandleAdminHome serves the admin landing page.
func HandleAdminHome() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, r, http.StatusOK, "admin.html", pageData{Title: "Administration"})
	}
}

// HandleFiles lists the drop directory on the site file server.
func HandleFiles(browser FileBrowser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if browser == nil {
			renderError(w, r, http.StatusServiceUnavailable, "File browsing is not configured.")
			return
		}
		entries, err := browser.List(r.Context())
		if err != nil {
			log.Printf("admin files: list: %v", err)
			renderError(w, r, http.StatusInternalServerError, "Could not reach the file server.")
			return
		}
		renderPage(w, r, http.StatusOK, "files.html", pageData{
			Title: "Files",
			Data:  entries,
		})
	}
}

// HandleFileDownload streams one named file from the drop directory. The
// name comes from the ?name= query parameter and is validated before any
// connection is made.
func HandleFileDownload(browser FileBrowser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if browser == nil {
			http.Error(w, "file browsing not configured", http.StatusServiceUnavailable)
			return
		}
		name := r.URL.Query().Get("name")
		if err := files.ValidateName(name); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		if err := browser.Fetch(r.Context(), name, w); err != nil {
			// Headers may already be out; all we can do is log.
			log.Printf("admin files: fetch %q: %v", name, err)
		}
	}
}

// HandleMail shows header summaries of the operations mailbox.
func HandleMail(inbox InboxLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if inbox == nil {
			renderError(w, r, http.StatusServiceUnavailable, "Mailbox review is not configured.")
			return
		}
		summaries, err := inbox.List(r.Context())
		if err != nil {
			log.Printf("admin mail: list: %v", err)
			renderError(w, r, http.StatusInternalServerError, "Could not reach the mailbox.")
			return
		}
		renderPage(w, r, http.StatusOK, "mail.html", pageData{
			Title: "Mailbox",
			Data:  summaries,
		})
	}
}
