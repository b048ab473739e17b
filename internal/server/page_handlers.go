package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/heliowatt/opsportal/internal/db/models"
	"github.com/heliowatt/opsportal/internal/mail"
	"github.com/heliowatt/opsportal/internal/repository"
)

// generationWindow bounds the history shown on the generation page.
const generationWindow = 24 * time.Hour

type generationData struct {
	Latest  []models.ArrayReading
	History []models.ArrayReading
}

// HandleIndex serves the portal home page.
func HandleIndex() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, r, http.StatusOK, "index.html", pageData{Title: "HelioWatt Operations"})
	}
}

// HandleGeneration serves the generation dashboard: the latest reading of
// each array plus the last day of history.
func HandleGeneration(telemetry repository.TelemetryRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if telemetry == nil {
			renderError(w, r, http.StatusServiceUnavailable, "Telemetry storage is not configured.")
			return
		}
		latest, err := telemetry.LatestPerArray(r.Context())
		if err != nil {
			log.Printf("generation: latest readings: %v", err)
			renderError(w, r, http.StatusInternalServerError, "Could not load generation data.")
			return
		}
		history, err := telemetry.Since(r.Context(), time.Now().UTC().Add(-generationWindow))
		if err != nil {
			log.Printf("generation: history: %v", err)
			renderError(w, r, http.StatusInternalServerError, "Could not load generation data.")
			return
		}
		renderPage(w, r, http.StatusOK, "generation.html", pageData{
			Title: "Generation",
			Data:  generationData{Latest: latest, History: history},
		})
	}
}

// HandleGenerationAPI serves the latest reading of each array as JSON for
// the dashboard widgets.
func HandleGenerationAPI(telemetry repository.TelemetryRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if telemetry == nil {
			http.Error(w, "telemetry storage not configured", http.StatusServiceUnavailable)
			return
		}
		latest, err := telemetry.LatestPerArray(r.Context())
		if err != nil {
			log.Printf("generation api: %v", err)
			http.Error(w, "could not load generation data", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(latest); err != nil {
			log.Printf("generation api: encode: %v", err)
		}
	}
}

// HandleContactForm serves the contact page.
func HandleContactForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, r, http.StatusOK, "contact.html", pageData{Title: "Contact"})
	}
}

// HandleContactSubmit validates and delivers a contact-form submission, then
// re-renders the form with the assigned reference ID.
func HandleContactSubmit(contact ContactSender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if contact == nil {
			renderError(w, r, http.StatusServiceUnavailable, "The contact form is not available.")
			return
		}
		if err := r.ParseForm(); err != nil {
			renderError(w, r, http.StatusBadRequest, "Malformed submission.")
			return
		}
		msg := mail.ContactMessage{
			Name:    r.PostFormValue("name"),
			ReplyTo: r.PostFormValue("email"),
			Subject: r.PostFormValue("subject"),
			Body:    r.PostFormValue("message"),
		}
		if err := msg.Validate(); err != nil {
			renderPage(w, r, http.StatusBadRequest, "contact.html", pageData{
				Title: "Contact",
				Error: err.Error(),
			})
			return
		}
		ref, err := contact.Send(r.Context(), msg)
		if err != nil {
			log.Printf("contact: send: %v", err)
			renderError(w, r, http.StatusInternalServerError, "Your message could not be delivered. Try again later.")
			return
		}
		renderPage(w, r, http.StatusOK, "contact.html", pageData{
			Title:  "Contact",
			Notice: "Message sent. Your reference is #" + ref + ".",
		})
	}
}
