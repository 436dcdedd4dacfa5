package handler

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strings"

	"charitysite/internal/activity"
)

type PublicHandler struct {
	activities *activity.Service
	tmpl       *template.Template
}

func NewPublicHandler(activities *activity.Service) *PublicHandler {
	tmpl := template.Must(template.ParseFiles(
		"internal/templates/home.html",
		"internal/templates/about.html",
		"internal/templates/activities.html",
		"internal/templates/activity_detail.html",
		"internal/templates/not_found.html",
	))

	return &PublicHandler{
		activities: activities,
		tmpl:       tmpl,
	}
}

// HomePage also catches every unmatched path, so it 404s anything but "/".
func (h *PublicHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.notFound(w)
		return
	}

	activities, err := h.activities.List()
	if err != nil {
		log.Printf("list activities: %v", err)
	}

	recent := activities
	if len(recent) > 3 {
		recent = recent[:3]
	}

	data := map[string]interface{}{
		"Title":  "Home",
		"Recent": recent,
	}
	h.tmpl.ExecuteTemplate(w, "home.html", data)
}

func (h *PublicHandler) AboutPage(w http.ResponseWriter, r *http.Request) {
	h.tmpl.ExecuteTemplate(w, "about.html", map[string]interface{}{
		"Title": "About Us",
	})
}

func (h *PublicHandler) ActivitiesPage(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activities.List()
	if err != nil {
		log.Printf("list activities: %v", err)
		http.Error(w, "Failed to load activities", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"Title":      "Our Activities",
		"Activities": activities,
	}
	h.tmpl.ExecuteTemplate(w, "activities.html", data)
}

func (h *PublicHandler) ActivityPage(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/activities/")
	if id == "" {
		h.ActivitiesPage(w, r)
		return
	}

	act, err := h.activities.Get(id)
	if errors.Is(err, activity.ErrNotFound) {
		h.notFound(w)
		return
	}
	if err != nil {
		log.Printf("get activity %s: %v", id, err)
		http.Error(w, "Failed to load activity", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"Title":    act.Title,
		"Activity": act,
		"EmbedURL": youtubeEmbedURL(act.YoutubeLink),
	}
	h.tmpl.ExecuteTemplate(w, "activity_detail.html", data)
}

func (h *PublicHandler) notFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
	h.tmpl.ExecuteTemplate(w, "not_found.html", map[string]interface{}{
		"Title": "Not Found",
	})
}
