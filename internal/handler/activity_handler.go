package handler

import (
	"errors"
	"html/template"
	"io"
	"log"
	"net/http"
	"strings"

	"charitysite/internal/activity"
	"charitysite/internal/session"

	"github.com/gorilla/sessions"
)

const maxUploadBytes = 32 << 20

type ActivityAdminHandler struct {
	sessions   *session.Manager
	activities *activity.Service
	flash      sessions.Store
	tmpl       *template.Template
}

func NewActivityAdminHandler(manager *session.Manager, activities *activity.Service, flash sessions.Store) *ActivityAdminHandler {
	tmpl := template.Must(template.ParseFiles(
		"internal/templates/admin_activities.html",
		"internal/templates/admin_activity_add.html",
		"internal/templates/admin_activity_edit.html",
	))

	return &ActivityAdminHandler{
		sessions:   manager,
		activities: activities,
		flash:      flash,
		tmpl:       tmpl,
	}
}

func (h *ActivityAdminHandler) List(w http.ResponseWriter, r *http.Request) {
	_, ok := h.sessions.RequireSession(r)
	if !ok {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	activities, err := h.activities.List()
	if err != nil {
		log.Printf("list activities: %v", err)
		http.Error(w, "Failed to load activities", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"Title":      "Activities",
		"Activities": activities,
		"Messages":   popFlashes(h.flash, w, r),
	}
	h.tmpl.ExecuteTemplate(w, "admin_activities.html", data)
}

func (h *ActivityAdminHandler) Add(w http.ResponseWriter, r *http.Request) {
	_, ok := h.sessions.RequireSession(r)
	if !ok {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	if r.Method != http.MethodPost {
		data := map[string]interface{}{
			"Title":    "Add Activity",
			"Messages": popFlashes(h.flash, w, r),
		}
		h.tmpl.ExecuteTemplate(w, "admin_activity_add.html", data)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	files, err := formFiles(r)
	if err != nil {
		addFlash(h.flash, w, r, "Failed to read uploaded files")
		http.Redirect(w, r, "/admin/activities/add", http.StatusSeeOther)
		return
	}

	_, err = h.activities.Add(
		r.FormValue("title"),
		r.FormValue("description"),
		r.FormValue("youtube_link"),
		files,
	)
	if err != nil {
		addFlash(h.flash, w, r, userMessage(err))
		http.Redirect(w, r, "/admin/activities/add", http.StatusSeeOther)
		return
	}

	addFlash(h.flash, w, r, "Activity added")
	http.Redirect(w, r, "/admin/activities", http.StatusSeeOther)
}

func (h *ActivityAdminHandler) Edit(w http.ResponseWriter, r *http.Request) {
	_, ok := h.sessions.RequireSession(r)
	if !ok {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/admin/activities/edit/")
	if id == "" {
		http.Redirect(w, r, "/admin/activities", http.StatusSeeOther)
		return
	}

	if r.Method != http.MethodPost {
		act, err := h.activities.Get(id)
		if errors.Is(err, activity.ErrNotFound) {
			addFlash(h.flash, w, r, "Activity not found")
			http.Redirect(w, r, "/admin/activities", http.StatusSeeOther)
			return
		}
		if err != nil {
			log.Printf("get activity %s: %v", id, err)
			http.Error(w, "Failed to load activity", http.StatusInternalServerError)
			return
		}

		data := map[string]interface{}{
			"Title":    "Edit Activity",
			"Activity": act,
			"Messages": popFlashes(h.flash, w, r),
		}
		h.tmpl.ExecuteTemplate(w, "admin_activity_edit.html", data)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	files, err := formFiles(r)
	if err != nil {
		addFlash(h.flash, w, r, "Failed to read uploaded files")
		http.Redirect(w, r, "/admin/activities/edit/"+id, http.StatusSeeOther)
		return
	}

	keepExisting := r.FormValue("keepExistingImages") == "true"

	_, err = h.activities.Update(
		id,
		r.FormValue("title"),
		r.FormValue("description"),
		r.FormValue("youtube_link"),
		files,
		keepExisting,
	)
	if err != nil {
		addFlash(h.flash, w, r, userMessage(err))
		http.Redirect(w, r, "/admin/activities/edit/"+id, http.StatusSeeOther)
		return
	}

	addFlash(h.flash, w, r, "Activity updated")
	http.Redirect(w, r, "/admin/activities", http.StatusSeeOther)
}

func (h *ActivityAdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	_, ok := h.sessions.RequireSession(r)
	if !ok {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/admin/activities", http.StatusSeeOther)
		return
	}

	if err := h.activities.Delete(r.FormValue("id")); err != nil {
		addFlash(h.flash, w, r, userMessage(err))
	} else {
		addFlash(h.flash, w, r, "Activity deleted")
	}
	http.Redirect(w, r, "/admin/activities", http.StatusSeeOther)
}

func formFiles(r *http.Request) ([]activity.File, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	var files []activity.File
	for _, fh := range r.MultipartForm.File["images"] {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}

		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}

		files = append(files, activity.File{Name: fh.Filename, Content: content})
	}
	return files, nil
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, activity.ErrValidation):
		return "Title and description are required"
	case errors.Is(err, activity.ErrNotFound):
		return "Activity not found"
	case errors.Is(err, activity.ErrUpload):
		return "Failed to upload images"
	default:
		return "An unexpected error occurred"
	}
}
