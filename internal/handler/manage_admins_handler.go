package handler

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strings"

	"charitysite/internal/repository"
	"charitysite/internal/session"

	"github.com/gorilla/sessions"
)

type ManageAdminsHandler struct {
	sessions *session.Manager
	admins   *repository.AdminRepository
	flash    sessions.Store
	tmpl     *template.Template
}

func NewManageAdminsHandler(manager *session.Manager, admins *repository.AdminRepository, flash sessions.Store) *ManageAdminsHandler {
	tmpl := template.Must(template.ParseFiles("internal/templates/admin_manage.html"))

	return &ManageAdminsHandler{
		sessions: manager,
		admins:   admins,
		flash:    flash,
		tmpl:     tmpl,
	}
}

func (h *ManageAdminsHandler) Manage(w http.ResponseWriter, r *http.Request) {
	// Page-level guard; the gate enforces the same rule independently.
	_, ok := h.sessions.RequireSuperAdmin(r)
	if !ok {
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		return
	}

	admins, err := h.admins.List()
	if err != nil {
		log.Printf("list admins: %v", err)
		http.Error(w, "Failed to load admins", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"Title":    "Manage Admins",
		"Admins":   admins,
		"Messages": popFlashes(h.flash, w, r),
	}
	h.tmpl.Execute(w, data)
}

func (h *ManageAdminsHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessions.RequireSuperAdmin(r)
	if !ok {
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		return
	}

	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/admin/manage-admins", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	_, err := h.sessions.CreateAdmin(
		sess,
		strings.TrimSpace(r.FormValue("name")),
		strings.TrimSpace(r.FormValue("email")),
		r.FormValue("password"),
	)
	if err != nil {
		addFlash(h.flash, w, r, adminErrorMessage(err))
	} else {
		addFlash(h.flash, w, r, "Admin created")
	}
	http.Redirect(w, r, "/admin/manage-admins", http.StatusSeeOther)
}

func (h *ManageAdminsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessions.RequireSuperAdmin(r)
	if !ok {
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		return
	}

	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/admin/manage-admins", http.StatusSeeOther)
		return
	}

	if err := h.sessions.DeleteAdmin(sess, r.FormValue("id")); err != nil {
		addFlash(h.flash, w, r, adminErrorMessage(err))
	} else {
		addFlash(h.flash, w, r, "Admin deleted")
	}
	http.Redirect(w, r, "/admin/manage-admins", http.StatusSeeOther)
}

func adminErrorMessage(err error) string {
	switch {
	case errors.Is(err, session.ErrUnauthorized):
		return "Only super admins can manage admin accounts"
	case errors.Is(err, session.ErrMissingFields):
		return "Name, email and password are required"
	case errors.Is(err, session.ErrDuplicateEmail):
		return "An admin with this email already exists"
	case errors.Is(err, session.ErrProtectedAccount):
		return "Super admins cannot be deleted"
	case errors.Is(err, repository.ErrNotFound):
		return "Admin not found"
	default:
		return "An unexpected error occurred"
	}
}
