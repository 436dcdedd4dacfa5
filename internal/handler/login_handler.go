package handler

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"charitysite/internal/session"

	"github.com/gorilla/sessions"
)

type LoginHandler struct {
	sessions *session.Manager
	flash    sessions.Store
	tmpl     *template.Template
}

func NewLoginHandler(manager *session.Manager, flash sessions.Store) *LoginHandler {
	tmpl := template.Must(template.ParseFiles("internal/templates/admin_login.html"))

	return &LoginHandler{
		sessions: manager,
		flash:    flash,
		tmpl:     tmpl,
	}
}

func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.LoginPage(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if email == "" || password == "" {
		addFlash(h.flash, w, r, "Email and password are required")
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	result, err := h.sessions.Login(w, email, password)
	if errors.Is(err, session.ErrInvalidCredentials) {
		addFlash(h.flash, w, r, "Invalid email or password")
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}
	if err != nil {
		addFlash(h.flash, w, r, "An unexpected error occurred. Please try again.")
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, result.RedirectTo, http.StatusSeeOther)
}

func (h *LoginHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	// Page-level counterpart of the gate's login rule.
	if _, ok := h.sessions.RequireSession(r); ok {
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		return
	}

	data := map[string]interface{}{
		"Title":  "Admin Login",
		"Errors": popFlashes(h.flash, w, r),
	}
	h.tmpl.Execute(w, data)
}

func (h *LoginHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		return
	}

	target := h.sessions.Logout(w)
	http.Redirect(w, r, target, http.StatusSeeOther)
}
