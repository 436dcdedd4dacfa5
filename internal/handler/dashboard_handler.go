package handler

import (
	"html/template"
	"log"
	"net/http"

	"charitysite/internal/activity"
	"charitysite/internal/session"
)

type DashboardHandler struct {
	sessions   *session.Manager
	activities *activity.Service
	tmpl       *template.Template
}

func NewDashboardHandler(manager *session.Manager, activities *activity.Service) *DashboardHandler {
	tmpl := template.Must(template.ParseFiles("internal/templates/admin_dashboard.html"))

	return &DashboardHandler{
		sessions:   manager,
		activities: activities,
		tmpl:       tmpl,
	}
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessions.RequireSession(r)
	if !ok {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	activities, err := h.activities.List()
	if err != nil {
		log.Printf("list activities: %v", err)
	}

	data := map[string]interface{}{
		"Title":         "Dashboard",
		"Name":          sess.User.Name,
		"IsSuperAdmin":  sess.IsSuperAdmin(),
		"ActivityCount": len(activities),
	}
	h.tmpl.Execute(w, data)
}
