package main

import (
	"log"
	"net/http"
	"os"

	"charitysite/internal/activity"
	"charitysite/internal/blob"
	"charitysite/internal/config"
	"charitysite/internal/database"
	"charitysite/internal/handler"
	"charitysite/internal/middleware"
	"charitysite/internal/repository"
	"charitysite/internal/session"

	"github.com/gorilla/sessions"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Printf("database init: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(cfg); err != nil {
		log.Printf("migrations: %v", err)
		os.Exit(1)
	}

	adminRepo := repository.NewAdminRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	var codec session.TokenCodec = session.Codec{}
	if cfg.SessionSigningKey != "" {
		codec = session.NewSignedCodec([]byte(cfg.SessionSigningKey))
		log.Println("session cookies are HMAC-signed")
	} else {
		log.Println("session cookies use the legacy reversible encoding; set SESSION_SIGNING_KEY to sign them")
	}

	manager := session.NewManager(adminRepo, codec, cfg.Production())

	var uploader blob.Uploader
	if cfg.BlobStoreURL != "" {
		uploader = blob.NewClient(cfg.BlobStoreURL, cfg.BlobStoreToken)
	} else {
		log.Println("BLOB_STORE_URL not set, using in-memory blob store")
		uploader = blob.NewMemory()
	}

	activities := activity.NewService(activityRepo, uploader, activity.LogRevalidator{})

	flash := sessions.NewCookieStore([]byte(cfg.FlashKey))

	public := handler.NewPublicHandler(activities)
	login := handler.NewLoginHandler(manager, flash)
	dashboard := handler.NewDashboardHandler(manager, activities)
	adminActivities := handler.NewActivityAdminHandler(manager, activities, flash)
	manageAdmins := handler.NewManageAdminsHandler(manager, adminRepo, flash)

	mux := http.NewServeMux()

	mux.HandleFunc("/", public.HomePage)
	mux.HandleFunc("/about", public.AboutPage)
	mux.HandleFunc("/activities", public.ActivitiesPage)
	mux.HandleFunc("/activities/", public.ActivityPage)

	mux.HandleFunc("/admin", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
	})
	mux.HandleFunc("/admin/login", login.Login)
	mux.HandleFunc("/admin/logout", login.Logout)
	mux.HandleFunc("/admin/dashboard", dashboard.Dashboard)
	mux.HandleFunc("/admin/activities", adminActivities.List)
	mux.HandleFunc("/admin/activities/add", adminActivities.Add)
	mux.HandleFunc("/admin/activities/edit/", adminActivities.Edit)
	mux.HandleFunc("/admin/activities/delete", adminActivities.Delete)
	mux.HandleFunc("/admin/manage-admins", manageAdmins.Manage)
	mux.HandleFunc("/admin/manage-admins/create", manageAdmins.Create)
	mux.HandleFunc("/admin/manage-admins/delete", manageAdmins.Delete)

	gate := middleware.NewGate(codec)

	log.Printf("listening on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, gate.Protect(mux)); err != nil {
		log.Printf("server: %v", err)
		os.Exit(1)
	}
}
