package handler

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const flashSessionName = "admin-flash"

// One-shot messages for the admin form flows, carried in a short-lived
// gorilla session so they survive the POST-redirect-GET hop.
func addFlash(store sessions.Store, w http.ResponseWriter, r *http.Request, msg string) {
	sess, _ := store.Get(r, flashSessionName)
	sess.AddFlash(msg)
	sess.Save(r, w)
}

func popFlashes(store sessions.Store, w http.ResponseWriter, r *http.Request) []string {
	sess, _ := store.Get(r, flashSessionName)

	flashes := sess.Flashes()
	if len(flashes) > 0 {
		sess.Save(r, w)
	}

	msgs := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if s, ok := f.(string); ok {
			msgs = append(msgs, s)
		}
	}
	return msgs
}
