package handler

import (
	"net/url"
	"strings"
)

// youtubeEmbedURL rewrites watch and short-link URLs into the /embed/ form
// the detail page iframe needs. Anything unrecognized passes through.
func youtubeEmbedURL(link string) string {
	if link == "" {
		return ""
	}
	if strings.Contains(link, "/embed/") {
		return link
	}

	if i := strings.Index(link, "youtu.be/"); i >= 0 {
		id := link[i+len("youtu.be/"):]
		if j := strings.IndexAny(id, "?&"); j >= 0 {
			id = id[:j]
		}
		if id != "" {
			return "https://www.youtube.com/embed/" + id
		}
	}

	if u, err := url.Parse(link); err == nil {
		if v := u.Query().Get("v"); v != "" {
			return "https://www.youtube.com/embed/" + v
		}
	}

	return link
}
