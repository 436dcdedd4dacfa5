package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYoutubeEmbedURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"already embed", "https://www.youtube.com/embed/abc123", "https://www.youtube.com/embed/abc123"},
		{"watch url", "https://www.youtube.com/watch?v=abc123", "https://www.youtube.com/embed/abc123"},
		{"watch url extra params", "https://www.youtube.com/watch?v=abc123&t=42s", "https://www.youtube.com/embed/abc123"},
		{"short link", "https://youtu.be/abc123", "https://www.youtube.com/embed/abc123"},
		{"short link with query", "https://youtu.be/abc123?t=42", "https://www.youtube.com/embed/abc123"},
		{"unrecognized passes through", "https://vimeo.com/12345", "https://vimeo.com/12345"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, youtubeEmbedURL(tc.in))
		})
	}
}
