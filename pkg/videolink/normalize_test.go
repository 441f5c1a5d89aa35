package videolink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		in        string
		wantVideo string
		wantThumb string
	}{
		{
			name:      "watch link",
			in:        "https://www.youtube.com/watch?v=abc123",
			wantVideo: "https://www.youtube.com/embed/abc123",
			wantThumb: "https://i.ytimg.com/vi/abc123/maxresdefault.jpg",
		},
		{
			name:      "watch link with extra params",
			in:        "https://www.youtube.com/watch?t=42&v=abc123&list=PL1",
			wantVideo: "https://www.youtube.com/embed/abc123",
			wantThumb: "https://i.ytimg.com/vi/abc123/maxresdefault.jpg",
		},
		{
			name:      "short link",
			in:        "https://youtu.be/abc123",
			wantVideo: "https://www.youtube.com/embed/abc123",
			wantThumb: "https://i.ytimg.com/vi/abc123/maxresdefault.jpg",
		},
		{
			name:      "short link with query",
			in:        "https://youtu.be/abc123?si=share",
			wantVideo: "https://www.youtube.com/embed/abc123",
			wantThumb: "https://i.ytimg.com/vi/abc123/maxresdefault.jpg",
		},
		{
			name:      "embed link unchanged",
			in:        "https://www.youtube.com/embed/abc123",
			wantVideo: "https://www.youtube.com/embed/abc123",
			wantThumb: "https://i.ytimg.com/vi/abc123/maxresdefault.jpg",
		},
		{
			name:      "direct mp4",
			in:        "https://cdn.example.com/clips/demo.mp4",
			wantVideo: "https://cdn.example.com/clips/demo.mp4",
			wantThumb: "",
		},
		{
			name:      "direct file uppercase extension",
			in:        "https://cdn.example.com/clips/demo.MKV",
			wantVideo: "https://cdn.example.com/clips/demo.MKV",
			wantThumb: "",
		},
		{
			name:      "unrecognized input echoed trimmed",
			in:        "  https://vimeo.com/12345  ",
			wantVideo: "https://vimeo.com/12345",
			wantThumb: "",
		},
		{
			name:      "empty input",
			in:        "",
			wantVideo: "",
			wantThumb: "",
		},
		{
			name:      "whitespace only",
			in:        "   ",
			wantVideo: "",
			wantThumb: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Normalize(tt.in)
			assert.Equal(t, tt.wantVideo, got.VideoURL)
			assert.Equal(t, tt.wantThumb, got.ThumbnailURL)
		})
	}
}

// Re-normalizing a playback URL must be a fixed point: the canonical
// embed form maps to itself.
func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://cdn.example.com/clips/demo.webm",
		"https://somewhere.else/page",
	}
	for _, in := range inputs {
		first := Normalize(in)
		second := Normalize(first.VideoURL)
		assert.Equal(t, first.VideoURL, second.VideoURL, "input %q", in)
	}
}
