package preview_test

import (
	"testing"

	"github.com/dalemusser/vaulthub/internal/app/system/preview"
	"github.com/dalemusser/vaulthub/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func TestYouTubeVideoID(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		wantID string
		wantOK bool
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"watch url with extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", true},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"short link with query", "https://youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ", true},
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"no scheme", "youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"id too short", "https://www.youtube.com/watch?v=abc", "", false},
		{"channel page", "https://www.youtube.com/@somechannel", "", false},
		{"not youtube at all", "https://example.com/watch", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := preview.YouTubeVideoID(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"youtube watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", models.PreviewYouTube},
		{"youtube short link", "https://youtu.be/dQw4w9WgXcQ", models.PreviewYouTube},
		{"youtube embed", "https://www.youtube.com/embed/dQw4w9WgXcQ", models.PreviewYouTube},
		{"instagram reel", "https://www.instagram.com/reel/Cabc123/", models.PreviewInstagramReel},
		{"tiktok", "https://www.tiktok.com/@user/video/123456", models.PreviewTikTok},
		{"plain article", "https://example.com/posts/42", models.PreviewArticle},
		{"http article", "http://blog.example.org/", models.PreviewArticle},

		// A shorts URL carries no extractable video id, so it falls
		// through to the generic article path.
		{"youtube shorts", "https://www.youtube.com/shorts/dQw4w9WgXcQ", models.PreviewArticle},

		// Instagram profile (not a reel) is just a page.
		{"instagram profile", "https://www.instagram.com/someone/", models.PreviewArticle},

		{"no scheme", "example.com/page", models.PreviewLink},
		{"ftp scheme", "ftp://example.com/file", models.PreviewLink},
		{"garbage", "::not a url::", models.PreviewLink},
		{"empty", "", models.PreviewLink},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, preview.Classify(tt.url))
		})
	}
}

// Classify must map any input to a kind without panicking.
func TestClassify_Total(t *testing.T) {
	inputs := []string{
		"", " ", "\n", "youtube.com", "https://", "%%%",
		"https://youtube.com/watch?v=", "javascript:alert(1)",
		string([]byte{0xff, 0xfe, 0x00}),
	}
	for _, in := range inputs {
		assert.NotEmpty(t, preview.Classify(in))
	}
}
