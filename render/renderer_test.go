package render

import (
	"strings"
	"testing"

	"github.com/hiveblocks/hiverender/hive"
)

func newTestRenderer() *Renderer {
	return New(hive.RenderOptions{
		IPFSGateways:      []string{"https://ipfs.io/", "https://cloudflare-ipfs.com/"},
		HiveDomains:       []string{"hive.blog", "peakd.com", "ecency.com"},
		ConvertHiveURLs:   true,
		InternalURLPrefix: "",
		Hivemoji: hive.HivemojiOptions{
			Enabled:      true,
			BaseURL:      "https://images.hive.blog/hivemoji",
			DefaultOwner: "hiveio",
		},
	})
}

func TestRenderBasicMarkdown(t *testing.T) {
	r := newTestRenderer()

	html, err := r.Render("# Title\n\nSome **bold** text.")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(html, "<h1") {
		t.Error("expected <h1> heading")
	}
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Error("expected <strong> emphasis")
	}
}

func TestRenderThreeSpeakVideo(t *testing.T) {
	r := newTestRenderer()

	html, err := r.Render("[my video](https://3speak.tv/watch?v=alice/abc123)")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(html, `class="video-container"`) {
		t.Error("expected video-container wrapper")
	}
	if !strings.Contains(html, "play.3speak.tv/watch?v=alice/abc123") {
		t.Errorf("expected canonical embed URL, got: %s", html)
	}
	if !strings.Contains(html, "mode=iframe") {
		t.Error("expected mode=iframe on embed URL")
	}
	if !strings.Contains(html, `loading="lazy"`) {
		t.Error("expected lazy-loaded iframe")
	}
}

func TestRenderThreeSpeakLegacyDomains(t *testing.T) {
	r := newTestRenderer()

	for _, url := range []string{
		"https://3speak.online/watch?v=bob/xyz",
		"https://3speak.co/watch?v=bob/xyz",
		"https://play.3speak.tv/embed?v=bob/xyz",
	} {
		html, err := r.Render("[v](" + url + ")")
		if err != nil {
			t.Fatalf("Render failed for %s: %v", url, err)
		}
		if !strings.Contains(html, "play.3speak.tv/watch?v=bob/xyz") {
			t.Errorf("%s: expected canonical embed URL, got: %s", url, html)
		}
	}
}

func TestRenderThreeSpeakAudio(t *testing.T) {
	r := newTestRenderer()

	html, err := r.Render("[listen](https://3speak.tv/audio?v=alice/my-podcast)")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(html, `class="audio-container"`) {
		t.Errorf("expected audio-container wrapper, got: %s", html)
	}
	if !strings.Contains(html, "play.3speak.tv/audio?v=alice/my-podcast") {
		t.Error("expected canonical audio embed URL")
	}
}

func TestRenderThreeSpeakDeduplication(t *testing.T) {
	r := newTestRenderer()

	md := "[first](https://3speak.tv/watch?v=alice/abc123)\n\n" +
		"some text\n\n" +
		"[second](https://3speak.tv/watch?v=alice/abc123)"

	html, err := r.Render(md)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if n := strings.Count(html, "<iframe"); n != 1 {
		t.Errorf("expected exactly 1 embed for repeated video, got %d: %s", n, html)
	}
	// The duplicate stays a plain link.
	if !strings.Contains(html, ">second</a>") {
		t.Errorf("expected second reference to remain a link, got: %s", html)
	}
}

func TestRenderDistinctVideosAllEmbed(t *testing.T) {
	r := newTestRenderer()

	md := "[a](https://3speak.tv/watch?v=alice/one)\n\n[b](https://3speak.tv/watch?v=alice/two)"

	html, err := r.Render(md)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if n := strings.Count(html, "<iframe"); n != 2 {
		t.Errorf("expected 2 embeds for distinct videos, got %d", n)
	}
}

func TestRenderHiveLinkNormalization(t *testing.T) {
	r := newTestRenderer()

	tests := []struct {
		url  string
		want string
	}{
		{"https://peakd.com/hive-167922/@alice/my-post", `href="/@alice/my-post"`},
		{"https://hive.blog/@alice/my-post", `href="/@alice/my-post"`},
		{"https://www.ecency.com/photography/@bob.smith/sunset-1/", `href="/@bob.smith/sunset-1"`},
		{"HTTPS://PEAKD.COM/@alice/my-post", `href="/@alice/my-post"`},
	}

	for _, tt := range tests {
		html, err := r.Render("[post](" + tt.url + ")")
		if err != nil {
			t.Fatalf("Render failed for %s: %v", tt.url, err)
		}
		if !strings.Contains(html, tt.want) {
			t.Errorf("%s: expected %s, got: %s", tt.url, tt.want, html)
		}
	}
}

func TestRenderHiveLinkLeavesOtherURLsAlone(t *testing.T) {
	r := newTestRenderer()

	for _, url := range []string{
		"https://example.com/@alice/my-post",
		"https://peakd.com/about",
		"https://peakd.com/@alice",
	} {
		html, err := r.Render("[link](" + url + ")")
		if err != nil {
			t.Fatalf("Render failed for %s: %v", url, err)
		}
		if !strings.Contains(html, url) {
			t.Errorf("expected %s untouched, got: %s", url, html)
		}
	}
}

func TestRenderHiveLinkConversionDisabled(t *testing.T) {
	r := New(hive.RenderOptions{
		HiveDomains:     []string{"peakd.com"},
		ConvertHiveURLs: false,
	})

	html, err := r.Render("[post](https://peakd.com/@alice/my-post)")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(html, "https://peakd.com/@alice/my-post") {
		t.Errorf("expected link untouched when conversion is off, got: %s", html)
	}
}

func TestRenderMentions(t *testing.T) {
	r := newTestRenderer()

	html, err := r.Render("thanks @alice for the post")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(html, `class="mention"`) {
		t.Errorf("expected mention link, got: %s", html)
	}
	if !strings.Contains(html, `href="/@alice"`) {
		t.Errorf("expected profile URL, got: %s", html)
	}
	if !strings.Contains(html, ">@alice</a>") {
		t.Errorf("expected visible @alice text, got: %s", html)
	}
}

func TestRenderMentionNotInEmail(t *testing.T) {
	r := newTestRenderer()

	html, err := r.Render("contact me at nobody@example.com please")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if strings.Contains(html, `class="mention"`) {
		t.Errorf("email local part must not become a mention: %s", html)
	}
}

func TestRenderHashtags(t *testing.T) {
	r := newTestRenderer()

	html, err := r.Render("posted in #Photography today")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(html, `class="hashtag"`) {
		t.Errorf("expected hashtag link, got: %s", html)
	}
	// Topic URL is lowercased, display casing is preserved.
	if !strings.Contains(html, `href="/trending/photography"`) {
		t.Errorf("expected lowercased topic URL, got: %s", html)
	}
	if !strings.Contains(html, ">#Photography</a>") {
		t.Errorf("expected original casing in link text, got: %s", html)
	}
}

func TestRenderImagesLazyLoaded(t *testing.T) {
	r := newTestRenderer()

	html, err := r.Render("![sunset](https://files.peakd.com/sunset.png)")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(html, `loading="lazy"`) {
		t.Errorf("expected lazy-loaded image, got: %s", html)
	}
}

func TestRenderImageProxy(t *testing.T) {
	r := New(hive.RenderOptions{
		ImageProxy: func(url string) string {
			return "https://images.hive.blog/640x0/" + url
		},
	})

	html, err := r.Render("![pic](https://example.com/pic.png)")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(html, "https://images.hive.blog/640x0/https://example.com/pic.png") {
		t.Errorf("expected proxied image URL, got: %s", html)
	}
}

func TestRenderEmptyInput(t *testing.T) {
	r := newTestRenderer()

	html, err := r.Render("")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.TrimSpace(html) != "" {
		t.Errorf("expected empty output for empty input, got: %q", html)
	}
}

func TestRenderConcurrentCallsIndependent(t *testing.T) {
	r := newTestRenderer()

	// Dedup state is per call: the same video embeds once in each of many
	// concurrent renders.
	md := "[v](https://3speak.tv/watch?v=alice/abc123)"
	done := make(chan string, 8)
	for i := 0; i < 8; i++ {
		go func() {
			html, err := r.Render(md)
			if err != nil {
				done <- "error: " + err.Error()
				return
			}
			done <- html
		}()
	}
	for i := 0; i < 8; i++ {
		html := <-done
		if n := strings.Count(html, "<iframe"); n != 1 {
			t.Errorf("render %d: expected 1 embed, got %d: %s", i, n, html)
		}
	}
}
