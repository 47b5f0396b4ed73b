package render

import (
	"strings"
	"testing"
)

func TestRenderTweetLink(t *testing.T) {
	r := newTestRenderer()

	html, err := r.Render("[tweet](https://twitter.com/jack/status/20)")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(html, `class="tweet-embed"`) {
		t.Errorf("expected tweet embed wrapper, got: %s", html)
	}
	if !strings.Contains(html, "platform.twitter.com/embed/Tweet.html?id=20") {
		t.Errorf("expected tweet embed URL, got: %s", html)
	}
}

func TestRenderTweetXDomain(t *testing.T) {
	r := newTestRenderer()

	html, err := r.Render("[tweet](https://x.com/jack/status/20)")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(html, "platform.twitter.com/embed/Tweet.html?id=20") {
		t.Errorf("expected x.com status to embed, got: %s", html)
	}
}

func TestRenderBareTweetURLInRawHTML(t *testing.T) {
	r := newTestRenderer()

	// A URL sitting in raw HTML text never goes through autolinking, so
	// the bare-text pass has to find it.
	html, err := r.Render("<div>look at https://twitter.com/jack/status/20 here</div>")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(html, `class="tweet-embed"`) {
		t.Errorf("expected bare URL to embed, got: %s", html)
	}
	if !strings.Contains(html, "look at ") || !strings.Contains(html, " here") {
		t.Errorf("expected surrounding text preserved, got: %s", html)
	}
}

func TestRenderTweetDeduplication(t *testing.T) {
	r := newTestRenderer()

	md := "[a](https://twitter.com/jack/status/20)\n\n" +
		"<div>again https://twitter.com/jack/status/20 and https://twitter.com/jack/status/20</div>"

	html, err := r.Render(md)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if n := strings.Count(html, "Tweet.html?id=20"); n != 1 {
		t.Errorf("expected 1 embed for repeated tweet, got %d: %s", n, html)
	}
	// Later bare duplicates stay literal text.
	if !strings.Contains(html, "again https://twitter.com/jack/status/20") {
		t.Errorf("expected duplicate bare URL left as text, got: %s", html)
	}
}

func TestRenderMultipleBareURLsInOneTextNode(t *testing.T) {
	r := newTestRenderer()

	html, err := r.Render("<div>https://twitter.com/a/status/1 and https://twitter.com/b/status/2</div>")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(html, "Tweet.html?id=1") || !strings.Contains(html, "Tweet.html?id=2") {
		t.Errorf("expected both URLs embedded, got: %s", html)
	}
}

func TestRenderBareURLInCodeUntouched(t *testing.T) {
	r := newTestRenderer()

	html, err := r.Render("`https://twitter.com/jack/status/20`")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if strings.Contains(html, "tweet-embed") {
		t.Errorf("URLs inside code must not embed, got: %s", html)
	}
	if !strings.Contains(html, "https://twitter.com/jack/status/20") {
		t.Errorf("expected code content preserved, got: %s", html)
	}
}

func TestRenderInstagramLink(t *testing.T) {
	r := newTestRenderer()

	tests := []string{
		"https://www.instagram.com/p/Cxyz123AbC/",
		"https://instagram.com/reel/Cxyz123AbC/",
		"https://www.instagram.com/tv/Cxyz123AbC",
	}
	for _, url := range tests {
		html, err := r.Render("[insta](" + url + ")")
		if err != nil {
			t.Fatalf("Render failed for %s: %v", url, err)
		}
		if !strings.Contains(html, `class="instagram-embed"`) {
			t.Errorf("%s: expected instagram embed, got: %s", url, html)
		}
		if !strings.Contains(html, "www.instagram.com/p/Cxyz123AbC/embed/captioned") {
			t.Errorf("%s: expected embed endpoint, got: %s", url, html)
		}
	}
}

func TestRenderInstagramDeduplication(t *testing.T) {
	r := newTestRenderer()

	md := "[a](https://www.instagram.com/p/Cxyz/)\n\n[b](https://www.instagram.com/reel/Cxyz/)"

	html, err := r.Render(md)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if n := strings.Count(html, "embed/captioned"); n != 1 {
		t.Errorf("expected 1 embed for repeated shortcode, got %d: %s", n, html)
	}
}

func TestRenderInstagramProfileNotEmbedded(t *testing.T) {
	r := newTestRenderer()

	html, err := r.Render("[profile](https://www.instagram.com/natgeo/)")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if strings.Contains(html, "instagram-embed") {
		t.Errorf("profile links must not embed, got: %s", html)
	}
}
