package render

import (
	"strings"
	"testing"

	"github.com/hiveblocks/hiverender/hive"
)

func TestEmojiWithOwner(t *testing.T) {
	r := newTestRenderer()

	html, err := r.Render("great post :alice/hug:")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(html, `class="hivemoji"`) {
		t.Fatalf("expected emoji image, got: %s", html)
	}
	if !strings.Contains(html, "https://images.hive.blog/hivemoji/alice/hug.png") {
		t.Errorf("expected owner-scoped emoji URL, got: %s", html)
	}
	// The original token rides along as alt text so a failed image load
	// degrades to something readable.
	if !strings.Contains(html, `alt=":alice/hug:"`) {
		t.Errorf("expected token as alt text, got: %s", html)
	}
}

func TestEmojiDefaultOwnerFromOptions(t *testing.T) {
	r := newTestRenderer()

	html, err := r.Render("hello :wave:")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(html, "/hivemoji/hiveio/wave.png") {
		t.Errorf("expected configured default owner, got: %s", html)
	}
}

func TestEmojiDefaultOwnerFromContext(t *testing.T) {
	r := newTestRenderer()

	html, err := r.Render("hello :wave:", hive.RenderContext{DefaultEmojiOwner: "bob"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(html, "/hivemoji/bob/wave.png") {
		t.Errorf("expected per-call owner override, got: %s", html)
	}
}

func TestEmojiNoOwnerStaysLiteral(t *testing.T) {
	r := New(hive.RenderOptions{
		Hivemoji: hive.HivemojiOptions{
			Enabled: true,
			BaseURL: "https://images.hive.blog/hivemoji",
		},
	})

	html, err := r.Render("hello :wave: there")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if strings.Contains(html, "hivemoji") {
		t.Errorf("unresolvable token must stay literal, got: %s", html)
	}
	if !strings.Contains(html, ":wave:") {
		t.Errorf("expected literal token preserved, got: %s", html)
	}
}

func TestEmojiDisabled(t *testing.T) {
	r := New(hive.RenderOptions{})

	html, err := r.Render("hello :alice/wave:")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if strings.Contains(html, "<img") {
		t.Errorf("substitution must be off by default, got: %s", html)
	}
	if !strings.Contains(html, ":alice/wave:") {
		t.Errorf("expected literal token, got: %s", html)
	}
}

func TestEmojiSkippedInCode(t *testing.T) {
	r := newTestRenderer()

	html, err := r.Render("use `:alice/wave:` in your post")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if strings.Contains(html, "hivemoji") {
		t.Errorf("tokens inside code must not substitute, got: %s", html)
	}
	if !strings.Contains(html, ":alice/wave:") {
		t.Errorf("expected code content preserved, got: %s", html)
	}
}

func TestEmojiMultipleTokensInOneLine(t *testing.T) {
	r := newTestRenderer()

	html, err := r.Render(":alice/hug: and :bob/wave:")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(html, "/hivemoji/alice/hug.png") {
		t.Errorf("expected first token substituted, got: %s", html)
	}
	if !strings.Contains(html, "/hivemoji/bob/wave.png") {
		t.Errorf("expected second token substituted, got: %s", html)
	}
	if !strings.Contains(html, " and ") {
		t.Errorf("expected text between tokens preserved, got: %s", html)
	}
}
