package render

import (
	"strings"
	"testing"
)

func TestRenderIPFSGatewayIframe(t *testing.T) {
	r := newTestRenderer()

	html, err := r.Render(`<iframe src="https://ipfs.io/ipfs/QmTestHash123"></iframe>`)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if strings.Contains(html, "<iframe") {
		t.Errorf("gateway iframe should be replaced, got: %s", html)
	}
	if !strings.Contains(html, "<video") {
		t.Fatalf("expected <video> element, got: %s", html)
	}
	if !strings.Contains(html, "controls") {
		t.Error("expected controls attribute on video")
	}

	// One <source> per configured gateway, preferred gateway first.
	first := strings.Index(html, "https://ipfs.io/ipfs/QmTestHash123")
	second := strings.Index(html, "https://cloudflare-ipfs.com/ipfs/QmTestHash123")
	if first == -1 || second == -1 {
		t.Fatalf("expected a source per gateway, got: %s", html)
	}
	if second < first {
		t.Error("expected preferred gateway source first")
	}
}

func TestRenderIPFSNonGatewayIframeDropped(t *testing.T) {
	r := newTestRenderer()

	html, err := r.Render(`<iframe src="https://evil.example.com/ipfs/QmX"></iframe>`)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// Not a configured gateway: no video element, and the sanitizer strips
	// the unrecognized iframe src.
	if strings.Contains(html, "<video") {
		t.Errorf("non-gateway iframe must not become a video, got: %s", html)
	}
	if strings.Contains(html, "evil.example.com") {
		t.Errorf("unrecognized iframe src must be stripped, got: %s", html)
	}
}

func TestRenderIPFSAlternateGatewayIframe(t *testing.T) {
	r := newTestRenderer()

	// Content hosted on the secondary gateway still gets every gateway as
	// a fallback source.
	html, err := r.Render(`<iframe src="https://cloudflare-ipfs.com/ipfs/QmAbc"></iframe>`)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(html, "https://ipfs.io/ipfs/QmAbc") {
		t.Errorf("expected preferred gateway source, got: %s", html)
	}
	if !strings.Contains(html, "https://cloudflare-ipfs.com/ipfs/QmAbc") {
		t.Errorf("expected original gateway source, got: %s", html)
	}
}

func TestGatewayLinkGuard(t *testing.T) {
	r := newTestRenderer()

	html, err := r.Render("[download](https://ipfs.io/ipfs/QmSomeFile)")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(html, `target="_blank"`) {
		t.Errorf("expected gateway link to open in a new tab, got: %s", html)
	}
	if !strings.Contains(html, `rel="noopener noreferrer"`) {
		t.Errorf("expected noopener noreferrer on gateway link, got: %s", html)
	}
}

func TestGatewayLinkGuardLeavesOrdinaryLinks(t *testing.T) {
	r := newTestRenderer()

	html, err := r.Render("[site](https://example.com/page)")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if strings.Contains(html, `target="_blank"`) {
		t.Errorf("ordinary links must not be forced into new tabs, got: %s", html)
	}
}

func TestGatewayURL(t *testing.T) {
	tests := []struct {
		gateway string
		hash    string
		want    string
	}{
		{"https://ipfs.io/", "QmX", "https://ipfs.io/ipfs/QmX"},
		{"https://ipfs.io", "QmX", "https://ipfs.io/ipfs/QmX"},
	}
	for _, tt := range tests {
		if got := gatewayURL(tt.gateway, tt.hash); got != tt.want {
			t.Errorf("gatewayURL(%q, %q) = %q, want %q", tt.gateway, tt.hash, got, tt.want)
		}
	}
}
