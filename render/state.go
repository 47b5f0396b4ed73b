package render

import (
	"net/url"
	"strings"

	"github.com/hiveblocks/hiverender/hive"
)

// renderState carries per-call mutable state through the transformer
// passes: dedup sets of already-embedded resource IDs plus the per-call
// context. It is freshly allocated per Render call and never escapes it.
type renderState struct {
	opts hive.RenderOptions
	ctx  hive.RenderContext

	gatewayHosts []string

	seenVideos     map[string]struct{}
	seenTweets     map[string]struct{}
	seenShortcodes map[string]struct{}
}

func newRenderState(opts hive.RenderOptions, ctx hive.RenderContext) *renderState {
	st := &renderState{
		opts:           opts,
		ctx:            ctx,
		seenVideos:     make(map[string]struct{}),
		seenTweets:     make(map[string]struct{}),
		seenShortcodes: make(map[string]struct{}),
	}
	for _, gw := range opts.IPFSGateways {
		if host := hostOf(gw); host != "" {
			st.gatewayHosts = append(st.gatewayHosts, host)
		}
	}
	return st
}

// seen records id in set and reports whether it was already present.
// First occurrence wins; callers leave later duplicates untouched.
func (st *renderState) seen(set map[string]struct{}, id string) bool {
	if _, ok := set[id]; ok {
		return true
	}
	set[id] = struct{}{}
	return false
}

// gatewayHosted reports whether rawurl points at one of the configured
// IPFS gateways.
func (st *renderState) gatewayHosted(rawurl string) bool {
	host := hostOf(rawurl)
	if host == "" {
		return false
	}
	for _, gw := range st.gatewayHosts {
		if strings.EqualFold(host, gw) {
			return true
		}
	}
	return false
}

// emojiOwner resolves the default owner for :name: tokens without an
// explicit owner segment.
func (st *renderState) emojiOwner() string {
	if st.ctx.DefaultEmojiOwner != "" {
		return st.ctx.DefaultEmojiOwner
	}
	return st.opts.Hivemoji.DefaultOwner
}

func hostOf(rawurl string) string {
	u, err := url.Parse(rawurl)
	if err != nil {
		return ""
	}
	return u.Host
}
