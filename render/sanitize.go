package render

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"

	"github.com/hiveblocks/hiverender/hive"
)

// Classes the pipeline itself emits. Anything else is stripped.
var allowedClassRegexp = regexp.MustCompile(`^(?:video-container|audio-container|tweet-embed|instagram-embed|hivemoji|mention|hashtag)$`)

// Embed iframes may only point at the known embed endpoints; everything
// else authors hand us is dropped by the sanitizer.
var embedSrcRegexp = regexp.MustCompile(`^https://(?:play\.3speak\.tv|platform\.twitter\.com|www\.instagram\.com)/`)

var (
	targetBlankRegexp = regexp.MustCompile(`^_blank$`)
	noopenerRegexp    = regexp.MustCompile(`^noopener noreferrer$`)
	dimensionRegexp   = regexp.MustCompile(`^[0-9]{1,4}$`)
	lazyRegexp        = regexp.MustCompile(`^lazy$`)
)

// newPolicy builds the whitelist enforced as the pipeline's final stage.
// The policy has veto power: no transformer's output reaches the caller
// unsanitized. Removal is content-preserving, stripping the disallowed
// wrapper but keeping its text.
func newPolicy(opts hive.RenderOptions) *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	p.AllowURLSchemes("http", "https", "mailto", "tel", "callto", "sms", "cid", "xmpp", "ipfs")
	p.RequireParseableURLs(true)
	p.AllowRelativeURLs(true)

	p.AllowAttrs("class").Matching(allowedClassRegexp).OnElements("div", "a", "img", "span")

	p.AllowElements("iframe", "video", "source", "u", "center")
	p.AllowAttrs("src").Matching(embedSrcRegexp).OnElements("iframe")
	p.AllowAttrs("width", "height").Matching(dimensionRegexp).OnElements("iframe", "video", "img")
	p.AllowAttrs("frameborder").Matching(dimensionRegexp).OnElements("iframe")
	p.AllowAttrs("allowfullscreen").OnElements("iframe")
	p.AllowAttrs("loading").Matching(lazyRegexp).OnElements("iframe", "img")
	p.AllowAttrs("controls", "preload").OnElements("video")
	p.AllowAttrs("src", "type").OnElements("source")
	p.AllowAttrs("alt").OnElements("img")

	p.AllowAttrs("target").Matching(targetBlankRegexp).OnElements("a")
	p.AllowAttrs("rel").Matching(noopenerRegexp).OnElements("a")

	return p
}
