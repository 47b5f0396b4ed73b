// Package render implements the content rendering pipeline: markdown is
// converted to HTML, known external media references are rewritten into
// bounded embeds, sibling front-end links are normalized, and the result
// passes through a whitelist sanitizer. Rather than chaining string-level
// regex passes, the pipeline parses the converted HTML once, runs each
// transformer as a DOM visitor, and serializes once.
package render

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/hiveblocks/hiverender/hive"
	"github.com/hiveblocks/hiverender/render/extensions"
)

// Renderer runs the full rendering pipeline. It is built once per
// application instance and is safe for concurrent use: all per-call state
// lives in a renderState allocated inside Render.
type Renderer struct {
	md       goldmark.Markdown
	opts     hive.RenderOptions
	policy   *bluemonday.Policy
	hiveLink *regexp.Regexp
}

// New creates a Renderer for the given rendering profile. Zero-valued
// option fields are filled with defaults.
func New(opts hive.RenderOptions) *Renderer {
	opts = opts.WithDefaults()

	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extensions.NewMentions(extensions.URLResolver(opts.AccountURL)),
				extensions.NewHashtags(extensions.URLResolver(opts.TagURL)),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				ghtml.WithHardWraps(),
				// Raw HTML must reach the transformer passes (gateway
				// iframes arrive as raw HTML). The sanitizer is the
				// backstop for everything that survives them.
				ghtml.WithUnsafe(),
			),
		),
		opts:     opts,
		policy:   newPolicy(opts),
		hiveLink: hiveLinkRegexp(opts.HiveDomains),
	}
}

// Render converts author-supplied markdown into sanitized HTML. Transformer
// failures never fail the call: a stage that cannot run passes its input
// through unchanged, and the sanitizer always runs last.
func (r *Renderer) Render(markdown string, ctx ...hive.RenderContext) (string, error) {
	var rc hive.RenderContext
	if len(ctx) > 0 {
		rc = ctx[0]
	}

	raw := markdown
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err == nil {
		raw = buf.String()
	}

	return r.policy.Sanitize(r.transform(raw, rc)), nil
}

// Sanitize applies only the final whitelist stage. Exposed so callers can
// re-sanitize stored HTML without re-running the whole pipeline.
func (r *Renderer) Sanitize(rawhtml string) string {
	return r.policy.Sanitize(rawhtml)
}

// transform parses the converted HTML once, applies every DOM visitor, and
// serializes the body content back to a string. Parse or serialize failures
// degrade to the untransformed input.
func (r *Renderer) transform(rawhtml string, rc hive.RenderContext) string {
	root, err := html.Parse(strings.NewReader(rawhtml))
	if err != nil {
		return rawhtml
	}
	doc := goquery.NewDocumentFromNode(root)
	st := newRenderState(r.opts, rc)

	rewriteThreeSpeak(doc, st)
	rewriteIPFS(doc, st)
	rewriteTweets(doc, st)
	rewriteInstagram(doc, st)
	guardGatewayLinks(doc, st)
	rewriteHiveLinks(doc, st, r.hiveLink)
	enhanceImages(doc, st)
	if st.opts.Hivemoji.Enabled {
		substituteEmoji(doc, st)
	}

	out, err := doc.Find("body").Html()
	if err != nil {
		return rawhtml
	}
	return out
}

// eachTextNode walks n depth-first, invoking fn for every text node whose
// ancestors all pass the skip predicate. fn may detach or replace the node
// it receives; the walk holds the next sibling before descending.
func eachTextNode(n *html.Node, skip func(*html.Node) bool, fn func(*html.Node)) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch c.Type {
		case html.TextNode:
			fn(c)
		case html.ElementNode:
			if !skip(c) {
				eachTextNode(c, skip, fn)
			}
		}
		c = next
	}
}

// replaceTextRange splits the text node around [start, end) and splices the
// parsed fragment nodes in place of the matched range. It returns the
// trailing text node, if any, so callers can keep scanning it.
func replaceTextRange(textNode *html.Node, start, end int, fragment string) *html.Node {
	parent := textNode.Parent
	if parent == nil {
		return nil
	}

	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return nil
	}

	if before := textNode.Data[:start]; before != "" {
		parent.InsertBefore(&html.Node{Type: html.TextNode, Data: before}, textNode)
	}
	for _, n := range nodes {
		parent.InsertBefore(n, textNode)
	}
	var after *html.Node
	if rest := textNode.Data[end:]; rest != "" {
		after = &html.Node{Type: html.TextNode, Data: rest}
		parent.InsertBefore(after, textNode)
	}
	parent.RemoveChild(textNode)
	return after
}
