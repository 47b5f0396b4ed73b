package extensions

import (
	"regexp"
	"strings"

	localast "github.com/hiveblocks/hiverender/render/extensions/ast"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Tags must start with a letter so bare issue numbers ("#42") stay text.
var hashtagRegexp = regexp.MustCompile(`^#([A-Za-z][A-Za-z0-9-]*)`)

type hashtagParser struct {
	resolve URLResolver
}

// NewHashtagParser returns an inline parser recognizing #tag references.
func NewHashtagParser(resolve URLResolver) parser.InlineParser {
	return &hashtagParser{resolve: resolve}
}

func (p *hashtagParser) Trigger() []byte {
	return []byte{'#'}
}

func (p *hashtagParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	if prev := block.PrecendingCharacter(); !isBoundary(prev) {
		return nil
	}

	line, _ := block.PeekLine()
	m := hashtagRegexp.FindSubmatch(line)
	if m == nil {
		return nil
	}

	block.Advance(len(m[0]))
	return localast.NewHashtag(m[1])
}

type hashtagRenderer struct {
	resolve URLResolver
}

// NewHashtagRenderer creates a NodeRenderer for Hashtag nodes.
func NewHashtagRenderer(resolve URLResolver) renderer.NodeRenderer {
	return &hashtagRenderer{resolve: resolve}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *hashtagRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(localast.KindHashtag, r.renderHashtag)
}

func (r *hashtagRenderer) renderHashtag(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*localast.Hashtag)

	// Topic URLs are lowercase on every front-end; display keeps the
	// author's casing.
	topic := strings.ToLower(string(n.Tag))

	_, _ = w.WriteString(`<a class="hashtag" href="`)
	_, _ = w.Write(util.EscapeHTML([]byte(r.resolve(topic))))
	_, _ = w.WriteString(`">#`)
	_, _ = w.Write(util.EscapeHTML(n.Tag))
	_, _ = w.WriteString(`</a>`)
	return ast.WalkContinue, nil
}

type hashtags struct {
	resolve URLResolver
}

// NewHashtags returns a goldmark extension that turns #tag references into
// topic links.
func NewHashtags(resolve URLResolver) goldmark.Extender {
	return &hashtags{resolve: resolve}
}

func (e *hashtags) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithInlineParsers(
			util.Prioritized(NewHashtagParser(e.resolve), 151),
		),
	)
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewHashtagRenderer(e.resolve), 151),
	))
}
