package extensions

import (
	"regexp"
	"unicode"

	localast "github.com/hiveblocks/hiverender/render/extensions/ast"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Account names on chain: 3-16 chars of lowercase letters, digits, dots,
// and dashes. Trailing punctuation is left out of the match so that
// "ping @alice." mentions alice, not "alice.".
var mentionRegexp = regexp.MustCompile(`^@([a-z][a-z0-9.-]{1,14}[a-z0-9])`)

// URLResolver maps an account or tag name to a link destination.
type URLResolver func(name string) string

type mentionParser struct {
	resolve URLResolver
}

// NewMentionParser returns an inline parser recognizing @account mentions.
func NewMentionParser(resolve URLResolver) parser.InlineParser {
	return &mentionParser{resolve: resolve}
}

func (p *mentionParser) Trigger() []byte {
	return []byte{'@'}
}

func (p *mentionParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	// A mention must start at a word boundary, otherwise email addresses
	// and the like would match.
	if prev := block.PrecendingCharacter(); !isBoundary(prev) {
		return nil
	}

	line, _ := block.PeekLine()
	m := mentionRegexp.FindSubmatch(line)
	if m == nil {
		return nil
	}

	block.Advance(len(m[0]))
	return localast.NewMention(m[1])
}

func isBoundary(r rune) bool {
	return unicode.IsSpace(r) || r == '(' || r == '['
}

type mentionRenderer struct {
	resolve URLResolver
}

// NewMentionRenderer creates a NodeRenderer for Mention nodes.
func NewMentionRenderer(resolve URLResolver) renderer.NodeRenderer {
	return &mentionRenderer{resolve: resolve}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *mentionRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(localast.KindMention, r.renderMention)
}

func (r *mentionRenderer) renderMention(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*localast.Mention)
	account := string(n.Account)

	_, _ = w.WriteString(`<a class="mention" href="`)
	_, _ = w.Write(util.EscapeHTML([]byte(r.resolve(account))))
	_, _ = w.WriteString(`">@`)
	_, _ = w.Write(util.EscapeHTML(n.Account))
	_, _ = w.WriteString(`</a>`)
	return ast.WalkContinue, nil
}

type mentions struct {
	resolve URLResolver
}

// NewMentions returns a goldmark extension that turns @account references
// into profile links.
func NewMentions(resolve URLResolver) goldmark.Extender {
	return &mentions{resolve: resolve}
}

func (e *mentions) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithInlineParsers(
			util.Prioritized(NewMentionParser(e.resolve), 150),
		),
	)
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewMentionRenderer(e.resolve), 150),
	))
}
