package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Token syntax is :owner/name: with an optional owner segment. Tokens
// without an owner fall back to the per-call default owner; with no
// resolvable owner the token stays literal text.
var emojiTokenRegexp = regexp.MustCompile(`:(?:([a-z0-9][a-z0-9_.-]*)/)?([a-z0-9][a-z0-9_-]*):`)

// Substitution never happens inside code-like containers.
var emojiSkipTags = map[string]struct{}{
	"code":     {},
	"pre":      {},
	"script":   {},
	"style":    {},
	"textarea": {},
	"kbd":      {},
	"samp":     {},
}

// substituteEmoji replaces :owner/name: tokens in text nodes with an inline
// image from the emoji service. The image's alt text carries the original
// token, so a failed load degrades to the literal token text.
func substituteEmoji(doc *goquery.Document, st *renderState) {
	body := doc.Find("body")
	if len(body.Nodes) == 0 {
		return
	}
	skip := func(n *html.Node) bool {
		_, ok := emojiSkipTags[n.Data]
		return ok
	}
	eachTextNode(body.Nodes[0], skip, func(tn *html.Node) {
		replaceEmojiTokens(tn, st)
	})
}

func replaceEmojiTokens(tn *html.Node, st *renderState) {
	node, offset := tn, 0
	for node != nil {
		m := emojiTokenRegexp.FindStringSubmatchIndex(node.Data[offset:])
		if m == nil {
			return
		}
		start, end := offset+m[0], offset+m[1]

		owner := ""
		if m[2] != -1 {
			owner = node.Data[offset+m[2] : offset+m[3]]
		}
		if owner == "" {
			owner = st.emojiOwner()
		}
		name := node.Data[offset+m[4] : offset+m[5]]

		if owner == "" {
			// No resolvable owner: the token stays literal.
			offset = end
			continue
		}

		token := node.Data[start:end]
		node, offset = replaceTextRange(node, start, end, emojiImage(st, owner, name, token)), 0
	}
}

func emojiImage(st *renderState, owner, name, token string) string {
	src := strings.TrimSuffix(st.opts.Hivemoji.BaseURL, "/") + "/" + owner + "/" + name + ".png"
	return fmt.Sprintf(
		`<img class="hivemoji" src=%q alt=%q width="24" height="24" loading="lazy">`,
		src, token)
}
