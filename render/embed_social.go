package render

import (
	"fmt"
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Status/post URL shapes for the two short-form platforms. The anchored
// variants serve the anchor pass; the bare variants find URLs sitting in
// plain text. The anchor pass must run before the bare pass so an already
// wrapped URL is never processed twice.
var (
	tweetAnchorRegexp = regexp.MustCompile(`^https?://(?:www\.)?(?:twitter|x)\.com/[A-Za-z0-9_]+/status(?:es)?/(\d+)`)
	tweetBareRegexp   = regexp.MustCompile(`https?://(?:www\.)?(?:twitter|x)\.com/[A-Za-z0-9_]+/status(?:es)?/(\d+)\S*`)

	instagramAnchorRegexp = regexp.MustCompile(`^https?://(?:www\.)?instagram\.com/(?:p|reel|reels|tv)/([A-Za-z0-9_-]+)`)
	instagramBareRegexp   = regexp.MustCompile(`https?://(?:www\.)?instagram\.com/(?:p|reel|reels|tv)/([A-Za-z0-9_-]+)\S*`)
)

// rewriteTweets replaces tweet links with the platform's embed iframe,
// one embed per tweet ID per document.
func rewriteTweets(doc *goquery.Document, st *renderState) {
	rewriteSocial(doc, st, st.seenTweets, tweetAnchorRegexp, tweetBareRegexp, tweetEmbed)
}

// rewriteInstagram replaces Instagram post/reel links with the official
// embed endpoint, one embed per shortcode per document.
func rewriteInstagram(doc *goquery.Document, st *renderState) {
	rewriteSocial(doc, st, st.seenShortcodes, instagramAnchorRegexp, instagramBareRegexp, instagramEmbed)
}

func tweetEmbed(st *renderState, id string) string {
	return fmt.Sprintf(
		`<div class="tweet-embed"><iframe src=%q width="%d" height="%d" frameborder="0" loading="lazy"></iframe></div>`,
		"https://platform.twitter.com/embed/Tweet.html?id="+id,
		st.opts.AssetWidth, st.opts.AssetHeight)
}

func instagramEmbed(st *renderState, id string) string {
	return fmt.Sprintf(
		`<div class="instagram-embed"><iframe src=%q width="%d" height="%d" frameborder="0" loading="lazy"></iframe></div>`,
		"https://www.instagram.com/p/"+id+"/embed/captioned",
		st.opts.AssetWidth, st.opts.AssetHeight)
}

// rewriteSocial runs the anchor pass, then the bare-text pass. Duplicate
// IDs are left untouched in whichever form they appear.
func rewriteSocial(doc *goquery.Document, st *renderState, seen map[string]struct{},
	anchorRe, bareRe *regexp.Regexp, embed func(*renderState, string) string) {

	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		m := anchorRe.FindStringSubmatch(href)
		if m == nil {
			return
		}
		if st.seen(seen, m[1]) {
			return
		}
		s.ReplaceWithHtml(embed(st, m[1]))
	})

	body := doc.Find("body")
	if len(body.Nodes) == 0 {
		return
	}
	eachTextNode(body.Nodes[0], skipBareURLsIn, func(tn *html.Node) {
		rewriteBareURL(tn, st, seen, bareRe, embed)
	})
}

// skipBareURLsIn guards the bare-text pass against rewriting inside anchors
// and code-like containers.
func skipBareURLsIn(n *html.Node) bool {
	switch n.Data {
	case "a", "code", "pre", "script", "style", "textarea":
		return true
	}
	return false
}

func rewriteBareURL(tn *html.Node, st *renderState, seen map[string]struct{},
	bareRe *regexp.Regexp, embed func(*renderState, string) string) {

	node, offset := tn, 0
	for node != nil {
		m := bareRe.FindStringSubmatchIndex(node.Data[offset:])
		if m == nil {
			return
		}
		start, end := offset+m[0], offset+m[1]
		id := node.Data[offset+m[2] : offset+m[3]]
		if st.seen(seen, id) {
			// Duplicate reference stays literal text; keep scanning.
			offset = end
			continue
		}
		node, offset = replaceTextRange(node, start, end, embed(st, id)), 0
	}
}
