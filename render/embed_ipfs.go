package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var ipfsPathRegexp = regexp.MustCompile(`/ipfs/([A-Za-z0-9]+)`)

// rewriteIPFS replaces iframes pointing at a configured gateway with a
// <video> element carrying one <source> per gateway, in preference order,
// so the browser falls through to an alternate gateway when the preferred
// one is unreachable. Gateway content is always treated as video, never as
// a bare image, regardless of extension.
func rewriteIPFS(doc *goquery.Document, st *renderState) {
	doc.Find("iframe").Each(func(_ int, s *goquery.Selection) {
		src, ok := s.Attr("src")
		if !ok || !st.gatewayHosted(src) {
			return
		}
		m := ipfsPathRegexp.FindStringSubmatch(src)
		if m == nil {
			return
		}
		hash := m[1]

		var b strings.Builder
		fmt.Fprintf(&b, `<video controls preload="metadata" width="%d" height="%d">`,
			st.opts.AssetWidth, st.opts.AssetHeight)
		for _, gw := range st.opts.IPFSGateways {
			fmt.Fprintf(&b, `<source src=%q>`, gatewayURL(gw, hash))
		}
		b.WriteString(`</video>`)
		s.ReplaceWithHtml(b.String())
	})
}

// guardGatewayLinks forces anchors targeting gateway-hosted content to open
// in a new tab, so the browser does not attempt an in-page download of
// arbitrary content-addressed data.
func guardGatewayLinks(doc *goquery.Document, st *renderState) {
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		if !st.gatewayHosted(href) && !ipfsPathRegexp.MatchString(href) {
			return
		}
		s.SetAttr("target", "_blank")
		s.SetAttr("rel", "noopener noreferrer")
	})
}

func gatewayURL(gateway, hash string) string {
	return strings.TrimSuffix(gateway, "/") + "/ipfs/" + hash
}
