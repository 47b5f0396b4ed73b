package render

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// hiveLinkRegexp builds the matcher for post links on any of the sibling
// front-end domains: https?://(www.)?<domain>/<optional-category>/@author/permlink.
// The scheme and domain match case-insensitively; author and permlink are
// captured with their casing preserved, since they are case-sensitive
// identifiers on chain.
func hiveLinkRegexp(domains []string) *regexp.Regexp {
	if len(domains) == 0 {
		return nil
	}
	quoted := make([]string, len(domains))
	for i, d := range domains {
		quoted[i] = regexp.QuoteMeta(strings.ToLower(d))
	}
	return regexp.MustCompile(
		`^(?i:https?://(?:www\.)?(?:` + strings.Join(quoted, "|") + `))/(?:[A-Za-z0-9-]+/)?@([A-Za-z0-9.-]+)/([A-Za-z0-9-]+)/?$`)
}

// rewriteHiveLinks converts post links on sibling front-ends into internal
// links so navigation stays inside the application. All other anchor
// attributes are preserved.
func rewriteHiveLinks(doc *goquery.Document, st *renderState, re *regexp.Regexp) {
	if !st.opts.ConvertHiveURLs || re == nil {
		return
	}
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		m := re.FindStringSubmatch(href)
		if m == nil {
			return
		}
		s.SetAttr("href", st.opts.InternalURLPrefix+"/@"+m[1]+"/"+m[2])
	})
}
