package render

import "github.com/PuerkitoBio/goquery"

// enhanceImages lazy-loads every image and routes sources through the
// configured image proxy when one is set.
func enhanceImages(doc *goquery.Document, st *renderState) {
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		s.SetAttr("loading", "lazy")
		if st.opts.ImageProxy == nil {
			return
		}
		if src, ok := s.Attr("src"); ok {
			s.SetAttr("src", st.opts.ImageProxy(src))
		}
	})
}
