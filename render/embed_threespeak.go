package render

import (
	"fmt"
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

// 3Speak URLs appear under both the current 3speak.tv domain and the legacy
// 3speak.online / 3speak.co domains, with watch and embed path variants.
// The resource ID is the owner/permlink pair.
var (
	threeSpeakVideoRegexp = regexp.MustCompile(`^https?://(?:play\.)?3speak\.(?:tv|online|co)/(?:watch|embed)\?v=([A-Za-z0-9_.-]+/[A-Za-z0-9_-]+)`)
	threeSpeakAudioRegexp = regexp.MustCompile(`^https?://(?:play\.)?3speak\.(?:tv|online|co)/audio\?v=([A-Za-z0-9_.-]+/[A-Za-z0-9_-]+)`)
)

// rewriteThreeSpeak replaces anchors linking to 3Speak video or audio with
// a fixed-aspect lazy iframe. Repeated links to the same owner/permlink
// collapse to a single embed; later duplicates stay plain links.
func rewriteThreeSpeak(doc *goquery.Document, st *renderState) {
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		if m := threeSpeakVideoRegexp.FindStringSubmatch(href); m != nil {
			embedThreeSpeak(s, st, m[1], "watch?v=", "video-container")
			return
		}
		if m := threeSpeakAudioRegexp.FindStringSubmatch(href); m != nil {
			embedThreeSpeak(s, st, m[1], "audio?v=", "audio-container")
		}
	})
}

func embedThreeSpeak(s *goquery.Selection, st *renderState, id, path, class string) {
	if st.seen(st.seenVideos, id) {
		return
	}
	src := "https://play.3speak.tv/" + path + id + "&mode=iframe"
	s.ReplaceWithHtml(fmt.Sprintf(
		`<div class=%q><iframe src=%q width="%d" height="%d" frameborder="0" allowfullscreen loading="lazy"></iframe></div>`,
		class, src, st.opts.AssetWidth, st.opts.AssetHeight))
}
