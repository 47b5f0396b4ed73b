package hive

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Account name grammar follows the blockchain convention: dot-separated
// segments of at least three characters, each starting with a letter and
// ending with a letter or digit.
var accountSegmentRegexp = regexp.MustCompile(`^[a-z][a-z0-9-]*[a-z0-9]$`)

var permlinkRegexp = regexp.MustCompile(`^[a-z0-9-]+$`)

// ValidAccountName reports whether name is a well-formed account name.
func ValidAccountName(name string) bool {
	if len(name) < 3 || len(name) > 16 {
		return false
	}
	for _, segment := range strings.Split(name, ".") {
		if len(segment) < 3 || !accountSegmentRegexp.MatchString(segment) {
			return false
		}
	}
	return true
}

// ValidPermlink reports whether permlink is a well-formed post permlink.
// Permlinks are case-sensitive identifiers on the chain, but every permlink
// this system produces is already lowercase.
func ValidPermlink(permlink string) bool {
	return permlink != "" && len(permlink) <= 256 && permlinkRegexp.MatchString(permlink)
}

var permlinkStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Permlink derives a permlink slug from a post title: diacritics are
// stripped, letters lowercased, and every run of other characters collapsed
// to a single dash.
func Permlink(title string) string {
	stripped, _, err := transform.String(permlinkStripper, title)
	if err != nil {
		stripped = title
	}

	var b strings.Builder
	dash := true // suppress leading dash
	for _, r := range strings.ToLower(stripped) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
