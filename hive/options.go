package hive

// RenderOptions is the immutable rendering profile built once per
// application instance and shared by every render call.
type RenderOptions struct {
	// BaseURL is the absolute origin of this front-end, used when
	// relative links need to be resolved.
	BaseURL string

	// IPFSGateways lists gateway origins in preference order. The first
	// entry is the preferred gateway; the rest are fallbacks offered as
	// alternate <source> elements on gateway-hosted video.
	IPFSGateways []string

	// AccountURL maps an account name (without the @) to a profile URL.
	AccountURL func(account string) string

	// TagURL maps a hashtag (without the #) to a topic URL.
	TagURL func(tag string) string

	// HiveDomains lists sibling front-end domains whose post links are
	// rewritten to internal links when ConvertHiveURLs is set.
	HiveDomains []string

	ConvertHiveURLs   bool
	InternalURLPrefix string

	// AssetWidth and AssetHeight bound embedded media.
	AssetWidth  int
	AssetHeight int

	// ImageProxy, when non-nil, rewrites image URLs through a proxy.
	ImageProxy func(url string) string

	Hivemoji HivemojiOptions
}

// HivemojiOptions controls inline :owner/name: emoji substitution.
type HivemojiOptions struct {
	Enabled bool
	// BaseURL is the emoji image service origin, e.g. "https://images.hive.blog/hivemoji".
	BaseURL string
	// DefaultOwner resolves :name: tokens that carry no owner segment.
	// Overridable per call via RenderContext.
	DefaultOwner string
}

// RenderContext carries per-call overrides that vary per rendered item
// rather than per application instance.
type RenderContext struct {
	// DefaultEmojiOwner overrides Hivemoji.DefaultOwner, typically set to
	// the post author.
	DefaultEmojiOwner string
}

const (
	defaultAssetWidth  = 640
	defaultAssetHeight = 480
)

var defaultIPFSGateways = []string{
	"https://ipfs.io/",
	"https://cloudflare-ipfs.com/",
}

// WithDefaults returns a copy of the options with zero-valued fields
// filled in. The receiver is not modified.
func (o RenderOptions) WithDefaults() RenderOptions {
	if o.AssetWidth == 0 {
		o.AssetWidth = defaultAssetWidth
	}
	if o.AssetHeight == 0 {
		o.AssetHeight = defaultAssetHeight
	}
	if len(o.IPFSGateways) == 0 {
		o.IPFSGateways = defaultIPFSGateways
	}
	if o.AccountURL == nil {
		o.AccountURL = func(account string) string { return "/@" + account }
	}
	if o.TagURL == nil {
		o.TagURL = func(tag string) string { return "/trending/" + tag }
	}
	return o
}
