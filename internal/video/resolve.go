package video

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vasstra/vasstra-storefront/pkg/enums"
)

// Source is the playable descriptor a raw video URL resolves to. An
// embedded platform with an empty EmbedURL means the id could not be
// extracted; callers render a fallback link instead of a player.
type Source struct {
	Type     enums.VideoSource
	VideoID  string
	EmbedURL string
	// DirectURL is set only for html5 sources and is the raw input.
	DirectURL string
}

type platform struct {
	source   enums.VideoSource
	markers  []string
	patterns []*regexp.Regexp
	embed    string
}

// Platforms are checked in order; the first domain marker hit wins, so
// a vimeo.com URL never reaches the file-extension heuristics.
var platforms = []platform{
	{
		source:  enums.VideoSourceYouTube,
		markers: []string{"youtube.com", "youtu.be"},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`[?&]v=([A-Za-z0-9_-]{6,})`),
			regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{6,})`),
			regexp.MustCompile(`/embed/([A-Za-z0-9_-]{6,})`),
			regexp.MustCompile(`/shorts/([A-Za-z0-9_-]{6,})`),
		},
		embed: "https://www.youtube.com/embed/%s?autoplay=1&mute=1&controls=1",
	},
	{
		source:  enums.VideoSourceVimeo,
		markers: []string{"vimeo.com"},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`vimeo\.com/(?:video/)?(\d+)`),
			regexp.MustCompile(`player\.vimeo\.com/video/(\d+)`),
		},
		embed: "https://player.vimeo.com/video/%s?autoplay=1&muted=1",
	},
	{
		source:  enums.VideoSourceInstagram,
		markers: []string{"instagram.com"},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`instagram\.com/(?:p|reel|tv)/([A-Za-z0-9_-]+)`),
		},
		embed: "https://www.instagram.com/p/%s/embed",
	},
	{
		source:  enums.VideoSourceTikTok,
		markers: []string{"tiktok.com"},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`tiktok\.com/@[\w.-]+/video/(\d+)`),
			regexp.MustCompile(`tiktok\.com/embed/v2/(\d+)`),
		},
		embed: "https://www.tiktok.com/embed/v2/%s",
	},
}

// Resolve classifies raw into a playable source. Empty input is
// unknown; any non-empty string that is not an embedded platform is
// treated as a direct html5 file, whether or not it carries a
// recognizable video extension.
func Resolve(raw string) Source {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Source{Type: enums.VideoSourceUnknown}
	}
	lowered := strings.ToLower(trimmed)

	for _, p := range platforms {
		if !containsAny(lowered, p.markers) {
			continue
		}
		src := Source{Type: p.source}
		for _, pattern := range p.patterns {
			if m := pattern.FindStringSubmatch(trimmed); m != nil {
				src.VideoID = m[1]
				src.EmbedURL = fmt.Sprintf(p.embed, m[1])
				break
			}
		}
		return src
	}

	return Source{Type: enums.VideoSourceHTML5, DirectURL: trimmed}
}

func containsAny(s string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}
