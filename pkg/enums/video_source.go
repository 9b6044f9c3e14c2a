package enums

import "fmt"

// VideoSource classifies where a promotional video URL points.
type VideoSource string

const (
	VideoSourceYouTube   VideoSource = "youtube"
	VideoSourceVimeo     VideoSource = "vimeo"
	VideoSourceInstagram VideoSource = "instagram"
	VideoSourceTikTok    VideoSource = "tiktok"
	VideoSourceHTML5     VideoSource = "html5"
	VideoSourceUnknown   VideoSource = "unknown"
)

var validVideoSources = []VideoSource{
	VideoSourceYouTube,
	VideoSourceVimeo,
	VideoSourceInstagram,
	VideoSourceTikTok,
	VideoSourceHTML5,
	VideoSourceUnknown,
}

// String implements fmt.Stringer.
func (v VideoSource) String() string {
	return string(v)
}

// IsValid reports whether the value is a known VideoSource.
func (v VideoSource) IsValid() bool {
	for _, candidate := range validVideoSources {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVideoSource converts raw input into a VideoSource.
func ParseVideoSource(value string) (VideoSource, error) {
	for _, candidate := range validVideoSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid video source %q", value)
}
