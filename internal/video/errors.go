package video

import "fmt"

// Native HTMLMediaElement error codes.
const (
	MediaErrAborted         = 1
	MediaErrNetwork         = 2
	MediaErrDecode          = 3
	MediaErrSrcNotSupported = 4
)

// DecodeMediaError maps a native media error code to an operator-facing
// message. The source value is stringified defensively because players
// hand over whatever the DOM had, not always a string.
func DecodeMediaError(code int, source any) string {
	src := stringifySource(source)

	switch code {
	case MediaErrAborted:
		return fmt.Sprintf("playback aborted for %s", src)
	case MediaErrNetwork:
		return fmt.Sprintf("network error while fetching %s", src)
	case MediaErrDecode:
		return fmt.Sprintf("cannot decode %s", src)
	case MediaErrSrcNotSupported:
		return fmt.Sprintf("source not supported: %s", src)
	default:
		return fmt.Sprintf("unknown media error %d for %s", code, src)
	}
}

func stringifySource(source any) string {
	switch v := source.(type) {
	case nil:
		return "unknown source"
	case string:
		if v == "" {
			return "unknown source"
		}
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
