package params

import "fmt"

// Cache windows in seconds.
const (
	SixHours          = 6 * 60 * 60
	OneDay            = 24 * 60 * 60
	CardCacheSeconds  = SixHours
	ErrorCacheSeconds = 10 * 60
)

// CacheSeconds returns the effective success cache window. The requested value
// is clamped to [SixHours, OneDay]; a positive operator override wins outright.
func CacheSeconds(requested, override string) int {
	seconds := CardCacheSeconds
	if n, ok := ParseInt(requested); ok {
		seconds = n
	}
	seconds = Clamp(seconds, SixHours, OneDay)
	if n, ok := ParseInt(override); ok && n > 0 {
		return n
	}
	return seconds
}

// CacheControl formats the Cache-Control header value for a window of seconds.
func CacheControl(seconds int) string {
	return fmt.Sprintf("max-age=%d, s-maxage=%d, stale-while-revalidate=%d", seconds/2, seconds, OneDay)
}
