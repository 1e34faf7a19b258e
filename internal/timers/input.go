package timers

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultSeconds replaces durations that fail to parse. It is applied at the
// input boundary, never inside the registry.
const DefaultSeconds int64 = 300

// ParseSecondsOr parses a user supplied duration in whole seconds, returning
// fallback for anything that is not a non-negative integer.
func ParseSecondsOr(text string, fallback int64) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// ParseSpecOr parses "label=seconds" as accepted by the --timer flag. A spec
// with no "=", or a malformed duration, gets fallback seconds.
func ParseSpecOr(spec string, fallback int64) (string, int64, error) {
	label, secs, found := strings.Cut(spec, "=")
	label = strings.TrimSpace(label)
	if label == "" {
		return "", 0, fmt.Errorf("timer spec %q: missing label", spec)
	}
	if !found {
		return label, fallback, nil
	}
	return label, ParseSecondsOr(secs, fallback), nil
}

// FormatRemaining renders seconds as HH:MM:SS.
func FormatRemaining(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}
