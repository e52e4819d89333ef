package web

import (
	"net/url"
	"strconv"

	"github.com/sweeney/tinyml-panel/internal/logic"
)

// parseRGB reads r, g and b from q. Missing or malformed values are 0 and
// every channel is clamped to 0-255.
func parseRGB(q url.Values) logic.RGB {
	return logic.Clamp(toInt(q.Get("r")), toInt(q.Get("g")), toInt(q.Get("b")))
}

// toInt parses the leading decimal integer of s, ignoring leading spaces
// and anything after the digits. It returns 0 when there is none.
func toInt(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digits {
		return 0
	}

	n, err := strconv.Atoi(s[start:i])
	if err != nil {
		// Out of range; saturate so clamping still applies.
		if s[start] == '-' {
			return -1 << 31
		}
		return 1<<31 - 1
	}
	return n
}
