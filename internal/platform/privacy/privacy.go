// Package privacy masks personal data before it reaches logs or traces.
// Extracted KYC values are never logged raw.
package privacy

import (
	"fmt"
	"net"
	"strings"
)

// AnonymizeIP zeroes the host part of an address: the last octet for IPv4,
// everything past the /48 prefix for IPv6. Returns "unknown" for empty input
// and "invalid" for unparseable input.
func AnonymizeIP(ip string) string {
	if ip == "" || ip == "unknown" {
		return "unknown"
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "invalid"
	}
	if v4 := parsed.To4(); v4 != nil {
		return fmt.Sprintf("%d.%d.%d.0", v4[0], v4[1], v4[2])
	}
	return fmt.Sprintf("%02x%02x:%02x%02x:%02x%02x::",
		parsed[0], parsed[1], parsed[2], parsed[3], parsed[4], parsed[5])
}

// MaskTrailing keeps the last keep characters of v and replaces the rest with '*'.
// Whitespace is dropped first so grouped ID numbers mask consistently.
func MaskTrailing(v string, keep int) string {
	compact := strings.Join(strings.Fields(v), "")
	if compact == "" {
		return ""
	}
	runes := []rune(compact)
	if keep >= len(runes) {
		keep = len(runes) / 2
	}
	return strings.Repeat("*", len(runes)-keep) + string(runes[len(runes)-keep:])
}

// MaskEmail keeps the first character of the local part and the domain.
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return MaskTrailing(email, 2)
	}
	return string([]rune(local)[0]) + "***@" + domain
}
