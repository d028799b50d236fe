package metadata

import (
	"net/http"
	"net/netip"
	"strings"

	"github.com/mssola/useragent"

	"kycscan/pkg/requestcontext"
)

// maxForwardedHeaderLength bounds X-Forwarded-For parsing.
const maxForwardedHeaderLength = 500

// Middleware records the client IP and a parsed User-Agent on the request context.
// Forwarded headers are honoured only when the direct peer is a trusted proxy.
type Middleware struct {
	trustedProxies []netip.Prefix
}

// New creates a metadata middleware. With no trusted proxies, forwarded headers are ignored.
func New(trustedProxies ...netip.Prefix) *Middleware {
	return &Middleware{trustedProxies: trustedProxies}
}

func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent := r.Header.Get("User-Agent")
		ctx := requestcontext.WithClientMetadata(r.Context(), m.clientIP(r), userAgent)
		ctx = requestcontext.WithDevice(ctx, ParseDevice(userAgent))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ParseDevice summarizes a User-Agent string. Webcam frames from mobile
// browsers are noisier, so the liveness handler logs this alongside decisions.
func ParseDevice(userAgent string) requestcontext.Device {
	if userAgent == "" {
		return requestcontext.Device{Browser: "unknown", OS: "unknown"}
	}
	ua := useragent.New(userAgent)
	browser, _ := ua.Browser()
	d := requestcontext.Device{
		Browser: strings.ToLower(strings.TrimSpace(browser)),
		OS:      strings.ToLower(strings.TrimSpace(ua.OS())),
		Mobile:  ua.Mobile(),
		Bot:     ua.Bot(),
	}
	if d.Browser == "" {
		d.Browser = "unknown"
	}
	if d.OS == "" {
		d.OS = "unknown"
	}
	return d
}

func (m *Middleware) clientIP(r *http.Request) string {
	remoteIP := remoteAddrIP(r.RemoteAddr)
	if remoteIP == "" {
		return "unknown"
	}
	if !m.trusted(remoteIP) {
		return remoteIP
	}

	xff := r.Header.Get("X-Forwarded-For")
	if xff == "" {
		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" && len(xri) <= maxForwardedHeaderLength {
			return xri
		}
		return remoteIP
	}
	if len(xff) > maxForwardedHeaderLength {
		return remoteIP
	}

	first, _, _ := strings.Cut(xff, ",")
	first = strings.TrimSpace(first)
	if _, err := netip.ParseAddr(first); err != nil {
		return remoteIP
	}
	return first
}

func (m *Middleware) trusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	for _, prefix := range m.trustedProxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func remoteAddrIP(remoteAddr string) string {
	if remoteAddr == "" {
		return ""
	}
	if ap, err := netip.ParseAddrPort(remoteAddr); err == nil {
		return ap.Addr().String()
	}
	if addr, err := netip.ParseAddr(strings.Trim(remoteAddr, "[]")); err == nil {
		return addr.String()
	}
	return remoteAddr
}
