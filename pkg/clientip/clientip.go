package clientip

import (
	"net"
	"net/http"
	"strings"
)

// proxyHeaders are consulted in order before RemoteAddr.
var proxyHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// FromRequest returns the normalized client address of r, or "" if none of
// the proxy headers nor RemoteAddr hold a valid IP. X-Forwarded-For yields
// its first valid entry.
func FromRequest(r *http.Request) string {
	for _, name := range proxyHeaders {
		value := r.Header.Get(name)
		if value == "" {
			continue
		}
		for candidate := range strings.SplitSeq(value, ",") {
			if ip := normalize(candidate); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return normalize(r.RemoteAddr)
	}
	return normalize(host)
}

func normalize(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
