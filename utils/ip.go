package utils

import (
	"net"
	"net/http"
	"strings"
)

// RealClientIP returns the first hop of the X-Forwarded-For chain, which is
// the address the edge proxy recorded for the browser. Falls back to the
// socket address, and to "unknown" when nothing usable is present.
func RealClientIP(r *http.Request) string {
	if xfwd := r.Header.Get("X-Forwarded-For"); xfwd != "" {
		first := strings.SplitN(xfwd, ",", 2)[0]
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if ip == "" {
		return "unknown"
	}
	return ip
}

// UserAgent returns the request's User-Agent header, or "unknown" when the
// client sent none.
func UserAgent(r *http.Request) string {
	if ua := r.UserAgent(); ua != "" {
		return ua
	}
	return "unknown"
}
