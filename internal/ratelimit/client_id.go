package ratelimit

import "strings"

// DefaultClientID is used when no proxy header identifies the client.
const DefaultClientID = "127.0.0.1"

var realIPHeaders = []string{"X-Real-IP", "CF-Connecting-IP", "Fly-Client-IP"}

// ClientID derives a best-effort client identifier from proxy headers.
// Headers are client-controlled and can be spoofed; this only deters abuse.
func ClientID(header func(name string) string) string {
	forwarded := header("X-Forwarded-For")
	if forwarded == "" {
		forwarded = header("Forwarded")
	}
	if forwarded != "" {
		if ip := strings.TrimSpace(strings.Split(forwarded, ",")[0]); ip != "" {
			return ip
		}
	}

	for _, name := range realIPHeaders {
		if ip := strings.TrimSpace(header(name)); ip != "" {
			return ip
		}
	}
	return DefaultClientID
}
