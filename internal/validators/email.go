package validators

import (
	"net"
	"strings"
)

// HasEmailShape is the cheap structural check used before any DNS work.
func HasEmailShape(email string) bool {
	at := strings.LastIndex(email, "@")
	return at > 0 && at < len(email)-1
}

// IsEmailDomainValid resolves the domain to weed out obvious typos at
// sign-up. DNS being down should not block registration paths that
// choose to skip it.
func IsEmailDomainValid(email string) bool {
	if !HasEmailShape(email) {
		return false
	}

	domain := email[strings.LastIndex(email, "@")+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
