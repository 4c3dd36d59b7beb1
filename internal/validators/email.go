package validators

import (
	"net"
	"net/mail"
	"strings"
)

// IsEmailAddressValid checks RFC 5322 syntax without touching the network.
func IsEmailAddressValid(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// IsEmailDomainValid verifies the address domain resolves to a mail host.
// DNS lookups make this best suited to form submissions, not hot paths.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
