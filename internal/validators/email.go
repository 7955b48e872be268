package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

const dnsLookupTimeout = 3 * time.Second

var resolver = &net.Resolver{}

// IsEmailDomainValid verifica se o domínio do e-mail resolve via MX
// ou, na falta, via A/AAAA. Consultas DNS respeitam dnsLookupTimeout.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	ctx, cancel := context.WithTimeout(context.Background(), dnsLookupTimeout)
	defer cancel()

	if mx, err := resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := resolver.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
