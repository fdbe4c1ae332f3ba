package probe

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"time"
)

// DNSClass is a rough diagnosis of why a hostname did or did not
// resolve, used to enrich transport-error reasons.
type DNSClass string

const (
	DNSResolves  DNSClass = "RESOLVES"
	DNSNXDomain  DNSClass = "NXDOMAIN"
	DNSNoARecord DNSClass = "NO_A_RECORD"
	DNSServfail  DNSClass = "SERVFAIL_or_TIMEOUT"
	DNSInvalid   DNSClass = "INVALID_NAME"
)

var dnsTimeout = 3 * time.Second

// ClassifyDNS resolves the host of rawURL with the OS resolver and
// classifies the answer. It never fails; unresolvable situations map
// to one of the error classes.
func ClassifyDNS(rawURL string) DNSClass {
	host := extractHost(rawURL)
	if host == "" || strings.Contains(host, "://") {
		return DNSInvalid
	}

	ctx, cancel := context.WithTimeout(context.Background(), dnsTimeout)
	defer cancel()
	r := &net.Resolver{}

	ips, err := r.LookupIP(ctx, "ip", host)
	if err == nil && len(ips) > 0 {
		return DNSResolves
	}

	notFound := false
	if err != nil {
		var de *net.DNSError
		if errors.As(err, &de) {
			if de.IsTemporary || de.Timeout() {
				return DNSServfail
			}
			notFound = de.IsNotFound
		}
	}

	// A name with NS records but no address records is delegated but
	// unpopulated; report that separately from a missing name.
	if ns, nsErr := r.LookupNS(ctx, host); nsErr == nil && len(ns) > 0 {
		return DNSNoARecord
	}
	if notFound {
		return DNSNXDomain
	}
	return DNSServfail
}

func extractHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	return u.Hostname()
}
