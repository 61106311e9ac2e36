// Package security validates outbound image URLs before download. Candidate
// locators come from an external search index and are untrusted; fetching
// them must not be usable to probe the local network.
package security

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

var blockedCIDRs = mustCIDRs([]string{
	"127.0.0.0/8",
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"169.254.0.0/16",
	"100.64.0.0/10",
	"0.0.0.0/8",
	"::1/128",
	"fc00::/7",
	"fe80::/10",
})

func mustCIDRs(cidrs []string) []*net.IPNet {
	out := make([]*net.IPNet, 0, len(cidrs))
	for _, cidr := range cidrs {
		_, block, err := net.ParseCIDR(cidr)
		if err == nil {
			out = append(out, block)
		}
	}
	return out
}

// ValidateFetchURL checks a candidate URL before an outbound download to
// reduce SSRF risk: http(s) scheme only, no local hostnames, and no host
// that is or resolves to a private address.
func ValidateFetchURL(rawURL string) error {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return fmt.Errorf("empty url")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("unsupported url scheme: %s", parsed.Scheme)
	}

	host := strings.ToLower(strings.TrimSpace(parsed.Hostname()))
	switch {
	case host == "":
		return fmt.Errorf("url host is required")
	case host == "localhost",
		strings.HasSuffix(host, ".localhost"),
		strings.HasSuffix(host, ".local"),
		strings.HasSuffix(host, ".internal"):
		return fmt.Errorf("blocked local hostname: %s", host)
	}

	if ip := net.ParseIP(host); ip != nil {
		if isBlockedIP(ip) {
			return fmt.Errorf("blocked private or local ip: %s", host)
		}
		return nil
	}

	addrs, err := net.LookupIP(host)
	if err != nil {
		return fmt.Errorf("failed to resolve host: %w", err)
	}
	if len(addrs) == 0 {
		return fmt.Errorf("host resolution returned no addresses")
	}
	for _, ip := range addrs {
		if isBlockedIP(ip) {
			return fmt.Errorf("host %s resolves to a private or local ip", host)
		}
	}
	return nil
}

func isBlockedIP(ip net.IP) bool {
	for _, cidr := range blockedCIDRs {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}
