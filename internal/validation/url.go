// Package validation checks user-supplied values before they reach the
// network: API origins, content download URLs, capture IDs, and upload
// metadata.
//
// URL checks guard against server-side request forgery. Origins and
// download targets must not resolve to private IP ranges or cloud
// metadata endpoints. Private ranges can be permitted for development
// via the GYAZO_ALLOW_PRIVATE environment variable (any value accepted
// by strconv.ParseBool) or SetAllowPrivate(true); metadata endpoints
// stay blocked regardless.
package validation

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// allowPrivate permits private and localhost URLs. Set via
// GYAZO_ALLOW_PRIVATE or SetAllowPrivate.
var allowPrivate atomic.Bool

// privateNetworks holds the pre-parsed reserved ranges checked on every
// URL validation.
var privateNetworks []*net.IPNet

func init() {
	v, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv("GYAZO_ALLOW_PRIVATE")))
	allowPrivate.Store(v)

	privateCIDRs := []string{
		"10.0.0.0/8",      // RFC1918
		"172.16.0.0/12",   // RFC1918
		"192.168.0.0/16",  // RFC1918
		"100.64.0.0/10",   // RFC6598 shared address space
		"169.254.0.0/16",  // RFC3927 link local
		"192.0.0.0/24",    // RFC6890
		"192.0.2.0/24",    // RFC5737 documentation
		"198.18.0.0/15",   // RFC2544 benchmarking
		"198.51.100.0/24", // RFC5737 documentation
		"203.0.113.0/24",  // RFC5737 documentation
		"240.0.0.0/4",     // RFC1112 reserved
		"fc00::/7",        // RFC4193 unique local
		"fe80::/10",       // RFC4291 link local
		"ff00::/8",        // RFC4291 multicast
		"::1/128",         // loopback
		"::/128",          // unspecified
		"100::/64",        // RFC6666 discard
		"2001::/32",       // RFC4380 Teredo
		"2001:10::/28",    // RFC4843 ORCHID
		"2001:db8::/32",   // RFC3849 documentation
	}

	privateNetworks = make([]*net.IPNet, 0, len(privateCIDRs))
	for _, cidr := range privateCIDRs {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			continue
		}
		privateNetworks = append(privateNetworks, network)
	}
}

// SetAllowPrivate permits or forbids private and localhost URLs. Cloud
// metadata endpoints remain blocked either way.
func SetAllowPrivate(enabled bool) {
	allowPrivate.Store(enabled)
}

// AllowPrivateEnabled reports the current private-URL setting.
func AllowPrivateEnabled() bool {
	return allowPrivate.Load()
}

// ValidateOrigin validates a custom API or upload origin before a client
// is built on it. The URL must use http or https, carry a hostname, and
// must not point at localhost (unless private URLs are allowed), private
// ranges, or cloud metadata endpoints.
func ValidateOrigin(rawURL string) error {
	hostname, err := parseHTTPURL(rawURL)
	if err != nil {
		return err
	}

	if !allowPrivate.Load() && isLocalhost(hostname) {
		return fmt.Errorf("localhost URLs are not allowed")
	}
	if isCloudMetadata(hostname) {
		return fmt.Errorf("cloud metadata endpoints are not allowed")
	}

	if ip := net.ParseIP(hostname); ip != nil {
		return validateOriginIP(ip)
	}
	return validateResolvedIPs(hostname, validateOriginIP)
}

// ValidateDownloadURL validates a content URL before it is fetched.
// Download targets come back from API responses, so they get the same
// screening as origins except that loopback is always permitted; that
// keeps downloads working against a local test server.
func ValidateDownloadURL(rawURL string) error {
	hostname, err := parseHTTPURL(rawURL)
	if err != nil {
		return err
	}

	if isCloudMetadata(hostname) {
		return fmt.Errorf("cloud metadata endpoints are not allowed")
	}

	if ip := net.ParseIP(hostname); ip != nil {
		return validateDownloadIP(ip)
	}
	if isLocalhost(hostname) {
		return nil
	}
	return validateResolvedIPs(hostname, validateDownloadIP)
}

func parseHTTPURL(rawURL string) (string, error) {
	if rawURL == "" {
		return "", fmt.Errorf("URL cannot be empty")
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return "", fmt.Errorf("invalid URL scheme: only http and https are allowed, got %q", parsedURL.Scheme)
	}

	hostname := parsedURL.Hostname()
	if hostname == "" {
		return "", fmt.Errorf("URL must contain a hostname")
	}
	return hostname, nil
}

func isLocalhost(hostname string) bool {
	lowercase := strings.ToLower(hostname)
	switch lowercase {
	case "localhost", "127.0.0.1", "::1", "0.0.0.0", "::":
		return true
	}
	return strings.HasSuffix(lowercase, ".localhost")
}

func isCloudMetadata(hostname string) bool {
	lowercase := strings.ToLower(hostname)
	switch lowercase {
	case "169.254.169.254", // AWS, Azure, GCP, DigitalOcean
		"metadata.google.internal",
		"metadata",
		"instance-data",
		"fd00:ec2::254": // AWS IPv6
		return true
	}
	return strings.HasSuffix(lowercase, ".metadata.google.internal")
}

// validateOriginIP rejects private and reserved addresses for origins.
func validateOriginIP(ip net.IP) error {
	if ip.String() == "169.254.169.254" {
		return fmt.Errorf("cloud metadata IP address is not allowed")
	}
	if ip.IsUnspecified() {
		return fmt.Errorf("unspecified IP addresses are not allowed")
	}
	if ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
		return fmt.Errorf("link-local IP addresses are not allowed")
	}

	if allowPrivate.Load() {
		return nil
	}
	if ip.IsLoopback() {
		return fmt.Errorf("loopback IP addresses are not allowed")
	}
	if isPrivateIP(ip) {
		return fmt.Errorf("private IP addresses are not allowed")
	}
	return nil
}

// validateDownloadIP is validateOriginIP with loopback permitted.
func validateDownloadIP(ip net.IP) error {
	if ip.String() == "169.254.169.254" {
		return fmt.Errorf("cloud metadata IP address is not allowed")
	}
	if ip.IsLoopback() || ip.IsUnspecified() {
		return nil
	}
	if ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
		return fmt.Errorf("link-local IP addresses are not allowed")
	}
	if allowPrivate.Load() {
		return nil
	}
	if isPrivateIP(ip) {
		return fmt.Errorf("private IP addresses are not allowed")
	}
	return nil
}

func isPrivateIP(ip net.IP) bool {
	for _, network := range privateNetworks {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// validateResolvedIPs resolves a hostname and runs check against every
// address. Resolution failure passes; a name that does not resolve yet
// cannot be used to reach anything.
func validateResolvedIPs(hostname string, check func(net.IP) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resolver := &net.Resolver{}
	ips, err := resolver.LookupIP(ctx, "ip", hostname)
	if err != nil {
		return nil
	}

	for _, ip := range ips {
		if err := check(ip); err != nil {
			return fmt.Errorf("domain %q resolves to forbidden IP %s: %w", hostname, ip.String(), err)
		}
	}
	return nil
}
