// Subject-Alternative-Name assembly for the self-signed deployment
// certificate.
package certs

import (
	"regexp"
	"strings"
)

// EntryKind tags a SAN entry as an IP literal or a DNS name.
type EntryKind string

const (
	KindIP  EntryKind = "IP"
	KindDNS EntryKind = "DNS"
)

// SAN is a single subject-alternative-name entry.
type SAN struct {
	Kind  EntryKind
	Value string
}

func (s SAN) String() string {
	return string(s.Kind) + ":" + s.Value
}

// Four dot-separated digit groups. Deliberately permissive: octets are not
// range-checked, so 999.999.999.999 classifies as an IP. Tightening this
// would change which entries land in the certificate, so it stays loose.
var ipLiteral = regexp.MustCompile(`^[0-9]+\.[0-9]+\.[0-9]+\.[0-9]+$`)

// Classify tags a single entry as an IP literal or a DNS name.
func Classify(value string) EntryKind {
	if ipLiteral.MatchString(value) {
		return KindIP
	}
	return KindDNS
}

// AssembleSANs builds the SAN list for a certificate request. The first four
// entries are always, in order: the loopback IP, the detected local IP, the
// loopback DNS name and the detected hostname. Extras is an optional
// comma-separated list; each entry is trimmed, classified, and appended in
// input order. Duplicates are kept as-is.
func AssembleSANs(localIP, hostname, extras string) []SAN {
	sans := []SAN{
		{KindIP, "127.0.0.1"},
		{KindIP, localIP},
		{KindDNS, "localhost"},
		{KindDNS, hostname},
	}

	if extras == "" {
		return sans
	}
	for _, raw := range strings.Split(extras, ",") {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}
		sans = append(sans, SAN{Classify(entry), entry})
	}
	return sans
}

// FormatSANs renders the comma-joined IP:/DNS: string form used in status
// output and logs.
func FormatSANs(sans []SAN) string {
	parts := make([]string, len(sans))
	for i, s := range sans {
		parts[i] = s.String()
	}
	return strings.Join(parts, ",")
}
