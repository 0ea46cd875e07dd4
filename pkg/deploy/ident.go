package deploy

import (
	"net"
	"os"

	"github.com/pkg/errors"
)

// Identity is the machine's view of itself, used to seed the certificate
// SAN list and to print reachable URLs.
type Identity struct {
	IP       string
	Hostname string
}

// LocalIdentity detects the primary outbound IPv4 address and the hostname.
// The UDP dial never sends a packet; it only asks the kernel which source
// address it would route from.
func LocalIdentity() (Identity, error) {
	conn, err := net.Dial("udp4", "8.8.8.8:53")
	if err != nil {
		return Identity{}, errors.Wrap(err, "Failed to detect local IP address")
	}
	defer conn.Close()
	ip := conn.LocalAddr().(*net.UDPAddr).IP.String()

	hostname, err := os.Hostname()
	if err != nil {
		return Identity{}, errors.Wrap(err, "Failed to detect hostname")
	}
	return Identity{IP: ip, Hostname: hostname}, nil
}
