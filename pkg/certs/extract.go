package certs

import (
	"crypto/tls"
	"encoding/pem"
	"fmt"
	"io/ioutil"
	"net"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/miniodeploy/miniodeploy/pkg/shell"
)

// Extract connects to host:port, performs a TLS handshake accepting any
// certificate, and writes the leaf peer certificate to outPath as PEM.
func Extract(host string, port int, outPath string) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := tls.DialWithDialer(dialer, "tcp", addr, &tls.Config{
		InsecureSkipVerify: true,
	})
	if err != nil {
		return errors.Wrap(err, "Failed to connect to "+addr)
	}
	defer conn.Close()

	peers := conn.ConnectionState().PeerCertificates
	if len(peers) == 0 {
		return errors.New("server at " + addr + " presented no certificate")
	}

	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: peers[0].Raw})
	if err := ioutil.WriteFile(outPath, certPEM, 0644); err != nil {
		return errors.Wrap(err, "Failed to write certificate to "+outPath)
	}
	return nil
}

// TrustLocally installs a PEM certificate into the system trust store.
// Linux-only (Debian-style layout, which covers the Raspberry Pi targets);
// requires root.
func TrustLocally(certPath string) error {
	if os.Geteuid() != 0 {
		return errors.New("installing a certificate into the system trust store requires root")
	}
	const anchor = "/usr/local/share/ca-certificates/miniodeploy.crt"
	if _, _, err := shell.Run("cp", certPath, anchor); err != nil {
		return errors.Wrap(err, "Failed to copy certificate into the trust anchor directory")
	}
	if _, stderr, err := shell.Run("update-ca-certificates"); err != nil {
		return errors.Wrapf(err, "update-ca-certificates failed\n%s", stderr)
	}
	return nil
}
