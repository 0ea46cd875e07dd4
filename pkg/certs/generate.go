package certs

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

const (
	// File names MinIO expects inside its certs directory.
	KeyFileName  = "private.key"
	CertFileName = "public.crt"

	keyBits      = 2048
	validityDays = 365
)

// Request describes the certificate to generate.
type Request struct {
	CommonName string
	SANs       []SAN
}

// Exists reports whether both the key and the certificate are already
// present in dir. An existing pair is reused rather than regenerated.
func Exists(dir string) bool {
	_, errKey := os.Stat(filepath.Join(dir, KeyFileName))
	_, errCert := os.Stat(filepath.Join(dir, CertFileName))
	return errKey == nil && errCert == nil
}

// Generate produces a self-signed RSA certificate covering the requested
// SANs, returning PEM-encoded certificate and key.
func Generate(req Request) (certPEM, keyPEM []byte, err error) {
	priv, err := rsa.GenerateKey(rand.Reader, keyBits)
	if err != nil {
		return nil, nil, errors.Wrap(err, "Failed to generate RSA key")
	}

	template, err := newTemplate(req.CommonName)
	if err != nil {
		return nil, nil, err
	}
	for _, san := range req.SANs {
		switch san.Kind {
		case KindIP:
			if ip := net.ParseIP(san.Value); ip != nil {
				template.IPAddresses = append(template.IPAddresses, ip)
			} else {
				// Permissively classified entries like 999.999.999.999
				// aren't parseable addresses; carry them as DNS names so
				// the certificate still covers what the user asked for.
				template.DNSNames = append(template.DNSNames, san.Value)
			}
		case KindDNS:
			template.DNSNames = append(template.DNSNames, san.Value)
		}
	}

	certBytes, err := x509.CreateCertificate(rand.Reader, template, template, &priv.PublicKey, priv)
	if err != nil {
		return nil, nil, errors.Wrap(err, "Failed to create certificate")
	}
	certPEM = pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certBytes})

	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, nil, errors.Wrap(err, "Failed to marshal private key")
	}
	keyPEM = pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyBytes})

	return certPEM, keyPEM, nil
}

// WriteFiles writes the pair into dir: the key owner-only, the certificate
// world-readable so it can be handed to clients.
func WriteFiles(dir string, certPEM, keyPEM []byte) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "Failed to create certificate directory "+dir)
	}
	keyPath := filepath.Join(dir, KeyFileName)
	if err := writeFile(keyPath, keyPEM, 0600); err != nil {
		return errors.Wrap(err, "Failed to write "+keyPath)
	}
	certPath := filepath.Join(dir, CertFileName)
	if err := writeFile(certPath, certPEM, 0644); err != nil {
		return errors.Wrap(err, "Failed to write "+certPath)
	}
	return nil
}

func writeFile(path string, data []byte, mode os.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	// The file may predate this run with looser permissions.
	if err := f.Chmod(mode); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func newTemplate(commonName string) (*x509.Certificate, error) {
	notBefore := time.Now()
	notAfter := notBefore.Add(validityDays * 24 * time.Hour)

	serialNumberLimit := new(big.Int).Lsh(big.NewInt(1), 128)
	serialNumber, err := rand.Int(rand.Reader, serialNumberLimit)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to generate serial number")
	}

	return &x509.Certificate{
		SerialNumber: serialNumber,
		Subject: pkix.Name{
			CommonName:   commonName,
			Organization: []string{"MinIO Deploy"},
		},
		NotBefore:             notBefore,
		NotAfter:              notAfter,
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}, nil
}
