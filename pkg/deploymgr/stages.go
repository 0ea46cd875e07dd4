package deploymgr

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/miniodeploy/miniodeploy/pkg/certs"
	"github.com/miniodeploy/miniodeploy/pkg/compose"
	"github.com/miniodeploy/miniodeploy/pkg/health"
	"github.com/miniodeploy/miniodeploy/pkg/s3check"
)

// checkPrereqs resolves the compose command form, which also proves docker
// itself is installed.
func (m *DeployManager) checkPrereqs() error {
	_, err := m.ComposeDriver()
	return err
}

// EnsureCertificates generates the self-signed key pair unless one already
// exists. force discards an existing pair.
func (m *DeployManager) EnsureCertificates(force bool) error {
	if !force && certs.Exists(m.Config.CertDir) {
		m.Logger.Info("Reusing existing certificates in " + m.Config.CertDir)
		return nil
	}

	ident, err := m.Identity()
	if err != nil {
		return err
	}

	sans := certs.AssembleSANs(ident.IP, ident.Hostname, m.Config.ExtraSANs)
	m.Logger.Info("Certificate SANs: " + certs.FormatSANs(sans))

	certPEM, keyPEM, err := certs.Generate(certs.Request{
		CommonName: ident.Hostname,
		SANs:       sans,
	})
	if err != nil {
		return err
	}
	if err := certs.WriteFiles(m.Config.CertDir, certPEM, keyPEM); err != nil {
		return err
	}
	m.Logger.Info("Wrote certificates to " + m.Config.CertDir)
	return nil
}

// ProvisionDataDir creates the host data directory owner-only. Existing
// directories are left untouched apart from tightening the mode.
func (m *DeployManager) ProvisionDataDir() error {
	if err := os.MkdirAll(m.Config.DataDir, 0700); err != nil {
		return errors.Wrap(err, "Failed to create data directory "+m.Config.DataDir)
	}
	if err := os.Chmod(m.Config.DataDir, 0700); err != nil {
		return errors.Wrap(err, "Failed to set permissions on "+m.Config.DataDir)
	}
	return nil
}

// WriteComposeDescriptor renders the compose file if it doesn't exist yet.
func (m *DeployManager) WriteComposeDescriptor() error {
	return compose.WriteDescriptor(m.Config.ComposeFile, compose.DefaultDescriptor(m.Config))
}

// StartStack brings the stack up detached.
func (m *DeployManager) StartStack() error {
	driver, err := m.ComposeDriver()
	if err != nil {
		return err
	}
	m.Logger.Info("Starting the storage stack")
	return driver.Up()
}

// StopStack takes the stack down. Data and certificates stay on disk.
func (m *DeployManager) StopStack() error {
	driver, err := m.ComposeDriver()
	if err != nil {
		return err
	}
	m.Logger.Info("Stopping the storage stack")
	return driver.Down()
}

// HealthURL is the server's liveness endpoint on the local host.
func (m *DeployManager) HealthURL() string {
	return fmt.Sprintf("https://localhost:%d/minio/health/live", m.Config.APIPort)
}

// WaitHealthy polls the liveness endpoint with the configured budget.
func (m *DeployManager) WaitHealthy() error {
	poller := health.NewPoller(m.Logger.WithField("module", "health"))
	if m.Config.HealthAttempts > 0 {
		poller.MaxAttempts = m.Config.HealthAttempts
	}
	if m.Config.HealthInterval > 0 {
		poller.Interval = m.Config.HealthInterval
	}
	m.Logger.Info("Waiting for " + m.HealthURL())
	return poller.Wait(m.HealthURL())
}

// CheckS3 runs the end-to-end S3 smoke check with the deployment
// credentials, trusting the generated certificate when present.
func (m *DeployManager) CheckS3() (string, error) {
	var caCert []byte
	certPath := filepath.Join(m.Config.CertDir, certs.CertFileName)
	if data, err := ioutil.ReadFile(certPath); err == nil {
		caCert = data
	}
	endpoint := fmt.Sprintf("https://localhost:%d", m.Config.APIPort)
	return s3check.Check(endpoint, m.Config.RootUser, m.Config.RootPassword, caCert)
}

// DumpLogs writes recent service logs to w for diagnostics after an
// orchestration failure.
func (m *DeployManager) DumpLogs(w io.Writer, tail int) {
	driver, err := m.ComposeDriver()
	if err != nil {
		m.Logger.Warn("Cannot collect logs: " + err.Error())
		return
	}
	if err := driver.Logs(w, tail); err != nil {
		m.Logger.Warn("Cannot collect logs: " + err.Error())
	}
}
