// Liveness polling for a freshly started deployment.
package health

import (
	"crypto/tls"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/miniodeploy/miniodeploy/pkg/deploy"
)

// Poller issues GETs against a liveness URL until the first success or the
// attempt budget runs out. The delay between attempts is constant; there is
// no backoff.
type Poller struct {
	MaxAttempts int
	Interval    time.Duration
	Client      *http.Client
	Log         *logrus.Entry
}

// NewPoller returns a poller with the deployment defaults: 30 attempts,
// 5 seconds apart, accepting self-signed certificates.
func NewPoller(log *logrus.Entry) *Poller {
	return &Poller{
		MaxAttempts: 30,
		Interval:    5 * time.Second,
		Client: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				// The server presents the self-signed deployment cert.
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
		Log: log,
	}
}

// Wait polls url. It returns nil on the first 2xx response and a
// readiness-kind error once the budget is exhausted.
func (p *Poller) Wait(url string) error {
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if p.try(url) {
			p.Log.Infof("Liveness check passed on attempt %d/%d", attempt, p.MaxAttempts)
			return nil
		}
		p.Log.Debugf("Liveness attempt %d/%d failed", attempt, p.MaxAttempts)
		if attempt < p.MaxAttempts {
			time.Sleep(p.Interval)
		}
	}
	return deploy.NewError(deploy.KindReadiness,
		"%s did not answer after %d attempts; the deployment is likely still starting",
		url, p.MaxAttempts).
		WithRemediation("give the container another minute, then run 'miniodeploy verify'")
}

func (p *Poller) try(url string) bool {
	resp, err := p.Client.Get(url)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
