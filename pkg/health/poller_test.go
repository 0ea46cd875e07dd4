package health

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miniodeploy/miniodeploy/pkg/deploy"
)

func testPoller(attempts int) *Poller {
	logger := logrus.New()
	logger.SetOutput(ioutil.Discard)
	p := NewPoller(logger.WithField("module", "health"))
	p.MaxAttempts = attempts
	p.Interval = time.Millisecond
	p.Client = &http.Client{Timeout: time.Second}
	return p
}

func TestWaitSucceedsOnThirdAttempt(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := testPoller(5).Wait(server.URL)
	assert.Nil(t, err)
	// Terminal on first success: no further calls after the third.
	assert.Equal(t, 3, calls)
}

func TestWaitExhaustsBudget(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	err := testPoller(5).Wait(server.URL)
	require.NotNil(t, err)
	assert.Equal(t, 5, calls, "exactly the budgeted number of attempts")
	assert.Equal(t, deploy.KindReadiness, deploy.KindOf(err))
	assert.Contains(t, err.Error(), "likely still starting")
}

func TestWaitSucceedsImmediately(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	err := testPoller(30).Wait(server.URL)
	assert.Nil(t, err)
	assert.Equal(t, 1, calls)
}

func TestWaitUnreachableEndpoint(t *testing.T) {
	// Nothing listens here; every attempt errors rather than returning a status.
	err := testPoller(2).Wait("https://127.0.0.1:1/minio/health/live")
	require.NotNil(t, err)
	assert.Equal(t, deploy.KindReadiness, deploy.KindOf(err))
}

func TestNewPollerDefaults(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(ioutil.Discard)
	p := NewPoller(logger.WithField("module", "health"))

	assert.Equal(t, 30, p.MaxAttempts)
	assert.Equal(t, 5*time.Second, p.Interval)
}
