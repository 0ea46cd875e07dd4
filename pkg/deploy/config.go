// Deployment configuration. Values come from a single .env-style file read
// once at startup; every later stage receives this struct by value and never
// touches the process environment.
package deploy

import (
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Values for MINIO_ROOT_USER/MINIO_ROOT_PASSWORD that mean "not configured
// yet". Deploying with one of these would publish a guessable credential, so
// they are rejected before any side effect.
var placeholderSentinels = []string{
	"CHANGE_ME",
	"changeme",
	"minioadmin",
}

const minPasswordLen = 8

// Config holds everything a single deployment run needs.
type Config struct {
	RootUser     string
	RootPassword string
	DataDir      string
	CertDir      string
	ExtraSANs    string
	APIPort      int
	ConsolePort  int
	Image        string
	ComposeFile  string

	HealthAttempts int
	HealthInterval time.Duration

	// Loaded is false when no configuration file was found. Validation
	// turns that into a config error with remediation text.
	Loaded bool
}

// SetDefaults installs the optional-key defaults on a viper instance before
// the file is read.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("MINIO_CERT_DIR", "./certs")
	v.SetDefault("MINIO_API_PORT", 9000)
	v.SetDefault("MINIO_CONSOLE_PORT", 9001)
	v.SetDefault("MINIO_IMAGE", "minio/minio:latest")
	v.SetDefault("MINIO_COMPOSE_FILE", "./docker-compose.yml")
	v.SetDefault("MINIO_HEALTH_ATTEMPTS", 30)
	v.SetDefault("MINIO_HEALTH_INTERVAL", "5s")
}

// FromViper extracts a Config from a loaded viper instance, expanding ~ in
// the directory paths.
func FromViper(v *viper.Viper, loaded bool) (*Config, error) {
	cfg := &Config{
		RootUser:       v.GetString("MINIO_ROOT_USER"),
		RootPassword:   v.GetString("MINIO_ROOT_PASSWORD"),
		DataDir:        v.GetString("MINIO_DATA_DIR"),
		CertDir:        v.GetString("MINIO_CERT_DIR"),
		ExtraSANs:      v.GetString("MINIO_EXTRA_SANS"),
		APIPort:        v.GetInt("MINIO_API_PORT"),
		ConsolePort:    v.GetInt("MINIO_CONSOLE_PORT"),
		Image:          v.GetString("MINIO_IMAGE"),
		ComposeFile:    v.GetString("MINIO_COMPOSE_FILE"),
		HealthAttempts: v.GetInt("MINIO_HEALTH_ATTEMPTS"),
		HealthInterval: v.GetDuration("MINIO_HEALTH_INTERVAL"),
		Loaded:         loaded,
	}

	var err error
	if cfg.DataDir != "" {
		if cfg.DataDir, err = homedir.Expand(cfg.DataDir); err != nil {
			return nil, errors.Wrap(err, "Failed to expand MINIO_DATA_DIR")
		}
	}
	if cfg.CertDir, err = homedir.Expand(cfg.CertDir); err != nil {
		return nil, errors.Wrap(err, "Failed to expand MINIO_CERT_DIR")
	}
	return cfg, nil
}

// Validate enforces the required-key and placeholder rules. It must run
// before any stage that touches the network or the filesystem.
func (c *Config) Validate() error {
	if !c.Loaded {
		return NewError(KindConfig, "no deployment configuration found").
			WithRemediation("copy .env.example to .env and fill in MINIO_ROOT_USER, MINIO_ROOT_PASSWORD and MINIO_DATA_DIR")
	}
	if c.RootUser == "" {
		return NewError(KindConfig, "MINIO_ROOT_USER is not set").
			WithRemediation("set MINIO_ROOT_USER in .env to the admin account name")
	}
	if c.RootPassword == "" {
		return NewError(KindConfig, "MINIO_ROOT_PASSWORD is not set").
			WithRemediation("set MINIO_ROOT_PASSWORD in .env to a strong secret")
	}
	if c.DataDir == "" {
		return NewError(KindConfig, "MINIO_DATA_DIR is not set").
			WithRemediation("set MINIO_DATA_DIR in .env to the host directory that will hold object data")
	}
	for _, sentinel := range placeholderSentinels {
		if c.RootUser == sentinel {
			return NewError(KindConfig, "MINIO_ROOT_USER is still the placeholder value %q", sentinel).
				WithRemediation("pick a real admin account name in .env")
		}
		if c.RootPassword == sentinel {
			return NewError(KindConfig, "MINIO_ROOT_PASSWORD is still the placeholder value %q", sentinel).
				WithRemediation("pick a real secret in .env; MinIO requires at least %d characters", minPasswordLen)
		}
	}
	if len(c.RootPassword) < minPasswordLen {
		return NewError(KindConfig, "MINIO_ROOT_PASSWORD is shorter than %d characters; MinIO will refuse it", minPasswordLen)
	}
	return nil
}
