package deploy

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		RootUser:     "storage-admin",
		RootPassword: "a-long-enough-secret",
		DataDir:      "/srv/minio/data",
		CertDir:      "./certs",
		APIPort:      9000,
		ConsolePort:  9001,
		Loaded:       true,
	}
}

func TestValidateAccepts(t *testing.T) {
	assert.Nil(t, validConfig().Validate())
}

func TestValidateRejectsUnloaded(t *testing.T) {
	cfg := validConfig()
	cfg.Loaded = false

	err := cfg.Validate()
	require.NotNil(t, err)
	assert.Equal(t, KindConfig, KindOf(err))
	assert.NotEmpty(t, RemediationOf(err))
}

func TestValidateRejectsMissingKeys(t *testing.T) {
	for _, clear := range []func(*Config){
		func(c *Config) { c.RootUser = "" },
		func(c *Config) { c.RootPassword = "" },
		func(c *Config) { c.DataDir = "" },
	} {
		cfg := validConfig()
		clear(cfg)
		err := cfg.Validate()
		require.NotNil(t, err)
		assert.Equal(t, KindConfig, KindOf(err))
	}
}

func TestValidateRejectsPlaceholderPassword(t *testing.T) {
	// The password sentinel is rejected regardless of other fields being valid.
	for _, sentinel := range []string{"CHANGE_ME", "changeme", "minioadmin"} {
		cfg := validConfig()
		cfg.RootPassword = sentinel
		err := cfg.Validate()
		require.NotNil(t, err, "sentinel %q must be rejected", sentinel)
		assert.Equal(t, KindConfig, KindOf(err))
	}
}

func TestValidateRejectsPlaceholderUser(t *testing.T) {
	cfg := validConfig()
	cfg.RootUser = "minioadmin"
	err := cfg.Validate()
	require.NotNil(t, err)
	assert.Equal(t, KindConfig, KindOf(err))
}

func TestValidateRejectsShortPassword(t *testing.T) {
	cfg := validConfig()
	cfg.RootPassword = "short"
	err := cfg.Validate()
	require.NotNil(t, err)
	assert.Equal(t, KindConfig, KindOf(err))
}

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("MINIO_ROOT_USER", "storage-admin")
	v.Set("MINIO_ROOT_PASSWORD", "a-long-enough-secret")
	v.Set("MINIO_DATA_DIR", "/srv/minio/data")

	cfg, err := FromViper(v, true)
	require.Nil(t, err)
	assert.Equal(t, 9000, cfg.APIPort)
	assert.Equal(t, 9001, cfg.ConsolePort)
	assert.Equal(t, "minio/minio:latest", cfg.Image)
	assert.Equal(t, "./docker-compose.yml", cfg.ComposeFile)
	assert.Equal(t, 30, cfg.HealthAttempts)
	assert.Equal(t, "5s", cfg.HealthInterval.String())
	assert.Nil(t, cfg.Validate())
}

func TestFromViperExpandsHome(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("MINIO_DATA_DIR", "~/minio-data")

	cfg, err := FromViper(v, true)
	require.Nil(t, err)
	assert.NotContains(t, cfg.DataDir, "~")
}
