package compose

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miniodeploy/miniodeploy/pkg/deploy"
)

func probeAllowing(available ...string) probeFunc {
	return func(exe string, args ...string) error {
		probed := exe
		for _, arg := range args {
			probed += " " + arg
		}
		for _, ok := range available {
			if probed == ok+" version" {
				return nil
			}
		}
		return errors.New("command not found")
	}
}

func TestDetectFormModern(t *testing.T) {
	form, err := detectForm(probeAllowing("docker compose"))
	require.Nil(t, err)
	assert.Equal(t, ModernForm, form)
}

func TestDetectFormPrefersModern(t *testing.T) {
	form, err := detectForm(probeAllowing("docker compose", "docker-compose"))
	require.Nil(t, err)
	assert.Equal(t, ModernForm, form)
}

func TestDetectFormLegacyFallback(t *testing.T) {
	form, err := detectForm(probeAllowing("docker-compose"))
	require.Nil(t, err)
	assert.Equal(t, LegacyForm, form)
}

func TestDetectFormNeither(t *testing.T) {
	_, err := detectForm(probeAllowing())
	require.NotNil(t, err)
	assert.Equal(t, deploy.KindPrereq, deploy.KindOf(err))
	assert.NotEmpty(t, deploy.RemediationOf(err))
}

func TestFormCommand(t *testing.T) {
	exe, args := ModernForm.Command("-f", "docker-compose.yml", "up", "-d")
	assert.Equal(t, "docker", exe)
	assert.Equal(t, []string{"compose", "-f", "docker-compose.yml", "up", "-d"}, args)

	exe, args = LegacyForm.Command("-f", "docker-compose.yml", "down")
	assert.Equal(t, "docker-compose", exe)
	assert.Equal(t, []string{"-f", "docker-compose.yml", "down"}, args)
}

func TestFormString(t *testing.T) {
	assert.Equal(t, "docker compose", fmt.Sprint(ModernForm))
	assert.Equal(t, "docker-compose", fmt.Sprint(LegacyForm))
}
