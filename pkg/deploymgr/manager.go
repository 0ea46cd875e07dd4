package deploymgr

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/miniodeploy/miniodeploy/pkg/compose"
	"github.com/miniodeploy/miniodeploy/pkg/deploy"
)

// DeployManager ties the deployment stages together: it owns the parsed
// configuration, the logger and the resolved compose driver. Commands hold
// one manager per run.
type DeployManager struct {
	Cfg    *viper.Viper
	Config *deploy.Config
	Logger *logrus.Logger

	ident    *deploy.Identity
	driver   *compose.Driver
	detector func() (compose.Form, error)
}

// NewManager builds a manager from an option map. Recognized options:
// "config-file" (string, path to the .env file, default ./.env) and
// "logger" (*logrus.Logger).
func NewManager(userCfg map[string]interface{}) (*DeployManager, error) {
	var err error
	mgr := &DeployManager{detector: compose.DetectForm}

	if loggerRaw, ok := userCfg["logger"]; ok {
		if logger, ok := loggerRaw.(*logrus.Logger); ok {
			mgr.Logger = logger
		} else {
			return nil, errors.New("option 'logger' must be of type *logrus.Logger")
		}
	} else {
		mgr.Logger = logrus.New()
	}

	if cfgPathRaw, ok := userCfg["config-file"]; ok {
		if cfgPath, ok := cfgPathRaw.(string); ok {
			err = mgr.initConfig(&cfgPath)
		} else {
			return nil, errors.New("option 'config-file' must be of type string")
		}
	} else {
		err = mgr.initConfig(nil)
	}
	if err != nil {
		return nil, err
	}

	return mgr, nil
}

// initConfig is the single point where the process environment and the
// configuration file are read. Everything downstream works off the parsed
// deploy.Config value.
func (m *DeployManager) initConfig(cfgPath *string) error {
	m.Cfg = viper.New()
	m.Cfg.SetConfigType("env")
	deploy.SetDefaults(m.Cfg)

	// Secrets may come from the environment instead of the file.
	m.Cfg.BindEnv("MINIO_ROOT_USER")
	m.Cfg.BindEnv("MINIO_ROOT_PASSWORD")

	if cfgPath != nil {
		m.Cfg.SetConfigFile(*cfgPath)
	} else {
		m.Cfg.SetConfigFile("./.env")
	}

	loaded := true
	if err := m.Cfg.ReadInConfig(); err != nil {
		if os.IsNotExist(errors.Cause(err)) {
			// Tolerated here; Validate turns it into a config error with
			// remediation before anything runs.
			loaded = false
		} else if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			loaded = false
		} else {
			return errors.Wrap(err, "Failed to load config")
		}
	}

	cfg, err := deploy.FromViper(m.Cfg, loaded)
	if err != nil {
		return err
	}
	m.Config = cfg
	return nil
}

// Identity returns the detected local IP and hostname, resolving them once.
func (m *DeployManager) Identity() (deploy.Identity, error) {
	if m.ident != nil {
		return *m.ident, nil
	}
	ident, err := deploy.LocalIdentity()
	if err != nil {
		return deploy.Identity{}, err
	}
	m.ident = &ident
	return ident, nil
}

// ComposeDriver resolves the available compose command form on first use and
// returns a driver bound to the deployment's compose file and environment.
func (m *DeployManager) ComposeDriver() (*compose.Driver, error) {
	if m.driver != nil {
		return m.driver, nil
	}
	form, err := m.detector()
	if err != nil {
		return nil, err
	}
	m.Logger.Debug("Using compose form: " + form.String())
	env := []string{
		"MINIO_ROOT_USER=" + m.Config.RootUser,
		"MINIO_ROOT_PASSWORD=" + m.Config.RootPassword,
	}
	m.driver = compose.NewDriver(form, m.Config.ComposeFile, env,
		m.Logger.WithField("module", "compose"))
	return m.driver, nil
}
