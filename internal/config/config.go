package config

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/tcfw/didres/internal/utils/logging"
)

const (
	Cfg_verbose   = "verbose"
	Cfg_logFormat = "log.format"
)

var (
	defaults = map[string]interface{}{
		Cfg_verbose:   false,
		Cfg_logFormat: "text",
	}
)

func init() {
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
}

func GetConfig() (*Config, error) {
	viper.SetConfigType("yaml")
	viper.SetConfigName("didres")
	viper.AddConfigPath("/etc/didres/")
	viper.AddConfigPath("$HOME/.didres")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("DIDRES")
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; ignore error
			logging.Entry().Warnf("no config found")
		} else {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	c, err := Build(viper.GetViper())
	if err != nil {
		return nil, err
	}

	logging.SetFormat(c.LogFormat)
	if c.Verbose {
		logging.SetLevel(logrus.DebugLevel)
		logging.WithField("level", "debug").Debug("setting log level")
	}

	return c, nil
}

// Build reads each config section out of v. Package defaults are only
// registered against the global viper instance so other instances get them
// applied here.
func Build(v *viper.Viper) (*Config, error) {
	if v != viper.GetViper() {
		applyDefaults(v)
	}

	c := &Config{
		Verbose:   v.GetBool(Cfg_verbose),
		LogFormat: v.GetString(Cfg_logFormat),
	}

	var err error

	c.ledger, err = buildLedgerConfig(v)
	if err != nil {
		return nil, errors.Wrap(err, "ledger config")
	}

	c.api, err = buildAPIConfig(v)
	if err != nil {
		return nil, errors.Wrap(err, "api config")
	}

	return c, nil
}

func applyDefaults(v *viper.Viper) {
	for _, set := range []map[string]interface{}{defaults, ledgerDefaults, apiDefaults} {
		for k, d := range set {
			v.SetDefault(k, d)
		}
	}
}

type Config struct {
	Verbose   bool
	LogFormat string

	ledger *Ledger
	api    *API
}

func (c *Config) Ledger() *Ledger {
	return c.ledger
}

func (c *Config) API() *API {
	return c.api
}
