package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/tcfw/didres/pkg/ledger"
)

type Ledger struct {
	Driver     string
	Properties string
	// Eager connects on node start instead of on the first resolution
	Eager bool
	Retry      struct {
		Min time.Duration
		Max time.Duration
	}
}

const (
	Cfg_ledger_driver     = "ledger.driver"
	Cfg_ledger_properties = "ledger.properties"
	Cfg_ledger_eager      = "ledger.eager"
	Cfg_ledger_retry_min  = "ledger.retry.min"
	Cfg_ledger_retry_max  = "ledger.retry.max"
)

var (
	ledgerDefaults = map[string]interface{}{
		Cfg_ledger_driver:     "fabric",
		Cfg_ledger_properties: ledger.DefaultConfigSource,
		Cfg_ledger_eager:      false,
		Cfg_ledger_retry_min:  time.Second,
		Cfg_ledger_retry_max:  time.Minute,
	}
)

func init() {
	for k, v := range ledgerDefaults {
		viper.SetDefault(k, v)
	}
}

func buildLedgerConfig(v *viper.Viper) (*Ledger, error) {
	c := &Ledger{
		Driver:     v.GetString(Cfg_ledger_driver),
		Properties: v.GetString(Cfg_ledger_properties),
		Eager:      v.GetBool(Cfg_ledger_eager),
	}

	if c.Driver == "" {
		return nil, errors.New("no ledger driver set")
	}

	c.Retry.Min = v.GetDuration(Cfg_ledger_retry_min)
	c.Retry.Max = v.GetDuration(Cfg_ledger_retry_max)

	if c.Retry.Min <= 0 || c.Retry.Max < c.Retry.Min {
		return nil, errors.Errorf("invalid retry range %s-%s", c.Retry.Min, c.Retry.Max)
	}

	return c, nil
}
