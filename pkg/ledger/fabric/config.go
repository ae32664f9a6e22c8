package fabric

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	Cfg_fabric_configFilePath      = "fabric.configFilePath"
	Cfg_fabric_walletPath          = "fabric.walletPath"
	Cfg_fabric_identity            = "fabric.identity"
	Cfg_fabric_mspId               = "fabric.mspId"
	Cfg_fabric_certificateFilePath = "fabric.certificateFilePath"
	Cfg_fabric_privateKeyFilePath  = "fabric.privateKeyFilePath"
	Cfg_fabric_channel             = "fabric.channel"
	Cfg_fabric_chaincodeName       = "fabric.chaincodeName"
	Cfg_fabric_fnGetDidDoc         = "fabric.function.getDidDoc"
	Cfg_fabric_fnGetVcMetadata     = "fabric.function.getVcMetadata"
	Cfg_fabric_timeout             = "fabric.timeout"
)

var (
	defaults = map[string]interface{}{
		Cfg_fabric_walletPath:      "wallet",
		Cfg_fabric_identity:        "appUser",
		Cfg_fabric_fnGetDidDoc:     "getDidDoc",
		Cfg_fabric_fnGetVcMetadata: "getVcMetadata",
		Cfg_fabric_timeout:         30 * time.Second,
	}
)

type Config struct {
	ConnectionProfile string
	WalletPath        string
	Identity          string
	MspID             string
	CertificatePath   string
	PrivateKeyPath    string
	Channel           string
	Chaincode         string
	Timeout           time.Duration

	Functions struct {
		GetDidDoc     string
		GetVcMetadata string
	}
}

func buildConfig(v *viper.Viper) (*Config, error) {
	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	c := &Config{
		ConnectionProfile: v.GetString(Cfg_fabric_configFilePath),
		WalletPath:        v.GetString(Cfg_fabric_walletPath),
		Identity:          v.GetString(Cfg_fabric_identity),
		MspID:             v.GetString(Cfg_fabric_mspId),
		CertificatePath:   v.GetString(Cfg_fabric_certificateFilePath),
		PrivateKeyPath:    v.GetString(Cfg_fabric_privateKeyFilePath),
		Channel:           v.GetString(Cfg_fabric_channel),
		Chaincode:         v.GetString(Cfg_fabric_chaincodeName),
		Timeout:           v.GetDuration(Cfg_fabric_timeout),
	}

	c.Functions.GetDidDoc = v.GetString(Cfg_fabric_fnGetDidDoc)
	c.Functions.GetVcMetadata = v.GetString(Cfg_fabric_fnGetVcMetadata)

	required := map[string]string{
		Cfg_fabric_configFilePath: c.ConnectionProfile,
		Cfg_fabric_channel:        c.Channel,
		Cfg_fabric_chaincodeName:  c.Chaincode,
	}

	for k, val := range required {
		if val == "" {
			return nil, errors.Errorf("missing property %s", k)
		}
	}

	return c, nil
}
