package config

import (
	"time"

	"github.com/spf13/viper"
)

type API struct {
	Listen         string
	ReadTimeout    time.Duration
	RequestTimeout time.Duration
}

const (
	Cfg_api_listen         = "api.listen"
	Cfg_api_readTimeout    = "api.readTimeout"
	Cfg_api_requestTimeout = "api.requestTimeout"
)

var (
	apiDefaults = map[string]interface{}{
		Cfg_api_listen:         ":8080",
		Cfg_api_readTimeout:    10 * time.Second,
		Cfg_api_requestTimeout: 30 * time.Second,
	}
)

func init() {
	for k, v := range apiDefaults {
		viper.SetDefault(k, v)
	}
}

func buildAPIConfig(v *viper.Viper) (*API, error) {
	c := &API{
		Listen:         v.GetString(Cfg_api_listen),
		ReadTimeout:    v.GetDuration(Cfg_api_readTimeout),
		RequestTimeout: v.GetDuration(Cfg_api_requestTimeout),
	}

	return c, nil
}
