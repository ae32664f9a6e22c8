package ledger

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// LoadProperties reads a java style properties file. Keys keep their
// dotted form, e.g. fabric.mspId
func LoadProperties(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("properties")
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "reading ledger properties")
	}

	return v, nil
}
