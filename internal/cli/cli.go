package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tcfw/didres/internal/config"
)

var (
	rootCmd = &cobra.Command{
		Use:          "didres",
		Short:        "DID document and VC metadata resolver",
		RunE:         runDaemon,
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase verbosity")
	viper.BindPFlag(config.Cfg_verbose, rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.PersistentFlags().String("driver", "", "ledger driver")
	viper.BindPFlag(config.Cfg_ledger_driver, rootCmd.PersistentFlags().Lookup("driver"))

	rootCmd.PersistentFlags().String("properties", "", "ledger properties file")
	viper.BindPFlag(config.Cfg_ledger_properties, rootCmd.PersistentFlags().Lookup("properties"))

	regCommands()
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}
