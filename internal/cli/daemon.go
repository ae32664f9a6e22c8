package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tcfw/didres/internal/config"
	"github.com/tcfw/didres/internal/node"
)

var (
	daemonCmd = &cobra.Command{
		Use:   "daemon",
		RunE:  runDaemon,
		Short: "run the resolver API",
	}
)

func init() {
	daemonCmd.Flags().StringP("listen", "l", ":8080", "api listen address")
	viper.BindPFlag(config.Cfg_api_listen, daemonCmd.Flags().Lookup("listen"))

	daemonCmd.Flags().Bool("eager", false, "connect to the ledger on start")
	viper.BindPFlag(config.Cfg_ledger_eager, daemonCmd.Flags().Lookup("eager"))
}

func runDaemon(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	node, err := node.NewNode(ctx,
		node.WithDefaultOptions(),
	)
	if err != nil {
		return errors.Wrap(err, "initing node")
	}

	errCh := make(chan error, 1)

	go func() {
		if err := node.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		node.Stop()
		return err
	case <-waitExit(ctx):
		return node.Stop()
	}
}

func waitExit(ctx context.Context) <-chan os.Signal {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	return sigs
}
