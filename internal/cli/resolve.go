package cli

import (
	"context"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tcfw/didres/internal/config"
	"github.com/tcfw/didres/internal/utils/logging"
	"github.com/tcfw/didres/pkg/resolver"
)

var (
	resolveCmd = &cobra.Command{
		Use:   "resolve",
		Short: "Resolve ledger records",
	}

	resolve_didCmd = &cobra.Command{
		Use:   "did <didKeyUrl>",
		Short: "Resolve a DID document and its status",
		Args:  cobra.ExactArgs(1),
		RunE:  runResolveDid,
	}

	resolve_vcCmd = &cobra.Command{
		Use:   "vc <vcId>",
		Short: "Resolve VC metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  runResolveVc,
	}
)

func init() {
	resolveCmd.PersistentFlags().Duration("timeout", 30*time.Second, "resolution timeout")
}

func newResolver() (*resolver.Client, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, err
	}

	lcfg := cfg.Ledger()

	return resolver.NewClient(
		resolver.LedgerConnector(lcfg.Driver, lcfg.Properties),
		resolver.WithBackoff(lcfg.Retry.Min, lcfg.Retry.Max),
	)
}

func resolveContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	return context.WithTimeout(cmd.Context(), timeout)
}

func runResolveDid(cmd *cobra.Command, args []string) error {
	ctx, cancel := resolveContext(cmd)
	defer cancel()

	r, err := newResolver()
	if err != nil {
		return errors.Wrap(err, "constructing resolver")
	}
	defer r.Shutdown()

	doc, err := r.ResolveDidDocument(ctx, args[0])
	if err != nil {
		logging.WithField("did", args[0]).WithError(err).Error("resolving did")
		return err
	}

	return printJSON(cmd.OutOrStdout(), doc)
}

func runResolveVc(cmd *cobra.Command, args []string) error {
	ctx, cancel := resolveContext(cmd)
	defer cancel()

	r, err := newResolver()
	if err != nil {
		return errors.Wrap(err, "constructing resolver")
	}
	defer r.Shutdown()

	meta, err := r.ResolveVcMeta(ctx, args[0])
	if err != nil {
		logging.WithField("vc", args[0]).WithError(err).Error("resolving vc meta")
		return err
	}

	return printJSON(cmd.OutOrStdout(), meta)
}

func printJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshalling JSON")
	}

	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
