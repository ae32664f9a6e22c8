package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tcfw/didres/internal/config"
	"github.com/tcfw/didres/pkg/ledger"
)

var (
	ledgerCmd = &cobra.Command{
		Use:   "ledger",
		Short: "Ledger commands",
	}

	ledger_importCmd = &cobra.Command{
		Use:   "import <seed.yaml>",
		Short: "Anchor the records of a seed file into a writable ledger",
		Args:  cobra.ExactArgs(1),
		RunE:  runLedgerImport,
	}

	ledger_driversCmd = &cobra.Command{
		Use:   "drivers",
		Short: "list registered ledger drivers",
		Run:   runLedgerDrivers,
	}

	ledger_historyCmd = &cobra.Command{
		Use:   "history <did>",
		Short: "list every anchored version of a DID document",
		Args:  cobra.ExactArgs(1),
		RunE:  runLedgerHistory,
	}
)

type historian interface {
	DIDHistory(ctx context.Context, did string) ([]*ledger.DocumentAndStatus, error)
}

func connectLedger(ctx context.Context) (ledger.Contract, string, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, "", err
	}

	c, err := ledger.Connect(ctx, cfg.Ledger().Driver, cfg.Ledger().Properties)
	if err != nil {
		return nil, "", err
	}

	return c, cfg.Ledger().Driver, nil
}

func runLedgerImport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	c, driver, err := connectLedger(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	w, ok := c.(ledger.Writer)
	if !ok {
		return errors.Errorf("%s ledger is read only", driver)
	}

	n, err := ledger.ImportFile(ctx, w, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d records into %s ledger\n", n, driver)

	return nil
}

func runLedgerDrivers(cmd *cobra.Command, args []string) {
	for _, d := range ledger.Drivers() {
		fmt.Fprintln(cmd.OutOrStdout(), d)
	}
}

func runLedgerHistory(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	c, driver, err := connectLedger(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	h, ok := c.(historian)
	if !ok {
		return errors.Errorf("%s ledger does not keep history", driver)
	}

	docs, err := h.DIDHistory(ctx, args[0])
	if err != nil {
		return errors.Wrap(err, "listing history")
	}

	return printJSON(cmd.OutOrStdout(), docs)
}
