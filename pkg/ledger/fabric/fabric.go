package fabric

import (
	"context"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/hyperledger/fabric-sdk-go/pkg/core/config"
	"github.com/hyperledger/fabric-sdk-go/pkg/gateway"
	"github.com/pkg/errors"

	"github.com/tcfw/didres/pkg/ledger"
)

const (
	DriverName = "fabric"
)

var _ ledger.Contract = (*Contract)(nil)

func init() {
	ledger.Register(DriverName, open)
}

// evaluator is the subset of *gateway.Contract used for lookups
type evaluator interface {
	EvaluateTransaction(name string, args ...string) ([]byte, error)
}

// Contract evaluates the DID chaincode on a Fabric channel. Lookups are
// always evaluated on a peer and never submitted for ordering.
type Contract struct {
	cfg      *Config
	contract evaluator
	close    func()
}

func open(_ context.Context, source string) (ledger.Contract, error) {
	props, err := ledger.LoadProperties(source)
	if err != nil {
		return nil, err
	}

	cfg, err := buildConfig(props)
	if err != nil {
		return nil, errors.Wrap(err, "building fabric config")
	}

	return Connect(cfg)
}

// Connect opens a gateway connection to the configured channel
func Connect(cfg *Config) (*Contract, error) {
	wallet, err := gateway.NewFileSystemWallet(cfg.WalletPath)
	if err != nil {
		return nil, errors.Wrap(err, "opening wallet")
	}

	if !wallet.Exists(cfg.Identity) {
		if err := populateWallet(wallet, cfg); err != nil {
			return nil, errors.Wrap(err, "populating wallet")
		}
	}

	gw, err := gateway.Connect(
		gateway.WithConfig(config.FromFile(filepath.Clean(cfg.ConnectionProfile))),
		gateway.WithIdentity(wallet, cfg.Identity),
		gateway.WithTimeout(cfg.Timeout),
	)
	if err != nil {
		return nil, errors.Wrap(ledger.ErrUnavailable, err.Error())
	}

	network, err := gw.GetNetwork(cfg.Channel)
	if err != nil {
		gw.Close()
		return nil, errors.Wrapf(err, "getting channel %s", cfg.Channel)
	}

	return &Contract{
		cfg:      cfg,
		contract: network.GetContract(cfg.Chaincode),
		close:    gw.Close,
	}, nil
}

func populateWallet(wallet *gateway.Wallet, cfg *Config) error {
	if cfg.CertificatePath == "" || cfg.PrivateKeyPath == "" || cfg.MspID == "" {
		return errors.Errorf("identity %s not in wallet and no credentials configured", cfg.Identity)
	}

	cert, err := os.ReadFile(filepath.Clean(cfg.CertificatePath))
	if err != nil {
		return errors.Wrap(err, "reading certificate")
	}

	key, err := os.ReadFile(filepath.Clean(cfg.PrivateKeyPath))
	if err != nil {
		return errors.Wrap(err, "reading private key")
	}

	return wallet.Put(cfg.Identity, gateway.NewX509Identity(cfg.MspID, string(cert), string(key)))
}

func (c *Contract) evaluate(ctx context.Context, fn string, arg string, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if arg == "" {
		return ledger.ErrInvalidIdentifier
	}

	payload, err := c.contract.EvaluateTransaction(fn, arg)
	if err != nil {
		return errors.Wrapf(err, "evaluating %s", fn)
	}

	if len(payload) == 0 {
		return ledger.ErrNotFound
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return errors.Wrap(ledger.ErrInvalidRecord, err.Error())
	}

	return nil
}

func (c *Contract) GetDidDoc(ctx context.Context, didKeyURL string) (*ledger.DocumentAndStatus, error) {
	doc := &ledger.DocumentAndStatus{}
	if err := c.evaluate(ctx, c.cfg.Functions.GetDidDoc, didKeyURL, doc); err != nil {
		return nil, err
	}

	if doc.Document == nil {
		return nil, ledger.ErrNotFound
	}

	return doc, nil
}

func (c *Contract) GetVcMetadata(ctx context.Context, vcID string) (*ledger.VCMeta, error) {
	meta := &ledger.VCMeta{}
	if err := c.evaluate(ctx, c.cfg.Functions.GetVcMetadata, vcID, meta); err != nil {
		return nil, err
	}

	if meta.ID == "" {
		return nil, ledger.ErrNotFound
	}

	return meta, nil
}

func (c *Contract) Close() error {
	if c.close != nil {
		c.close()
	}

	return nil
}
