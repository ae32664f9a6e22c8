package resolver

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jpillora/backoff"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tcfw/didres/internal/utils/logging"
	"github.com/tcfw/didres/pkg/ledger"
)

const (
	defaultBackoffMin = time.Second
	defaultBackoffMax = time.Minute
)

var (
	errNilContract = errors.New("connector returned nil contract")
)

// Connector builds the ledger contract. It is called at most once per
// successful initialisation of a Client.
type Connector func(ctx context.Context) (ledger.Contract, error)

// LedgerConnector connects via a registered ledger driver
func LedgerConnector(driver string, configSource string) Connector {
	return func(ctx context.Context) (ledger.Contract, error) {
		return ledger.Connect(ctx, driver, configSource)
	}
}

type handle struct {
	ledger.Contract
}

// Client lazily connects to the ledger on first use and shares the one
// contract between all callers. Once connected the contract is never
// replaced.
//
// A failed connect is not permanent: the failure is remembered and
// returned without reconnecting until the backoff period has passed, after
// which the next caller makes a single new attempt.
type Client struct {
	connect Connector

	contract atomic.Pointer[handle]

	mu        sync.Mutex
	initErr   error
	nextRetry time.Time
	backoff   *backoff.Backoff
	now       func() time.Time

	logger *logrus.Entry
}

func NewClient(connect Connector, opts ...Option) (*Client, error) {
	if connect == nil {
		return nil, errors.New("nil connector")
	}

	c := &Client{
		connect: connect,
		backoff: &backoff.Backoff{
			Min:    defaultBackoffMin,
			Max:    defaultBackoffMax,
			Factor: 2,
		},
		now:    time.Now,
		logger: logging.Component("resolver"),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Contract returns the shared ledger contract, connecting if required
func (c *Client) Contract(ctx context.Context) (ledger.Contract, error) {
	if h := c.contract.Load(); h != nil {
		return h.Contract, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if h := c.contract.Load(); h != nil {
		return h.Contract, nil
	}

	if c.initErr != nil && c.now().Before(c.nextRetry) {
		return nil, newError(KindInit, c.initErr)
	}

	contract, err := c.connect(ctx)
	if err == nil && contract == nil {
		err = errNilContract
	}
	if err != nil {
		if ctx.Err() != nil {
			//the caller gave up, not the ledger
			return nil, newError(KindInit, err)
		}

		wait := c.backoff.Duration()
		c.initErr = err
		c.nextRetry = c.now().Add(wait)

		c.logger.WithError(err).WithField("retryIn", wait).Error("failed to initialize ledger client")

		return nil, newError(KindInit, err)
	}

	c.initErr = nil
	c.backoff.Reset()
	c.contract.Store(&handle{contract})

	c.logger.Debug("ledger client initialized")

	return contract, nil
}

// ResolveDidDocument fetches the DID document and its status addressed by
// didKeyURL. Any ledger fault is reported as ErrDidDocumentRetrieval.
func (c *Client) ResolveDidDocument(ctx context.Context, didKeyURL string) (*ledger.DocumentAndStatus, error) {
	if didKeyURL == "" {
		c.logger.Error("Failed to get DID Document: empty DID key URL")
		return nil, newError(KindDidDocumentRetrieval, ledger.ErrInvalidIdentifier)
	}

	contract, err := c.Contract(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := contract.GetDidDoc(ctx, didKeyURL)
	if err == nil && doc == nil {
		err = ledger.ErrNotFound
	}
	if err != nil {
		c.logger.WithField("did", didKeyURL).Errorf("Failed to get DID Document: %s", err)
		return nil, newError(KindDidDocumentRetrieval, err)
	}

	return doc, nil
}

// ResolveVcMeta fetches the ledger metadata of a verifiable credential.
// Any ledger fault is reported as ErrVcMetaRetrieval.
func (c *Client) ResolveVcMeta(ctx context.Context, vcID string) (*ledger.VCMeta, error) {
	if vcID == "" {
		c.logger.Error("Failed to find VC Meta: empty VC id")
		return nil, newError(KindVcMetaRetrieval, ledger.ErrInvalidIdentifier)
	}

	contract, err := c.Contract(ctx)
	if err != nil {
		return nil, err
	}

	meta, err := contract.GetVcMetadata(ctx, vcID)
	if err == nil && meta == nil {
		err = ledger.ErrNotFound
	}
	if err != nil {
		c.logger.WithField("vc", vcID).Errorf("Failed to find VC Meta: %s", err)
		return nil, newError(KindVcMetaRetrieval, err)
	}

	return meta, nil
}

// Shutdown closes the ledger contract if one was connected. It is only
// intended to be called as the process exits.
func (c *Client) Shutdown() error {
	h := c.contract.Load()
	if h == nil {
		return nil
	}

	return h.Close()
}
