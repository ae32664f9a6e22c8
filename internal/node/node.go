package node

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tcfw/didres/internal/api"
	"github.com/tcfw/didres/internal/config"
	"github.com/tcfw/didres/pkg/resolver"
)

const (
	shutdownTimeout = 10 * time.Second
)

type Node struct {
	cfg       *config.Config
	connector resolver.Connector
	resolver  *resolver.Client
	api       *api.Api

	stopOnce sync.Once

	logger *logrus.Entry
}

func (n *Node) Resolver() *resolver.Client {
	return n.resolver
}

func (n *Node) API() *api.Api {
	return n.api
}

func (n *Node) Config() *config.Config {
	return n.cfg
}

func NewNode(ctx context.Context, opts ...NodeOption) (*Node, error) {
	n := &Node{}

	for _, opt := range opts {
		if err := opt(n); err != nil {
			return nil, err
		}
	}

	if n.cfg == nil {
		cfg, err := config.GetConfig()
		if err != nil {
			return nil, err
		}
		n.cfg = cfg
	}

	if n.logger == nil {
		n.logger = logrus.NewEntry(logrus.StandardLogger())
	}

	if n.resolver == nil {
		if err := n.setupResolver(); err != nil {
			return nil, errors.Wrap(err, "setting up resolver")
		}
	}

	a, err := api.NewAPI(n.resolver, n.cfg.API())
	if err != nil {
		return nil, errors.Wrap(err, "setting up api")
	}
	n.api = a

	if n.cfg.Ledger().Eager {
		n.connect(ctx)
	}

	return n, nil
}

func (n *Node) setupResolver() error {
	lcfg := n.cfg.Ledger()

	connect := n.connector
	if connect == nil {
		connect = resolver.LedgerConnector(lcfg.Driver, lcfg.Properties)
	}

	c, err := resolver.NewClient(connect,
		resolver.WithLogger(n.logger.WithField("component", "resolver")),
		resolver.WithBackoff(lcfg.Retry.Min, lcfg.Retry.Max),
	)
	if err != nil {
		return err
	}

	n.resolver = c

	return nil
}

// connect warms the ledger client. Failures are left for the first
// resolution to report.
func (n *Node) connect(ctx context.Context) {
	n.logger.WithField("driver", n.cfg.Ledger().Driver).Debug("connecting to ledger")

	if _, err := n.resolver.Contract(ctx); err != nil {
		n.logger.WithError(err).Warn("ledger not yet available")
	}
}

func (n *Node) ListenAndServe() error {
	n.logger.WithField("addr", n.cfg.API().Listen).WithField("driver", n.cfg.Ledger().Driver).Info("Starting listening")

	return n.api.ListenAndServe(n.cfg.API().Listen)
}

func (n *Node) Stop() error {
	var err error

	n.stopOnce.Do(func() {
		n.logger.Warn("Shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if serr := n.api.Shutdown(ctx); serr != nil {
			err = errors.Wrap(serr, "shutting down api")
		}

		if rerr := n.resolver.Shutdown(); rerr != nil && err == nil {
			err = errors.Wrap(rerr, "closing ledger client")
		}
	})

	return err
}
