package node

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tcfw/didres/internal/config"
	"github.com/tcfw/didres/internal/utils/logging"
	"github.com/tcfw/didres/pkg/resolver"
)

type NodeOption func(*Node) error

func WithConfig(c *config.Config) NodeOption {
	return func(n *Node) error {
		if c == nil {
			return errors.New("nil config")
		}
		n.cfg = c
		return nil
	}
}

func WithLogger(l *logrus.Entry) NodeOption {
	return func(n *Node) error {
		n.logger = l
		return nil
	}
}

// WithResolver uses an already built client instead of one built from the
// ledger config
func WithResolver(r *resolver.Client) NodeOption {
	return func(n *Node) error {
		n.resolver = r
		return nil
	}
}

// WithConnector overrides how the ledger contract is built
func WithConnector(c resolver.Connector) NodeOption {
	return func(n *Node) error {
		n.connector = c
		return nil
	}
}

func WithDefaultOptions() NodeOption {
	return func(n *Node) error {
		n.logger = logging.Component("node")
		return nil
	}
}
