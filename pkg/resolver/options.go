package resolver

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Option func(*Client) error

func WithLogger(l *logrus.Entry) Option {
	return func(c *Client) error {
		if l == nil {
			return errors.New("nil logger")
		}
		c.logger = l
		return nil
	}
}

// WithBackoff bounds how long a failed connect blocks further connect
// attempts
func WithBackoff(min, max time.Duration) Option {
	return func(c *Client) error {
		if min <= 0 || max < min {
			return errors.Errorf("invalid backoff range %s-%s", min, max)
		}
		c.backoff.Min = min
		c.backoff.Max = max
		return nil
	}
}

func withClock(now func() time.Time) Option {
	return func(c *Client) error {
		c.now = now
		return nil
	}
}
