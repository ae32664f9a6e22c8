package ledger

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

const (
	DefaultConfigSource = "properties/blockchain.properties"
)

// Contract is a read only view over the DID and VC records held by a ledger
type Contract interface {
	GetDidDoc(ctx context.Context, didKeyURL string) (*DocumentAndStatus, error)
	GetVcMetadata(ctx context.Context, vcID string) (*VCMeta, error)

	Close() error
}

// Writer anchors records into ledgers which allow direct writes,
// such as the local development ledgers
type Writer interface {
	PutDidDoc(ctx context.Context, doc *DocumentAndStatus) error
	PutVcMetadata(ctx context.Context, meta *VCMeta) error
}

// Factory builds a Contract from a driver specific config source,
// usually the path to a properties file
type Factory func(ctx context.Context, configSource string) (Contract, error)

var (
	driversMu sync.RWMutex
	drivers   = map[string]Factory{}
)

// Register makes a ledger driver available by name. Registering the same
// name twice panics.
func Register(name string, f Factory) {
	driversMu.Lock()
	defer driversMu.Unlock()

	if f == nil {
		panic("ledger: nil factory for " + name)
	}
	if _, ok := drivers[name]; ok {
		panic("ledger: driver already registered " + name)
	}

	drivers[name] = f
}

func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()

	n := make([]string, 0, len(drivers))
	for k := range drivers {
		n = append(n, k)
	}

	sort.Strings(n)

	return n
}

// Connect opens a Contract using the named driver
func Connect(ctx context.Context, driver string, configSource string) (Contract, error) {
	driversMu.RLock()
	f, ok := drivers[driver]
	driversMu.RUnlock()

	if !ok {
		return nil, errors.Wrap(ErrUnknownDriver, driver)
	}

	if configSource == "" {
		configSource = DefaultConfigSource
	}

	c, err := f(ctx, configSource)
	if err != nil {
		return nil, errors.Wrapf(err, "connecting %s ledger", driver)
	}

	return c, nil
}
