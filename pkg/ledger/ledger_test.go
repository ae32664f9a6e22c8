package ledger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopContract struct{ source string }

func (n *nopContract) GetDidDoc(context.Context, string) (*DocumentAndStatus, error) {
	return nil, ErrNotFound
}

func (n *nopContract) GetVcMetadata(context.Context, string) (*VCMeta, error) {
	return nil, ErrNotFound
}

func (n *nopContract) Close() error { return nil }

func TestRegisterConnect(t *testing.T) {
	Register("test-nop", func(_ context.Context, src string) (Contract, error) {
		return &nopContract{source: src}, nil
	})

	assert.Contains(t, Drivers(), "test-nop")

	c, err := Connect(context.Background(), "test-nop", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfigSource, c.(*nopContract).source)

	c, err = Connect(context.Background(), "test-nop", "other.properties")
	require.NoError(t, err)
	assert.Equal(t, "other.properties", c.(*nopContract).source)

	assert.Panics(t, func() {
		Register("test-nop", func(context.Context, string) (Contract, error) { return nil, nil })
	})
}

func TestConnectUnknownDriver(t *testing.T) {
	_, err := Connect(context.Background(), "does-not-exist", "")
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestConnectFactoryError(t *testing.T) {
	boom := errors.New("boom")
	Register("test-broken", func(context.Context, string) (Contract, error) {
		return nil, boom
	})

	_, err := Connect(context.Background(), "test-broken", "")
	assert.ErrorIs(t, err, boom)
}

func TestLoadProperties(t *testing.T) {
	p := filepath.Join(t.TempDir(), "blockchain.properties")
	data := "fabric.mspId=Org1MSP\nfabric.channel = mychannel\n# comment\nremote.url=http://localhost:8080\n"
	require.NoError(t, os.WriteFile(p, []byte(data), 0600))

	v, err := LoadProperties(p)
	require.NoError(t, err)

	assert.Equal(t, "Org1MSP", v.GetString("fabric.mspId"))
	assert.Equal(t, "mychannel", v.GetString("fabric.channel"))
	assert.Equal(t, "http://localhost:8080", v.GetString("remote.url"))
}

func TestLoadPropertiesMissing(t *testing.T) {
	_, err := LoadProperties(filepath.Join(t.TempDir(), "missing.properties"))
	assert.Error(t, err)
}

func TestStatusValid(t *testing.T) {
	assert.True(t, DocumentRevoked.Valid())
	assert.False(t, DocumentStatus("GONE").Valid())
	assert.True(t, VCInactive.Valid())
	assert.False(t, VCStatus("").Valid())
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2", "10", -1},
		{"10", "2", 1},
		{"7", "7", 0},
		{"b", "a", 1},
		{"1", "a", -1},
		{"", "1", -1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CompareVersions(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}
