package resolver

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcfw/didres/pkg/did/w3cdid"
	"github.com/tcfw/didres/pkg/ledger"
)

var errLedgerFault = errors.New("chaincode returned error: DID not registered")

type fakeContract struct {
	docs   map[string]*ledger.DocumentAndStatus
	vcs    map[string]*ledger.VCMeta
	err    error
	closed int32
}

func (f *fakeContract) GetDidDoc(_ context.Context, didKeyURL string) (*ledger.DocumentAndStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.docs[didKeyURL]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	return d, nil
}

func (f *fakeContract) GetVcMetadata(_ context.Context, vcID string) (*ledger.VCMeta, error) {
	if f.err != nil {
		return nil, f.err
	}
	m, ok := f.vcs[vcID]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	return m, nil
}

func (f *fakeContract) Close() error {
	atomic.AddInt32(&f.closed, 1)
	return nil
}

func quietLogger() (*logrus.Entry, *test.Hook) {
	l, hook := test.NewNullLogger()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l), hook
}

func newTestClient(t *testing.T, connect Connector, opts ...Option) (*Client, *test.Hook) {
	l, hook := quietLogger()
	c, err := NewClient(connect, append([]Option{WithLogger(l)}, opts...)...)
	require.NoError(t, err)
	return c, hook
}

func staticConnector(fc ledger.Contract, calls *int32) Connector {
	return func(context.Context) (ledger.Contract, error) {
		atomic.AddInt32(calls, 1)
		return fc, nil
	}
}

func TestResolveDidDocumentReturnsValue(t *testing.T) {
	doc := &ledger.DocumentAndStatus{
		Document: &w3cdid.Document{ID: "did:omn:issuer"},
		Status:   ledger.DocumentActivated,
	}
	fc := &fakeContract{docs: map[string]*ledger.DocumentAndStatus{"did:omn:issuer?versionId=1": doc}}

	var calls int32
	c, _ := newTestClient(t, staticConnector(fc, &calls))

	got, err := c.ResolveDidDocument(context.Background(), "did:omn:issuer?versionId=1")
	require.NoError(t, err)
	assert.Same(t, doc, got)
	assert.Equal(t, int32(1), calls)
}

func TestResolveDidDocumentNormalizesFaults(t *testing.T) {
	fc := &fakeContract{err: errLedgerFault}

	var calls int32
	c, hook := newTestClient(t, staticConnector(fc, &calls))

	_, err := c.ResolveDidDocument(context.Background(), "did:omn:issuer")
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrDidDocumentRetrieval)
	assert.NotErrorIs(t, err, ErrVcMetaRetrieval)
	assert.False(t, errors.Is(err, errLedgerFault))
	assert.Equal(t, "DID document retrieval failed", err.Error())

	var rerr *Error
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, KindDidDocumentRetrieval, rerr.Kind())
	assert.Equal(t, "GET_DID_DOC_FAILED", rerr.Code())

	//the raw fault is still logged
	require.NotNil(t, hook.LastEntry())
	assert.Contains(t, hook.LastEntry().Message, errLedgerFault.Error())
}

func TestResolveDidDocumentNotFoundIndistinguishable(t *testing.T) {
	fc := &fakeContract{}

	var calls int32
	c, _ := newTestClient(t, staticConnector(fc, &calls))

	_, notFound := c.ResolveDidDocument(context.Background(), "did:omn:missing")
	fc.err = errLedgerFault
	_, fault := c.ResolveDidDocument(context.Background(), "did:omn:missing")

	assert.Equal(t, notFound.Error(), fault.Error())
	assert.False(t, errors.Is(notFound, ledger.ErrNotFound))
}

func TestResolveEmptyInputs(t *testing.T) {
	var calls int32
	c, _ := newTestClient(t, staticConnector(&fakeContract{}, &calls))

	_, err := c.ResolveDidDocument(context.Background(), "")
	assert.ErrorIs(t, err, ErrDidDocumentRetrieval)

	_, err = c.ResolveVcMeta(context.Background(), "")
	assert.ErrorIs(t, err, ErrVcMetaRetrieval)

	assert.Equal(t, int32(0), calls)
}

func TestResolveNilResult(t *testing.T) {
	fc := &fakeContract{
		docs: map[string]*ledger.DocumentAndStatus{"did:omn:nil": nil},
		vcs:  map[string]*ledger.VCMeta{"vc-nil": nil},
	}

	var calls int32
	c, _ := newTestClient(t, staticConnector(fc, &calls))

	_, err := c.ResolveDidDocument(context.Background(), "did:omn:nil")
	assert.ErrorIs(t, err, ErrDidDocumentRetrieval)

	_, err = c.ResolveVcMeta(context.Background(), "vc-nil")
	assert.ErrorIs(t, err, ErrVcMetaRetrieval)
}

func TestResolveVcMeta(t *testing.T) {
	meta := &ledger.VCMeta{ID: "vc-1", Status: ledger.VCActive}
	fc := &fakeContract{vcs: map[string]*ledger.VCMeta{"vc-1": meta}}

	var calls int32
	c, _ := newTestClient(t, staticConnector(fc, &calls))

	got, err := c.ResolveVcMeta(context.Background(), "vc-1")
	require.NoError(t, err)
	assert.Same(t, meta, got)

	fc.err = errLedgerFault
	_, err = c.ResolveVcMeta(context.Background(), "vc-1")
	assert.ErrorIs(t, err, ErrVcMetaRetrieval)
	assert.Equal(t, "VC metadata retrieval failed", err.Error())
	assert.False(t, errors.Is(err, errLedgerFault))
}

func TestConcurrentFirstAccessConnectsOnce(t *testing.T) {
	fc := &fakeContract{docs: map[string]*ledger.DocumentAndStatus{
		"did:omn:issuer": {Document: &w3cdid.Document{ID: "did:omn:issuer"}, Status: ledger.DocumentActivated},
	}}

	var calls int32
	release := make(chan struct{})

	c, _ := newTestClient(t, func(context.Context) (ledger.Contract, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return fc, nil
	})

	const n = 64

	var wg sync.WaitGroup
	contracts := make([]ledger.Contract, n)
	errs := make([]error, n)
	resolveErrs := make([]error, n)

	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, resolveErrs[i] = c.ResolveDidDocument(context.Background(), "did:omn:issuer")
			}
			contracts[i], errs[i] = c.Contract(context.Background())
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		require.NoError(t, resolveErrs[i])
		assert.Same(t, fc, contracts[i])
	}
}

func TestInitFailure(t *testing.T) {
	boom := errors.New("connection profile not found")

	var calls int32
	var fail int32 = 1
	fc := &fakeContract{vcs: map[string]*ledger.VCMeta{"vc-1": {ID: "vc-1"}}}

	now := time.Unix(1700000000, 0)
	clock := func() time.Time { return now }

	c, _ := newTestClient(t, func(context.Context) (ledger.Contract, error) {
		atomic.AddInt32(&calls, 1)
		if atomic.LoadInt32(&fail) == 1 {
			return nil, boom
		}
		return fc, nil
	}, WithBackoff(time.Second, 4*time.Second), withClock(clock))

	_, err := c.ResolveVcMeta(context.Background(), "vc-1")
	assert.ErrorIs(t, err, ErrInit)
	assert.NotErrorIs(t, err, ErrVcMetaRetrieval)
	assert.False(t, errors.Is(err, boom))
	assert.Equal(t, int32(1), calls)

	//within the backoff window no reconnect is attempted
	_, err = c.ResolveDidDocument(context.Background(), "did:omn:issuer")
	assert.ErrorIs(t, err, ErrInit)
	assert.Equal(t, int32(1), calls)

	//after the window one new attempt is made, which fails again and doubles the wait
	now = now.Add(time.Second)
	_, err = c.ResolveVcMeta(context.Background(), "vc-1")
	assert.ErrorIs(t, err, ErrInit)
	assert.Equal(t, int32(2), calls)

	now = now.Add(time.Second)
	_, err = c.ResolveVcMeta(context.Background(), "vc-1")
	assert.ErrorIs(t, err, ErrInit)
	assert.Equal(t, int32(2), calls)

	//ledger recovers
	atomic.StoreInt32(&fail, 0)
	now = now.Add(time.Second)
	got, err := c.ResolveVcMeta(context.Background(), "vc-1")
	require.NoError(t, err)
	assert.Equal(t, "vc-1", got.ID)
	assert.Equal(t, int32(3), calls)

	//connected clients never reconnect
	_, err = c.ResolveVcMeta(context.Background(), "vc-1")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls)
}

func TestInitNilContract(t *testing.T) {
	c, _ := newTestClient(t, func(context.Context) (ledger.Contract, error) {
		return nil, nil
	})

	_, err := c.Contract(context.Background())
	assert.ErrorIs(t, err, ErrInit)
	assert.Equal(t, 503, err.(*Error).HTTPStatus())
}

func TestInitCancelledCallerDoesNotBlockRetry(t *testing.T) {
	var calls int32
	fc := &fakeContract{}

	c, _ := newTestClient(t, func(ctx context.Context) (ledger.Contract, error) {
		atomic.AddInt32(&calls, 1)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return fc, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Contract(ctx)
	assert.ErrorIs(t, err, ErrInit)

	got, err := c.Contract(context.Background())
	require.NoError(t, err)
	assert.Same(t, fc, got)
	assert.Equal(t, int32(2), calls)
}

func TestLedgerConnector(t *testing.T) {
	fc := &fakeContract{}
	ledger.Register("resolver-test", func(context.Context, string) (ledger.Contract, error) {
		return fc, nil
	})

	c, _ := newTestClient(t, LedgerConnector("resolver-test", ""))

	got, err := c.Contract(context.Background())
	require.NoError(t, err)
	assert.Same(t, fc, got)

	require.NoError(t, c.Shutdown())
	assert.Equal(t, int32(1), fc.closed)
}

func TestShutdownBeforeConnect(t *testing.T) {
	var calls int32
	c, _ := newTestClient(t, staticConnector(&fakeContract{}, &calls))

	assert.NoError(t, c.Shutdown())
	assert.Equal(t, int32(0), calls)
}

func TestOptions(t *testing.T) {
	_, err := NewClient(nil)
	assert.Error(t, err)

	var calls int32
	_, err = NewClient(staticConnector(&fakeContract{}, &calls), WithBackoff(time.Minute, time.Second))
	assert.Error(t, err)

	_, err = NewClient(staticConnector(&fakeContract{}, &calls), WithLogger(nil))
	assert.Error(t, err)
}
