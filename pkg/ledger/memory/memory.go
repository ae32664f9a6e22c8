package memory

import (
	"context"
	"sync"

	"github.com/ipfs/go-cid"
	"github.com/pkg/errors"
	"github.com/tcfw/didres/pkg/ledger"
	"github.com/tcfw/didres/pkg/storage"
)

const (
	DriverName = "memory"

	Cfg_memory_seed = "memory.seed"
)

var (
	_ ledger.Contract = (*Ledger)(nil)
	_ ledger.Writer   = (*Ledger)(nil)
)

func init() {
	ledger.Register(DriverName, open)
}

// Ledger is an in process ledger. Records are stored content addressed so
// callers never share memory with stored records.
type Ledger struct {
	mu sync.RWMutex

	objects map[cid.Cid][]byte
	dids    map[string]cid.Cid
	history map[string]map[string]cid.Cid
	vcs     map[string]cid.Cid
}

func New() *Ledger {
	return &Ledger{
		objects: make(map[cid.Cid][]byte),
		dids:    make(map[string]cid.Cid),
		history: make(map[string]map[string]cid.Cid),
		vcs:     make(map[string]cid.Cid),
	}
}

func open(ctx context.Context, source string) (ledger.Contract, error) {
	props, err := ledger.LoadProperties(source)
	if err != nil {
		return nil, err
	}

	l := New()

	if seed := props.GetString(Cfg_memory_seed); seed != "" {
		if _, err := ledger.ImportFile(ctx, l, seed); err != nil {
			return nil, errors.Wrap(err, "seeding memory ledger")
		}
	}

	return l, nil
}

func (m *Ledger) putObj(obj interface{}) (cid.Cid, error) {
	d, id, err := storage.Encode(obj)
	if err != nil {
		return cid.Undef, err
	}

	m.objects[id] = d

	return id, nil
}

func (m *Ledger) getObj(id cid.Cid, obj interface{}) error {
	d, ok := m.objects[id]
	if !ok {
		return ledger.ErrNotFound
	}

	return storage.Decode(id, d, obj)
}

// PutDidDoc anchors a document. As on a ledger, the head is the last
// anchored record even if its versionId is older than the current head.
func (m *Ledger) PutDidDoc(_ context.Context, doc *ledger.DocumentAndStatus) error {
	if err := ledger.ValidateDocument(doc); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id, err := m.putObj(doc)
	if err != nil {
		return errors.Wrap(err, "storing document")
	}

	did := doc.Document.ID
	m.dids[did] = id

	if v := doc.Document.VersionID; v != "" {
		h, ok := m.history[did]
		if !ok {
			h = make(map[string]cid.Cid)
			m.history[did] = h
		}
		h[v] = id
	}

	return nil
}

func (m *Ledger) PutVcMetadata(_ context.Context, meta *ledger.VCMeta) error {
	if err := ledger.ValidateVCMeta(meta); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id, err := m.putObj(meta)
	if err != nil {
		return errors.Wrap(err, "storing vc meta")
	}

	m.vcs[meta.ID] = id

	return nil
}

func (m *Ledger) GetDidDoc(ctx context.Context, didKeyURL string) (*ledger.DocumentAndStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	did, version, err := ledger.ParseDidKeyURL(didKeyURL)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var id cid.Cid
	var ok bool

	if version != "" {
		id, ok = m.history[did][version]
	} else {
		id, ok = m.dids[did]
	}
	if !ok {
		return nil, ledger.ErrNotFound
	}

	doc := &ledger.DocumentAndStatus{}
	if err := m.getObj(id, doc); err != nil {
		return nil, errors.Wrap(err, "loading document")
	}

	return doc, nil
}

func (m *Ledger) GetVcMetadata(ctx context.Context, vcID string) (*ledger.VCMeta, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if vcID == "" {
		return nil, ledger.ErrInvalidIdentifier
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.vcs[vcID]
	if !ok {
		return nil, ledger.ErrNotFound
	}

	meta := &ledger.VCMeta{}
	if err := m.getObj(id, meta); err != nil {
		return nil, errors.Wrap(err, "loading vc meta")
	}

	return meta, nil
}

func (m *Ledger) Close() error {
	return nil
}
