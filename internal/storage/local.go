package storage

import (
	"context"
	"os"
	"sort"
	"sync"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/ipfs/go-cid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tcfw/didres/internal/utils/logging"
	"github.com/tcfw/didres/pkg/ledger"
	"github.com/tcfw/didres/pkg/storage"
)

const (
	DriverName = "local"

	Cfg_local_path = "local.path"

	cacheSize = 1 << 20 * 32

	tableSep byte = 0
)

var (
	_ ledger.Contract = (*LocalLedger)(nil)
	_ ledger.Writer   = (*LocalLedger)(nil)
)

func init() {
	ledger.Register(DriverName, open)
}

type metadataKeyType byte

const (
	objectTPrefix metadataKeyType = iota + 1
	didTPrefix
	didHistoryTPrefix
	vcTPrefix
)

// LocalLedger is a pebble backed read index of anchored DID documents
// and VC metadata
type LocalLedger struct {
	db     *pebble.DB
	filter *storage.Filter
	logger *logrus.Entry

	//serialises writers so head and history updates land together
	wmu sync.Mutex
}

func open(ctx context.Context, source string) (ledger.Contract, error) {
	props, err := ledger.LoadProperties(source)
	if err != nil {
		return nil, err
	}

	path := props.GetString(Cfg_local_path)
	if path == "" {
		return nil, errors.New("local ledger path not set")
	}

	return NewLocalLedger(path, nil)
}

// NewLocalLedger opens or creates a local ledger at path. A nil fs uses
// the OS filesystem.
func NewLocalLedger(path string, fs vfs.FS) (*LocalLedger, error) {
	if fs == nil {
		fs = vfs.Default
		if err := os.MkdirAll(path, 0700); err != nil {
			return nil, errors.Wrap(err, "creating ledger dir")
		}
	}

	c := pebble.NewCache(cacheSize)
	defer c.Unref()

	db, err := pebble.Open(path, &pebble.Options{Cache: c, FS: fs})
	if err != nil {
		return nil, errors.Wrap(err, "opening ledger store")
	}

	l := &LocalLedger{
		db:     db,
		filter: storage.NewFilter(0),
		logger: logging.Entry().WithField("ledger", DriverName),
	}

	if err := l.buildFilter(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "building ledger filter")
	}

	return l, nil
}

func (l *LocalLedger) buildFilter() error {
	n := 0

	for _, t := range []metadataKeyType{didTPrefix, didHistoryTPrefix, vcTPrefix} {
		iter := l.db.NewIter(&pebble.IterOptions{
			LowerBound: []byte{byte(t)},
			UpperBound: []byte{byte(t) + 1},
		})

		for iter.First(); iter.Valid(); iter.Next() {
			l.filter.Add(string(iter.Key()))
			n++
		}

		if err := iter.Close(); err != nil {
			return err
		}
	}

	l.logger.WithField("records", n).Debug("loaded ledger filter")

	return nil
}

func (l *LocalLedger) putObj(b *pebble.Batch, obj interface{}) (cid.Cid, error) {
	d, id, err := storage.Encode(obj)
	if err != nil {
		return cid.Undef, err
	}

	if err := b.Set(typedKey(objectTPrefix, id.KeyString()), d, nil); err != nil {
		return cid.Undef, errors.Wrap(err, "storing object")
	}

	return id, nil
}

func (l *LocalLedger) getObj(id cid.Cid, obj interface{}) error {
	d, done, err := l.db.Get(typedKey(objectTPrefix, id.KeyString()))
	if err != nil {
		if err == pebble.ErrNotFound {
			return ledger.ErrNotFound
		}
		return errors.Wrap(err, "reading object")
	}
	defer done.Close()

	return storage.Decode(id, d, obj)
}

// lookup follows a metadata pointer key to its object
func (l *LocalLedger) lookup(key []byte, obj interface{}) error {
	if !l.filter.Test(string(key)) {
		return ledger.ErrNotFound
	}

	v, done, err := l.db.Get(key)
	if err != nil {
		if err == pebble.ErrNotFound {
			return ledger.ErrNotFound
		}
		return errors.Wrap(err, "reading metadata key")
	}

	id, err := cid.Cast(v)
	done.Close()
	if err != nil {
		return errors.Wrap(err, "casting object cid")
	}

	return l.getObj(id, obj)
}

// PutDidDoc anchors a document. The head of the DID always moves to the
// last anchored record, whatever its versionId.
func (l *LocalLedger) PutDidDoc(_ context.Context, doc *ledger.DocumentAndStatus) error {
	if err := ledger.ValidateDocument(doc); err != nil {
		return err
	}

	l.wmu.Lock()
	defer l.wmu.Unlock()

	b := l.db.NewBatch()
	defer b.Close()

	id, err := l.putObj(b, doc)
	if err != nil {
		return err
	}

	did := doc.Document.ID
	keys := [][]byte{typedKey(didTPrefix, did)}

	if v := doc.Document.VersionID; v != "" {
		keys = append(keys, typedKey(didHistoryTPrefix, did, v))
	}

	for _, k := range keys {
		if err := b.Set(k, id.Bytes(), nil); err != nil {
			return errors.Wrap(err, "indexing document")
		}
	}

	if err := b.Commit(pebble.Sync); err != nil {
		return errors.Wrap(err, "committing document")
	}

	for _, k := range keys {
		l.filter.Add(string(k))
	}

	l.logger.WithFields(logrus.Fields{
		"did":     did,
		"version": doc.Document.VersionID,
		"status":  doc.Status,
	}).Debug("anchored document")

	return nil
}

func (l *LocalLedger) PutVcMetadata(_ context.Context, meta *ledger.VCMeta) error {
	if err := ledger.ValidateVCMeta(meta); err != nil {
		return err
	}

	l.wmu.Lock()
	defer l.wmu.Unlock()

	b := l.db.NewBatch()
	defer b.Close()

	id, err := l.putObj(b, meta)
	if err != nil {
		return err
	}

	k := typedKey(vcTPrefix, meta.ID)
	if err := b.Set(k, id.Bytes(), nil); err != nil {
		return errors.Wrap(err, "indexing vc meta")
	}

	if err := b.Commit(pebble.Sync); err != nil {
		return errors.Wrap(err, "committing vc meta")
	}

	l.filter.Add(string(k))

	l.logger.WithField("vc", meta.ID).WithField("status", meta.Status).Debug("anchored vc meta")

	return nil
}

func (l *LocalLedger) GetDidDoc(ctx context.Context, didKeyURL string) (*ledger.DocumentAndStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	did, version, err := ledger.ParseDidKeyURL(didKeyURL)
	if err != nil {
		return nil, err
	}

	k := typedKey(didTPrefix, did)
	if version != "" {
		k = typedKey(didHistoryTPrefix, did, version)
	}

	doc := &ledger.DocumentAndStatus{}
	if err := l.lookup(k, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

func (l *LocalLedger) GetVcMetadata(ctx context.Context, vcID string) (*ledger.VCMeta, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if vcID == "" {
		return nil, ledger.ErrInvalidIdentifier
	}

	meta := &ledger.VCMeta{}
	if err := l.lookup(typedKey(vcTPrefix, vcID), meta); err != nil {
		return nil, err
	}

	return meta, nil
}

// DIDHistory lists the anchored versions of a DID, ordered by
// ledger.CompareVersions
func (l *LocalLedger) DIDHistory(ctx context.Context, did string) ([]*ledger.DocumentAndStatus, error) {
	prefix := append(typedKey(didHistoryTPrefix, did), tableSep)

	iter := l.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: upperBound(prefix),
	})
	defer iter.Close()

	docs := []*ledger.DocumentAndStatus{}

	for iter.First(); iter.Valid(); iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		id, err := cid.Cast(iter.Value())
		if err != nil {
			return nil, errors.Wrap(err, "casting history cid")
		}

		doc := &ledger.DocumentAndStatus{}
		if err := l.getObj(id, doc); err != nil {
			return nil, errors.Wrap(err, "reading history entry")
		}

		docs = append(docs, doc)
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return ledger.CompareVersions(docs[i].Document.VersionID, docs[j].Document.VersionID) < 0
	})

	return docs, nil
}

func (l *LocalLedger) Close() error {
	return l.db.Close()
}

func typedKey(kType metadataKeyType, parts ...string) []byte {
	n := 1
	for _, p := range parts {
		n += len(p) + 1 //add sep as well
	}

	k := make([]byte, 0, n)
	k = append(k, byte(kType))
	for _, p := range parts {
		k = append(k, []byte(p)...)
		k = append(k, tableSep)
	}

	if len(parts) == 0 {
		return k
	}

	return k[:len(k)-1]
}

func upperBound(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}

	return nil
}
