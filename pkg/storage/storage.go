package storage

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	CIDEncoding = cid.Raw

	hashType = multihash.SHA3_256
)

// Sum returns the content id of d
func Sum(d []byte) (cid.Cid, error) {
	h, err := multihash.Sum(d, hashType, multihash.DefaultLengths[hashType])
	if err != nil {
		return cid.Undef, errors.Wrap(err, "hashing object")
	}

	return cid.NewCidV1(CIDEncoding, h), nil
}

// Encode msgpack encodes obj and returns the encoding along with its content id
func Encode(obj interface{}) ([]byte, cid.Cid, error) {
	d, err := msgpack.Marshal(obj)
	if err != nil {
		return nil, cid.Undef, errors.Wrap(err, "marshalling object")
	}

	id, err := Sum(d)
	if err != nil {
		return nil, cid.Undef, err
	}

	return d, id, nil
}

// Decode unmarshals d into obj, checking d matches the expected content id
func Decode(id cid.Cid, d []byte, obj interface{}) error {
	if id.Defined() {
		actual, err := Sum(d)
		if err != nil {
			return err
		}

		if !actual.Equals(id) {
			return errors.Errorf("object content mismatch: expected %s got %s", id, actual)
		}
	}

	if err := msgpack.Unmarshal(d, obj); err != nil {
		return errors.Wrap(err, "unmarshalling object")
	}

	return nil
}
