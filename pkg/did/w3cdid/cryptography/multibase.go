package cryptography

import "github.com/multiformats/go-multibase"

// DecodeMultibase decodes a multibase encoded public key
func DecodeMultibase(mb string) ([]byte, error) {
	_, d, err := multibase.Decode(mb)
	return d, err
}

// EncodeMultibase encodes raw key bytes as base58btc multibase
func EncodeMultibase(raw []byte) (string, error) {
	return multibase.Encode(multibase.Base58BTC, raw)
}
