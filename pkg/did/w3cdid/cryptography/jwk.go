package cryptography

import (
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"gopkg.in/square/go-jose.v2"
)

// ParseJWK decodes a publicKeyJwk entry. Private keys are rejected.
func ParseJWK(m map[string]string) (*jose.JSONWebKey, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(err, "marshalling jwk")
	}

	jwk := &jose.JSONWebKey{}
	if err := jwk.UnmarshalJSON(b); err != nil {
		return nil, errors.Wrap(err, "parsing jwk")
	}

	if !jwk.Valid() {
		return nil, errors.New("invalid jwk")
	}

	if !jwk.IsPublic() {
		return nil, errors.New("jwk contains private key material")
	}

	return jwk, nil
}
