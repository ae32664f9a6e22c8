package cryptography

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJWK(t *testing.T) {
	jwk, err := ParseJWK(map[string]string{
		"kty": "OKP",
		"crv": "Ed25519",
		"x":   "11qYAYKxCrfVS_7TyWQHOg7hcvPapiMlrwIaaPcHURo",
	})
	require.NoError(t, err)
	assert.True(t, jwk.IsPublic())
}

func TestParseJWKRejects(t *testing.T) {
	tests := map[string]map[string]string{
		"private": {
			"kty": "OKP",
			"crv": "Ed25519",
			"x":   "11qYAYKxCrfVS_7TyWQHOg7hcvPapiMlrwIaaPcHURo",
			"d":   "nWGxne_9WmC6hEr0kuwsxERJxWl7MmkZcDusAxyuf2A",
		},
		"unknown kty": {"kty": "nope"},
		"missing x":   {"kty": "OKP", "crv": "Ed25519"},
	}

	for name, m := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseJWK(m)
			assert.Error(t, err)
		})
	}
}
