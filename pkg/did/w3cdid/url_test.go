package w3cdid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type URLParts struct {
	Scheme   string
	Method   string
	Id       string
	Query    string
	Fragment string
	DID      string
}

func TestURLDecodes(t *testing.T) {
	tests := map[string]URLParts{
		"did":                          {Scheme: "did"},
		"did:":                         {Scheme: "did"},
		"did:example":                  {Scheme: "did", Method: "example"},
		"did:example:":                 {Scheme: "did", Method: "example"},
		"did:example:1234":             {Scheme: "did", Method: "example", Id: "1234", DID: "did:example:1234"},
		"did:example:1234?h=1":         {Scheme: "did", Method: "example", Id: "1234", Query: "h=1", DID: "did:example:1234"},
		"did:example:1234?h=1#b1":      {Scheme: "did", Method: "example", Id: "1234", Query: "h=1", Fragment: "b1", DID: "did:example:1234"},
		"did:example:1234:abc?h=1#b1":  {Scheme: "did", Method: "example", Id: "1234:abc", Query: "h=1", Fragment: "b1", DID: "did:example:1234:abc"},
		"did:example:?h=1#b1":          {Scheme: "did", Method: "example", Query: "h=1", Fragment: "b1"},
		"did:example:1234/key1?h=1#b1": {Scheme: "did", Method: "example", Id: "1234/key1", Query: "h=1", Fragment: "b1", DID: "did:example:1234"},
		"did:abc:/key1?h=1#b1":         {Scheme: "did", Method: "abc", Id: "/key1", Query: "h=1", Fragment: "b1"},
		"did:omn:3kR5Q?versionId=2":    {Scheme: "did", Method: "omn", Id: "3kR5Q", Query: "versionId=2", DID: "did:omn:3kR5Q"},
		"did:omn:3kR5Q#pin":            {Scheme: "did", Method: "omn", Id: "3kR5Q", Fragment: "pin", DID: "did:omn:3kR5Q"},
	}

	for k, test := range tests {
		t.Run(k, func(t *testing.T) {
			tk := URL(k)

			assert.Equal(t, test.Scheme, tk.Scheme())
			assert.Equal(t, test.Method, tk.Method())
			assert.Equal(t, test.Id, tk.Id())
			assert.Equal(t, test.Query, tk.Query())
			assert.Equal(t, test.Fragment, tk.Fragment())
			assert.Equal(t, test.DID, tk.DID())
		})
	}
}

func TestURLVersionID(t *testing.T) {
	assert.Equal(t, "2", URL("did:omn:abc?versionId=2").VersionID())
	assert.Equal(t, "7", URL("did:omn:abc?foo=bar&versionId=7#key-1").VersionID())
	assert.Equal(t, "", URL("did:omn:abc").VersionID())
	assert.Equal(t, "", URL("did:omn:abc?versionId").VersionID())
}

func TestURLDIDRequiresScheme(t *testing.T) {
	assert.Empty(t, URL("web:example:1234").DID())
	assert.Empty(t, URL("example:1234").DID())
	assert.Empty(t, URL("1234").DID())
}
