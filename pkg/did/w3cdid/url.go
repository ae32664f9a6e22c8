package w3cdid

import (
	"net/url"
	"strings"
)

const (
	versionIDParam = "versionId"
)

// URL is a DID URL, a DID optionally followed by a path, query and fragment
type URL string

func (u URL) Scheme() string {
	return "did"
}

func (u URL) Method() string {
	uri, err := url.Parse(string(u))
	if err != nil {
		return ""
	}
	p := strings.SplitN(uri.Opaque, ":", 2)
	return p[0]
}

func (u URL) Id() string {
	uri, err := url.Parse(string(u))
	if err != nil {
		return ""
	}
	p := strings.SplitN(uri.Opaque, ":", 2)
	if len(p) < 2 {
		return ""
	}

	return p[1]
}

func (u URL) Query() string {
	uri, err := url.Parse(string(u))
	if err != nil {
		return ""
	}
	return uri.RawQuery
}

func (u URL) Fragment() string {
	uri, err := url.Parse(string(u))
	if err != nil {
		return ""
	}
	return uri.Fragment
}

// DID strips any path, query or fragment returning the bare DID
func (u URL) DID() string {
	uri, err := url.Parse(string(u))
	if err != nil || uri.Scheme != "did" {
		return ""
	}

	method := u.Method()
	id := u.Id()
	if method == "" || id == "" {
		return ""
	}

	if i := strings.IndexByte(id, '/'); i >= 0 {
		id = id[:i]
	}

	if id == "" {
		return ""
	}

	return "did:" + method + ":" + id
}

// VersionID returns the versionId query parameter, if any
func (u URL) VersionID() string {
	q, err := url.ParseQuery(u.Query())
	if err != nil {
		return ""
	}

	return q.Get(versionIDParam)
}
