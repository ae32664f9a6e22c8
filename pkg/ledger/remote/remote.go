package remote

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/tcfw/didres/pkg/ledger"
)

const (
	DriverName = "remote"

	Cfg_remote_url     = "remote.url"
	Cfg_remote_timeout = "remote.timeout"

	DidDocPath = "/api/v1/did-doc"
	VcMetaPath = "/api/v1/vc-meta"

	defaultTimeout = 30 * time.Second
	maxBodySize    = 4 << 20
)

var _ ledger.Contract = (*Client)(nil)

func init() {
	ledger.Register(DriverName, open)
}

// Client reads ledger records through the REST API of another resolver
type Client struct {
	client *http.Client
	url    string
}

func open(_ context.Context, source string) (ledger.Contract, error) {
	props, err := ledger.LoadProperties(source)
	if err != nil {
		return nil, err
	}

	timeout := props.GetDuration(Cfg_remote_timeout)
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return New(props.GetString(Cfg_remote_url), &http.Client{Timeout: timeout})
}

func New(baseURL string, client *http.Client) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("remote ledger url cannot be empty")
	}

	if _, err := url.Parse(baseURL); err != nil {
		return nil, errors.Wrap(err, "parsing remote ledger url")
	}

	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		client: client,
		url:    strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (c *Client) GetDidDoc(ctx context.Context, didKeyURL string) (*ledger.DocumentAndStatus, error) {
	if didKeyURL == "" {
		return nil, ledger.ErrInvalidIdentifier
	}

	doc := &ledger.DocumentAndStatus{}
	if err := c.get(ctx, DidDocPath, url.Values{"did": {didKeyURL}}, doc); err != nil {
		return nil, err
	}

	if doc.Document == nil {
		return nil, ledger.ErrNotFound
	}

	return doc, nil
}

func (c *Client) GetVcMetadata(ctx context.Context, vcID string) (*ledger.VCMeta, error) {
	if vcID == "" {
		return nil, ledger.ErrInvalidIdentifier
	}

	meta := &ledger.VCMeta{}
	if err := c.get(ctx, VcMetaPath, url.Values{"vcId": {vcID}}, meta); err != nil {
		return nil, err
	}

	if meta.ID == "" {
		return nil, ledger.ErrNotFound
	}

	return meta, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+path+"?"+q.Encode(), nil)
	if err != nil {
		return errors.Wrap(err, "creating request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(ledger.ErrUnavailable, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(bufio.NewReader(io.LimitReader(resp.Body, maxBodySize)))
	if err != nil {
		return errors.Wrap(err, "reading response body")
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ledger.ErrNotFound
	case resp.StatusCode == http.StatusBadRequest:
		return errors.Wrap(ledger.ErrInvalidIdentifier, string(body))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return errors.Wrapf(ledger.ErrUnavailable, "unexpected status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "unmarshalling JSON")
	}

	return nil
}

func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}
