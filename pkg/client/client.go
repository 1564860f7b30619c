package client

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/landchain/titleledger/pkg/errors"
	"github.com/landchain/titleledger/pkg/identity"
)

// Client talks to a ledger gateway over HTTP. Write operations are signed
// with the client's key; the gateway recovers the caller identity from the
// signature.
type Client struct {
	baseURL string
	http    *http.Client
	key     *ecdsa.PrivateKey
}

// New creates a read-only client. Write operations will fail without a key.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// NewSigning creates a client that signs write operations with key.
func NewSigning(baseURL string, timeout time.Duration, key *ecdsa.PrivateKey) *Client {
	c := New(baseURL, timeout)
	c.key = key
	return c
}

// Identity returns the client's signing identity, or the zero identity when
// no key is configured.
func (c *Client) Identity() identity.Identity {
	if c.key == nil {
		return identity.Zero
	}
	return identity.FromKey(c.key)
}

func signedPayload(method, path string, body []byte) []byte {
	buf := make([]byte, 0, len(method)+len(path)+len(body)+2)
	buf = append(buf, method...)
	buf = append(buf, '\n')
	buf = append(buf, path...)
	buf = append(buf, '\n')
	buf = append(buf, body...)
	return buf
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	if c.key == nil {
		return errors.NewUnauthenticatedError("no signing key configured")
	}

	var body []byte
	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	sig, err := identity.Sign(c.key, signedPayload(http.MethodPost, path, body))
	if err != nil {
		return err
	}
	req.Header.Set("X-Ledger-Caller", c.Identity().Hex())
	req.Header.Set("X-Ledger-Signature", sig)

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var remote struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &remote) == nil && remote.Message != "" {
			return fmt.Errorf("gateway: %s (%s)", remote.Message, remote.Code)
		}
		return fmt.Errorf("gateway: unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
