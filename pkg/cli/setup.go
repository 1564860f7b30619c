package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/landchain/titleledger/pkg/client"
	"github.com/landchain/titleledger/pkg/identity"
)

// Options carries the global CLI flags into command handlers.
type Options struct {
	GatewayURL string
	KeyPath    string
	Format     string // "table" or "json"
	Timeout    time.Duration
}

// readClient builds a client for read commands; no key is needed.
func readClient(opts Options) *client.Client {
	return client.New(opts.GatewayURL, opts.Timeout)
}

// signingClient builds a client for write commands; it loads the key at
// opts.KeyPath, falling back to the default key location.
func signingClient(opts Options) (*client.Client, error) {
	path := opts.KeyPath
	if path == "" {
		var err error
		if path, err = identity.DefaultKeyPath(); err != nil {
			return nil, err
		}
	}
	key, err := identity.LoadKey(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load signing key from %s: %w (run 'ledger-cli key generate' first)", path, err)
	}
	return client.NewSigning(opts.GatewayURL, opts.Timeout, key), nil
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to format output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func parseAddress(arg, what string) identity.Identity {
	id, err := identity.Parse(arg)
	if err != nil {
		fail("Invalid %s address: %s", what, arg)
	}
	return id
}
