package cli

import (
	"fmt"
	"os"

	"github.com/landchain/titleledger/pkg/identity"
)

// HandleKeyCommand manages the local signing key.
func HandleKeyCommand(args []string, opts Options) {
	if len(args) == 0 {
		fail("Usage: ledger-cli key <generate|show>")
	}

	path := opts.KeyPath
	if path == "" {
		var err error
		if path, err = identity.DefaultKeyPath(); err != nil {
			fail("Failed to resolve key path: %v", err)
		}
	}

	switch args[0] {
	case "generate":
		if _, err := os.Stat(path); err == nil {
			fail("Key already exists at %s; remove it first to regenerate", path)
		}
		key, err := identity.GenerateKey()
		if err != nil {
			fail("Failed to generate key: %v", err)
		}
		if err := identity.SaveKey(key, path); err != nil {
			fail("Failed to save key: %v", err)
		}
		fmt.Printf("Generated key at %s\n", path)
		fmt.Printf("Identity: %s\n", identity.FromKey(key).Hex())

	case "show":
		key, err := identity.LoadKey(path)
		if err != nil {
			fail("Failed to load key from %s: %v", path, err)
		}
		fmt.Printf("Key path: %s\n", path)
		fmt.Printf("Identity: %s\n", identity.FromKey(key).Hex())

	default:
		fail("Unknown key subcommand: %s", args[0])
	}
}
