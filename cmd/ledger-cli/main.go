package main

import (
	"fmt"
	"os"
	"time"

	"github.com/landchain/titleledger/pkg/cli"
)

var opts = cli.Options{
	GatewayURL: "http://localhost:6001",
	Format:     "table",
	Timeout:    30 * time.Second,
}

// version metadata populated via -ldflags at build time
var (
	version = "dev"
	commit  = ""
)

func main() {
	if len(os.Args) < 2 {
		showHelp()
		return
	}

	command := os.Args[1]
	args := parseGlobalFlags(os.Args[2:])

	if url := os.Getenv("LEDGER_GATEWAY_URL"); url != "" && opts.GatewayURL == "http://localhost:6001" {
		opts.GatewayURL = url
	}

	switch command {
	case "version":
		fmt.Printf("ledger-cli %s", version)
		if commit != "" {
			fmt.Printf(" (commit %s)", commit)
		}
		fmt.Println()

	case "key":
		cli.HandleKeyCommand(args, opts)

	case "register":
		cli.HandleRegisterCommand(args, opts)
	case "verify":
		cli.HandleVerifyCommand(args, opts)
	case "transfer":
		cli.HandleTransferCommand(args, opts)
	case "admin":
		cli.HandleAdminCommand(args, opts)

	case "get":
		cli.HandleGetCommand(args, opts)
	case "list":
		cli.HandleListCommand(opts)
	case "history":
		cli.HandleHistoryCommand(args, opts)
	case "owner":
		cli.HandleOwnerCommand(args, opts)
	case "events":
		cli.HandleEventsCommand(args, opts)
	case "status":
		cli.HandleStatusCommand(opts)
	case "health":
		cli.HandleHealthCommand(opts)

	case "help", "--help", "-h":
		showHelp()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		showHelp()
		os.Exit(1)
	}
}

// parseGlobalFlags strips global flags from args and returns the rest.
func parseGlobalFlags(args []string) []string {
	var rest []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-f", "--format":
			if i+1 < len(args) {
				opts.Format = args[i+1]
				i++
			}
		case "-g", "--gateway":
			if i+1 < len(args) {
				opts.GatewayURL = args[i+1]
				i++
			}
		case "-k", "--key":
			if i+1 < len(args) {
				opts.KeyPath = args[i+1]
				i++
			}
		case "-t", "--timeout":
			if i+1 < len(args) {
				if d, err := time.ParseDuration(args[i+1]); err == nil {
					opts.Timeout = d
				}
				i++
			}
		default:
			rest = append(rest, args[i])
		}
	}
	return rest
}

func showHelp() {
	fmt.Printf("Land Title Ledger CLI\n\n")
	fmt.Printf("Usage: ledger-cli <command> [args...]\n\n")

	fmt.Printf("Key Management:\n")
	fmt.Printf("  key generate                          - Generate a signing key\n")
	fmt.Printf("  key show                              - Show the local identity\n\n")

	fmt.Printf("Ledger Operations (signed):\n")
	fmt.Printf("  register <id> <owner> <sqft> <loc> <title>  - Register land (admin)\n")
	fmt.Printf("  verify <id>                           - Verify land (admin)\n")
	fmt.Printf("  transfer <id> <new-owner>             - Transfer ownership (owner)\n")
	fmt.Printf("  admin transfer <new-admin>            - Hand over admin role (admin)\n\n")

	fmt.Printf("Queries:\n")
	fmt.Printf("  get <id>                              - Show land details\n")
	fmt.Printf("  list                                  - List all land ids\n")
	fmt.Printf("  history <id>                          - Show ownership history\n")
	fmt.Printf("  owner <address>                       - List lands held by owner\n")
	fmt.Printf("  events [land-id] [--limit n]          - Show journaled events\n")
	fmt.Printf("  status                                - Show gateway status\n")
	fmt.Printf("  health                                - Check gateway liveness\n\n")

	fmt.Printf("Global Flags:\n")
	fmt.Printf("  -g, --gateway <url>     - Gateway URL (default http://localhost:6001,\n")
	fmt.Printf("                            or LEDGER_GATEWAY_URL)\n")
	fmt.Printf("  -k, --key <path>        - Signing key path (default ~/.titleledger/key.hex)\n")
	fmt.Printf("  -f, --format <format>   - Output format: table, json (default: table)\n")
	fmt.Printf("  -t, --timeout <dur>     - Operation timeout (default: 30s)\n")
}
