package cli

import (
	"context"
	"fmt"
	"strconv"
)

func parseLandID(arg string) uint64 {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		fail("Invalid land id: %s", arg)
	}
	return id
}

// HandleRegisterCommand registers a new land parcel (admin only).
// Usage: register <land-id> <owner> <size-sqft> <location> <title-number>
func HandleRegisterCommand(args []string, opts Options) {
	if len(args) != 5 {
		fail("Usage: ledger-cli register <land-id> <owner> <size-sqft> <location> <title-number>")
	}
	landID := parseLandID(args[0])
	owner := parseAddress(args[1], "owner")
	size, err := strconv.ParseUint(args[2], 10, 64)
	if err != nil {
		fail("Invalid size: %s", args[2])
	}

	cli, err := signingClient(opts)
	if err != nil {
		fail("%v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	land, err := cli.RegisterLand(ctx, landID, owner, size, args[3], args[4])
	if err != nil {
		fail("Registration failed: %v", err)
	}
	if opts.Format == "json" {
		printJSON(land)
		return
	}
	fmt.Printf("Registered land %d\n", land.ID)
	fmt.Printf("  Owner:  %s\n", land.Owner)
	fmt.Printf("  Title:  %s\n", land.TitleNumber)
}

// HandleVerifyCommand verifies a land parcel (admin only).
func HandleVerifyCommand(args []string, opts Options) {
	if len(args) != 1 {
		fail("Usage: ledger-cli verify <land-id>")
	}
	cli, err := signingClient(opts)
	if err != nil {
		fail("%v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	land, err := cli.VerifyLand(ctx, parseLandID(args[0]))
	if err != nil {
		fail("Verification failed: %v", err)
	}
	if opts.Format == "json" {
		printJSON(land)
		return
	}
	fmt.Printf("Land %d verified\n", land.ID)
}

// HandleTransferCommand transfers ownership (current owner only).
func HandleTransferCommand(args []string, opts Options) {
	if len(args) != 2 {
		fail("Usage: ledger-cli transfer <land-id> <new-owner>")
	}
	cli, err := signingClient(opts)
	if err != nil {
		fail("%v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	land, err := cli.TransferOwnership(ctx, parseLandID(args[0]), parseAddress(args[1], "new owner"))
	if err != nil {
		fail("Transfer failed: %v", err)
	}
	if opts.Format == "json" {
		printJSON(land)
		return
	}
	fmt.Printf("Land %d transferred to %s\n", land.ID, land.Owner)
}

// HandleAdminCommand hands the admin role to another identity.
func HandleAdminCommand(args []string, opts Options) {
	if len(args) != 2 || args[0] != "transfer" {
		fail("Usage: ledger-cli admin transfer <new-admin>")
	}
	cli, err := signingClient(opts)
	if err != nil {
		fail("%v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	newAdmin := parseAddress(args[1], "new admin")
	if err := cli.TransferAdmin(ctx, newAdmin); err != nil {
		fail("Admin transfer failed: %v", err)
	}
	fmt.Printf("Admin role transferred to %s\n", newAdmin.Hex())
}
