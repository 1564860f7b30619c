package cli

import (
	"context"
	"fmt"
	"strconv"
)

// HandleGetCommand prints a land's details.
func HandleGetCommand(args []string, opts Options) {
	if len(args) != 1 {
		fail("Usage: ledger-cli get <land-id>")
	}
	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	land, err := readClient(opts).GetLand(ctx, parseLandID(args[0]))
	if err != nil {
		fail("Lookup failed: %v", err)
	}
	if opts.Format == "json" {
		printJSON(land)
		return
	}
	fmt.Printf("Land %d\n", land.ID)
	fmt.Printf("  Owner:       %s\n", land.Owner)
	fmt.Printf("  Size:        %d sqft\n", land.SizeSqFt)
	fmt.Printf("  Location:    %s\n", land.Location)
	fmt.Printf("  Title:       %s\n", land.TitleNumber)
	fmt.Printf("  Verified:    %t\n", land.Verified)
	fmt.Printf("  Registered:  %s\n", land.RegisteredAt)
}

// HandleListCommand prints all land ids in registration order.
func HandleListCommand(opts Options) {
	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	ids, err := readClient(opts).ListLands(ctx)
	if err != nil {
		fail("List failed: %v", err)
	}
	if opts.Format == "json" {
		printJSON(ids)
		return
	}
	fmt.Printf("%d lands registered\n", len(ids))
	for _, id := range ids {
		fmt.Printf("  %d\n", id)
	}
}

// HandleHistoryCommand prints a land's ownership history.
func HandleHistoryCommand(args []string, opts Options) {
	if len(args) != 1 {
		fail("Usage: ledger-cli history <land-id>")
	}
	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	hist, err := readClient(opts).GetHistory(ctx, parseLandID(args[0]))
	if err != nil {
		fail("History lookup failed: %v", err)
	}
	if opts.Format == "json" {
		printJSON(hist)
		return
	}
	for i, rec := range hist {
		fmt.Printf("%d. %s  verified=%t  %s\n", i+1, rec.Owner, rec.VerifiedAtTime, rec.Timestamp)
	}
}

// HandleOwnerCommand prints the lands held by an owner.
func HandleOwnerCommand(args []string, opts Options) {
	if len(args) != 1 {
		fail("Usage: ledger-cli owner <address>")
	}
	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	ids, err := readClient(opts).OwnerLands(ctx, parseAddress(args[0], "owner"))
	if err != nil {
		fail("Owner lookup failed: %v", err)
	}
	if opts.Format == "json" {
		printJSON(ids)
		return
	}
	fmt.Printf("%d lands held\n", len(ids))
	for _, id := range ids {
		fmt.Printf("  %d\n", id)
	}
}

// HandleEventsCommand prints journaled events.
// Usage: events [land-id] [--limit n]
func HandleEventsCommand(args []string, opts Options) {
	var landID uint64
	limit := 0
	for i := 0; i < len(args); i++ {
		if args[i] == "--limit" && i+1 < len(args) {
			n, err := strconv.Atoi(args[i+1])
			if err != nil {
				fail("Invalid limit: %s", args[i+1])
			}
			limit = n
			i++
			continue
		}
		landID = parseLandID(args[i])
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	evts, err := readClient(opts).ListEvents(ctx, landID, limit)
	if err != nil {
		fail("Event lookup failed: %v", err)
	}
	if opts.Format == "json" {
		printJSON(evts)
		return
	}
	for _, evt := range evts {
		line := fmt.Sprintf("%s  land=%d  %s  owner=%s", evt.Timestamp, evt.LandID, evt.Kind, evt.Owner)
		if evt.PrevOwner != "" {
			line += "  from=" + evt.PrevOwner
		}
		fmt.Println(line)
	}
}

// HandleStatusCommand prints the gateway status document.
func HandleStatusCommand(opts Options) {
	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	status, err := readClient(opts).Status(ctx)
	if err != nil {
		fail("Status failed: %v", err)
	}
	printJSON(status)
}

// HandleHealthCommand checks gateway liveness.
func HandleHealthCommand(opts Options) {
	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	if err := readClient(opts).Health(ctx); err != nil {
		fail("Gateway unhealthy: %v", err)
	}
	fmt.Println("ok")
}
