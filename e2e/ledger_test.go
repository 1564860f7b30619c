//go:build e2e

package e2e

import (
	"context"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/landchain/titleledger/pkg/client"
	"github.com/landchain/titleledger/pkg/config"
	"github.com/landchain/titleledger/pkg/events"
	"github.com/landchain/titleledger/pkg/gateway"
	"github.com/landchain/titleledger/pkg/identity"
	"github.com/landchain/titleledger/pkg/logging"
	"github.com/landchain/titleledger/pkg/registry"
	"github.com/landchain/titleledger/pkg/storage"
)

// testLedger boots a full in-process ledger: sqlite store, event bus with
// journaling, registry service with checkpointing, and the HTTP gateway.
type testLedger struct {
	url   string
	store *storage.Store
	bus   *events.Bus
	srv   *httptest.Server
	gw    *gateway.Gateway
}

func bootLedger(t *testing.T, dataDir string, admin identity.Identity) *testLedger {
	t.Helper()
	logger, err := logging.NewColoredLogger(logging.ComponentGeneral, false)
	if err != nil {
		t.Fatal(err)
	}

	store, err := storage.Open(logger, dataDir)
	if err != nil {
		t.Fatal(err)
	}

	bus := events.NewBus(logger, 256)
	bus.Subscribe(store)

	st, restored, err := store.LoadState()
	if err != nil {
		t.Fatal(err)
	}
	if restored {
		admin = st.Admin
	}

	svc, err := registry.NewService(logger, registry.Config{Admin: admin}, bus)
	if err != nil {
		t.Fatal(err)
	}
	if restored {
		if err := svc.RestoreState(st); err != nil {
			t.Fatal(err)
		}
	}
	svc.SetCommitHook(func(st registry.State) {
		if err := store.SaveState(st); err != nil {
			t.Errorf("checkpoint failed: %v", err)
		}
	})

	cfg := config.Default().Gateway
	cfg.RateLimitPerMin = 0
	gw := gateway.New(logger, &cfg, svc, store, bus)
	srv := httptest.NewServer(gw.Router())

	return &testLedger{url: srv.URL, store: store, bus: bus, srv: srv, gw: gw}
}

func (l *testLedger) shutdown() {
	l.srv.Close()
	l.gw.Close()
	l.bus.Close()
	l.store.Close()
}

func TestLedger_ConcurrentTransfers(t *testing.T) {
	adminKey, err := identity.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	ownerKey, err := identity.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	admin := identity.FromKey(adminKey)
	owner := identity.FromKey(ownerKey)

	ledger := bootLedger(t, t.TempDir(), admin)
	defer ledger.shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	adminClient := client.NewSigning(ledger.url, 10*time.Second, adminKey)
	ownerClient := client.NewSigning(ledger.url, 10*time.Second, ownerKey)

	const numLands = 10
	var wg sync.WaitGroup
	var errorCount int32

	// Register and verify lands concurrently; each land id is distinct so
	// all registrations must succeed.
	for i := uint64(1); i <= numLands; i++ {
		wg.Add(1)
		go func(id uint64) {
			defer wg.Done()
			if _, err := adminClient.RegisterLand(ctx, id, owner, 100*id, "loc", "T"); err != nil {
				atomic.AddInt32(&errorCount, 1)
				return
			}
			if _, err := adminClient.VerifyLand(ctx, id); err != nil {
				atomic.AddInt32(&errorCount, 1)
			}
		}(i)
	}
	wg.Wait()
	if errorCount > 0 {
		t.Fatalf("expected no errors, got %d", errorCount)
	}

	// Concurrent transfers of the same land: exactly one must win, the rest
	// must fail once verification resets.
	var transferOK int32
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ownerClient.TransferOwnership(ctx, 1, admin); err == nil {
				atomic.AddInt32(&transferOK, 1)
			}
		}()
	}
	wg.Wait()
	if transferOK != 1 {
		t.Errorf("exactly one transfer should succeed, got %d", transferOK)
	}

	reader := client.New(ledger.url, 10*time.Second)
	count, err := reader.LandCount(ctx)
	if err != nil || count != numLands {
		t.Errorf("LandCount = %d, %v; want %d", count, err, numLands)
	}
}

func TestLedger_SurvivesRestart(t *testing.T) {
	adminKey, err := identity.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	ownerKey, err := identity.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	admin := identity.FromKey(adminKey)
	owner := identity.FromKey(ownerKey)
	dataDir := t.TempDir()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ledger := bootLedger(t, dataDir, admin)
	adminClient := client.NewSigning(ledger.url, 10*time.Second, adminKey)
	if _, err := adminClient.RegisterLand(ctx, 1, owner, 500, "here", "T-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := adminClient.VerifyLand(ctx, 1); err != nil {
		t.Fatal(err)
	}
	ownerClient := client.NewSigning(ledger.url, 10*time.Second, ownerKey)
	if _, err := ownerClient.TransferOwnership(ctx, 1, admin); err != nil {
		t.Fatal(err)
	}
	ledger.shutdown()

	// Reboot on the same data dir; state and journal must survive.
	reborn := bootLedger(t, dataDir, identity.Zero)
	defer reborn.shutdown()

	reader := client.New(reborn.url, 10*time.Second)
	land, err := reader.GetLand(ctx, 1)
	if err != nil {
		t.Fatalf("land should survive restart: %v", err)
	}
	if land.Owner != admin.Hex() {
		t.Errorf("owner = %s, want %s", land.Owner, admin.Hex())
	}
	if land.Verified {
		t.Error("verification reset must survive restart")
	}

	hist, err := reader.GetHistory(ctx, 1)
	if err != nil || len(hist) != 2 {
		t.Errorf("history = %v, %v; want 2 records", hist, err)
	}

	evts, err := reader.ListEvents(ctx, 0, 0)
	if err != nil || len(evts) != 3 {
		t.Errorf("journal = %d events, %v; want 3", len(evts), err)
	}

	// The restored admin can keep operating.
	adminClient = client.NewSigning(reborn.url, 10*time.Second, adminKey)
	if _, err := adminClient.RegisterLand(ctx, 2, identity.FromKey(ownerKey), 900, "there", "T-2"); err != nil {
		t.Errorf("restored ledger should accept new registrations: %v", err)
	}
}
