package storage

import (
	"testing"
	"time"

	"github.com/landchain/titleledger/pkg/events"
	"github.com/landchain/titleledger/pkg/identity"
	"github.com/landchain/titleledger/pkg/logging"
	"github.com/landchain/titleledger/pkg/registry"
)

var (
	testAdmin  = identity.MustParse("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	testOwnerX = identity.MustParse("0x1111111111111111111111111111111111111111")
	testOwnerY = identity.MustParse("0x2222222222222222222222222222222222222222")
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	logger, err := logging.NewColoredLogger(logging.ComponentStorage, false)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	store, err := Open(logger, t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func buildState(t *testing.T) registry.State {
	t.Helper()
	logger, _ := logging.NewColoredLogger(logging.ComponentRegistry, false)
	svc, err := registry.NewService(logger, registry.Config{Admin: testAdmin}, nil)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	if err := svc.RegisterLand(testAdmin, 1, testOwnerX, 1000, "10,20", "T-1"); err != nil {
		t.Fatal(err)
	}
	if err := svc.RegisterLand(testAdmin, 2, testOwnerY, 2500, "30,40", "T-2"); err != nil {
		t.Fatal(err)
	}
	if err := svc.VerifyLand(testAdmin, 1); err != nil {
		t.Fatal(err)
	}
	if err := svc.TransferOwnership(testOwnerX, 1, testOwnerY); err != nil {
		t.Fatal(err)
	}
	return svc.ExportState()
}

func TestLoadStateEmptyDatabase(t *testing.T) {
	store := openTestStore(t)
	_, ok, err := store.LoadState()
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if ok {
		t.Error("fresh database should report no checkpoint")
	}
}

func TestSaveAndLoadStateRoundTrip(t *testing.T) {
	store := openTestStore(t)
	want := buildState(t)

	if err := store.SaveState(want); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}

	got, ok, err := store.LoadState()
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if !ok {
		t.Fatal("checkpoint should exist")
	}

	if got.Admin != want.Admin {
		t.Errorf("admin mismatch: %s != %s", got.Admin, want.Admin)
	}
	if len(got.Lands) != len(want.Lands) {
		t.Fatalf("expected %d lands, got %d", len(want.Lands), len(got.Lands))
	}
	for i := range want.Lands {
		w, g := want.Lands[i], got.Lands[i]
		if g.ID != w.ID || g.Owner != w.Owner || g.SizeSqFt != w.SizeSqFt ||
			g.Location != w.Location || g.TitleNumber != w.TitleNumber || g.Verified != w.Verified {
			t.Errorf("land %d mismatch: %+v != %+v", w.ID, g, w)
		}
		if !g.RegisteredAt.Equal(w.RegisteredAt) {
			t.Errorf("land %d registeredAt mismatch", w.ID)
		}
		wh, gh := want.History[w.ID], got.History[w.ID]
		if len(wh) != len(gh) {
			t.Fatalf("land %d history length mismatch: %d != %d", w.ID, len(gh), len(wh))
		}
		for j := range wh {
			if gh[j].Owner != wh[j].Owner || gh[j].VerifiedAtTime != wh[j].VerifiedAtTime {
				t.Errorf("land %d history[%d] mismatch", w.ID, j)
			}
		}
	}

	// A restored service behaves identically.
	logger, _ := logging.NewColoredLogger(logging.ComponentRegistry, false)
	svc, err := registry.NewService(logger, registry.Config{Admin: testAdmin}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.RestoreState(got); err != nil {
		t.Fatalf("RestoreState failed: %v", err)
	}
	if lands := svc.GetOwnerLands(testOwnerY); len(lands) != 2 {
		t.Errorf("restored owner index should hold 2 lands for Y, got %v", lands)
	}
}

func TestSaveStateOverwritesPrevious(t *testing.T) {
	store := openTestStore(t)
	st := buildState(t)
	if err := store.SaveState(st); err != nil {
		t.Fatal(err)
	}
	// Save again; the checkpoint must not accumulate duplicates.
	if err := store.SaveState(st); err != nil {
		t.Fatal(err)
	}

	got, ok, err := store.LoadState()
	if err != nil || !ok {
		t.Fatalf("LoadState failed: %v ok=%v", err, ok)
	}
	if len(got.Lands) != len(st.Lands) {
		t.Errorf("expected %d lands after re-save, got %d", len(st.Lands), len(got.Lands))
	}
}

func TestJournalAppendAndList(t *testing.T) {
	store := openTestStore(t)

	evts := []events.Event{
		{ID: "e1", Kind: events.KindLandRegistered, LandID: 1, Owner: testOwnerX, Timestamp: time.Now().UTC()},
		{ID: "e2", Kind: events.KindLandVerified, LandID: 1, Owner: testOwnerX, Timestamp: time.Now().UTC()},
		{ID: "e3", Kind: events.KindOwnershipTransferred, LandID: 1, Owner: testOwnerY, PrevOwner: testOwnerX, Timestamp: time.Now().UTC()},
		{ID: "e4", Kind: events.KindLandRegistered, LandID: 2, Owner: testOwnerY, Timestamp: time.Now().UTC()},
	}
	for _, evt := range evts {
		if err := store.AppendEvent(evt); err != nil {
			t.Fatalf("AppendEvent failed: %v", err)
		}
	}

	n, err := store.EventCount()
	if err != nil || n != 4 {
		t.Errorf("EventCount = %d, %v; want 4", n, err)
	}

	all, err := store.ListEvents(0, 0)
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 events, got %d", len(all))
	}
	if all[0].ID != "e1" || all[3].ID != "e4" {
		t.Error("journal must preserve append order")
	}
	if all[2].PrevOwner != testOwnerX {
		t.Error("transfer event must round-trip prev owner")
	}
	if all[0].PrevOwner != identity.Zero {
		t.Error("registration event must have zero prev owner")
	}

	forLand, err := store.ListEvents(1, 0)
	if err != nil {
		t.Fatalf("ListEvents(1) failed: %v", err)
	}
	if len(forLand) != 3 {
		t.Errorf("expected 3 events for land 1, got %d", len(forLand))
	}

	limited, err := store.ListEvents(0, 2)
	if err != nil {
		t.Fatalf("ListEvents limit failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 limited events, got %d", len(limited))
	}
}

func TestStoreActsAsSink(t *testing.T) {
	store := openTestStore(t)
	logger, _ := logging.NewColoredLogger(logging.ComponentEvents, false)
	bus := events.NewBus(logger, 16)
	bus.Subscribe(store)

	bus.Emit(events.Event{Kind: events.KindLandRegistered, LandID: 7, Owner: testOwnerX})
	bus.Close()

	n, err := store.EventCount()
	if err != nil || n != 1 {
		t.Errorf("EventCount = %d, %v; want 1", n, err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	logger, _ := logging.NewColoredLogger(logging.ComponentStorage, false)
	dir := t.TempDir()

	store, err := Open(logger, dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SaveState(buildState(t)); err != nil {
		t.Fatal(err)
	}
	store.Close()

	reopened, err := Open(logger, dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	_, ok, err := reopened.LoadState()
	if err != nil || !ok {
		t.Errorf("checkpoint should survive reopen: ok=%v err=%v", ok, err)
	}
}
