package cubetimer

import (
	"errors"
	"testing"

	"cubetimer/internal/kv"
)

func testHistory(t *testing.T) (*History, string) {
	t.Helper()
	path := t.TempDir()
	h := NewHistory(&seqIDGen{prefix: "id"},
		WithClock(fixedClock{t: 1700000000}),
		WithSyncWrites(false))
	if err := h.OpenDatabase(path, nil); err != nil {
		t.Fatalf("OpenDatabase failed: %v", err)
	}
	t.Cleanup(func() { h.CloseDatabase() })
	return h, path
}

func recordedSolve(h *History, timeMs uint32, ok bool) Solve {
	solve := h.NewSolve(MoveSequence{R, U, RPrime, UPrime})
	solve.OK = ok
	solve.Time = timeMs
	solve.Device = "test"
	solve.Moves = []TimedMove{
		{Move: U, Milliseconds: timeMs / 2},
		{Move: UPrime, Milliseconds: timeMs},
	}
	return solve
}

func TestOpenFreshDatabase(t *testing.T) {
	h, _ := testHistory(t)
	if len(h.Sessions) != 0 {
		t.Errorf("fresh database has %d sessions, want 0", len(h.Sessions))
	}
	if h.ActiveSession() != nil {
		t.Error("fresh database should have no active session")
	}
}

func TestOpenRequiresIDGenerator(t *testing.T) {
	h := NewHistory(nil, WithSyncWrites(false))
	if err := h.OpenDatabase(t.TempDir(), nil); err != ErrIDGeneratorRequired {
		t.Errorf("OpenDatabase without generator = %v, want ErrIDGeneratorRequired", err)
	}
}

func TestRecordSolvesAndStats(t *testing.T) {
	h, _ := testHistory(t)
	for _, ms := range []uint32{10000, 12000, 11000} {
		if err := h.RecordSolve(Solve3x3x3, recordedSolve(h, ms, true)); err != nil {
			t.Fatalf("RecordSolve failed: %v", err)
		}
	}

	if len(h.Sessions) != 1 {
		t.Fatalf("have %d sessions, want 1", len(h.Sessions))
	}
	session := h.ActiveSession()
	if session == nil || session != h.Sessions[0] {
		t.Fatal("active session should be the recorded session")
	}
	if session.Type != Solve3x3x3 {
		t.Errorf("session type = %v", session.Type)
	}

	best, _ := session.BestSolve()
	if best != 10000 {
		t.Errorf("best = %d, want 10000", best)
	}
	if got := session.AvgOfLast(3, false); got != 11000 {
		t.Errorf("AvgOfLast(3) = %d, want 11000", got)
	}
	if got := session.SessionAvg(); got != 11000 {
		t.Errorf("SessionAvg = %d, want 11000", got)
	}

	for i := range session.Solves {
		if session.Solves[i].Dirty {
			t.Errorf("solve %d still dirty after commit", i)
		}
	}
	if session.Dirty {
		t.Error("session still dirty after commit")
	}
}

func TestRecordDifferentTypeStartsNewSession(t *testing.T) {
	h, _ := testHistory(t)
	if err := h.RecordSolve(Solve3x3x3, recordedSolve(h, 10000, true)); err != nil {
		t.Fatal(err)
	}
	if err := h.RecordSolve(Solve4x4x4, recordedSolve(h, 45000, true)); err != nil {
		t.Fatal(err)
	}

	if len(h.Sessions) != 2 {
		t.Fatalf("have %d sessions, want 2", len(h.Sessions))
	}
	if h.ActiveSession() != h.Sessions[1] {
		t.Error("active session should be the second session")
	}
	if h.Sessions[1].Type != Solve4x4x4 {
		t.Errorf("second session type = %v", h.Sessions[1].Type)
	}
}

func TestResetSessionStartsFresh(t *testing.T) {
	h, _ := testHistory(t)
	if err := h.RecordSolve(Solve3x3x3, recordedSolve(h, 10000, true)); err != nil {
		t.Fatal(err)
	}
	if err := h.ResetSession(); err != nil {
		t.Fatal(err)
	}
	if h.ActiveSession() != nil {
		t.Error("active session should be cleared")
	}
	if err := h.RecordSolve(Solve3x3x3, recordedSolve(h, 11000, true)); err != nil {
		t.Fatal(err)
	}
	if len(h.Sessions) != 2 {
		t.Errorf("have %d sessions, want 2 after reset", len(h.Sessions))
	}
}

func TestSplitSessionAtSolve(t *testing.T) {
	h, _ := testHistory(t)
	for i := 0; i < 5; i++ {
		if err := h.RecordSolve(Solve3x3x3, recordedSolve(h, uint32(10000+i*1000), true)); err != nil {
			t.Fatal(err)
		}
	}
	session := h.ActiveSession()
	before := make([]string, len(session.Solves))
	for i := range session.Solves {
		before[i] = session.Solves[i].ID
	}

	if err := h.SplitSessionAtSolve(session, 2); err != nil {
		t.Fatalf("SplitSessionAtSolve failed: %v", err)
	}

	if len(h.Sessions) != 2 {
		t.Fatalf("have %d sessions, want 2", len(h.Sessions))
	}
	head, tail := h.Sessions[0], h.Sessions[1]
	if len(head.Solves) != 2 || len(tail.Solves) != 3 {
		t.Fatalf("split sizes = %d, %d; want 2, 3", len(head.Solves), len(tail.Solves))
	}
	if h.ActiveSession() != tail {
		t.Error("active session should move to the split tail")
	}
	if tail.Type != head.Type || tail.Name != head.Name {
		t.Error("split session should inherit type and name")
	}

	// Concatenation preserves the original order and identities.
	after := make([]string, 0, 5)
	for i := range head.Solves {
		after = append(after, head.Solves[i].ID)
	}
	for i := range tail.Solves {
		after = append(after, tail.Solves[i].ID)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("solve order changed at %d: %s != %s", i, before[i], after[i])
		}
	}
}

func TestSplitSessionOutOfRangeIsNoOp(t *testing.T) {
	h, _ := testHistory(t)
	for i := 0; i < 3; i++ {
		if err := h.RecordSolve(Solve3x3x3, recordedSolve(h, 10000, true)); err != nil {
			t.Fatal(err)
		}
	}
	session := h.ActiveSession()
	for _, idx := range []int{0, 3, -1, 99} {
		if err := h.SplitSessionAtSolve(session, idx); err != nil {
			t.Errorf("split at %d should silently no-op, got %v", idx, err)
		}
	}
	if len(h.Sessions) != 1 || len(session.Solves) != 3 {
		t.Error("out of range split should not modify the session")
	}
}

func TestMergeSessions(t *testing.T) {
	h, _ := testHistory(t)
	for i := 0; i < 2; i++ {
		if err := h.RecordSolve(Solve3x3x3, recordedSolve(h, 10000, true)); err != nil {
			t.Fatal(err)
		}
	}
	if err := h.ResetSession(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := h.RecordSolve(Solve3x3x3, recordedSolve(h, 12000, true)); err != nil {
			t.Fatal(err)
		}
	}

	first, second := h.Sessions[0], h.Sessions[1]
	firstIDs := make([]string, len(first.Solves))
	for i := range first.Solves {
		firstIDs[i] = first.Solves[i].ID
	}

	if err := h.MergeSessions(first, second, "merged"); err != nil {
		t.Fatalf("MergeSessions failed: %v", err)
	}

	if len(h.Sessions) != 1 {
		t.Fatalf("have %d sessions, want 1", len(h.Sessions))
	}
	if second.Name != "merged" {
		t.Errorf("merged name = %q", second.Name)
	}
	if len(second.Solves) != 5 {
		t.Fatalf("merged session has %d solves, want 5", len(second.Solves))
	}
	for i, id := range firstIDs {
		if second.Solves[i].ID != id {
			t.Errorf("first session solves should lead the merged order at %d", i)
		}
	}
}

func TestMergeDifferentTypesIsNoOp(t *testing.T) {
	h, _ := testHistory(t)
	if err := h.RecordSolve(Solve3x3x3, recordedSolve(h, 10000, true)); err != nil {
		t.Fatal(err)
	}
	if err := h.RecordSolve(Solve4x4x4, recordedSolve(h, 45000, true)); err != nil {
		t.Fatal(err)
	}
	first, second := h.Sessions[0], h.Sessions[1]
	if err := h.MergeSessions(first, second, "nope"); err != nil {
		t.Errorf("type mismatch merge should silently no-op, got %v", err)
	}
	if len(h.Sessions) != 2 || second.Name == "nope" {
		t.Error("type mismatch merge should not modify sessions")
	}
}

func TestReopenRoundTrip(t *testing.T) {
	h, path := testHistory(t)
	times := []uint32{10000, 12000, 11000, 20000, 15000}
	for _, ms := range times {
		if err := h.RecordSolve(Solve3x3x3, recordedSolve(h, ms, ms != 20000)); err != nil {
			t.Fatal(err)
		}
	}
	if err := h.SplitSessionAtSolve(h.Sessions[0], 2); err != nil {
		t.Fatal(err)
	}

	type snapshot struct {
		id     string
		solves []Solve
	}
	var want []snapshot
	for _, s := range h.Sessions {
		want = append(want, snapshot{id: s.ID, solves: append([]Solve{}, s.Solves...)})
	}
	activeID := h.ActiveSession().ID

	if err := h.CloseDatabase(); err != nil {
		t.Fatalf("CloseDatabase failed: %v", err)
	}

	reopened := NewHistory(&seqIDGen{prefix: "id2"},
		WithClock(fixedClock{t: 1700000001}),
		WithSyncWrites(false))
	if err := reopened.OpenDatabase(path, nil); err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.CloseDatabase()

	if len(reopened.Sessions) != len(want) {
		t.Fatalf("reopened %d sessions, want %d", len(reopened.Sessions), len(want))
	}
	for i, s := range reopened.Sessions {
		if s.ID != want[i].id {
			t.Errorf("session %d id = %s, want %s", i, s.ID, want[i].id)
		}
		if len(s.Solves) != len(want[i].solves) {
			t.Fatalf("session %d has %d solves, want %d", i, len(s.Solves), len(want[i].solves))
		}
		for j := range s.Solves {
			if s.Solves[j].ID != want[i].solves[j].ID {
				t.Errorf("session %d solve %d id mismatch", i, j)
			}
			if !s.Solves[j].Equal(&want[i].solves[j]) {
				t.Errorf("session %d solve %d contents mismatch:\n got %+v\nwant %+v",
					i, j, s.Solves[j], want[i].solves[j])
			}
			if s.Solves[j].Dirty {
				t.Errorf("session %d solve %d dirty after load", i, j)
			}
		}
	}
	if reopened.ActiveSession() == nil || reopened.ActiveSession().ID != activeID {
		t.Error("active session should survive reopen")
	}
}

func TestDeleteSessionRemovesOrphanSolves(t *testing.T) {
	h, path := testHistory(t)
	if err := h.RecordSolve(Solve3x3x3, recordedSolve(h, 10000, true)); err != nil {
		t.Fatal(err)
	}
	doomed := h.ActiveSession()
	if err := h.ResetSession(); err != nil {
		t.Fatal(err)
	}
	if err := h.RecordSolve(Solve3x3x3, recordedSolve(h, 11000, true)); err != nil {
		t.Fatal(err)
	}
	survivor := h.ActiveSession()

	if err := h.DeleteSession(doomed); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if len(h.Sessions) != 1 || h.Sessions[0] != survivor {
		t.Fatal("only the surviving session should remain")
	}

	h.CloseDatabase()
	reopened := NewHistory(&seqIDGen{prefix: "id2"}, WithSyncWrites(false))
	if err := reopened.OpenDatabase(path, nil); err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.CloseDatabase()
	if len(reopened.Sessions) != 1 {
		t.Fatalf("reopened %d sessions, want 1", len(reopened.Sessions))
	}
	if len(reopened.Sessions[0].Solves) != 1 {
		t.Error("surviving session's solve should still load")
	}
}

func TestDeleteSessionPreservesSharedSolves(t *testing.T) {
	h, path := testHistory(t)
	shared := recordedSolve(h, 10000, true)
	if err := h.RecordSolve(Solve3x3x3, shared); err != nil {
		t.Fatal(err)
	}
	doomed := h.ActiveSession()
	if err := h.ResetSession(); err != nil {
		t.Fatal(err)
	}
	// The same solve record referenced from a second session.
	if err := h.RecordSolve(Solve3x3x3, shared); err != nil {
		t.Fatal(err)
	}
	keeper := h.ActiveSession()
	if doomed == keeper {
		t.Fatal("expected two distinct sessions")
	}

	if err := h.DeleteSession(doomed); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}

	h.CloseDatabase()
	reopened := NewHistory(&seqIDGen{prefix: "id2"}, WithSyncWrites(false))
	if err := reopened.OpenDatabase(path, nil); err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.CloseDatabase()
	if len(reopened.Sessions) != 1 {
		t.Fatalf("reopened %d sessions, want 1", len(reopened.Sessions))
	}
	if len(reopened.Sessions[0].Solves) != 1 || reopened.Sessions[0].Solves[0].ID != shared.ID {
		t.Error("shared solve record must survive deleting one referencing session")
	}
}

func TestMergeThenDeleteRemovesEverything(t *testing.T) {
	h, path := testHistory(t)
	if err := h.RecordSolve(Solve3x3x3, recordedSolve(h, 10000, true)); err != nil {
		t.Fatal(err)
	}
	if err := h.ResetSession(); err != nil {
		t.Fatal(err)
	}
	if err := h.RecordSolve(Solve3x3x3, recordedSolve(h, 11000, true)); err != nil {
		t.Fatal(err)
	}

	first, second := h.Sessions[0], h.Sessions[1]
	var solveIDs []string
	for _, s := range h.Sessions {
		for i := range s.Solves {
			solveIDs = append(solveIDs, s.Solves[i].ID)
		}
	}

	if err := h.MergeSessions(first, second, "all"); err != nil {
		t.Fatal(err)
	}
	if err := h.DeleteSession(second); err != nil {
		t.Fatal(err)
	}
	if len(h.Sessions) != 0 {
		t.Fatal("all sessions should be gone")
	}

	h.CloseDatabase()

	// Every solve record must be gone from the store.
	store, err := kv.Open(kv.Config{Path: path, SyncWrites: false})
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range solveIDs {
		if _, err := store.Get("solve:" + id); !errors.Is(err, kv.ErrNotFound) {
			t.Errorf("solve record %s should be deleted, got %v", id, err)
		}
	}
	if _, err := store.Get("active_session"); !errors.Is(err, kv.ErrNotFound) {
		t.Error("active session key should be deleted")
	}
	store.Close()
	reopened := NewHistory(&seqIDGen{prefix: "id2"}, WithSyncWrites(false))
	if err := reopened.OpenDatabase(path, nil); err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.CloseDatabase()
	if len(reopened.Sessions) != 0 {
		t.Errorf("reopened %d sessions, want 0", len(reopened.Sessions))
	}
	if reopened.ActiveSession() != nil {
		t.Error("no active session should remain")
	}
}

func TestOpenProgressCancel(t *testing.T) {
	h, path := testHistory(t)
	for i := 0; i < 3; i++ {
		if err := h.RecordSolve(Solve3x3x3, recordedSolve(h, 10000, true)); err != nil {
			t.Fatal(err)
		}
	}
	h.CloseDatabase()

	reopened := NewHistory(&seqIDGen{prefix: "id2"}, WithSyncWrites(false))
	calls := 0
	err := reopened.OpenDatabase(path, func(done, total int) bool {
		calls++
		return true
	})
	if err != nil {
		t.Fatalf("cancelled open should return accumulated status, got %v", err)
	}
	defer reopened.CloseDatabase()
	if calls != 1 {
		t.Errorf("progress called %d times, want 1", calls)
	}
	if len(reopened.Sessions) != 0 {
		t.Error("cancelled load should not hydrate sessions")
	}
}
