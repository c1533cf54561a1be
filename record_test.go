package cubetimer

import (
	"fmt"
	"testing"
)

type seqIDGen struct {
	prefix string
	n      int
}

func (g *seqIDGen) GenerateID() string {
	g.n++
	return fmt.Sprintf("%s-%04d", g.prefix, g.n)
}

type fixedClock struct {
	t int64
}

func (c fixedClock) Now() int64 {
	return c.t
}

func testCodec() codec {
	return codec{ids: &seqIDGen{prefix: "gen"}, clock: fixedClock{t: 1700000000}}
}

func sampleSolve() Solve {
	return Solve{
		ID:       "solve-1",
		Scramble: MoveSequence{R, U2, FPrime, D, LPrime, B2},
		Created:  1690000000,
		Update:   SyncRecord{ID: "update-1", Date: 1690000100, Sync: "token"},
		OK:       true,
		Time:     12345,
		Penalty:  2000,
		Device:   "smart-cube",
		Moves: []TimedMove{
			{Move: R, Milliseconds: 150},
			{Move: UPrime, Milliseconds: 420},
			{Move: F2, Milliseconds: 900},
		},
		CrossTime:     900,
		F2LPairTimes:  [4]uint32{1500, 2800, 4100, 5600},
		OLLCrossTime:  7000,
		OLLFinishTime: 8200,
		PLLCornerTime: 9900,
		Dirty:         true,
	}
}

func TestSolveRoundTrip(t *testing.T) {
	c := testCodec()
	original := sampleSolve()
	data := c.encodeSolve(&original)

	decoded := Solve{ID: original.ID}
	if err := c.decodeSolve(data, &decoded); err != nil {
		t.Fatalf("decodeSolve failed: %v", err)
	}
	if !decoded.Equal(&original) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", decoded, original)
	}
	if decoded.Update != original.Update {
		t.Errorf("sync record mismatch: got %+v, want %+v", decoded.Update, original.Update)
	}
	if decoded.Dirty {
		t.Error("dirty flag should be cleared after deserialization")
	}
}

func TestSessionRoundTrip(t *testing.T) {
	c := testCodec()
	original := Session{
		ID:     "session-1",
		Name:   "morning practice",
		Type:   Solve3x3x3OneHanded,
		Update: SyncRecord{ID: "update-2", Date: 1690000200, Sync: "tok2"},
		Dirty:  true,
	}
	data := c.encodeSession(&original)

	decoded := Session{ID: original.ID}
	if err := c.decodeSession(data, &decoded); err != nil {
		t.Fatalf("decodeSession failed: %v", err)
	}
	if decoded.Name != original.Name || decoded.Type != original.Type ||
		decoded.Update != original.Update {
		t.Errorf("round trip mismatch: got %+v", decoded)
	}
	if decoded.Dirty {
		t.Error("dirty flag should be cleared after deserialization")
	}
}

func TestIDListRoundTrip(t *testing.T) {
	c := testCodec()
	session := Session{Solves: []Solve{{ID: "a"}, {ID: "b"}, {ID: "c"}}}
	solveIDs, err := c.decodeSolveList(c.encodeSolveList(&session))
	if err != nil {
		t.Fatalf("decodeSolveList failed: %v", err)
	}
	if len(solveIDs) != 3 || solveIDs[0] != "a" || solveIDs[1] != "b" || solveIDs[2] != "c" {
		t.Errorf("solve list = %v", solveIDs)
	}

	sessions := []*Session{{ID: "s1"}, {ID: "s2"}}
	sessionIDs, err := c.decodeSessionList(c.encodeSessionList(sessions))
	if err != nil {
		t.Fatalf("decodeSessionList failed: %v", err)
	}
	if len(sessionIDs) != 2 || sessionIDs[0] != "s1" || sessionIDs[1] != "s2" {
		t.Errorf("session list = %v", sessionIDs)
	}
}

func TestDecodeSynthesizesMissingSyncRecord(t *testing.T) {
	c := testCodec()

	// A record written before sync bookkeeping existed: no update field.
	var w fieldWriter
	w.uint64Field(solveFieldCreated, 1690000000)
	w.boolField(solveFieldOK, true)
	w.uint32Field(solveFieldTime, 9000)
	data := encodeEnvelope(contentsCubeSolve, w.buf)

	var solve Solve
	if err := c.decodeSolve(data, &solve); err != nil {
		t.Fatalf("decodeSolve failed: %v", err)
	}
	if solve.Update.ID == "" {
		t.Error("missing sync record should get a synthesized ID")
	}
	if solve.Update.Date != 1700000000 {
		t.Errorf("synthesized date = %d, want current clock", solve.Update.Date)
	}
	if solve.Time != 9000 || !solve.OK {
		t.Errorf("fields lost: %+v", solve)
	}
}

func TestDecodeSkipsUnknownFields(t *testing.T) {
	c := testCodec()

	var w fieldWriter
	w.uint32Field(solveFieldTime, 4200)
	w.field(200, []byte("future data"))
	w.boolField(solveFieldOK, true)
	data := encodeEnvelope(contentsCubeSolve, w.buf)

	var solve Solve
	if err := c.decodeSolve(data, &solve); err != nil {
		t.Fatalf("decodeSolve should skip unknown fields: %v", err)
	}
	if solve.Time != 4200 || !solve.OK {
		t.Errorf("fields around unknown tag lost: %+v", solve)
	}
}

func TestDecodeRejectsWrongContents(t *testing.T) {
	c := testCodec()
	session := Session{ID: "s"}
	data := c.encodeSession(&session)

	var solve Solve
	err := c.decodeSolve(data, &solve)
	if !IsCorrupt(err) {
		t.Errorf("decoding a session as a solve should be corruption, got %v", err)
	}
}

func TestDecodeRejectsBadEnvelopes(t *testing.T) {
	c := testCodec()
	good := c.encodeSolve(&Solve{})

	cases := map[string][]byte{
		"empty":       {},
		"short":       good[:6],
		"bad magic":   append([]byte("XXXX"), good[4:]...),
		"bad version": append(append([]byte{}, good[:4]...), append([]byte{99}, good[5:]...)...),
		"truncated":   good[:len(good)-3],
	}
	for name, data := range cases {
		var solve Solve
		if err := c.decodeSolve(data, &solve); !IsCorrupt(err) {
			t.Errorf("%s: want corruption, got %v", name, err)
		}
	}

	// Unknown contents discriminant.
	unknown := append([]byte{}, good...)
	unknown[5] = 99
	var solve Solve
	if err := c.decodeSolve(unknown, &solve); !IsCorrupt(err) {
		t.Error("unknown contents tag should be corruption")
	}
}

func TestDecodeRejectsTruncatedField(t *testing.T) {
	c := testCodec()

	var w fieldWriter
	w.uint32Field(solveFieldTime, 4200)
	payload := w.buf[:len(w.buf)-2]
	// Reframe the envelope around the mangled payload.
	data := encodeEnvelope(contentsCubeSolve, payload)

	var solve Solve
	if err := c.decodeSolve(data, &solve); !IsCorrupt(err) {
		t.Errorf("truncated field should be corruption, got %v", err)
	}
}
