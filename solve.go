package cubetimer

// DNF is the did-not-finish sentinel used throughout statistics. It is a
// domain value, not an error.
const DNF = -1

// SolveType identifies the kind of attempt a session collects.
type SolveType int

const (
	Solve3x3x3 SolveType = iota
	Solve3x3x3OneHanded
	Solve3x3x3Blindfolded
	Solve2x2x2
	Solve4x4x4
	Solve4x4x4Blindfolded
	Solve5x5x5
	Solve5x5x5Blindfolded
)

var solveTypeNames = map[SolveType]string{
	Solve3x3x3:            "3x3x3",
	Solve3x3x3OneHanded:   "3x3x3 One Handed",
	Solve3x3x3Blindfolded: "3x3x3 Blindfolded",
	Solve2x2x2:            "2x2x2",
	Solve4x4x4:            "4x4x4",
	Solve4x4x4Blindfolded: "4x4x4 Blindfolded",
	Solve5x5x5:            "5x5x5",
	Solve5x5x5Blindfolded: "5x5x5 Blindfolded",
}

// String returns the display name of the solve type.
func (t SolveType) String() string {
	if name, ok := solveTypeNames[t]; ok {
		return name
	}
	return ""
}

// SolveTypeByName looks up a solve type by display name.
func SolveTypeByName(name string) (SolveType, bool) {
	for t, n := range solveTypeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// SyncRecord identifies a revision of a persisted entity for future
// cross-device reconciliation. The sync token is opaque to the core.
type SyncRecord struct {
	ID   string
	Date int64 // seconds since epoch
	Sync string
}

// Solve is a completed attempt. The history never changes a recorded solve
// except for the Dirty flag and split time regeneration; a caller that edits
// a solve's result fields (OK, Time, Penalty) persists the edit through
// History.CommitSession.
type Solve struct {
	ID       string
	Scramble MoveSequence
	Created  int64 // seconds since epoch
	Update   SyncRecord
	OK       bool // false means DNF
	Time     uint32
	Penalty  uint32
	Device   string
	Moves    []TimedMove

	// Split timestamps in milliseconds from solve start, one per phase
	// boundary, in state order.
	CrossTime     uint32
	F2LPairTimes  [4]uint32
	OLLCrossTime  uint32
	OLLFinishTime uint32
	PLLCornerTime uint32

	// Dirty marks whether the persisted copy is stale.
	Dirty bool
}

// Equal compares the solve contents: scramble, creation time, result,
// device, move stream, and split times. Identity and sync bookkeeping are
// not part of the comparison.
func (s *Solve) Equal(other *Solve) bool {
	if len(s.Scramble) != len(other.Scramble) {
		return false
	}
	for i := range s.Scramble {
		if s.Scramble[i] != other.Scramble[i] {
			return false
		}
	}
	if s.Created != other.Created || s.OK != other.OK ||
		s.Time != other.Time || s.Penalty != other.Penalty ||
		s.Device != other.Device {
		return false
	}
	if len(s.Moves) != len(other.Moves) {
		return false
	}
	for i := range s.Moves {
		if s.Moves[i] != other.Moves[i] {
			return false
		}
	}
	if s.CrossTime != other.CrossTime ||
		s.F2LPairTimes != other.F2LPairTimes ||
		s.OLLCrossTime != other.OLLCrossTime ||
		s.OLLFinishTime != other.OLLFinishTime ||
		s.PLLCornerTime != other.PLLCornerTime {
		return false
	}
	return true
}
