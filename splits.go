package cubetimer

// DetailedSplit carries per-phase timing and move metrics.
// PhaseStartTime is the timestamp at which the previous phase finished;
// FirstMoveTime is the timestamp of the first move belonging to this
// phase and equals PhaseStartTime when the phase has no moves. MoveCount
// uses the outer turn metric.
type DetailedSplit struct {
	PhaseStartTime uint32
	FirstMoveTime  uint32
	FinishTime     uint32
	MoveCount      int
}

// DetailedSplitTimes is the result of a detailed replay of a solve's move
// stream: one split per phase plus aggregate efficiency metrics.
type DetailedSplitTimes struct {
	Cross     DetailedSplit
	F2LPair   [4]DetailedSplit
	OLLCross  DetailedSplit
	OLLFinish DetailedSplit
	PLLCorner DetailedSplit
	PLLFinish DetailedSplit

	// IdleTime is the total time spent between finishing a phase and
	// making the first move of the next, in milliseconds.
	IdleTime uint32

	// MoveCount is the outer turn count of the whole move stream.
	MoveCount int

	// TPS is turns per second over the penalty-adjusted solve time.
	// ETPS additionally excludes idle time and each phase's leading move
	// from the tally (a two-move sequence one second apart is 1 TPS,
	// not 2).
	TPS  float32
	ETPS float32
}

// recordSplitTime stores a split timestamp for the state just reached.
// StateSolved has no split slot of its own.
func (s *Solve) recordSplitTime(state SolveState, timestamp uint32) {
	switch state {
	case StateCross:
		s.CrossTime = timestamp
	case StateF2LFirstPair:
		s.F2LPairTimes[0] = timestamp
	case StateF2LSecondPair:
		s.F2LPairTimes[1] = timestamp
	case StateF2LThirdPair:
		s.F2LPairTimes[2] = timestamp
	case StateF2LComplete:
		s.F2LPairTimes[3] = timestamp
	case StateOLLCross:
		s.OLLCrossTime = timestamp
	case StateOLLComplete:
		s.OLLFinishTime = timestamp
	case StatePLLCorners:
		s.PLLCornerTime = timestamp
	}
}

// splitFor returns the detailed split slot for a state. States past
// PLLCorners share the final slot.
func splitFor(state SolveState, splits *DetailedSplitTimes) *DetailedSplit {
	switch state {
	case StateCross:
		return &splits.Cross
	case StateF2LFirstPair:
		return &splits.F2LPair[0]
	case StateF2LSecondPair:
		return &splits.F2LPair[1]
	case StateF2LThirdPair:
		return &splits.F2LPair[2]
	case StateF2LComplete:
		return &splits.F2LPair[3]
	case StateOLLCross:
		return &splits.OLLCross
	case StateOLLComplete:
		return &splits.OLLFinish
	case StatePLLCorners:
		return &splits.PLLCorner
	default:
		return &splits.PLLFinish
	}
}

// GenerateSplitTimes replays the stored move stream on a fresh cube seeded
// with the scramble and records a split timestamp for every state the
// solve passed through. States not reached before the stream ends receive
// the final timestamp.
func (s *Solve) GenerateSplitTimes() {
	cube := NewCube()
	cube.Apply(s.Scramble)

	state := StateInitial
	timestamp := uint32(0)
	for _, tm := range s.Moves {
		newState := TransitionSolveState(cube, state)
		for j := state + 1; j <= newState; j++ {
			s.recordSplitTime(j, timestamp)
		}
		state = newState

		cube.Move(tm.Move)
		timestamp = tm.Milliseconds
	}

	for j := state + 1; j <= StateSolved; j++ {
		s.recordSplitTime(j, timestamp)
	}
}

// GenerateDetailedSplitTimes replays the stored move stream and computes
// per-phase timing, move counts, and the TPS/eTPS efficiency metrics.
func (s *Solve) GenerateDetailedSplitTimes() DetailedSplitTimes {
	cube := NewCube()
	cube.Apply(s.Scramble)

	var result DetailedSplitTimes
	state := StateInitial
	timestamp := uint32(0)
	var lastMove Move
	for _, tm := range s.Moves {
		newState := TransitionSolveState(cube, state)
		for j := state + 1; j <= newState; j++ {
			split := splitFor(j, &result)
			split.FinishTime = timestamp
			split = splitFor(j+1, &result)
			split.PhaseStartTime = timestamp
			split.FirstMoveTime = timestamp
			split.MoveCount = 0
			state = j
		}

		cube.Move(tm.Move)
		timestamp = tm.Milliseconds

		// Count the move against the phase in progress, collapsing
		// same-outer-block runs.
		split := splitFor(state+1, &result)
		if split.MoveCount == 0 {
			split.MoveCount++
			split.FirstMoveTime = timestamp
		} else if !IsSameOuterBlock(lastMove, tm.Move) {
			split.MoveCount++
		}
		lastMove = tm.Move
	}

	// Phases never finished are closed out at the final timestamp.
	for j := state + 1; j < StateSolved; j++ {
		split := splitFor(j, &result)
		split.FinishTime = timestamp
		split = splitFor(j+1, &result)
		split.PhaseStartTime = timestamp
		split.FirstMoveTime = timestamp
		split.MoveCount = 0
		state = j
	}

	result.Cross.PhaseStartTime = 0
	result.Cross.FirstMoveTime = 0
	result.PLLFinish.FinishTime = timestamp

	result.IdleTime = (result.Cross.FirstMoveTime - result.Cross.PhaseStartTime) +
		(result.F2LPair[0].FirstMoveTime - result.F2LPair[0].PhaseStartTime) +
		(result.F2LPair[1].FirstMoveTime - result.F2LPair[1].PhaseStartTime) +
		(result.F2LPair[2].FirstMoveTime - result.F2LPair[2].PhaseStartTime) +
		(result.F2LPair[3].FirstMoveTime - result.F2LPair[3].PhaseStartTime) +
		(result.OLLCross.FirstMoveTime - result.OLLCross.PhaseStartTime) +
		(result.OLLFinish.FirstMoveTime - result.OLLFinish.PhaseStartTime) +
		(result.PLLCorner.FirstMoveTime - result.PLLCorner.PhaseStartTime) +
		(result.PLLFinish.FirstMoveTime - result.PLLFinish.PhaseStartTime)

	// The leading move of a phase measures reaction, not turning speed, so
	// it is excluded from the effective move tally. The cross phase always
	// contributes exactly one leading move from time zero.
	firstMoves := 1
	for _, split := range []*DetailedSplit{
		&result.F2LPair[0], &result.F2LPair[1], &result.F2LPair[2], &result.F2LPair[3],
		&result.OLLCross, &result.OLLFinish, &result.PLLCorner, &result.PLLFinish,
	} {
		if split.FirstMoveTime != split.PhaseStartTime {
			firstMoves++
		}
	}

	moves := MoveSequence(make([]Move, 0, len(s.Moves)))
	for _, tm := range s.Moves {
		moves = append(moves, tm.Move)
	}
	result.MoveCount = moves.OuterTurnCount()
	result.ETPS = float32(result.MoveCount-firstMoves) /
		(float32(int64(s.Time)-int64(s.Penalty)-int64(result.IdleTime)) / 1000.0)
	result.TPS = float32(result.MoveCount-1) /
		(float32(int64(s.Time)-int64(s.Penalty)) / 1000.0)
	return result
}
