package cubetimer

// SolveState represents progress through the CFOP solving phases. States
// are totally ordered from StateInitial to StateSolved, allowing
// comparison with < and > operators. Transitions are monotone: once a
// state's predicate has held, the state machine never regresses below it.
type SolveState int

const (
	// StateInitial indicates no phase has been completed yet.
	StateInitial SolveState = iota

	// StateCross indicates the white cross is complete: the four white
	// edges sit on the U face with side colors matching their centers.
	StateCross

	// StateF2LFirstPair through StateF2LComplete track how many of the
	// four corner-edge first-two-layer slots are filled.
	StateF2LFirstPair
	StateF2LSecondPair
	StateF2LThirdPair
	StateF2LComplete

	// StateOLLCross indicates the yellow cross is formed on the D face.
	StateOLLCross

	// StateOLLComplete indicates the whole last layer shows yellow.
	StateOLLComplete

	// StatePLLCorners indicates the last layer corners are permuted
	// correctly modulo a final U-layer rotation.
	StatePLLCorners

	// StateSolved indicates the cube is completely solved.
	StateSolved
)

// String returns a short identifier for the state.
func (s SolveState) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateCross:
		return "cross"
	case StateF2LFirstPair:
		return "f2l_first_pair"
	case StateF2LSecondPair:
		return "f2l_second_pair"
	case StateF2LThirdPair:
		return "f2l_third_pair"
	case StateF2LComplete:
		return "f2l_complete"
	case StateOLLCross:
		return "oll_cross"
	case StateOLLComplete:
		return "oll_complete"
	case StatePLLCorners:
		return "pll_corners"
	case StateSolved:
		return "solved"
	default:
		return "unknown"
	}
}

// DisplayName returns a human-readable name for the state.
func (s SolveState) DisplayName() string {
	switch s {
	case StateInitial:
		return "Scrambled"
	case StateCross:
		return "Cross"
	case StateF2LFirstPair:
		return "F2L Pair 1"
	case StateF2LSecondPair:
		return "F2L Pair 2"
	case StateF2LThirdPair:
		return "F2L Pair 3"
	case StateF2LComplete:
		return "F2L Complete"
	case StateOLLCross:
		return "OLL Cross"
	case StateOLLComplete:
		return "OLL Complete"
	case StatePLLCorners:
		return "PLL Corners"
	case StateSolved:
		return "Solved"
	default:
		return "Unknown"
	}
}

// WhiteCrossValid checks the cross phase: the four U edge stickers are
// white and each side face's top center edge matches its center color.
func (f *Faces) WhiteCrossValid() bool {
	return f.Color(CubeFaceU, 0, 1) == White &&
		f.Color(CubeFaceU, 1, 0) == White &&
		f.Color(CubeFaceU, 1, 2) == White &&
		f.Color(CubeFaceU, 2, 1) == White &&
		f.Color(CubeFaceF, 0, 1) == Green &&
		f.Color(CubeFaceR, 0, 1) == Red &&
		f.Color(CubeFaceB, 0, 1) == Blue &&
		f.Color(CubeFaceL, 0, 1) == Orange
}

// F2LPairCount returns how many of the four first-two-layer corner slots
// are filled (0..4): the corner shows white on top and the corner and edge
// stickers on both adjacent side faces match their centers.
func (f *Faces) F2LPairCount() int {
	result := 0
	if f.Color(CubeFaceU, 0, 0) == White &&
		f.Color(CubeFaceB, 0, 2) == Blue &&
		f.Color(CubeFaceB, 1, 2) == Blue &&
		f.Color(CubeFaceL, 0, 0) == Orange &&
		f.Color(CubeFaceL, 1, 0) == Orange {
		result++
	}
	if f.Color(CubeFaceU, 0, 2) == White &&
		f.Color(CubeFaceB, 0, 0) == Blue &&
		f.Color(CubeFaceB, 1, 0) == Blue &&
		f.Color(CubeFaceR, 0, 2) == Red &&
		f.Color(CubeFaceR, 1, 2) == Red {
		result++
	}
	if f.Color(CubeFaceU, 2, 0) == White &&
		f.Color(CubeFaceF, 0, 0) == Green &&
		f.Color(CubeFaceF, 1, 0) == Green &&
		f.Color(CubeFaceL, 0, 2) == Orange &&
		f.Color(CubeFaceL, 1, 2) == Orange {
		result++
	}
	if f.Color(CubeFaceU, 2, 2) == White &&
		f.Color(CubeFaceF, 0, 2) == Green &&
		f.Color(CubeFaceF, 1, 2) == Green &&
		f.Color(CubeFaceR, 0, 0) == Red &&
		f.Color(CubeFaceR, 1, 0) == Red {
		result++
	}
	return result
}

// F2LSolved reports whether all four first-two-layer slots are filled.
func (f *Faces) F2LSolved() bool {
	return f.F2LPairCount() == 4
}

// YellowCrossValid checks that the four D edge stickers are yellow.
func (f *Faces) YellowCrossValid() bool {
	return f.Color(CubeFaceD, 0, 1) == Yellow &&
		f.Color(CubeFaceD, 1, 0) == Yellow &&
		f.Color(CubeFaceD, 1, 2) == Yellow &&
		f.Color(CubeFaceD, 2, 1) == Yellow
}

// LastLayerOriented checks that all eight non-center D stickers are yellow.
func (f *Faces) LastLayerOriented() bool {
	return f.Color(CubeFaceD, 0, 0) == Yellow &&
		f.Color(CubeFaceD, 0, 1) == Yellow &&
		f.Color(CubeFaceD, 0, 2) == Yellow &&
		f.Color(CubeFaceD, 1, 0) == Yellow &&
		f.Color(CubeFaceD, 1, 2) == Yellow &&
		f.Color(CubeFaceD, 2, 0) == Yellow &&
		f.Color(CubeFaceD, 2, 1) == Yellow &&
		f.Color(CubeFaceD, 2, 2) == Yellow
}

// LastLayerCornersValid checks that on each side face the two bottom-row
// corner stickers match each other, implying the last layer corners are
// permuted correctly modulo a final U-layer rotation.
func (f *Faces) LastLayerCornersValid() bool {
	return f.Color(CubeFaceF, 2, 0) == f.Color(CubeFaceF, 2, 2) &&
		f.Color(CubeFaceR, 2, 0) == f.Color(CubeFaceR, 2, 2) &&
		f.Color(CubeFaceB, 2, 0) == f.Color(CubeFaceB, 2, 2) &&
		f.Color(CubeFaceL, 2, 0) == f.Color(CubeFaceL, 2, 2)
}

// TransitionSolveState returns the highest state reachable from current by
// repeatedly testing the next state's predicate against the cube. A solved
// cube short-circuits to StateSolved. The result is monotone in current:
// it never returns a lower state than was passed in.
func TransitionSolveState(cube *Cube3x3, current SolveState) SolveState {
	if cube.IsSolved() {
		return StateSolved
	}

	faces := cube.Faces()
	newState := current
	for {
		lastState := newState
		switch lastState {
		case StateInitial:
			if faces.WhiteCrossValid() {
				newState = StateCross
			}
		case StateCross:
			if faces.WhiteCrossValid() && faces.F2LPairCount() >= 1 {
				newState = StateF2LFirstPair
			}
		case StateF2LFirstPair:
			if faces.WhiteCrossValid() && faces.F2LPairCount() >= 2 {
				newState = StateF2LSecondPair
			}
		case StateF2LSecondPair:
			if faces.WhiteCrossValid() && faces.F2LPairCount() >= 3 {
				newState = StateF2LThirdPair
			}
		case StateF2LThirdPair:
			if faces.F2LSolved() {
				newState = StateF2LComplete
			}
		case StateF2LComplete:
			if faces.F2LSolved() && faces.YellowCrossValid() {
				newState = StateOLLCross
			}
		case StateOLLCross:
			if faces.F2LSolved() && faces.LastLayerOriented() {
				newState = StateOLLComplete
			}
		case StateOLLComplete:
			if faces.F2LSolved() && faces.LastLayerOriented() && faces.LastLayerCornersValid() {
				newState = StatePLLCorners
			}
		}
		if newState == lastState {
			return newState
		}
	}
}
