package cubetimer

import "strings"

// Face represents a cube face in standard notation.
type Face string

const (
	FaceU Face = "U" // Up
	FaceD Face = "D" // Down
	FaceL Face = "L" // Left
	FaceR Face = "R" // Right
	FaceF Face = "F" // Front
	FaceB Face = "B" // Back
)

// Turn represents the direction and magnitude of a face turn.
type Turn int

const (
	CW     Turn = 1  // Clockwise (90 degrees)
	CCW    Turn = -1 // Counter-clockwise (90 degrees)
	Double Turn = 2  // Half turn (180 degrees)
)

// Move represents a single outer face turn.
type Move struct {
	Face Face // Which face to turn
	Turn Turn // Direction and amount
}

// TimedMove pairs a move with its timestamp in milliseconds from the start
// of the solve. Timestamps are monotone non-decreasing within a solve.
type TimedMove struct {
	Move         Move
	Milliseconds uint32
}

// MoveSequence is an ordered list of moves.
type MoveSequence []Move

// packedFaces orders the faces for the packed byte encoding. The packed
// value of a move is faceIndex*3 + turnIndex, with turns ordered
// CW, CCW, Double. This is the on-disk move alphabet and must not change.
var packedFaces = []Face{FaceU, FaceD, FaceL, FaceR, FaceF, FaceB}

// Notation returns the standard cube notation string for this move.
// Examples: R, R', R2, U, U', U2
func (m Move) Notation() string {
	suffix := ""
	switch m.Turn {
	case CCW:
		suffix = "'"
	case Double:
		suffix = "2"
	}
	return string(m.Face) + suffix
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Inverse returns the inverse of this move.
// R becomes R', R' becomes R, R2 stays R2.
func (m Move) Inverse() Move {
	inv := m
	switch m.Turn {
	case CW:
		inv.Turn = CCW
	case CCW:
		inv.Turn = CW
	// Double is its own inverse
	}
	return inv
}

// Packed returns the compact byte encoding of this move, indexing the
// 18-move alphabet.
func (m Move) Packed() byte {
	face := 0
	for i, f := range packedFaces {
		if f == m.Face {
			face = i
			break
		}
	}
	turn := 0
	switch m.Turn {
	case CCW:
		turn = 1
	case Double:
		turn = 2
	}
	return byte(face*3 + turn)
}

// UnpackMove decodes a packed move byte.
func UnpackMove(b byte) (Move, error) {
	if int(b) >= len(packedFaces)*3 {
		return Move{}, ErrInvalidMove
	}
	m := Move{Face: packedFaces[b/3]}
	switch b % 3 {
	case 0:
		m.Turn = CW
	case 1:
		m.Turn = CCW
	case 2:
		m.Turn = Double
	}
	return m, nil
}

// IsSameOuterBlock reports whether two moves turn the same outer face,
// ignoring direction and double turns. Consecutive same-block moves count
// as a single outer turn in move metrics.
func IsSameOuterBlock(a, b Move) bool {
	return a.Face == b.Face
}

// OuterTurnCount returns the number of outer turns in the sequence,
// collapsing each maximal run of same-outer-block moves into one. A double
// turn counts as one move.
func (s MoveSequence) OuterTurnCount() int {
	count := 0
	for i, m := range s {
		if i == 0 || !IsSameOuterBlock(s[i-1], m) {
			count++
		}
	}
	return count
}

// Inverse returns the sequence that undoes this one.
func (s MoveSequence) Inverse() MoveSequence {
	inv := make(MoveSequence, len(s))
	for i, m := range s {
		inv[len(s)-1-i] = m.Inverse()
	}
	return inv
}

// String formats the sequence as space-separated notation.
func (s MoveSequence) String() string {
	parts := make([]string, len(s))
	for i, m := range s {
		parts[i] = m.Notation()
	}
	return strings.Join(parts, " ")
}

// ParseMove parses a standard notation string into a Move.
// Examples: R, R', R2, U, U', U2
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Move{}, ErrInvalidNotation
	}

	var face Face
	switch s[0] {
	case 'U', 'u':
		face = FaceU
	case 'D', 'd':
		face = FaceD
	case 'L', 'l':
		face = FaceL
	case 'R', 'r':
		face = FaceR
	case 'F', 'f':
		face = FaceF
	case 'B', 'b':
		face = FaceB
	default:
		return Move{}, ErrInvalidNotation
	}

	turn := CW
	if len(s) > 1 {
		switch s[1:] {
		case "'", "`":
			turn = CCW
		case "2", "2'", "2`":
			turn = Double
		default:
			return Move{}, ErrInvalidNotation
		}
	}

	return Move{Face: face, Turn: turn}, nil
}

// ParseMoves parses a space-separated sequence of moves.
// Example: "R U R' U'"
func ParseMoves(s string) (MoveSequence, error) {
	parts := strings.Fields(s)
	moves := make(MoveSequence, 0, len(parts))
	for _, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			return nil, err
		}
		moves = append(moves, move)
	}
	return moves, nil
}
