package cubetimer

// Corner slot indices. Names give the three faces the slot touches, in
// sticker order (U/D face first, then the two side faces clockwise).
const (
	cornerURF = iota
	cornerUFL
	cornerULB
	cornerUBR
	cornerDFR
	cornerDLF
	cornerDBL
	cornerDRB
)

// Edge slot indices.
const (
	edgeUR = iota
	edgeUF
	edgeUL
	edgeUB
	edgeDR
	edgeDF
	edgeDL
	edgeDB
	edgeFR
	edgeFL
	edgeBL
	edgeBR
)

// Cube3x3 is the authoritative state of a 3x3 cube: the permutation and
// orientation of the 8 corners and 12 edges relative to the fixed color
// scheme (white top, yellow bottom, green front, blue back, red right,
// orange left). cp[i] is the piece occupying corner slot i; co[i] is its
// twist. Sticker j of the piece sits at slot sticker position (j+co) mod 3.
// Edges are the same with flips mod 2.
type Cube3x3 struct {
	cp [8]uint8
	co [8]uint8
	ep [12]uint8
	eo [12]uint8
}

// cubeMoveTable describes one clockwise face turn as a permutation of
// slots plus orientation deltas. cp[i] names the slot whose piece lands in
// slot i.
type cubeMoveTable struct {
	cp [8]uint8
	co [8]uint8
	ep [12]uint8
	eo [12]uint8
}

// Clockwise move tables for the six faces, indexed by the packed face
// order (U, D, L, R, F, B).
var cubeMoveTables = [6]cubeMoveTable{
	// U
	{
		cp: [8]uint8{cornerUBR, cornerURF, cornerUFL, cornerULB, cornerDFR, cornerDLF, cornerDBL, cornerDRB},
		ep: [12]uint8{edgeUB, edgeUR, edgeUF, edgeUL, edgeDR, edgeDF, edgeDL, edgeDB, edgeFR, edgeFL, edgeBL, edgeBR},
	},
	// D
	{
		cp: [8]uint8{cornerURF, cornerUFL, cornerULB, cornerUBR, cornerDLF, cornerDBL, cornerDRB, cornerDFR},
		ep: [12]uint8{edgeUR, edgeUF, edgeUL, edgeUB, edgeDF, edgeDL, edgeDB, edgeDR, edgeFR, edgeFL, edgeBL, edgeBR},
	},
	// L
	{
		cp: [8]uint8{cornerURF, cornerULB, cornerDBL, cornerUBR, cornerDFR, cornerUFL, cornerDLF, cornerDRB},
		co: [8]uint8{0, 1, 2, 0, 0, 2, 1, 0},
		ep: [12]uint8{edgeUR, edgeUF, edgeBL, edgeUB, edgeDR, edgeDF, edgeFL, edgeDB, edgeFR, edgeUL, edgeDL, edgeBR},
	},
	// R
	{
		cp: [8]uint8{cornerDFR, cornerUFL, cornerULB, cornerURF, cornerDRB, cornerDLF, cornerDBL, cornerUBR},
		co: [8]uint8{2, 0, 0, 1, 1, 0, 0, 2},
		ep: [12]uint8{edgeFR, edgeUF, edgeUL, edgeUB, edgeBR, edgeDF, edgeDL, edgeDB, edgeDR, edgeFL, edgeBL, edgeUR},
	},
	// F
	{
		cp: [8]uint8{cornerUFL, cornerDLF, cornerULB, cornerUBR, cornerURF, cornerDFR, cornerDBL, cornerDRB},
		co: [8]uint8{1, 2, 0, 0, 2, 1, 0, 0},
		ep: [12]uint8{edgeUR, edgeFL, edgeUL, edgeUB, edgeDR, edgeFR, edgeDL, edgeDB, edgeUF, edgeDF, edgeBL, edgeBR},
		eo: [12]uint8{0, 1, 0, 0, 0, 1, 0, 0, 1, 1, 0, 0},
	},
	// B
	{
		cp: [8]uint8{cornerURF, cornerUFL, cornerUBR, cornerDRB, cornerDFR, cornerDLF, cornerULB, cornerDBL},
		co: [8]uint8{0, 0, 1, 2, 0, 0, 2, 1},
		ep: [12]uint8{edgeUR, edgeUF, edgeUL, edgeBR, edgeDR, edgeDF, edgeDL, edgeBL, edgeFR, edgeFL, edgeUB, edgeDB},
		eo: [12]uint8{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 1, 1},
	},
}

// NewCube creates a solved cube with the standard orientation:
// white on top, green in front.
func NewCube() *Cube3x3 {
	c := &Cube3x3{}
	for i := range c.cp {
		c.cp[i] = uint8(i)
	}
	for i := range c.ep {
		c.ep[i] = uint8(i)
	}
	return c
}

// Clone creates a deep copy of the cube.
func (c *Cube3x3) Clone() *Cube3x3 {
	clone := *c
	return &clone
}

// IsSolved returns true if the cube state is the identity.
func (c *Cube3x3) IsSolved() bool {
	for i := range c.cp {
		if c.cp[i] != uint8(i) || c.co[i] != 0 {
			return false
		}
	}
	for i := range c.ep {
		if c.ep[i] != uint8(i) || c.eo[i] != 0 {
			return false
		}
	}
	return true
}

// turnCW composes one clockwise face turn into the state.
func (c *Cube3x3) turnCW(table *cubeMoveTable) {
	var next Cube3x3
	for i := 0; i < 8; i++ {
		src := table.cp[i]
		next.cp[i] = c.cp[src]
		next.co[i] = (c.co[src] + table.co[i]) % 3
	}
	for i := 0; i < 12; i++ {
		src := table.ep[i]
		next.ep[i] = c.ep[src]
		next.eo[i] = (c.eo[src] + table.eo[i]) % 2
	}
	*c = next
}

// Move applies a single move to the cube.
func (c *Cube3x3) Move(m Move) {
	table := &cubeMoveTables[m.Packed()/3]
	switch m.Turn {
	case CW:
		c.turnCW(table)
	case CCW:
		c.turnCW(table)
		c.turnCW(table)
		c.turnCW(table)
	case Double:
		c.turnCW(table)
		c.turnCW(table)
	}
}

// Apply applies a sequence of moves to the cube.
func (c *Cube3x3) Apply(moves MoveSequence) {
	for _, m := range moves {
		c.Move(m)
	}
}
