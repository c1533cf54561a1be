package cubetimer

// Color represents a sticker color.
type Color byte

const (
	White  Color = 0 // Up face when solved
	Yellow Color = 1 // Down face when solved
	Green  Color = 2 // Front face when solved
	Blue   Color = 3 // Back face when solved
	Red    Color = 4 // Right face when solved
	Orange Color = 5 // Left face when solved
)

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Red:
		return "R"
	case Orange:
		return "O"
	default:
		return "?"
	}
}

// CubeFace identifies a face of the sticker projection.
// This is distinct from Face which is used for move notation.
type CubeFace int

const (
	CubeFaceU CubeFace = 0 // Up (White)
	CubeFaceD CubeFace = 1 // Down (Yellow)
	CubeFaceF CubeFace = 2 // Front (Green)
	CubeFaceB CubeFace = 3 // Back (Blue)
	CubeFaceR CubeFace = 4 // Right (Red)
	CubeFaceL CubeFace = 5 // Left (Orange)
)

func (f CubeFace) String() string {
	switch f {
	case CubeFaceU:
		return "U"
	case CubeFaceD:
		return "D"
	case CubeFaceF:
		return "F"
	case CubeFaceB:
		return "B"
	case CubeFaceR:
		return "R"
	case CubeFaceL:
		return "L"
	default:
		return "?"
	}
}

// faceSolvedColor returns the color of a projection face when solved.
func faceSolvedColor(f CubeFace) Color {
	switch f {
	case CubeFaceU:
		return White
	case CubeFaceD:
		return Yellow
	case CubeFaceF:
		return Green
	case CubeFaceB:
		return Blue
	case CubeFaceR:
		return Red
	case CubeFaceL:
		return Orange
	default:
		return White
	}
}

// sticker names one (face, row, col) position in the projection. Each face
// is addressed as a 3x3 grid viewed head-on, row 0 at the edge nearest the
// U face; for U itself row 0 is nearest B, for D it is nearest F.
type sticker struct {
	face CubeFace
	row  int
	col  int
}

// cornerStickers lists each corner slot's sticker positions, in the same
// order as the slot's color list.
var cornerStickers = [8][3]sticker{
	cornerURF: {{CubeFaceU, 2, 2}, {CubeFaceR, 0, 0}, {CubeFaceF, 0, 2}},
	cornerUFL: {{CubeFaceU, 2, 0}, {CubeFaceF, 0, 0}, {CubeFaceL, 0, 2}},
	cornerULB: {{CubeFaceU, 0, 0}, {CubeFaceL, 0, 0}, {CubeFaceB, 0, 2}},
	cornerUBR: {{CubeFaceU, 0, 2}, {CubeFaceB, 0, 0}, {CubeFaceR, 0, 2}},
	cornerDFR: {{CubeFaceD, 0, 2}, {CubeFaceF, 2, 2}, {CubeFaceR, 2, 0}},
	cornerDLF: {{CubeFaceD, 0, 0}, {CubeFaceL, 2, 2}, {CubeFaceF, 2, 0}},
	cornerDBL: {{CubeFaceD, 2, 0}, {CubeFaceB, 2, 2}, {CubeFaceL, 2, 0}},
	cornerDRB: {{CubeFaceD, 2, 2}, {CubeFaceR, 2, 2}, {CubeFaceB, 2, 0}},
}

// cornerColors lists each corner piece's sticker colors in home order.
var cornerColors = [8][3]Color{
	cornerURF: {White, Red, Green},
	cornerUFL: {White, Green, Orange},
	cornerULB: {White, Orange, Blue},
	cornerUBR: {White, Blue, Red},
	cornerDFR: {Yellow, Green, Red},
	cornerDLF: {Yellow, Orange, Green},
	cornerDBL: {Yellow, Blue, Orange},
	cornerDRB: {Yellow, Red, Blue},
}

var edgeStickers = [12][2]sticker{
	edgeUR: {{CubeFaceU, 1, 2}, {CubeFaceR, 0, 1}},
	edgeUF: {{CubeFaceU, 2, 1}, {CubeFaceF, 0, 1}},
	edgeUL: {{CubeFaceU, 1, 0}, {CubeFaceL, 0, 1}},
	edgeUB: {{CubeFaceU, 0, 1}, {CubeFaceB, 0, 1}},
	edgeDR: {{CubeFaceD, 1, 2}, {CubeFaceR, 2, 1}},
	edgeDF: {{CubeFaceD, 0, 1}, {CubeFaceF, 2, 1}},
	edgeDL: {{CubeFaceD, 1, 0}, {CubeFaceL, 2, 1}},
	edgeDB: {{CubeFaceD, 2, 1}, {CubeFaceB, 2, 1}},
	edgeFR: {{CubeFaceF, 1, 2}, {CubeFaceR, 1, 0}},
	edgeFL: {{CubeFaceF, 1, 0}, {CubeFaceL, 1, 2}},
	edgeBL: {{CubeFaceB, 1, 2}, {CubeFaceL, 1, 0}},
	edgeBR: {{CubeFaceB, 1, 0}, {CubeFaceR, 1, 2}},
}

var edgeColors = [12][2]Color{
	edgeUR: {White, Red},
	edgeUF: {White, Green},
	edgeUL: {White, Orange},
	edgeUB: {White, Blue},
	edgeDR: {Yellow, Red},
	edgeDF: {Yellow, Green},
	edgeDL: {Yellow, Orange},
	edgeDB: {Yellow, Blue},
	edgeFR: {Green, Red},
	edgeFL: {Green, Orange},
	edgeBL: {Blue, Orange},
	edgeBR: {Blue, Red},
}

// Faces is the sticker projection of a Cube3x3: six 3x3 color grids. For
// any reachable cube state each color appears exactly 9 times.
type Faces struct {
	stickers [6][3][3]Color
}

// Faces projects the cube state to sticker colors. The projection is pure
// and deterministic.
func (c *Cube3x3) Faces() Faces {
	var f Faces
	for face := CubeFace(0); face < 6; face++ {
		f.stickers[face][1][1] = faceSolvedColor(face)
	}
	for i := 0; i < 8; i++ {
		piece := c.cp[i]
		ori := int(c.co[i])
		for n := 0; n < 3; n++ {
			pos := cornerStickers[i][n]
			f.stickers[pos.face][pos.row][pos.col] = cornerColors[piece][(3+n-ori)%3]
		}
	}
	for i := 0; i < 12; i++ {
		piece := c.ep[i]
		ori := int(c.eo[i])
		for n := 0; n < 2; n++ {
			pos := edgeStickers[i][n]
			f.stickers[pos.face][pos.row][pos.col] = edgeColors[piece][(2+n-ori)%2]
		}
	}
	return f
}

// Color returns the sticker color at (face, row, col), row and col in 0..2.
func (f *Faces) Color(face CubeFace, row, col int) Color {
	return f.stickers[face][row][col]
}

// String returns a text net of the cube for debugging and CLI display.
func (f *Faces) String() string {
	result := ""

	for row := 0; row < 3; row++ {
		result += "      "
		for col := 0; col < 3; col++ {
			result += f.stickers[CubeFaceU][row][col].String() + " "
		}
		result += "\n"
	}

	for row := 0; row < 3; row++ {
		for _, face := range []CubeFace{CubeFaceL, CubeFaceF, CubeFaceR, CubeFaceB} {
			for col := 0; col < 3; col++ {
				result += f.stickers[face][row][col].String() + " "
			}
		}
		result += "\n"
	}

	for row := 0; row < 3; row++ {
		result += "      "
		for col := 0; col < 3; col++ {
			result += f.stickers[CubeFaceD][row][col].String() + " "
		}
		result += "\n"
	}

	return result
}
