package model

// Position identifies a cell on the board
type Position struct {
	Row int `json:"row"` // 0-indexed from top
	Col int `json:"col"` // 0-indexed from left
}

// Premium is a cell's bonus multiplier tag, fixed at board-config load
type Premium string

const (
	PremiumNone         Premium = ""
	PremiumDoubleLetter Premium = "DL"
	PremiumTripleLetter Premium = "TL"
	PremiumDoubleWord   Premium = "DW"
	PremiumTripleWord   Premium = "TW"
)

// BoardSize is the standard grid dimension
const BoardSize = 15

// Cell is one square of the board: an optional occupant tile plus the
// immutable premium tag
type Cell struct {
	Tile    *Tile   `json:"tile,omitempty"`
	Premium Premium `json:"premium,omitempty"`
}

// Board is the shared 15x15 grid for one game
type Board struct {
	Size  int      `json:"size"`
	Cells [][]Cell `json:"cells"` // Row-major: Cells[row][col]
}

// BoardConfig is the premium layout loaded from the persistence collaborator
type BoardConfig [][]Premium

// NewBoard creates an empty board with the given premium layout
func NewBoard(config BoardConfig) *Board {
	size := len(config)
	cells := make([][]Cell, size)
	for r := range cells {
		cells[r] = make([]Cell, size)
		for c := range cells[r] {
			cells[r][c] = Cell{Premium: config[r][c]}
		}
	}
	return &Board{Size: size, Cells: cells}
}

// Center returns the starting cell position
func (b *Board) Center() Position {
	return Position{Row: b.Size / 2, Col: b.Size / 2}
}

// InBounds reports whether pos is on the board
func (b *Board) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < b.Size && pos.Col >= 0 && pos.Col < b.Size
}

// TileAt returns the occupant tile at pos, or nil if empty or out of bounds
func (b *Board) TileAt(pos Position) *Tile {
	if !b.InBounds(pos) {
		return nil
	}
	return b.Cells[pos.Row][pos.Col].Tile
}

// IsEmpty reports whether the cell at pos has no occupant
func (b *Board) IsEmpty(pos Position) bool {
	return b.InBounds(pos) && b.Cells[pos.Row][pos.Col].Tile == nil
}

// Place sets the occupant tile at pos
func (b *Board) Place(pos Position, tile Tile) {
	if b.InBounds(pos) {
		t := tile
		b.Cells[pos.Row][pos.Col].Tile = &t
	}
}

// Remove clears the occupant tile at pos (challenge reverts only)
func (b *Board) Remove(pos Position) {
	if b.InBounds(pos) {
		b.Cells[pos.Row][pos.Col].Tile = nil
	}
}

// PremiumAt returns the premium tag at pos
func (b *Board) PremiumAt(pos Position) Premium {
	if !b.InBounds(pos) {
		return PremiumNone
	}
	return b.Cells[pos.Row][pos.Col].Premium
}

// HasTiles reports whether any tile has been placed on the board
func (b *Board) HasTiles() bool {
	for r := range b.Cells {
		for c := range b.Cells[r] {
			if b.Cells[r][c].Tile != nil {
				return true
			}
		}
	}
	return false
}

// HasNeighbor reports whether any of the four orthogonal neighbors of pos is
// occupied
func (b *Board) HasNeighbor(pos Position) bool {
	neighbors := []Position{
		{pos.Row - 1, pos.Col},
		{pos.Row + 1, pos.Col},
		{pos.Row, pos.Col - 1},
		{pos.Row, pos.Col + 1},
	}
	for _, n := range neighbors {
		if b.TileAt(n) != nil {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	cells := make([][]Cell, b.Size)
	for r := range cells {
		cells[r] = make([]Cell, b.Size)
		for c := range cells[r] {
			cell := b.Cells[r][c]
			if cell.Tile != nil {
				t := *cell.Tile
				cell.Tile = &t
			}
			cells[r][c] = cell
		}
	}
	return &Board{Size: b.Size, Cells: cells}
}

// Letters returns the board as a grid of letters, 0 for empty cells.
// Used for snapshots sent to clients.
func (b *Board) Letters() [][]rune {
	grid := make([][]rune, b.Size)
	for r := range grid {
		grid[r] = make([]rune, b.Size)
		for c := range grid[r] {
			if t := b.Cells[r][c].Tile; t != nil {
				grid[r][c] = t.Letter
			}
		}
	}
	return grid
}

// DefaultBoardConfig returns the standard premium layout: triple words on the
// corners and edge midpoints, diagonals of double words, triple and double
// letters in the usual spots, and a double-word center star.
func DefaultBoardConfig() BoardConfig {
	layout := [BoardSize]string{
		"T..d...T...d..T",
		".D...t...t...D.",
		"..D...d.d...D..",
		"d..D...d...D..d",
		"....D.....D....",
		".t...t...t...t.",
		"..d...d.d...d..",
		"T..d...D...d..T",
		"..d...d.d...d..",
		".t...t...t...t.",
		"....D.....D....",
		"d..D...d...D..d",
		"..D...d.d...D..",
		".D...t...t...D.",
		"T..d...T...d..T",
	}
	config := make(BoardConfig, BoardSize)
	for r, row := range layout {
		config[r] = make([]Premium, BoardSize)
		for c, ch := range row {
			switch ch {
			case 'T':
				config[r][c] = PremiumTripleWord
			case 'D':
				config[r][c] = PremiumDoubleWord
			case 't':
				config[r][c] = PremiumTripleLetter
			case 'd':
				config[r][c] = PremiumDoubleLetter
			default:
				config[r][c] = PremiumNone
			}
		}
	}
	return config
}
