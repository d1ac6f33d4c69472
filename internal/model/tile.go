package model

import "encoding/json"

// BlankRune is the letter slot value of an unassigned blank tile
const BlankRune = '*'

// RackSize is the number of tiles each player holds
const RackSize = 7

// Tile is a single letter tile. Blanks keep Blank=true after being assigned a
// letter so they always score zero.
type Tile struct {
	Letter rune `json:"letter"`
	Points int  `json:"points"`
	Blank  bool `json:"blank,omitempty"`
}

// tileJSON is the wire form of a Tile: the letter travels as a string, not a
// rune code point
type tileJSON struct {
	Letter string `json:"letter"`
	Points int    `json:"points"`
	Blank  bool   `json:"blank,omitempty"`
}

func (t Tile) MarshalJSON() ([]byte, error) {
	letter := ""
	if t.Letter != 0 {
		letter = string(t.Letter)
	}
	return json.Marshal(tileJSON{Letter: letter, Points: t.Points, Blank: t.Blank})
}

func (t *Tile) UnmarshalJSON(data []byte) error {
	var w tileJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	t.Points = w.Points
	t.Blank = w.Blank
	t.Letter = 0
	for _, r := range w.Letter {
		t.Letter = r
		break
	}
	return nil
}

// TileCount pairs a tile's point value with how many copies the bag starts
// with
type TileCount struct {
	Points int `json:"points"`
	Count  int `json:"count"`
}

// TileDistribution maps each letter (and BlankRune) to its value and supply.
// Loaded per language from the persistence collaborator.
type TileDistribution map[rune]TileCount

// DefaultTileDistribution returns the standard 100-tile English set
func DefaultTileDistribution() TileDistribution {
	return TileDistribution{
		'A': {1, 9}, 'B': {3, 2}, 'C': {3, 2}, 'D': {2, 4}, 'E': {1, 12},
		'F': {4, 2}, 'G': {2, 3}, 'H': {4, 2}, 'I': {1, 9}, 'J': {8, 1},
		'K': {5, 1}, 'L': {1, 4}, 'M': {3, 2}, 'N': {1, 6}, 'O': {1, 8},
		'P': {3, 2}, 'Q': {10, 1}, 'R': {1, 6}, 'S': {1, 4}, 'T': {1, 6},
		'U': {1, 4}, 'V': {4, 2}, 'W': {4, 2}, 'X': {8, 1}, 'Y': {4, 2},
		'Z': {10, 1}, BlankRune: {0, 2},
	}
}

// TileBag holds the undrawn tiles of one game. Draw order is decided by the
// caller picking an index; the bag itself has no randomness.
type TileBag struct {
	tiles []Tile
}

// NewTileBag fills a bag from a distribution
func NewTileBag(dist TileDistribution) *TileBag {
	var tiles []Tile
	for letter, tc := range dist {
		for i := 0; i < tc.Count; i++ {
			tiles = append(tiles, Tile{
				Letter: letter,
				Points: tc.Points,
				Blank:  letter == BlankRune,
			})
		}
	}
	return &TileBag{tiles: tiles}
}

// Count returns the number of undrawn tiles
func (b *TileBag) Count() int {
	return len(b.tiles)
}

// DrawAt removes and returns the tile at index i
func (b *TileBag) DrawAt(i int) Tile {
	t := b.tiles[i]
	b.tiles[i] = b.tiles[len(b.tiles)-1]
	b.tiles = b.tiles[:len(b.tiles)-1]
	return t
}

// Put returns tiles to the bag (exchanges and challenge reverts)
func (b *TileBag) Put(tiles ...Tile) {
	b.tiles = append(b.tiles, tiles...)
}

// RackValue sums the point values of the tiles in a rack
func RackValue(rack []Tile) int {
	total := 0
	for _, t := range rack {
		total += t.Points
	}
	return total
}

// RemoveFromRack removes one tile matching want from rack, returning the
// reduced rack and whether a match was found. A played blank matches any rack
// blank regardless of its assigned letter.
func RemoveFromRack(rack []Tile, want Tile) ([]Tile, bool) {
	for i, t := range rack {
		match := false
		switch {
		case want.Blank && t.Blank:
			match = true
		case !want.Blank && !t.Blank && t.Letter == want.Letter:
			match = true
		}
		if match {
			out := make([]Tile, 0, len(rack)-1)
			out = append(out, rack[:i]...)
			out = append(out, rack[i+1:]...)
			return out, true
		}
	}
	return rack, false
}
