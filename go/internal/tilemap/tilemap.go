// Package tilemap loads the world terrain grid and answers bounds and
// walkability questions in pixel coordinates.
package tilemap

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/mcdev12/overworld/go/internal/models"
)

// TileSize is the edge length of one tile in pixels
const TileSize = 50

// Tile is a terrain code from the map file
type Tile uint8

const (
	Grass Tile = iota
	Water
)

func (t Tile) String() string {
	switch t {
	case Grass:
		return "grass"
	case Water:
		return "water"
	default:
		return "unknown"
	}
}

var ErrEmptyMap = errors.New("map has no rows")

// Map is an immutable terrain grid
type Map struct {
	rows [][]Tile
	cols int
}

// Load reads a map CSV file from disk
func Load(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open map: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads comma separated rows of cell codes: 0 grass, 1 water.
func Parse(r io.Reader) (*Map, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = 0 // first row fixes the width

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read map csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyMap
	}

	m := &Map{cols: len(records[0]), rows: make([][]Tile, len(records))}
	for y, record := range records {
		row := make([]Tile, len(record))
		for x, cell := range record {
			switch strings.TrimSpace(cell) {
			case "0":
				row[x] = Grass
			case "1":
				row[x] = Water
			default:
				return nil, fmt.Errorf("invalid cell %q at row %d col %d", cell, y, x)
			}
		}
		m.rows[y] = row
	}
	return m, nil
}

// Cols returns the width in tiles
func (m *Map) Cols() int { return m.cols }

// Rows returns the height in tiles
func (m *Map) Rows() int { return len(m.rows) }

// Bounds returns the map size in pixels
func (m *Map) Bounds() (width, height float64) {
	return float64(m.cols * TileSize), float64(len(m.rows) * TileSize)
}

// Center returns the pixel center of the map
func (m *Map) Center() models.Position {
	w, h := m.Bounds()
	return models.Position{X: w / 2, Y: h / 2}
}

// Contains reports whether a pixel position lies on the map
func (m *Map) Contains(pos models.Position) bool {
	w, h := m.Bounds()
	return pos.X >= 0 && pos.Y >= 0 && pos.X < w && pos.Y < h
}

// TileAt returns the tile under a pixel position
func (m *Map) TileAt(pos models.Position) (Tile, bool) {
	if !m.Contains(pos) {
		return 0, false
	}
	col := int(math.Floor(pos.X / TileSize))
	row := int(math.Floor(pos.Y / TileSize))
	return m.rows[row][col], true
}

// Walkable reports whether a pixel position is on grass
func (m *Map) Walkable(pos models.Position) bool {
	tile, ok := m.TileAt(pos)
	return ok && tile == Grass
}

// TileCenter returns the pixel center of a tile
func TileCenter(col, row int) models.Position {
	return models.Position{
		X: float64(col*TileSize) + TileSize/2,
		Y: float64(row*TileSize) + TileSize/2,
	}
}

// Tiles returns a copy of the grid as integer codes for serialization
func (m *Map) Tiles() [][]int {
	out := make([][]int, len(m.rows))
	for y, row := range m.rows {
		out[y] = make([]int, len(row))
		for x, t := range row {
			out[y][x] = int(t)
		}
	}
	return out
}

// FromTiles rebuilds a map from the integer grid served to clients
func FromTiles(tiles [][]int) (*Map, error) {
	if len(tiles) == 0 {
		return nil, ErrEmptyMap
	}
	m := &Map{cols: len(tiles[0]), rows: make([][]Tile, len(tiles))}
	for y, codes := range tiles {
		if len(codes) != m.cols {
			return nil, fmt.Errorf("row %d has %d cells, want %d", y, len(codes), m.cols)
		}
		row := make([]Tile, len(codes))
		for x, code := range codes {
			if code != int(Grass) && code != int(Water) {
				return nil, fmt.Errorf("invalid cell %d at row %d col %d", code, y, x)
			}
			row[x] = Tile(code)
		}
		m.rows[y] = row
	}
	return m, nil
}

// RandomWalkable picks the center of a random grass tile. It gives up
// after a bounded number of draws on maps that are nearly all water.
func (m *Map) RandomWalkable(rng *rand.Rand) (models.Position, bool) {
	for range 64 {
		col, row := rng.IntN(m.cols), rng.IntN(len(m.rows))
		if m.rows[row][col] == Grass {
			return TileCenter(col, row), true
		}
	}
	return models.Position{}, false
}
