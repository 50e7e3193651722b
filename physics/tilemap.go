package physics

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/motion"
)

// Tile glyphs understood by LoadTiles.
const (
	TileEmpty   = '.'
	TileSolid   = '#'
	TileOneWay  = '='
	TileTrigger = '^'
	TileSpawn   = 'P'
)

// TileMap is the result of loading a glyph grid.
type TileMap struct {
	Shapes   []motion.ShapeID
	Spawn    cp.Vector
	HasSpawn bool
	Width    float64
	Height   float64
}

// LoadTiles adds the geometry described by rows to the world. Row 0 is the
// top of the map; origin is the bottom-left corner in world units. Solid
// tiles are merged into as few boxes as possible, one-way tiles into
// horizontal runs, and trigger tiles stay one box each. The spawn marks the
// centre of its tile.
func (w *World) LoadTiles(rows []string, tileSize float64, origin cp.Vector) (TileMap, error) {
	var tm TileMap
	if tileSize <= 0 {
		return tm, fmt.Errorf("physics: load tiles: tile size must be positive, got %v", tileSize)
	}
	height := len(rows)
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return tm, fmt.Errorf("physics: load tiles: empty map")
	}
	tm.Width = float64(width) * tileSize
	tm.Height = float64(height) * tileSize

	at := func(x, y int) byte {
		if y < 0 || y >= height || x < 0 || x >= len(rows[y]) {
			return TileEmpty
		}
		return rows[y][x]
	}
	bb := func(x, y, w, h int) cp.BB {
		// y is the top row of the rectangle; world y grows upward
		left := origin.X + float64(x)*tileSize
		bottom := origin.Y + float64(height-(y+h))*tileSize
		return cp.BB{L: left, B: bottom, R: left + float64(w)*tileSize, T: bottom + float64(h)*tileSize}
	}

	processed := make([]bool, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if processed[idx] {
				continue
			}
			processed[idx] = true

			switch tile := at(x, y); tile {
			case TileEmpty, ' ':
			case TileSpawn:
				b := bb(x, y, 1, 1)
				tm.Spawn = cp.Vector{X: (b.L + b.R) / 2, Y: (b.B + b.T) / 2}
				tm.HasSpawn = true
			case TileTrigger:
				tm.Shapes = append(tm.Shapes, w.AddTrigger(bb(x, y, 1, 1)))
			case TileOneWay:
				run := 1
				for at(x+run, y) == TileOneWay && !processed[idx+run] {
					processed[idx+run] = true
					run++
				}
				tm.Shapes = append(tm.Shapes, w.AddOneWay(bb(x, y, run, 1)))
			case TileSolid:
				// greedily expand width first, then height
				wd := 1
				for at(x+wd, y) == TileSolid && !processed[idx+wd] {
					wd++
				}
				ht := 1
			heightLoop:
				for y+ht < height {
					for xi := x; xi < x+wd; xi++ {
						if at(xi, y+ht) != TileSolid || processed[(y+ht)*width+xi] {
							break heightLoop
						}
					}
					ht++
				}
				for yy := y; yy < y+ht; yy++ {
					for xx := x; xx < x+wd; xx++ {
						processed[yy*width+xx] = true
					}
				}
				tm.Shapes = append(tm.Shapes, w.AddSolid(bb(x, y, wd, ht)))
			default:
				return tm, fmt.Errorf("physics: load tiles: unknown tile %q at row %d col %d", tile, y, x)
			}
		}
	}
	return tm, nil
}
