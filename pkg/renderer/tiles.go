package renderer

import (
	"image"
	"math/rand"
)

// Tile represents a rectangular region of the image. Bounds are in image
// coordinates, row 0 at the top.
type Tile struct {
	ID     int             // Row-major index in the tile grid
	Bounds image.Rectangle // Pixel bounds of this tile
	Random *rand.Rand      // Random generator owned by this tile
}

// NewTile creates a tile whose random generator is derived from seed and id,
// so its samples do not depend on which worker renders it
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
		Random: rand.New(rand.NewSource(seed + int64(id))),
	}
}

// NewTileGrid splits the image into tiles and returns them in interleaved
// submission order. Tile IDs stay row-major whatever the order.
func NewTileGrid(width, height, tileSize int, seed int64, jumpX, jumpY int) []*Tile {
	cols := (width + tileSize - 1) / tileSize
	rows := (height + tileSize - 1) / tileSize

	tiles := make([]*Tile, 0, cols*rows)
	for _, p := range InterleavedOrder(cols, rows, jumpX, jumpY) {
		bounds := image.Rect(
			p.X*tileSize,
			p.Y*tileSize,
			min((p.X+1)*tileSize, width),
			min((p.Y+1)*tileSize, height),
		)
		tiles = append(tiles, NewTile(p.Y*cols+p.X, bounds, seed))
	}
	return tiles
}

// InterleavedOrder visits a cols x rows grid in jumpX*jumpY frames. Frame f
// starts at (f%jumpX, f/jumpX) and steps by the jump in each direction, so the
// first cells of every frame are spread over the whole grid. Every cell is
// visited exactly once, including the ragged edge when the grid is not a
// multiple of the jump.
func InterleavedOrder(cols, rows, jumpX, jumpY int) []image.Point {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	jumpX = max(jumpX, 1)
	jumpY = max(jumpY, 1)

	order := make([]image.Point, 0, cols*rows)
	for frame := 0; frame < jumpX*jumpY; frame++ {
		offsetX, offsetY := frame%jumpX, frame/jumpX
		for y := offsetY; y < rows; y += jumpY {
			for x := offsetX; x < cols; x += jumpX {
				order = append(order, image.Pt(x, y))
			}
		}
	}
	return order
}
