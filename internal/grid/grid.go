package grid

import (
	"GallicWars/modules/kit/errx"
)

var (
	ErrOutOfBounds     = errx.NewBiz("GRID_OUT_OF_BOUNDS", "坐标超出网格范围")
	ErrParityViolation = errx.NewBiz("GRID_PARITY_VIOLATION", "破坏了六边形行奇偶对齐")
)

// Grid 偏移六边形网格，tile 按 ID 顺序平铺存储。
type Grid struct {
	Width  int
	Height int
	Tiles  []Tile
}

func New(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Tiles:  make([]Tile, width*height),
	}
}

func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// At 返回坐标处 tile 的指针；越界返回 nil。
func (g *Grid) At(c Coord) *Tile {
	if !g.InBounds(c) {
		return nil
	}
	return &g.Tiles[c.TileID(g.Width)]
}

// ByID 按 tile ID 取 tile；越界返回 nil。
func (g *Grid) ByID(id int) *Tile {
	if id < 0 || id >= len(g.Tiles) {
		return nil
	}
	return &g.Tiles[id]
}

// Neighbor 求相邻坐标，越界返回 GRID_OUT_OF_BOUNDS。
func (g *Grid) Neighbor(c Coord, d Direction) (Coord, error) {
	n := c.Shift(d)
	if !g.InBounds(n) {
		return Coord{}, ErrOutOfBounds.
			WithData("x", c.X).
			WithData("y", c.Y).
			WithData("direction", d.String())
	}
	return n, nil
}

// MarkBoundary 把最外 rings 圈 tile 标记为边界。
func (g *Grid) MarkBoundary(rings int) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if x < rings || x >= g.Width-rings || y < rings || y >= g.Height-rings {
				g.Tiles[Coord{x, y}.TileID(g.Width)].Boundary = true
			}
		}
	}
}

// IsEdgeRing 判断坐标是否位于最外 rings 圈。
func (g *Grid) IsEdgeRing(c Coord, rings int) bool {
	return c.X < rings || c.X >= g.Width-rings || c.Y < rings || c.Y >= g.Height-rings
}
