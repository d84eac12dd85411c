package river

import (
	"fmt"

	"GallicWars/internal/grid"
)

// EdgeKind 每个 tile 只能声明三条边沿：西、西南、东南；
// 其余三条是邻居 tile 的互补边沿。
type EdgeKind uint8

const (
	EdgeW EdgeKind = iota
	EdgeSW
	EdgeSE
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeW:
		return "W"
	case EdgeSW:
		return "SW"
	case EdgeSE:
		return "SE"
	}
	return "?"
}

// Edge 一条已声明的河流边沿。Rotation 是二值流向旋转。
type Edge struct {
	Tile     grid.Coord
	Kind     EdgeKind
	Rotation int
}

func (e Edge) String() string {
	return fmt.Sprintf("(%d,%d)%s=%d", e.Tile.X, e.Tile.Y, e.Kind, e.Rotation)
}

// Corner 规范化顶点只用两类角：每个物理顶点恰好是某个 tile 的 SW 角或 S 角。
type Corner uint8

const (
	CornerSW Corner = iota
	CornerS
)

// Vertex 规范化顶点。跨 tile 重合的顶点归一到同一个键：
//
//	SE(t) ≡ SW(east(t))   NW(t) ≡ S(nw(t))
//	N(t)  ≡ SW(ne(t))     NE(t) ≡ S(ne(t))
type Vertex struct {
	Tile   grid.Coord
	Corner Corner
}

func vertexSW(c grid.Coord) Vertex { return Vertex{Tile: c, Corner: CornerSW} }
func vertexS(c grid.Coord) Vertex  { return Vertex{Tile: c, Corner: CornerS} }

// Endpoints 边沿的两个规范化顶点。
func (e Edge) Endpoints() (Vertex, Vertex) {
	switch e.Kind {
	case EdgeW:
		// NW(t)–SW(t)
		return vertexS(e.Tile.Shift(grid.NorthWest)), vertexSW(e.Tile)
	case EdgeSW:
		// SW(t)–S(t)
		return vertexSW(e.Tile), vertexS(e.Tile)
	default:
		// S(t)–SE(t)
		return vertexS(e.Tile), vertexSW(e.Tile.Shift(grid.East))
	}
}

// Upstream 旋转值指定的上游顶点：
//
//	W:  0→NW 邻居上游  1→SW 邻居上游
//	SW: 0→W 邻居上游   1→SE 邻居上游
//	SE: 0→SW 邻居上游  1→E 邻居上游
func (e Edge) Upstream() Vertex {
	a, b := e.Endpoints()
	if e.Rotation == 0 {
		return a
	}
	return b
}

// Downstream 与 Upstream 相对的另一端。
func (e Edge) Downstream() Vertex {
	a, b := e.Endpoints()
	if e.Rotation == 0 {
		return b
	}
	return a
}

// Across 返回边沿另一侧的 tile 坐标。SW/SE 边沿的对侧取决于行奇偶，
// 必须经由方向位移解析，不能用固定偏移。
func (e Edge) Across() grid.Coord {
	switch e.Kind {
	case EdgeW:
		return e.Tile.Shift(grid.West)
	case EdgeSW:
		return e.Tile.Shift(grid.SouthWest)
	default:
		return e.Tile.Shift(grid.SouthEast)
	}
}

// Touches 边沿是否经过顶点 v。
func (e Edge) Touches(v Vertex) bool {
	a, b := e.Endpoints()
	return a == v || b == v
}

// Connected 两条边沿共享顶点即连通（同 tile 或跨 tile）。
func Connected(a, b Edge) bool {
	a1, a2 := a.Endpoints()
	return b.Touches(a1) || b.Touches(a2)
}

// CollectEdges 按 tile ID 顺序收集全图已声明的河流边沿。
func CollectEdges(g *grid.Grid) []Edge {
	var out []Edge
	for id := range g.Tiles {
		c := grid.CoordOf(id, g.Width)
		t := &g.Tiles[id]
		if t.RiverW != nil {
			out = append(out, Edge{Tile: c, Kind: EdgeW, Rotation: *t.RiverW})
		}
		if t.RiverSW != nil {
			out = append(out, Edge{Tile: c, Kind: EdgeSW, Rotation: *t.RiverSW})
		}
		if t.RiverSE != nil {
			out = append(out, Edge{Tile: c, Kind: EdgeSE, Rotation: *t.RiverSE})
		}
	}
	return out
}
