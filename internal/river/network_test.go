package river

import (
	"errors"
	"testing"

	"GallicWars/internal/grid"
)

func newRiverGrid(w, h int) *grid.Grid {
	g := grid.New(w, h)
	for id := range g.Tiles {
		g.Tiles[id].Terrain = "TERRAIN_TEMPERATE"
		g.Tiles[id].Height = "HEIGHT_FLAT"
	}
	return g
}

func TestAcross_SW边沿按行奇偶解析对侧(t *testing.T) {
	even := Edge{Tile: grid.Coord{X: 4, Y: 2}, Kind: EdgeSW}
	if got := even.Across(); got != (grid.Coord{X: 3, Y: 3}) {
		t.Fatalf("偶数行 (4,2) 的 SW 边沿对侧应为 (3,3)，got=%v", got)
	}
	odd := Edge{Tile: grid.Coord{X: 4, Y: 3}, Kind: EdgeSW}
	if got := odd.Across(); got != (grid.Coord{X: 4, Y: 4}) {
		t.Fatalf("奇数行 (4,3) 的 SW 边沿对侧应为 (4,4)，got=%v", got)
	}
}

func TestConnected_同tile的W与SW共享SW顶点(t *testing.T) {
	c := grid.Coord{X: 3, Y: 3}
	if !Connected(Edge{Tile: c, Kind: EdgeW}, Edge{Tile: c, Kind: EdgeSW}) {
		t.Fatalf("同 tile 的 W 与 SW 边沿应共享 SW 顶点")
	}
	if !Connected(Edge{Tile: c, Kind: EdgeSW}, Edge{Tile: c, Kind: EdgeSE}) {
		t.Fatalf("同 tile 的 SW 与 SE 边沿应共享 S 顶点")
	}
	if Connected(Edge{Tile: c, Kind: EdgeW}, Edge{Tile: c, Kind: EdgeSE}) {
		t.Fatalf("同 tile 的 W 与 SE 边沿不共享顶点")
	}
}

func TestValidateNetwork_西邻SE与东tile的W连通(t *testing.T) {
	g := newRiverGrid(8, 4)
	// (2,1) 的 SE 顶点与东邻 (3,1) 的 SW 顶点重合
	g.At(grid.Coord{X: 2, Y: 1}).RiverSE = grid.Rotation(0)
	g.At(grid.Coord{X: 3, Y: 1}).RiverW = grid.Rotation(1)

	report := ValidateNetwork(g)
	if len(report.Chains) != 1 {
		t.Fatalf("两条共享顶点的边沿应归并为一条链，got=%d chains", len(report.Chains))
	}
	if len(report.Chains[0].Edges) != 2 {
		t.Fatalf("链内应有 2 条边沿，got=%d", len(report.Chains[0].Edges))
	}
}

func TestValidateNetwork_单独边沿两端都是链端(t *testing.T) {
	g := newRiverGrid(8, 4)
	g.At(grid.Coord{X: 3, Y: 1}).RiverW = grid.Rotation(0)

	report := ValidateNetwork(g)
	if len(report.Chains) != 1 {
		t.Fatalf("期望一条链，got=%d", len(report.Chains))
	}
	ends := report.Chains[0].Ends
	if len(ends) != 2 {
		t.Fatalf("单独边沿应有两个链端，got=%d", len(ends))
	}
	var springs, mouths int
	for _, e := range ends {
		if e.Kind == Spring {
			springs++
		} else {
			mouths++
		}
	}
	if springs != 1 || mouths != 1 {
		t.Fatalf("单独边沿应恰好一源头一入海口，springs=%d mouths=%d", springs, mouths)
	}
}

func TestValidateNetwork_W边沿旋转决定上游端(t *testing.T) {
	// W 边沿：0→NW 邻居上游，1→SW 邻居上游
	e0 := Edge{Tile: grid.Coord{X: 3, Y: 2}, Kind: EdgeW, Rotation: 0}
	nwVertex := vertexS(grid.Coord{X: 3, Y: 2}.Shift(grid.NorthWest))
	if e0.Upstream() != nwVertex {
		t.Fatalf("rotation=0 的 W 边沿上游应是 NW 顶点")
	}
	e1 := Edge{Tile: grid.Coord{X: 3, Y: 2}, Kind: EdgeW, Rotation: 1}
	if e1.Upstream() != vertexSW(grid.Coord{X: 3, Y: 2}) {
		t.Fatalf("rotation=1 的 W 边沿上游应是 SW 顶点")
	}
}

func TestValidateNetwork_邻居有河但不接续时告警(t *testing.T) {
	g := newRiverGrid(8, 6)
	// (3,2) 声明 W 边沿；西邻 (2,2) 有河但没有任何边沿接到端点上
	g.At(grid.Coord{X: 3, Y: 2}).RiverW = grid.Rotation(0)
	g.At(grid.Coord{X: 2, Y: 2}).RiverW = grid.Rotation(0)

	report := ValidateNetwork(g)
	if len(report.Warnings) == 0 {
		t.Fatalf("期望疑似断开告警")
	}
	if !errors.Is(report.Warnings[0], WarnDisconnected) {
		t.Fatalf("期望 RIVER_DISCONNECTED_SEGMENT，got=%v", report.Warnings[0])
	}
}

func TestValidateNetwork_孤立边沿不告警(t *testing.T) {
	g := newRiverGrid(8, 6)
	g.At(grid.Coord{X: 4, Y: 2}).RiverSW = grid.Rotation(0)

	report := ValidateNetwork(g)
	if len(report.Warnings) != 0 {
		t.Fatalf("四周无河的自由端是合法源头/入海口，不应告警：%v", report.Warnings)
	}
}

func TestCheckTile_非法旋转值(t *testing.T) {
	g := newRiverGrid(4, 4)
	g.At(grid.Coord{X: 1, Y: 1}).RiverSE = grid.Rotation(2)
	if err := CheckTile(g, grid.Coord{X: 1, Y: 1}); !errors.Is(err, ErrInvalidRotation) {
		t.Fatalf("期望 RIVER_INVALID_ROTATION，got=%v", err)
	}
	if err := CheckTile(g, grid.Coord{X: 2, Y: 2}); err != nil {
		t.Fatalf("无河 tile 不应报错：%v", err)
	}
}
