package grid

import (
	"errors"
	"testing"
)

func TestTileID_与坐标互为双射(t *testing.T) {
	const width = 23
	for y := 0; y < 29; y++ {
		for x := 0; x < width; x++ {
			c := Coord{x, y}
			id := c.TileID(width)
			if got := CoordOf(id, width); got != c {
				t.Fatalf("期望 ID↔(x,y) 双射，coord=%v id=%d got=%v", c, id, got)
			}
		}
	}
}

func TestNeighbor_偶数行SW指向左下(t *testing.T) {
	g := New(10, 10)
	got, err := g.Neighbor(Coord{4, 2}, SouthWest)
	if err != nil {
		t.Fatalf("不期望出错：%v", err)
	}
	if got != (Coord{3, 3}) {
		t.Fatalf("偶数行 (4,2) 的 SW 邻居应为 (3,3)，got=%v", got)
	}
}

func TestNeighbor_奇数行SW指向正下(t *testing.T) {
	g := New(10, 10)
	got, err := g.Neighbor(Coord{4, 3}, SouthWest)
	if err != nil {
		t.Fatalf("不期望出错：%v", err)
	}
	if got != (Coord{4, 4}) {
		t.Fatalf("奇数行 (4,3) 的 SW 邻居应为 (4,4)，got=%v", got)
	}
}

func TestNeighbor_越界返回OutOfBounds(t *testing.T) {
	g := New(5, 5)
	_, err := g.Neighbor(Coord{0, 0}, West)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("期望 GRID_OUT_OF_BOUNDS，got=%v", err)
	}
	_, err = g.Neighbor(Coord{4, 4}, SouthEast)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("期望 GRID_OUT_OF_BOUNDS，got=%v", err)
	}
}

func TestNeighbor_往返一致(t *testing.T) {
	// E↔W、NE↔SW、NW↔SE 互为逆方向，任意起点走一去一回应回到原点
	pairs := [][2]Direction{
		{East, West},
		{NorthEast, SouthWest},
		{NorthWest, SouthEast},
	}
	for _, c := range []Coord{{3, 3}, {4, 2}, {5, 5}, {2, 4}} {
		for _, p := range pairs {
			if got := c.Shift(p[0]).Shift(p[1]); got != c {
				t.Fatalf("往返 %v->%v 应回到原点，start=%v got=%v", p[0], p[1], c, got)
			}
		}
	}
}

func TestDistance_相邻为一(t *testing.T) {
	c := Coord{4, 3}
	for _, d := range Directions {
		if got := Distance(c, c.Shift(d)); got != 1 {
			t.Fatalf("相邻 tile 距离应为 1，dir=%v got=%d", d, got)
		}
	}
	if got := Distance(c, c); got != 0 {
		t.Fatalf("自身距离应为 0，got=%d", got)
	}
}

func TestMarkBoundary_五乘五标记外两圈(t *testing.T) {
	g := New(5, 5)
	g.MarkBoundary(2)

	boundaryCount := 0
	for id := range g.Tiles {
		if g.Tiles[id].Boundary {
			boundaryCount++
		}
	}
	// 5x5 只有中心 (2,2) 不在外两圈内
	if boundaryCount != 24 {
		t.Fatalf("5x5 外两圈应为 24 个边界 tile，got=%d", boundaryCount)
	}
	if g.At(Coord{2, 2}).Boundary {
		t.Fatalf("中心 (2,2) 不应是边界")
	}
}
