package grid

// Coord 偏移坐标（x 向东增长，y 向南增长）。
type Coord struct {
	X int
	Y int
}

// TileID 计算 (x,y) 在给定宽度下的平铺 ID。映射是双射且全程稳定。
func (c Coord) TileID(width int) int {
	return c.Y*width + c.X
}

// CoordOf 是 TileID 的逆映射。
func CoordOf(tileID, width int) Coord {
	return Coord{X: tileID % width, Y: tileID / width}
}

// Shift 返回按方向偏移后的坐标，不做边界判断。
// NE/NW/SE/SW 的横向偏移取决于行奇偶（odd-row-right）。
func (c Coord) Shift(d Direction) Coord {
	odd := c.Y&1 == 1
	switch d {
	case East:
		return Coord{c.X + 1, c.Y}
	case West:
		return Coord{c.X - 1, c.Y}
	case NorthEast:
		if odd {
			return Coord{c.X + 1, c.Y - 1}
		}
		return Coord{c.X, c.Y - 1}
	case NorthWest:
		if odd {
			return Coord{c.X, c.Y - 1}
		}
		return Coord{c.X - 1, c.Y - 1}
	case SouthEast:
		if odd {
			return Coord{c.X + 1, c.Y + 1}
		}
		return Coord{c.X, c.Y + 1}
	case SouthWest:
		if odd {
			return Coord{c.X, c.Y + 1}
		}
		return Coord{c.X - 1, c.Y + 1}
	}
	return c
}

// cube 立方坐标，用于六边形距离。
type cube struct {
	q, r, s int
}

func (c Coord) toCube() cube {
	q := c.X - (c.Y-(c.Y&1))/2
	r := c.Y
	return cube{q: q, r: r, s: -q - r}
}

// Distance 两个偏移坐标之间的六边形距离。
func Distance(a, b Coord) int {
	ca, cb := a.toCube(), b.toCube()
	return max(abs(ca.q-cb.q), max(abs(ca.r-cb.r), abs(ca.s-cb.s)))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
