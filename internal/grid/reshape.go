package grid

const (
	defaultTerrain = "TERRAIN_WATER"
	defaultHeight  = "HEIGHT_OCEAN"

	fillTerrain = "TERRAIN_LUSH"
	fillHeight  = "HEIGHT_FLAT"
)

// ExtractRegion 把 [xMin,xMax]×[yMin,yMax]（含端点）拷贝成新网格并重映射 ID，
// 最外两圈标记为边界。yMin 为奇数会翻转所有行的奇偶对齐，使 SW/SE 河流边沿
// 指向错误的邻居，因此直接拒绝。
func ExtractRegion(src *Grid, xMin, xMax, yMin, yMax int) (*Grid, error) {
	if yMin&1 == 1 {
		return nil, ErrParityViolation.
			WithData("y_min", yMin).
			WithData("detail", "行偏移必须为偶数，奇数偏移会翻转 SW/SE 河流边沿的邻居")
	}
	if xMin > xMax || yMin > yMax {
		return nil, ErrOutOfBounds.
			WithData("x_min", xMin).WithData("x_max", xMax).
			WithData("y_min", yMin).WithData("y_max", yMax)
	}

	out := New(xMax-xMin+1, yMax-yMin+1)
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			srcTile := src.At(Coord{xMin + x, yMin + y})
			dst := out.At(Coord{x, y})
			if srcTile != nil {
				*dst = srcTile.Clone()
				dst.Boundary = false
			} else {
				// 源图范围之外补海洋
				dst.Terrain = defaultTerrain
				dst.Height = defaultHeight
			}
		}
	}
	out.MarkBoundary(2)
	return out, nil
}

// InsertRows 在 afterRow 之后插入 count 行（afterRow 取 -1 表示图顶）。
// count 必须为偶数：奇数次行移位会翻转移动区域内所有行的奇偶，
// 使每条 SW/SE 河流声明指向另一个邻居。新行的地形/高度从模板行复制，
// 其余字段留空待手工编辑。
func InsertRows(g *Grid, afterRow, count int) (*Grid, error) {
	if count&1 == 1 {
		return nil, ErrParityViolation.
			WithData("count", count).
			WithData("detail", "插入行数必须为偶数，奇数会翻转下方所有行的 SW/SE 邻居")
	}
	if afterRow < -1 || afterRow >= g.Height {
		return nil, ErrOutOfBounds.WithData("after_row", afterRow)
	}
	if count <= 0 {
		return nil, ErrOutOfBounds.WithData("count", count)
	}

	out := New(g.Width, g.Height+count)

	for y := 0; y <= afterRow; y++ {
		for x := 0; x < g.Width; x++ {
			*out.At(Coord{x, y}) = g.At(Coord{x, y}).Clone()
		}
	}
	for i := 0; i < count; i++ {
		y := afterRow + 1 + i
		for x := 0; x < g.Width; x++ {
			dst := out.At(Coord{x, y})
			dst.Terrain, dst.Height = templateTerrain(g, Coord{x, afterRow})
		}
	}
	for y := afterRow + 1; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			*out.At(Coord{x, y + count}) = g.At(Coord{x, y}).Clone()
		}
	}
	return out, nil
}

// InsertColumns 在 afterCol 之后插入 count 列（afterCol 取 -1 表示图左缘）。
// 列插入不影响行奇偶，无数量约束。新列的地形/高度从模板列复制。
func InsertColumns(g *Grid, afterCol, count int) (*Grid, error) {
	if afterCol < -1 || afterCol >= g.Width {
		return nil, ErrOutOfBounds.WithData("after_col", afterCol)
	}
	if count <= 0 {
		return nil, ErrOutOfBounds.WithData("count", count)
	}

	out := New(g.Width+count, g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x <= afterCol; x++ {
			*out.At(Coord{x, y}) = g.At(Coord{x, y}).Clone()
		}
		for i := 0; i < count; i++ {
			dst := out.At(Coord{afterCol + 1 + i, y})
			dst.Terrain, dst.Height = templateTerrain(g, Coord{afterCol, y})
		}
		for x := afterCol + 1; x < g.Width; x++ {
			*out.At(Coord{x + count, y}) = g.At(Coord{x, y}).Clone()
		}
	}
	return out, nil
}

func templateTerrain(g *Grid, c Coord) (terrain, height string) {
	t := g.At(c)
	if t == nil || t.Terrain == "" {
		return fillTerrain, fillHeight
	}
	terrain, height = t.Terrain, t.Height
	if height == "" {
		height = fillHeight
	}
	return terrain, height
}
