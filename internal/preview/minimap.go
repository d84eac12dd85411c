// Package preview 为地形维护提供一个本地 HTTP 预览面：ASCII 缩略图、
// 河网诊断查询，外加地形文件变更时的 websocket 推送。
package preview

import (
	"fmt"
	"strings"

	"GallicWars/internal/grid"
)

// 参与缩略图判定的枚举取值。
const (
	terrainWater = "TERRAIN_WATER"
	terrainUrban = "TERRAIN_URBAN"
	terrainMarsh = "TERRAIN_MARSH"
	terrainLush  = "TERRAIN_LUSH"

	heightLake     = "HEIGHT_LAKE"
	heightHill     = "HEIGHT_HILL"
	heightMountain = "HEIGHT_MOUNTAIN"

	vegetationTrees = "VEGETATION_TREES"
	vegetationScrub = "VEGETATION_SCRUB"
)

// Glyph 单个 tile 的缩略图字符。优先级自上而下：
// 国家起始点 > 城区 > 边框 > 水体 > 沼泽 > 山地 > 丘陵 > 植被 > 地形。
// 平地上有流动的河（旋转值大于 0）时改画 '~'。
func Glyph(t *grid.Tile) rune {
	ch := '.'
	switch {
	case t.NationSite != "":
		ch = '*'
	case t.Terrain == terrainUrban:
		ch = 'O'
	case t.Boundary && t.Terrain != terrainWater:
		ch = '|'
	case t.Terrain == terrainWater:
		if t.Height == heightLake {
			ch = '≈'
		} else {
			ch = '~'
		}
	case t.Terrain == terrainMarsh:
		ch = ','
	case t.Height == heightMountain:
		ch = '^'
	case t.Height == heightHill:
		if t.Vegetation == vegetationTrees {
			ch = 'A'
		} else {
			ch = 'n'
		}
	case t.Vegetation == vegetationTrees:
		ch = 'T'
	case t.Vegetation == vegetationScrub:
		ch = ';'
	case t.Terrain == terrainLush:
		ch = ':'
	}
	if ch == '.' && hasFlowingRiver(t) {
		ch = '~'
	}
	return ch
}

func hasFlowingRiver(t *grid.Tile) bool {
	for _, v := range []*int{t.RiverW, t.RiverSW, t.RiverSE} {
		if v != nil && *v > 0 {
			return true
		}
	}
	return false
}

// Render 把网格画成 ASCII 缩略图。y=0 在最上面（视觉上的南边），
// 每行带行号前缀，表头每 5 列标一个列号。
func Render(g *grid.Grid) string {
	var b strings.Builder

	b.WriteString("    ")
	for x := 0; x < g.Width; x += 5 {
		b.WriteString(fmt.Sprintf("%-5d", x))
	}
	b.WriteByte('\n')

	for y := 0; y < g.Height; y++ {
		b.WriteString(fmt.Sprintf("%3d ", y))
		for x := 0; x < g.Width; x++ {
			b.WriteRune(Glyph(g.At(grid.Coord{X: x, Y: y})))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
