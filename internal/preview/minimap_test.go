package preview

import (
	"strings"
	"testing"

	"GallicWars/internal/grid"
)

func TestGlyph_字符优先级(t *testing.T) {
	cases := []struct {
		name string
		tile grid.Tile
		want rune
	}{
		{"国家起始点盖过一切", grid.Tile{NationSite: "NATION_ROME", Terrain: terrainUrban}, '*'},
		{"城区", grid.Tile{Terrain: terrainUrban}, 'O'},
		{"陆地边框", grid.Tile{Boundary: true, Terrain: "TERRAIN_TEMPERATE"}, '|'},
		{"水面边框不画竖线", grid.Tile{Boundary: true, Terrain: terrainWater, Height: "HEIGHT_OCEAN"}, '~'},
		{"湖泊", grid.Tile{Terrain: terrainWater, Height: heightLake}, '≈'},
		{"海洋", grid.Tile{Terrain: terrainWater, Height: "HEIGHT_OCEAN"}, '~'},
		{"沼泽", grid.Tile{Terrain: terrainMarsh}, ','},
		{"山地", grid.Tile{Terrain: "TERRAIN_TEMPERATE", Height: heightMountain}, '^'},
		{"有林丘陵", grid.Tile{Terrain: "TERRAIN_TEMPERATE", Height: heightHill, Vegetation: vegetationTrees}, 'A'},
		{"裸丘陵", grid.Tile{Terrain: "TERRAIN_TEMPERATE", Height: heightHill}, 'n'},
		{"平地森林", grid.Tile{Terrain: "TERRAIN_TEMPERATE", Height: "HEIGHT_FLAT", Vegetation: vegetationTrees}, 'T'},
		{"灌木", grid.Tile{Terrain: "TERRAIN_TEMPERATE", Height: "HEIGHT_FLAT", Vegetation: vegetationScrub}, ';'},
		{"沃土", grid.Tile{Terrain: terrainLush, Height: "HEIGHT_FLAT"}, ':'},
		{"平地", grid.Tile{Terrain: "TERRAIN_TEMPERATE", Height: "HEIGHT_FLAT"}, '.'},
		{"平地上的河", grid.Tile{Terrain: "TERRAIN_TEMPERATE", Height: "HEIGHT_FLAT", RiverW: grid.Rotation(1)}, '~'},
		{"旋转值为零的河不改画", grid.Tile{Terrain: "TERRAIN_TEMPERATE", Height: "HEIGHT_FLAT", RiverW: grid.Rotation(0)}, '.'},
		{"山上的河仍画山", grid.Tile{Terrain: "TERRAIN_TEMPERATE", Height: heightMountain, RiverSE: grid.Rotation(1)}, '^'},
	}
	for _, tc := range cases {
		if got := Glyph(&tc.tile); got != tc.want {
			t.Errorf("%s：期望 %q，got=%q", tc.name, tc.want, got)
		}
	}
}

func TestRender_行号与表头(t *testing.T) {
	g := grid.New(7, 3)
	for id := range g.Tiles {
		g.Tiles[id].Terrain = "TERRAIN_TEMPERATE"
		g.Tiles[id].Height = "HEIGHT_FLAT"
	}
	g.At(grid.Coord{X: 2, Y: 1}).Terrain = terrainWater
	g.At(grid.Coord{X: 2, Y: 1}).Height = "HEIGHT_OCEAN"

	out := Render(g)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("期望表头 + 3 行，got=%d 行", len(lines))
	}
	if !strings.HasPrefix(lines[0], "    0    5") {
		t.Fatalf("表头应每 5 列标一个列号：%q", lines[0])
	}
	if lines[2] != "  1 ..~...." {
		t.Fatalf("第 1 行渲染不正确：%q", lines[2])
	}
}
