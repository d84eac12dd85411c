package savefile

import (
	"strconv"

	"GallicWars/internal/grid"
	"GallicWars/modules/kit/errx"
)

// ErrTerrainInvalid 地形文档内容不完整或不自洽。
var ErrTerrainInvalid = errx.NewBiz("CODEC_TERRAIN_INVALID", "地形文档内容不合法")

// TerrainDocument 把网格固化成地形文档：单行 Root、MapWidth 属性、
// 按 ID 递增的 Tile 块。Boundary 与 Metadata 类字段不属于地形层，
// 不会写出。
func TerrainDocument(g *grid.Grid) *Document {
	doc := &Document{
		Class:      ClassMap,
		InlineRoot: true,
		RootAttrs:  []Attr{{Name: "MapWidth", Value: strconv.Itoa(g.Width)}},
	}
	for id := range g.Tiles {
		tile := Elem("Tile").WithAttr("ID", strconv.Itoa(id))
		tile.Append(TileFieldNodes(&g.Tiles[id])...)
		doc.Blocks = append(doc.Blocks, tile)
	}
	return doc
}

// TileFieldNodes 按规范顺序渲染 tile 的地形字段：
// Terrain、Height、Vegetation、Resource、Road、RiverW/SW/SE、
// CitySite、Improvement、TribeSite、NationSite、ElementName。
// Boundary 不属于地形层，由剧本序列化单独处理。
func TileFieldNodes(t *grid.Tile) []*Node {
	var out []*Node
	text := func(name, value string) {
		if value != "" {
			out = append(out, TextElem(name, value))
		}
	}
	river := func(name string, rot *int) {
		if rot != nil {
			out = append(out, TextElem(name, strconv.Itoa(*rot)))
		}
	}

	text("Terrain", t.Terrain)
	text("Height", t.Height)
	text("Vegetation", t.Vegetation)
	text("Resource", t.Resource)
	if t.Road {
		out = append(out, MarkElem("Road"))
	}
	river("RiverW", t.RiverW)
	river("RiverSW", t.RiverSW)
	river("RiverSE", t.RiverSE)
	text("CitySite", string(t.CitySite))
	text("Improvement", t.Improvement)
	text("TribeSite", t.TribeSite)
	text("NationSite", t.NationSite)
	text("ElementName", t.Label)
	return out
}

// GridFromDocument 从地形文档还原网格。高度由 tile 总数和 MapWidth
// 推出；ID 必须连续覆盖 0..n-1。来源地图的 Metadata 等未知字段跳过。
func GridFromDocument(doc *Document) (*grid.Grid, error) {
	width, err := strconv.Atoi(doc.RootAttr("MapWidth"))
	if err != nil || width <= 0 {
		return nil, ErrTerrainInvalid.WithData("reason", "bad MapWidth").WithData("map_width", doc.RootAttr("MapWidth"))
	}
	tiles := doc.BlocksNamed("Tile")
	if len(tiles) == 0 || len(tiles)%width != 0 {
		return nil, ErrTerrainInvalid.
			WithData("reason", "tile count not divisible by width").
			WithData("tiles", len(tiles)).
			WithData("map_width", width)
	}

	g := grid.New(width, len(tiles)/width)
	for _, tn := range tiles {
		id, err := strconv.Atoi(tn.AttrValue("ID"))
		if err != nil || id < 0 || id >= len(g.Tiles) {
			return nil, ErrTerrainInvalid.WithData("reason", "bad tile ID").WithData("id", tn.AttrValue("ID"))
		}
		if err := fillTile(&g.Tiles[id], tn); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func fillTile(t *grid.Tile, n *Node) error {
	for _, c := range n.Children {
		switch c.Name {
		case "Terrain":
			t.Terrain = c.Text
		case "Height":
			t.Height = c.Text
		case "Vegetation":
			t.Vegetation = c.Text
		case "Resource":
			t.Resource = c.Text
		case "Road":
			t.Road = true
		case "RiverW", "RiverSW", "RiverSE":
			v, err := strconv.Atoi(c.Text)
			if err != nil {
				return ErrTerrainInvalid.
					WithData("reason", "bad river rotation").
					WithData("id", n.AttrValue("ID")).
					WithData("edge", c.Name).
					WithData("value", c.Text)
			}
			switch c.Name {
			case "RiverW":
				t.RiverW = grid.Rotation(v)
			case "RiverSW":
				t.RiverSW = grid.Rotation(v)
			case "RiverSE":
				t.RiverSE = grid.Rotation(v)
			}
		case "CitySite":
			// 老文件里有无值的 <CitySite />，等价于预留态
			if c.Text == "" {
				t.CitySite = grid.SiteReserved
			} else {
				t.CitySite = grid.SiteState(c.Text)
			}
		case "Improvement":
			t.Improvement = c.Text
		case "TribeSite":
			t.TribeSite = c.Text
		case "NationSite":
			t.NationSite = c.Text
		case "ElementName":
			t.Label = c.Text
		case "Boundary":
			t.Boundary = true
		}
	}
	return nil
}

// ParseTerrain 解码 + 还原网格的便捷入口。
func ParseTerrain(data []byte) (*grid.Grid, error) {
	doc, err := Decode(ClassMap, data)
	if err != nil {
		return nil, err
	}
	return GridFromDocument(doc)
}

// EncodeTerrain 网格 → 地形文档字节流。
func EncodeTerrain(g *grid.Grid) []byte {
	return Encode(TerrainDocument(g))
}
