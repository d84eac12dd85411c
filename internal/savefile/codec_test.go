package savefile

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"GallicWars/internal/grid"
)

func TestEncode_地形文档逐行格式(t *testing.T) {
	g := grid.New(2, 1)
	g.Tiles[0].Terrain = "TERRAIN_WATER"
	g.Tiles[0].Height = "HEIGHT_OCEAN"
	g.Tiles[1].Terrain = "TERRAIN_LUSH"
	g.Tiles[1].Height = "HEIGHT_FLAT"
	g.Tiles[1].Road = true
	g.Tiles[1].RiverSW = grid.Rotation(1)
	g.Tiles[1].CitySite = grid.SiteReserved
	g.Tiles[1].Label = "TEXT_NARBO"

	got := EncodeTerrain(g)
	want := "\ufeff" + strings.Join([]string{
		`<?xml version="1.0" encoding="utf-8"?>`,
		`<Root MapWidth="2">`,
		`  <Tile`,
		`    ID="0">`,
		`    <Terrain>TERRAIN_WATER</Terrain>`,
		`    <Height>HEIGHT_OCEAN</Height>`,
		`  </Tile>`,
		`  <Tile`,
		`    ID="1">`,
		`    <Terrain>TERRAIN_LUSH</Terrain>`,
		`    <Height>HEIGHT_FLAT</Height>`,
		`    <Road />`,
		`    <RiverSW>1</RiverSW>`,
		`    <CitySite>ACTIVE</CitySite>`,
		`    <ElementName>TEXT_NARBO</ElementName>`,
		`  </Tile>`,
		`</Root>`,
		``,
	}, "\n")
	if string(got) != want {
		t.Fatalf("地形文档输出与规范格式不一致\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestEncode_多行Root与属性文本元素(t *testing.T) {
	doc := &Document{
		Class: ClassMap,
		RootAttrs: []Attr{
			{Name: "MapWidth", Value: "23"},
			{Name: "MapEdgesSafe", Value: "True"},
		},
		Blocks: []*Node{
			Elem("RevealedCityTerritory",
				TextElem("Team", "0").WithAttr("CityTerritory", "1"),
			),
			Elem("PlayerFamily"),
			MarkElem("GameOptions"),
		},
	}

	got := string(Encode(doc))
	want := "\ufeff" + strings.Join([]string{
		`<?xml version="1.0" encoding="utf-8"?>`,
		`<Root`,
		`  MapWidth="23"`,
		`  MapEdgesSafe="True">`,
		`  <RevealedCityTerritory>`,
		`    <Team`,
		`      CityTerritory="1">0</Team>`,
		`  </RevealedCityTerritory>`,
		`  <PlayerFamily>`,
		`  </PlayerFamily>`,
		`  <GameOptions />`,
		`</Root>`,
		``,
	}, "\n")
	if got != want {
		t.Fatalf("多行 Root 输出不一致\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestDecode_编码前导与类别双向校验(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="utf-8"?>` + "\n<Root>\n</Root>\n")
	withBOM := append(append([]byte{}, utf8BOM...), body...)

	if _, err := Decode(ClassMap, body); !errors.Is(err, ErrEncodingMismatch) {
		t.Fatalf("map 类文档缺 BOM 应报 CODEC_ENCODING_MISMATCH，got=%v", err)
	}
	if _, err := Decode(ClassEvent, withBOM); !errors.Is(err, ErrEncodingMismatch) {
		t.Fatalf("event 类文档带 BOM 应报 CODEC_ENCODING_MISMATCH，got=%v", err)
	}
	if _, err := Decode(ClassEvent, body); err != nil {
		t.Fatalf("event 类无 BOM 应通过：%v", err)
	}
	if _, err := Decode(ClassText, withBOM); err != nil {
		t.Fatalf("text 类带 BOM 应通过：%v", err)
	}
}

func TestDecode_编码往返等价(t *testing.T) {
	doc := &Document{
		Class:      ClassMap,
		InlineRoot: false,
		RootAttrs: []Attr{
			{Name: "MapWidth", Value: "5"},
			{Name: "Scenario", Value: "SCENARIO_GALLIC_WARS_1"},
		},
		Blocks: []*Node{
			Elem("Game",
				TextElem("Seed", "666877878369320307"),
				TextElem("NextUnitID", "4"),
				MarkElem("NoFogOfWar"),
				Elem("TribeDiplomacy",
					TextElem("TRIBE_AEDUI.0", "DIPLOMACY_TRUCE"),
				),
				Elem("TeamContact", MarkElem("T.0.0")),
			),
			Elem("City",
				TextElem("Name", "Narbo"),
				MarkElem("Capital"),
				Elem("PlayerFamily"),
			).WithAttr("ID", "0").WithAttr("TileID", "98"),
			Elem("Tile",
				MarkElem("Boundary"),
				TextElem("Terrain", "TERRAIN_URBAN"),
			).WithAttr("ID", "98"),
		},
	}

	back, err := Decode(ClassMap, Encode(doc))
	if err != nil {
		t.Fatalf("解码不应失败：%v", err)
	}
	if !reflect.DeepEqual(doc, back) {
		t.Fatalf("往返后模型不等价\n--- in ---\n%+v\n--- out ---\n%+v", doc, back)
	}
}

func TestDecode_单行Root形态保持(t *testing.T) {
	g := grid.New(3, 2)
	for id := range g.Tiles {
		g.Tiles[id].Terrain = "TERRAIN_TEMPERATE"
		g.Tiles[id].Height = "HEIGHT_FLAT"
	}
	doc, err := Decode(ClassMap, EncodeTerrain(g))
	if err != nil {
		t.Fatalf("解码不应失败：%v", err)
	}
	if !doc.InlineRoot {
		t.Fatalf("地形文档应还原为单行 Root 形态")
	}
	if !bytes.Equal(Encode(doc), EncodeTerrain(g)) {
		t.Fatalf("解码后重编码应逐字节一致")
	}
}

func TestGridFromDocument_地形往返(t *testing.T) {
	g := grid.New(4, 2)
	for id := range g.Tiles {
		g.Tiles[id].Terrain = "TERRAIN_TEMPERATE"
		g.Tiles[id].Height = "HEIGHT_FLAT"
	}
	g.Tiles[5].Vegetation = "VEGETATION_TREES"
	g.Tiles[5].Resource = "RESOURCE_IRON"
	g.Tiles[5].RiverW = grid.Rotation(0)
	g.Tiles[5].RiverSE = grid.Rotation(1)
	g.Tiles[6].CitySite = grid.SiteUsed
	g.Tiles[6].Improvement = "IMPROVEMENT_FARM"
	g.Tiles[6].TribeSite = "TRIBE_AEDUI"

	back, err := ParseTerrain(EncodeTerrain(g))
	if err != nil {
		t.Fatalf("解析不应失败：%v", err)
	}
	if back.Width != g.Width || back.Height != g.Height {
		t.Fatalf("尺寸应保持 %dx%d，got=%dx%d", g.Width, g.Height, back.Width, back.Height)
	}
	if !reflect.DeepEqual(g.Tiles, back.Tiles) {
		t.Fatalf("tile 集往返后不等价")
	}
}

func TestGridFromDocument_宽度不整除报错(t *testing.T) {
	doc := &Document{
		Class:      ClassMap,
		InlineRoot: true,
		RootAttrs:  []Attr{{Name: "MapWidth", Value: "4"}},
		Blocks: []*Node{
			Elem("Tile", TextElem("Terrain", "TERRAIN_WATER")).WithAttr("ID", "0"),
		},
	}
	if _, err := GridFromDocument(doc); !errors.Is(err, ErrTerrainInvalid) {
		t.Fatalf("tile 数不被宽度整除应报 CODEC_TERRAIN_INVALID，got=%v", err)
	}
}
