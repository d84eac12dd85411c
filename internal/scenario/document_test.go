package scenario

import (
	"strconv"
	"testing"

	"GallicWars/internal/grid"
	"GallicWars/internal/savefile"
)

func TestBuildDocument_块顺序与根属性(t *testing.T) {
	gr, err := Assemble(testGrid(5, 5), testChapter())
	if err != nil {
		t.Fatalf("组装不应失败：%v", err)
	}
	doc := BuildDocument(gr)

	if doc.RootAttr("MapWidth") != "5" || doc.RootAttr("MapEdgesSafe") != "True" {
		t.Fatalf("根属性不完整：%+v", doc.RootAttrs)
	}
	if doc.RootAttr("GameId") == "" {
		t.Fatalf("GameId 应为非空 uuid")
	}
	if doc.RootAttr("Scenario") != "SCENARIO_GALLIC_WARS_1" {
		t.Fatalf("Scenario 属性应来自章节配置")
	}

	// 顶层块顺序：开局选项 → Game → Player → Character → City → Tile
	pos := func(name string) int {
		for i, b := range doc.Blocks {
			if b.Name == name {
				return i
			}
		}
		return -1
	}
	for _, pair := range [][2]string{
		{"Team", "Game"}, {"Game", "Player"}, {"Player", "Character"},
		{"Character", "City"}, {"City", "Tile"},
	} {
		a, b := pos(pair[0]), pos(pair[1])
		if a < 0 || b < 0 || a > b {
			t.Fatalf("%s 块应先于 %s 块（%d vs %d）", pair[0], pair[1], a, b)
		}
	}
	if got := len(doc.BlocksNamed("Tile")); got != 25 {
		t.Fatalf("5x5 应有 25 个 Tile 块，got=%d", got)
	}
}

func TestBuildDocument_Game块计数器与外交(t *testing.T) {
	gr, err := Assemble(testGrid(5, 5), testChapter())
	if err != nil {
		t.Fatalf("组装不应失败：%v", err)
	}
	game := BuildDocument(gr).BlocksNamed("Game")[0]

	if game.Child("NextUnitID").Text != "1" || game.Child("NextCityID").Text != "1" ||
		game.Child("NextCharacterID").Text != "1" {
		t.Fatalf("计数器应严格大于已分配 ID")
	}

	diplo := game.Child("TribeDiplomacy")
	if diplo == nil || len(diplo.Children) != len(gr.TribeOrder) {
		t.Fatalf("TribeDiplomacy 应为名册 × 玩家的全矩阵")
	}
	var warSeen, truceSeen bool
	for _, c := range diplo.Children {
		switch c.Name {
		case "TRIBE_REBELS.0":
			warSeen = c.Text == StanceWar
		case "TRIBE_AEDUI.0":
			truceSeen = c.Text == StanceTruce
		}
	}
	if !warSeen || !truceSeen {
		t.Fatalf("外交矩阵默认值不符合名册敌对性")
	}

	team := game.Child("TeamDiplomacy")
	if team == nil || len(team.Children) != 1 || team.Children[0].Name != "T.0.0" ||
		team.Children[0].Text != StanceTeam {
		t.Fatalf("TeamDiplomacy 应包含 T.0.0=DIPLOMACY_TEAM")
	}

	familyClass := game.Child("FamilyClass")
	if familyClass == nil || len(familyClass.Children) == 0 {
		t.Fatalf("FamilyClass 应来自家族名册")
	}
}

func TestBuildDocument_城市tile与单位内嵌(t *testing.T) {
	ch := testChapter()
	ch.Cities[0].X, ch.Cities[0].Y = 2, 2
	ch.Units[0].X, ch.Units[0].Y = 2, 2
	gr, err := Assemble(testGrid(5, 5), ch)
	if err != nil {
		t.Fatalf("组装不应失败：%v", err)
	}
	doc := BuildDocument(gr)

	cityTileID := grid.Coord{X: 2, Y: 2}.TileID(5)
	var tile *savefile.Node
	for _, b := range doc.BlocksNamed("Tile") {
		if b.AttrValue("ID") == strconv.Itoa(cityTileID) {
			tile = b
		}
	}
	if tile == nil {
		t.Fatalf("缺少 ID=%d 的 Tile 块", cityTileID)
	}

	if tile.Child("CitySite") == nil || tile.Child("CitySite").Text != "USED" {
		t.Fatalf("城市 tile 的 CitySite 应为 USED")
	}
	if tile.Child("Terrain").Text != "TERRAIN_URBAN" {
		t.Fatalf("城市 tile 地形应为 TERRAIN_URBAN")
	}
	if tile.Child("OrigUrbanOwner") == nil {
		t.Fatalf("玩家城市 tile 应带 OrigUrbanOwner")
	}
	if tile.Child("Unit") == nil {
		t.Fatalf("单位应内嵌在所属 tile 里")
	}
	if tile.Child("Religion") == nil || tile.Child("RevealedTurn") == nil {
		t.Fatalf("每个 tile 都应带 Religion 与 RevealedTurn 标记")
	}
	if tile.Child("Revealed") == nil || tile.Child("RevealedTerrain") == nil {
		t.Fatalf("可见 tile 应带 Revealed 与 RevealedTerrain 块")
	}

	// 边界 tile：有 Boundary 标记、无可见性块
	corner := doc.BlocksNamed("Tile")[0]
	if corner.Child("Boundary") == nil {
		t.Fatalf("角落 tile 应为边界")
	}
	if corner.Child("Revealed") != nil {
		t.Fatalf("边界 tile 不应有可见性块")
	}
}

func TestBuildDocument_编码往返(t *testing.T) {
	gr, err := Assemble(testGrid(5, 5), testChapter())
	if err != nil {
		t.Fatalf("组装不应失败：%v", err)
	}
	doc := BuildDocument(gr)
	data := savefile.Encode(doc)

	back, err := savefile.Decode(savefile.ClassMap, data)
	if err != nil {
		t.Fatalf("解码不应失败：%v", err)
	}
	if len(back.Blocks) != len(doc.Blocks) {
		t.Fatalf("往返后顶层块数不一致：%d != %d", len(back.Blocks), len(doc.Blocks))
	}
	if back.RootAttr("GameId") != doc.RootAttr("GameId") {
		t.Fatalf("GameId 往返后应一致")
	}
}
