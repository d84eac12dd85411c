package scenario

import (
	"GallicWars/internal/grid"
)

// Character 已分配 ID 的人物实体。
type Character struct {
	ID   int
	Seed int64
	Def  CharacterDef
}

// City 已分配 ID 的城市实体。
type City struct {
	ID     int
	TileID int
	Def    CityDef
}

// Unit 已分配 ID 的单位实体。
type Unit struct {
	ID     int
	TileID int
	Seed   int64
	Def    UnitDef
}

// DiploKey 外交矩阵键：(部族, 玩家) 对。
type DiploKey struct {
	Tribe  string
	Player int
}

// Graph 组装完成的剧本实体图。生成后只读，序列化阶段不再校验。
type Graph struct {
	Chapter *Chapter
	Grid    *grid.Grid
	GameID  string

	Characters []Character
	Cities     []City
	Units      []Unit

	// 文档根记录的终值计数器，严格大于同类实体的任何已分配 ID
	NextUnitID      int
	NextCityID      int
	NextCharacterID int

	TribeOrder []string
	Diplomacy  map[DiploKey]string

	Territory   map[int]int   // tileID -> 领土归属城市 ID
	Revealed    map[int]int   // tileID -> 初始可见的团队
	UnitsByTile map[int][]int // tileID -> Units 下标
	CityByTile  map[int]int   // tileID -> Cities 下标
}

// CityAt 返回 tile 上的预置城市，没有返回 nil。
func (gr *Graph) CityAt(tileID int) *City {
	if i, ok := gr.CityByTile[tileID]; ok {
		return &gr.Cities[i]
	}
	return nil
}
