package scenario

import (
	"github.com/google/uuid"

	"GallicWars/internal/grid"
	"GallicWars/internal/shared/gamedata/families"
	"GallicWars/internal/shared/gamedata/tribes"
)

// Assemble 单遍组装剧本实体图：引用校验、ID 分配、城址落位、
// 领土与可见性涂抹、外交矩阵补全。任一致命诊断直接中止，
// 不产出部分结果。输入网格不被修改。
func Assemble(src *grid.Grid, ch *Chapter) (*Graph, error) {
	gr := &Graph{
		Chapter:     ch,
		Grid:        cloneGrid(src),
		GameID:      uuid.NewString(),
		TribeOrder:  tribes.Roster(),
		Diplomacy:   make(map[DiploKey]string),
		Territory:   make(map[int]int),
		Revealed:    make(map[int]int),
		UnitsByTile: make(map[int][]int),
		CityByTile:  make(map[int]int),
	}

	if err := gr.checkReferences(); err != nil {
		return nil, err
	}
	if err := gr.allocateIDs(); err != nil {
		return nil, err
	}
	gr.Grid.MarkBoundary(ch.BoundaryWidth)
	if err := gr.placeCities(); err != nil {
		return nil, err
	}
	gr.placeUnits()
	gr.paintTerritory()
	gr.markRevealed()
	if err := gr.fillDiplomacy(); err != nil {
		return nil, err
	}
	return gr, nil
}

func cloneGrid(src *grid.Grid) *grid.Grid {
	out := grid.New(src.Width, src.Height)
	for id := range src.Tiles {
		out.Tiles[id] = src.Tiles[id].Clone()
	}
	return out
}

// checkReferences 交叉引用完整性：tile、玩家、家族、部族都必须命中已声明对象。
func (gr *Graph) checkReferences() error {
	ch := gr.Chapter
	players := len(ch.Players)

	for i, p := range ch.Players {
		for _, f := range p.Families {
			if !families.Known(f) {
				return ErrDanglingRef.
					WithData("entity", "player").WithData("index", i).
					WithData("family", f)
			}
		}
		for _, xy := range p.StartTiles {
			if !gr.Grid.InBounds(grid.Coord{X: xy.X, Y: xy.Y}) {
				return ErrDanglingRef.
					WithData("entity", "player").WithData("index", i).
					WithData("x", xy.X).WithData("y", xy.Y)
			}
		}
	}

	for i, c := range ch.Characters {
		if c.Player < 0 || c.Player >= players {
			return ErrDanglingRef.
				WithData("entity", "character").WithData("index", i).
				WithData("player", c.Player)
		}
		if c.Family != "" && !playerHasFamily(ch.Players[c.Player], c.Family) {
			return ErrDanglingRef.
				WithData("entity", "character").WithData("index", i).
				WithData("family", c.Family)
		}
	}

	for _, c := range ch.Cities {
		if !gr.Grid.InBounds(grid.Coord{X: c.X, Y: c.Y}) {
			return ErrDanglingRef.
				WithData("entity", "city").WithData("name", c.Name).
				WithData("x", c.X).WithData("y", c.Y)
		}
		if c.Player >= players {
			return ErrDanglingRef.
				WithData("entity", "city").WithData("name", c.Name).
				WithData("player", c.Player)
		}
		if c.Player >= 0 && !playerHasFamily(ch.Players[c.Player], c.Family) {
			return ErrDanglingRef.
				WithData("entity", "city").WithData("name", c.Name).
				WithData("family", c.Family)
		}
		if c.Player < 0 && !tribeKnown(gr.TribeOrder, c.Tribe) {
			return ErrDanglingRef.
				WithData("entity", "city").WithData("name", c.Name).
				WithData("tribe", c.Tribe)
		}
	}

	for i, u := range ch.Units {
		if !gr.Grid.InBounds(grid.Coord{X: u.X, Y: u.Y}) {
			return ErrDanglingRef.
				WithData("entity", "unit").WithData("index", i).
				WithData("x", u.X).WithData("y", u.Y)
		}
		if u.Player < 0 || u.Player >= players {
			return ErrDanglingRef.
				WithData("entity", "unit").WithData("index", i).
				WithData("player", u.Player)
		}
	}

	for i, o := range ch.Diplomacy {
		if !tribeKnown(gr.TribeOrder, o.Tribe) {
			return ErrDanglingRef.
				WithData("entity", "diplomacy").WithData("index", i).
				WithData("tribe", o.Tribe)
		}
		if o.Player < 0 || o.Player >= players {
			return ErrDanglingRef.
				WithData("entity", "diplomacy").WithData("index", i).
				WithData("player", o.Player)
		}
	}
	return nil
}

func playerHasFamily(p PlayerDef, family string) bool {
	for _, f := range p.Families {
		if f == family {
			return true
		}
	}
	return false
}

func tribeKnown(roster []string, id string) bool {
	for _, t := range roster {
		if t == id {
			return true
		}
	}
	return false
}

// allocateIDs 每类实体从配置基准连续分配；显式 ID 参与查重。
func (gr *Graph) allocateIDs() error {
	ch := gr.Chapter

	charIDs, next, err := allocate("character", ch.IDBase.Character, len(ch.Characters),
		func(i int) *int { return ch.Characters[i].ID })
	if err != nil {
		return err
	}
	gr.NextCharacterID = next
	for i, def := range ch.Characters {
		gr.Characters = append(gr.Characters, Character{
			ID:   charIDs[i],
			Seed: ch.CharacterSeed + int64(charIDs[i]),
			Def:  def,
		})
	}

	cityIDs, next, err := allocate("city", ch.IDBase.City, len(ch.Cities),
		func(i int) *int { return ch.Cities[i].ID })
	if err != nil {
		return err
	}
	gr.NextCityID = next
	for i, def := range ch.Cities {
		gr.Cities = append(gr.Cities, City{
			ID:     cityIDs[i],
			TileID: grid.Coord{X: def.X, Y: def.Y}.TileID(gr.Grid.Width),
			Def:    def,
		})
	}

	unitIDs, next, err := allocate("unit", ch.IDBase.Unit, len(ch.Units),
		func(i int) *int { return ch.Units[i].ID })
	if err != nil {
		return err
	}
	gr.NextUnitID = next
	for i, def := range ch.Units {
		gr.Units = append(gr.Units, Unit{
			ID:     unitIDs[i],
			TileID: grid.Coord{X: def.X, Y: def.Y}.TileID(gr.Grid.Width),
			Seed:   ch.UnitSeed + int64(unitIDs[i]),
			Def:    def,
		})
	}
	return nil
}

func allocate(class string, base, count int, explicit func(int) *int) ([]int, int, error) {
	ids := make([]int, 0, count)
	seen := make(map[int]bool, count)
	cursor := base
	next := base
	for i := 0; i < count; i++ {
		var id int
		if p := explicit(i); p != nil {
			id = *p
		} else {
			// 跳过显式占用的值
			for seen[cursor] {
				cursor++
			}
			id = cursor
			cursor++
		}
		if seen[id] {
			return nil, 0, ErrIDCollision.
				WithData("class", class).
				WithData("id", id)
		}
		seen[id] = true
		ids = append(ids, id)
		if id >= next {
			next = id + 1
		}
	}
	return ids, next, nil
}

// placeCities 落位预置城市：城址转已用、地形转城区。
// 预留给引擎自动建城的 tile（NationSite）不允许再预置城市。
func (gr *Graph) placeCities() error {
	for i := range gr.Cities {
		c := &gr.Cities[i]
		tile := gr.Grid.ByID(c.TileID)
		if tile.NationSite != "" {
			return ErrSiteConflict.
				WithData("city", c.Def.Name).
				WithData("tile", c.TileID).
				WithData("nation_site", tile.NationSite)
		}
		if _, taken := gr.CityByTile[c.TileID]; taken {
			return ErrSiteConflict.
				WithData("city", c.Def.Name).
				WithData("tile", c.TileID).
				WithData("reason", "tile already holds a city")
		}
		gr.CityByTile[c.TileID] = i
		tile.CitySite = grid.SiteUsed
		tile.Terrain = "TERRAIN_URBAN"
	}
	return nil
}

func (gr *Graph) placeUnits() {
	for i := range gr.Units {
		gr.UnitsByTile[gr.Units[i].TileID] = append(gr.UnitsByTile[gr.Units[i].TileID], i)
	}
}

// paintTerritory 玩家城市按六边形距离半径涂抹领土，
// 可选 x/y 边框裁剪；额外领土清单不受边框限制。边界 tile 不涂。
func (gr *Graph) paintTerritory() {
	for id := range gr.Grid.Tiles {
		if gr.Grid.Tiles[id].Boundary {
			continue
		}
		c := grid.CoordOf(id, gr.Grid.Width)
		for _, city := range gr.Cities {
			if city.Def.Player < 0 {
				continue
			}
			if !cityCovers(&city.Def, c) {
				continue
			}
			gr.Territory[id] = city.ID
			break
		}
	}
}

func cityCovers(def *CityDef, c grid.Coord) bool {
	for _, xy := range def.ExtraTerritory {
		if xy.X == c.X && xy.Y == c.Y {
			return true
		}
	}
	radius := defaultRadius
	if def.Radius != nil {
		radius = *def.Radius
	}
	if grid.Distance(grid.Coord{X: def.X, Y: def.Y}, c) > radius {
		return false
	}
	if def.XMin != nil && c.X < *def.XMin {
		return false
	}
	if def.XMax != nil && c.X > *def.XMax {
		return false
	}
	if def.YMin != nil && c.Y < *def.YMin {
		return false
	}
	if def.YMax != nil && c.Y > *def.YMax {
		return false
	}
	return true
}

// markRevealed 带单位或玩家城市的非边界 tile 对归属方团队初始可见。
func (gr *Graph) markRevealed() {
	for id := range gr.Grid.Tiles {
		if gr.Grid.Tiles[id].Boundary {
			continue
		}
		if units, ok := gr.UnitsByTile[id]; ok && len(units) > 0 {
			gr.Revealed[id] = gr.Units[units[0]].Def.Player
			continue
		}
		if city := gr.CityAt(id); city != nil && city.Def.Player >= 0 {
			gr.Revealed[id] = city.Def.Player
		}
	}
}

// fillDiplomacy 先铺默认值（敌对名册→战争，其余→休战），再套覆盖项，
// 最后做全覆盖检查。
func (gr *Graph) fillDiplomacy() error {
	for _, tribe := range gr.TribeOrder {
		stance := StanceTruce
		if tribes.IsHostile(tribe) {
			stance = StanceWar
		}
		for p := range gr.Chapter.Players {
			gr.Diplomacy[DiploKey{Tribe: tribe, Player: p}] = stance
		}
	}
	for _, o := range gr.Chapter.Diplomacy {
		gr.Diplomacy[DiploKey{Tribe: o.Tribe, Player: o.Player}] = o.Stance
	}
	for _, tribe := range gr.TribeOrder {
		for p := range gr.Chapter.Players {
			if gr.Diplomacy[DiploKey{Tribe: tribe, Player: p}] == "" {
				return ErrDiplomacyIncomplete.
					WithData("tribe", tribe).
					WithData("player", p)
			}
		}
	}
	return nil
}
