package scenario

import (
	"fmt"
	"strconv"

	"GallicWars/internal/savefile"
	"GallicWars/internal/shared/gamedata/families"
)

// BuildDocument 把实体图渲染成引擎存档文档。块顺序固定：
// 开局选项块、Game、Player、Character、City、Tile（单位内嵌在所属
// tile 里）。所有 ID、计数器、外交矩阵都来自组装结果，这里不再校验。
func BuildDocument(gr *Graph) *savefile.Document {
	doc := &savefile.Document{
		Class:     savefile.ClassMap,
		RootAttrs: rootAttrs(gr),
	}

	doc.Blocks = append(doc.Blocks, settingBlocks(gr)...)
	doc.Blocks = append(doc.Blocks, gameBlock(gr))
	for p := range gr.Chapter.Players {
		doc.Blocks = append(doc.Blocks, playerBlock(gr, p))
	}
	for i := range gr.Characters {
		doc.Blocks = append(doc.Blocks, characterBlock(gr, &gr.Characters[i]))
	}
	for i := range gr.Cities {
		doc.Blocks = append(doc.Blocks, cityBlock(&gr.Cities[i]))
	}
	for id := range gr.Grid.Tiles {
		doc.Blocks = append(doc.Blocks, tileBlock(gr, id))
	}
	return doc
}

func rootAttrs(gr *Graph) []savefile.Attr {
	ch := gr.Chapter
	seed := strconv.FormatInt(ch.FirstSeed, 10)
	return []savefile.Attr{
		{Name: "MapWidth", Value: strconv.Itoa(gr.Grid.Width)},
		{Name: "MapEdgesSafe", Value: "True"},
		{Name: "MapPath", Value: ""},
		{Name: "GameId", Value: gr.GameID},
		{Name: "MapSize", Value: ch.MapSize},
		{Name: "Scenario", Value: ch.Scenario},
		{Name: "GameName", Value: ch.GameName},
		{Name: "FirstSeed", Value: seed},
		{Name: "MapSeed", Value: seed},
		{Name: "GameMode", Value: "SINGLE_PLAYER"},
		{Name: "TurnStyle", Value: "TURNSTYLE_STRICT"},
		{Name: "TurnTimer", Value: "TURNTIMER_NONE"},
		{Name: "OpponentLevel", Value: "OPPONENTLEVEL_AGGRESSIVE"},
		{Name: "TribeLevel", Value: "TRIBELEVEL_STRONG"},
		{Name: "Development", Value: "DEVELOPMENT_FLEDGLING"},
		{Name: "HumanDevelopment", Value: "DEVELOPMENT_FLEDGLING"},
		{Name: "Advantage", Value: "ADVANTAGE_NONE"},
		{Name: "SuccessionGender", Value: "SUCCESSIONGENDER_ABSOLUTE_COGNATIC"},
		{Name: "SuccessionOrder", Value: "SUCCESSIONORDER_PRIMOGENITURE"},
		{Name: "Mortality", Value: "MORTALITY_STANDARD"},
		{Name: "TurnScale", Value: "TURNSCALE_YEAR"},
		{Name: "TeamNation", Value: "TEAMNATION_GAME_UNIQUE"},
		{Name: "ForceMarch", Value: "FORCEMARCH_UNLIMITED"},
		{Name: "EventLevel", Value: "EVENTLEVEL_MODERATE"},
		{Name: "NumAutosaves", Value: "10"},
	}
}

// settingBlocks Game 块之前的开局选项块，每个玩家一条。
func settingBlocks(gr *Graph) []*savefile.Node {
	team := savefile.Elem("Team")
	difficulty := savefile.Elem("Difficulty")
	development := savefile.Elem("Development")
	nation := savefile.Elem("Nation")
	dynasty := savefile.Elem("Dynasty")
	archetype := savefile.Elem("Archetype")
	humans := savefile.Elem("Humans")
	for p, def := range gr.Chapter.Players {
		team.Append(savefile.TextElem("PlayerTeam", strconv.Itoa(p)))
		difficulty.Append(savefile.TextElem("PlayerDifficulty", "DIFFICULTY_GREAT"))
		development.Append(savefile.TextElem("PlayerDevelopment", "DEVELOPMENT_FLEDGLING"))
		nation.Append(savefile.TextElem("PlayerNation", def.Nation))
		dynasty.Append(savefile.TextElem("PlayerDynasty", def.Dynasty))
		archetype.Append(savefile.TextElem("LeaderArchetype", "TRAIT_PRESET_ARCHETYPE"))
		humans.Append(savefile.TextElem("PlayerHuman", strconv.Itoa(p)))
	}
	return []*savefile.Node{
		team, difficulty, development, nation, dynasty, archetype, humans,
		savefile.Elem("StartingPlayerOptions",
			savefile.TextElem("PLAYEROPTION_NO_TUTORIAL", "0"),
		),
		savefile.MarkElem("GameOptions"),
		savefile.MarkElem("OccurrenceLevels"),
		savefile.MarkElem("VictoryEnabled"),
		savefile.MarkElem("GameContent"),
		savefile.MarkElem("MapMultiOptions"),
		savefile.MarkElem("MapSingleOptions"),
	}
}

func yieldBlock(name string, amounts []YieldAmount) *savefile.Node {
	n := savefile.Elem(name)
	for _, y := range amounts {
		n.Append(savefile.TextElem(y.Yield, strconv.FormatInt(y.Amount, 10)))
	}
	return n
}

var basePrices = []YieldAmount{
	{Yield: "YIELD_ORDERS", Amount: 200000},
	{Yield: "YIELD_FOOD", Amount: 40000},
	{Yield: "YIELD_IRON", Amount: 40000},
	{Yield: "YIELD_STONE", Amount: 40000},
	{Yield: "YIELD_WOOD", Amount: 40000},
}

func gameBlock(gr *Graph) *savefile.Node {
	n := savefile.Elem("Game",
		savefile.TextElem("Seed", strconv.FormatInt(gr.Chapter.GameSeed, 10)),
		savefile.TextElem("NextUnitID", strconv.Itoa(gr.NextUnitID)),
		savefile.TextElem("NextCityID", strconv.Itoa(gr.NextCityID)),
		savefile.TextElem("NextCharacterID", strconv.Itoa(gr.NextCharacterID)),
		savefile.TextElem("NextOccurrenceID", "0"),
		savefile.TextElem("MapSize", gr.Chapter.MapSize),
		savefile.MarkElem("NoFogOfWar"),
		savefile.TextElem("Turn", "1"),
		savefile.TextElem("TurnTime", "0"),
		savefile.TextElem("TeamTurn", "0"),
		savefile.TextElem("PlayerTurn", "0"),
		yieldBlock("YieldPrice", basePrices),
		yieldBlock("YieldPriceTurn", basePrices),
		savefile.MarkElem("YieldPriceHistory"),
		savefile.MarkElem("ReligionFounded"),
		savefile.MarkElem("ReligionHeadID"),
		savefile.MarkElem("ReligionHolyCity"),
		savefile.MarkElem("ImprovementDisabled"),
		savefile.MarkElem("EventStoryMaxPriority"),
		savefile.MarkElem("ReligionFounder"),
		savefile.MarkElem("TeamAlliance"),
	)

	familyClass := savefile.Elem("FamilyClass")
	classes := families.Classes()
	for _, f := range families.Order() {
		familyClass.Append(savefile.TextElem(f, classes[f]))
	}
	n.Append(
		familyClass,
		savefile.MarkElem("TribeConflictTurn"),
		savefile.MarkElem("TribeDiplomacyTurn"),
		savefile.MarkElem("TribeDiplomacyBlock"),
		savefile.MarkElem("TribeWarScore"),
		savefile.MarkElem("TeamConflictTurn"),
		savefile.MarkElem("TeamDiplomacyTurn"),
		savefile.MarkElem("TeamDiplomacyBlock"),
		savefile.MarkElem("TeamWarScore"),
		savefile.MarkElem("ReligionTheology"),
		savefile.MarkElem("TribeContact"),
	)

	teamContact := savefile.Elem("TeamContact")
	for p := range gr.Chapter.Players {
		teamContact.Append(savefile.MarkElem(fmt.Sprintf("T.%d.%d", p, p)))
	}

	tribeDiplomacy := savefile.Elem("TribeDiplomacy")
	for _, tribe := range gr.TribeOrder {
		for p := range gr.Chapter.Players {
			stance := gr.Diplomacy[DiploKey{Tribe: tribe, Player: p}]
			tribeDiplomacy.Append(savefile.TextElem(fmt.Sprintf("%s.%d", tribe, p), stance))
		}
	}

	teamDiplomacy := savefile.Elem("TeamDiplomacy")
	for p := range gr.Chapter.Players {
		teamDiplomacy.Append(savefile.TextElem(fmt.Sprintf("T.%d.%d", p, p), StanceTeam))
	}

	n.Append(teamContact, tribeDiplomacy, teamDiplomacy)
	return n
}

func playerBlock(gr *Graph, p int) *savefile.Node {
	def := gr.Chapter.Players[p]
	n := savefile.Elem("Player").
		WithAttr("ID", strconv.Itoa(p)).
		WithAttr("Name", "").
		WithAttr("Email", "").
		WithAttr("OnlineID", "").
		WithAttr("CustomReminder", "").
		WithAttr("Language", "LANGUAGE_ENGLISH").
		WithAttr("Nation", def.Nation).
		WithAttr("Dynasty", def.Dynasty).
		WithAttr("AIControlledToTurn", "0")

	n.Append(
		savefile.TextElem("OriginalCapitalCityID", strconv.Itoa(capitalCityID(gr, p))),
		savefile.TextElem("FounderID", strconv.Itoa(leaderCharacterID(gr, p))),
		savefile.TextElem("ChosenHeirID", "-1"),
		savefile.TextElem("LastDoTurn", "0"),
		savefile.TextElem("TimeStockpile", "0"),
		savefile.TextElem("Legitimacy", strconv.Itoa(def.Legitimacy)),
		savefile.TextElem("RecruitLegitimacy", "0"),
		savefile.TextElem("AmbitionDelay", "1"),
		savefile.TextElem("BuyTileCount", "0"),
		savefile.TextElem("StateReligionChangeCount", "0"),
		savefile.TextElem("TribeMercenaryCount", "0"),
		savefile.TextElem("StartTurnCities", "0"),
		savefile.MarkElem("Founded"),
		savefile.TextElem("SuccessionGender", "SUCCESSIONGENDER_ABSOLUTE_COGNATIC"),
	)

	startTiles := savefile.Elem("StartingTileIDs")
	for _, xy := range def.StartTiles {
		id := xy.Y*gr.Grid.Width + xy.X
		startTiles.Append(savefile.TextElem("Tile", strconv.Itoa(id)))
	}
	n.Append(startTiles, yieldBlock("YieldStockpile", def.Stockpile), savefile.MarkElem("TechProgress"))

	techCount := savefile.Elem("TechCount")
	for _, tech := range def.Techs {
		techCount.Append(savefile.TextElem(tech, "1"))
	}
	n.Append(
		techCount,
		savefile.MarkElem("LawClassChangeCount"),
		savefile.MarkElem("TheologyEstablishedCount"),
		savefile.MarkElem("ResourceRevealed"),
		savefile.MarkElem("GoalStartedCount"),
		savefile.MarkElem("BonusCount"),
		savefile.MarkElem("AmbitionDecisions"),
		savefile.MarkElem("GoalsFailed"),
		savefile.MarkElem("AllEventStoryTurn"),
		savefile.MarkElem("EventClassTurn"),
		savefile.MarkElem("UnitsProduced"),
		savefile.MarkElem("UnitsProducedTurn"),
		savefile.MarkElem("CouncilCharacter"),
	)

	familySeat := savefile.Elem("FamilySeatCityID")
	for _, f := range def.Families {
		if id, ok := familySeatCityID(gr, p, f); ok {
			familySeat.Append(savefile.TextElem(f, strconv.Itoa(id)))
		}
	}
	n.Append(
		familySeat,
		savefile.MarkElem("FamilyHeadID"),
		savefile.MarkElem("TechAvailable"),
		savefile.MarkElem("TechPassed"),
		savefile.MarkElem("TechTrashed"),
		savefile.MarkElem("TechTarget"),
		savefile.Elem("ActiveLaw",
			savefile.TextElem("LAWCLASS_ORDER", "LAW_PRIMOGENITURE"),
			savefile.TextElem("LAWCLASS_EPICS_EXPLORATION", "LAW_EXPLORATION"),
			savefile.TextElem("LAWCLASS_SLAVERY_FREEDOM", "LAW_SLAVERY"),
			savefile.TextElem("LAWCLASS_CENTRALIZATION_VASSALAGE", "LAW_CENTRALIZATION"),
			savefile.TextElem("LAWCLASS_TYRANNY_CONSTITUTION", "LAW_TYRANNY"),
		),
		savefile.MarkElem("FamilyReligion"),
		savefile.MarkElem("FamilyLawOpinion"),
		savefile.MarkElem("FamilyLuxuryTurn"),
		savefile.MarkElem("FamilyEventStoryTurn"),
		savefile.MarkElem("ReligionEventStoryTurn"),
		savefile.MarkElem("TribeLuxuryTurn"),
		savefile.MarkElem("TribeEventStoryTurn"),
		savefile.MarkElem("PlayerLuxuryTurn"),
		savefile.MarkElem("PlayerEventStoryTurn"),
		savefile.MarkElem("FamilyEventStoryOption"),
		savefile.MarkElem("ReligionEventStoryOption"),
		savefile.MarkElem("TribeEventStoryOption"),
		savefile.MarkElem("PlayerEventStoryOption"),
	)

	leaders := savefile.Elem("Leaders")
	for i := range gr.Characters {
		if gr.Characters[i].Def.Player == p && gr.Characters[i].Def.Leader {
			leaders.Append(savefile.TextElem("ID", strconv.Itoa(gr.Characters[i].ID)))
		}
	}
	familyList := savefile.Elem("Families")
	for _, f := range def.Families {
		familyList.Append(savefile.MarkElem(f))
	}
	n.Append(
		leaders,
		familyList,
		savefile.MarkElem("IgnoreCouncilReminder"),
		savefile.Elem("PlayerOptions", savefile.MarkElem("PLAYEROPTION_NO_TUTORIAL")),
		savefile.MarkElem("MemoryPlayerList"),
		savefile.MarkElem("MemoryFamilyList"),
		savefile.MarkElem("MilitaryPowerHistory"),
		savefile.MarkElem("PointsHistory"),
		savefile.MarkElem("YieldRateHistory"),
		savefile.MarkElem("FamilyOpinionHistory"),
		savefile.MarkElem("AI"),
	)
	return n
}

func capitalCityID(gr *Graph, player int) int {
	for i := range gr.Cities {
		if gr.Cities[i].Def.Player == player && gr.Cities[i].Def.Capital {
			return gr.Cities[i].ID
		}
	}
	return 0
}

func leaderCharacterID(gr *Graph, player int) int {
	for i := range gr.Characters {
		if gr.Characters[i].Def.Player == player && gr.Characters[i].Def.Leader {
			return gr.Characters[i].ID
		}
	}
	return 0
}

func familySeatCityID(gr *Graph, player int, family string) (int, bool) {
	for i := range gr.Cities {
		if gr.Cities[i].Def.Player == player && gr.Cities[i].Def.Family == family {
			return gr.Cities[i].ID, true
		}
	}
	return 0, false
}

func characterBlock(gr *Graph, c *Character) *savefile.Node {
	def := c.Def
	n := savefile.Elem("Character").
		WithAttr("ID", strconv.Itoa(c.ID)).
		WithAttr("BirthTurn", strconv.Itoa(def.BirthTurn)).
		WithAttr("Player", strconv.Itoa(def.Player)).
		WithAttr("Character", def.Character).
		WithAttr("Gender", def.Gender).
		WithAttr("FirstName", def.FirstName).
		WithAttr("Seed", strconv.FormatInt(c.Seed, 10))

	n.Append(
		savefile.TextElem("Portrait", def.Portrait),
		savefile.TextElem("NameType", def.FirstName),
		savefile.TextElem("Level", "1"),
	)
	if def.Leader {
		n.Append(savefile.TextElem("LeaderTurn", "1"))
	}
	if def.SpouseID != nil {
		n.Append(savefile.TextElem("SpouseID", strconv.Itoa(*def.SpouseID)))
	}
	if def.Royal {
		n.Append(savefile.MarkElem("Royal"))
	}
	n.Append(savefile.TextElem("Nation", gr.Chapter.Players[def.Player].Nation))
	if def.Family != "" {
		n.Append(savefile.TextElem("Family", def.Family))
	}
	if def.Cognomen != "" {
		n.Append(savefile.TextElem("Cognomen", def.Cognomen))
	}

	rating := savefile.Elem("Rating")
	for _, r := range def.Ratings {
		rating.Append(savefile.TextElem(r.Rating, strconv.Itoa(r.Value)))
	}
	trait := savefile.Elem("Trait")
	for _, tr := range def.Traits {
		trait.Append(savefile.MarkElem(tr))
	}
	n.Append(rating, savefile.MarkElem("Stat"), trait)
	if def.Leader {
		n.Append(savefile.Elem("CognomenHistory", savefile.TextElem("T1", "1")))
	}
	return n
}

func cityBlock(c *City) *savefile.Node {
	def := c.Def
	family := def.Family
	if family == "" {
		family = "NONE"
	}
	n := savefile.Elem("City").
		WithAttr("ID", strconv.Itoa(c.ID)).
		WithAttr("TileID", strconv.Itoa(c.TileID)).
		WithAttr("Player", strconv.Itoa(def.Player)).
		WithAttr("Family", family).
		WithAttr("Founded", "1")

	n.Append(
		savefile.TextElem("Name", def.Name),
		savefile.TextElem("Citizens", strconv.Itoa(def.Citizens)),
	)
	if def.Capital {
		n.Append(savefile.MarkElem("Capital"))
	}
	firstPlayer := def.Player
	if firstPlayer < 0 {
		firstPlayer = 0
	}
	n.Append(
		savefile.TextElem("FirstPlayer", strconv.Itoa(firstPlayer)),
		savefile.TextElem("LastPlayer", strconv.Itoa(firstPlayer)),
	)
	if def.Player < 0 {
		n.Append(savefile.TextElem("Tribe", def.Tribe))
	}
	n.Append(
		savefile.MarkElem("YieldProgress"),
		savefile.MarkElem("YieldOverflow"),
		savefile.MarkElem("ProjectCount"),
		savefile.MarkElem("LuxuryTurn"),
		savefile.MarkElem("AgentCharacterID"),
		savefile.MarkElem("TeamCultureStep"),
	)
	if def.Player >= 0 {
		n.Append(
			savefile.MarkElem("TeamDiscontentLevel"),
			savefile.MarkElem("TeamDiscontentLevelHighest"),
		)
	}
	n.Append(savefile.MarkElem("Religion"))

	playerFamily := savefile.Elem("PlayerFamily")
	if def.Player >= 0 {
		playerFamily.Append(savefile.TextElem(fmt.Sprintf("P.%d", def.Player), def.Family))
	}
	n.Append(
		playerFamily,
		savefile.Elem("TeamCulture",
			savefile.TextElem(fmt.Sprintf("T.%d", firstPlayer), def.Culture),
		),
	)

	if len(def.BuildQueue) > 0 {
		queue := savefile.Elem("BuildQueue")
		for _, item := range def.BuildQueue {
			queue.Append(savefile.Elem("QueueInfo",
				savefile.TextElem("Build", item.Build),
				savefile.TextElem("Type", item.Type),
				savefile.TextElem("Data", "-1"),
				savefile.TextElem("Progress", "0"),
				savefile.MarkElem("YieldCost"),
			))
		}
		n.Append(queue)
	}
	return n
}

func unitNode(gr *Graph, u *Unit) *savefile.Node {
	n := savefile.Elem("Unit").
		WithAttr("ID", strconv.Itoa(u.ID)).
		WithAttr("Type", u.Def.Type).
		WithAttr("Player", strconv.Itoa(u.Def.Player)).
		WithAttr("Tribe", "NONE").
		WithAttr("Seed", strconv.FormatInt(u.Seed, 10))

	playerFamily := savefile.Elem("PlayerFamily")
	if fams := gr.Chapter.Players[u.Def.Player].Families; len(fams) > 0 {
		playerFamily.Append(savefile.TextElem(fmt.Sprintf("P.%d", u.Def.Player), fams[0]))
	}
	n.Append(
		savefile.TextElem("CreateTurn", "1"),
		savefile.TextElem("Facing", "NE"),
		savefile.TextElem("OriginalPlayer", strconv.Itoa(u.Def.Player)),
		savefile.MarkElem("RaidTurn"),
		playerFamily,
		savefile.MarkElem("QueueList"),
		savefile.MarkElem("AI"),
	)
	return n
}

func tileBlock(gr *Graph, id int) *savefile.Node {
	tile := &gr.Grid.Tiles[id]
	n := savefile.Elem("Tile").WithAttr("ID", strconv.Itoa(id))

	if tile.Boundary {
		n.Append(savefile.MarkElem("Boundary"))
	}
	n.Append(savefile.TileFieldNodes(tile)...)

	team, revealed := gr.Revealed[id]
	territoryID, hasTerritory := gr.Territory[id]
	city := gr.CityAt(id)

	if revealed {
		if hasTerritory {
			n.Append(savefile.Elem("RevealedCityTerritory",
				savefile.TextElem("Team", strconv.Itoa(team)).
					WithAttr("CityTerritory", strconv.Itoa(territoryID)),
			))
		}
		n.Append(savefile.Elem("Revealed", savefile.TextElem("Team", strconv.Itoa(team))))
		if city != nil && city.Def.Player >= 0 {
			n.Append(savefile.Elem("RevealedCity", savefile.TextElem("Team", strconv.Itoa(team))))
		}
	}
	if hasTerritory {
		n.Append(savefile.TextElem("CityTerritory", strconv.Itoa(territoryID)))
	}
	if city != nil && city.Def.Player >= 0 {
		n.Append(savefile.TextElem("OrigUrbanOwner", strconv.Itoa(city.Def.Player)))
	}
	for _, ui := range gr.UnitsByTile[id] {
		n.Append(unitNode(gr, &gr.Units[ui]))
	}
	n.Append(savefile.MarkElem("Religion"))
	if revealed && tile.Terrain != "" {
		n.Append(savefile.Elem("RevealedTerrain",
			savefile.TextElem("Team", strconv.Itoa(team)).
				WithAttr("Terrain", tile.Terrain),
		))
	}
	n.Append(savefile.MarkElem("RevealedTurn"))
	return n
}
