package scenario

import (
	"GallicWars/internal/shared/config"
)

// XY 章节配置里的 tile 坐标。
type XY struct {
	X int `mapstructure:"x" yaml:"x"`
	Y int `mapstructure:"y" yaml:"y"`
}

// YieldAmount 有序的产出配额项。用列表而不用 map，保证输出顺序稳定。
type YieldAmount struct {
	Yield  string `mapstructure:"yield" yaml:"yield"`
	Amount int64  `mapstructure:"amount" yaml:"amount"`
}

// RatingValue 人物四维属性项，同样保持声明顺序。
type RatingValue struct {
	Rating string `mapstructure:"rating" yaml:"rating"`
	Value  int    `mapstructure:"value" yaml:"value"`
}

// PlayerDef 章节玩家。
type PlayerDef struct {
	Nation     string        `mapstructure:"nation" yaml:"nation"`
	Dynasty    string        `mapstructure:"dynasty" yaml:"dynasty"`
	Families   []string      `mapstructure:"families" yaml:"families"`
	StartTiles []XY          `mapstructure:"start_tiles" yaml:"start_tiles"`
	Legitimacy int           `mapstructure:"legitimacy" yaml:"legitimacy"`
	Stockpile  []YieldAmount `mapstructure:"stockpile" yaml:"stockpile"`
	Techs      []string      `mapstructure:"techs" yaml:"techs"`
}

// CharacterDef 预置人物。ID 缺省时按声明顺序从基准值连续分配。
type CharacterDef struct {
	ID        *int     `mapstructure:"id" yaml:"id"`
	Player    int      `mapstructure:"player" yaml:"player"`
	Character string   `mapstructure:"character" yaml:"character"`
	Gender    string   `mapstructure:"gender" yaml:"gender"`
	FirstName string   `mapstructure:"first_name" yaml:"first_name"`
	BirthTurn int      `mapstructure:"birth_turn" yaml:"birth_turn"`
	Portrait  string   `mapstructure:"portrait" yaml:"portrait"`
	Family    string   `mapstructure:"family" yaml:"family"`
	Cognomen  string   `mapstructure:"cognomen" yaml:"cognomen"`
	Leader    bool     `mapstructure:"leader" yaml:"leader"`
	Royal     bool     `mapstructure:"royal" yaml:"royal"`
	SpouseID  *int     `mapstructure:"spouse_id" yaml:"spouse_id"`
	Ratings   []RatingValue `mapstructure:"ratings" yaml:"ratings"`
	Traits    []string      `mapstructure:"traits" yaml:"traits"`
}

// BuildItem 城市建造队列项。
type BuildItem struct {
	Build string `mapstructure:"build" yaml:"build"`
	Type  string `mapstructure:"type" yaml:"type"`
}

// CityDef 预置城市。Player 为 -1 表示部族城市，此时 Tribe 必填。
type CityDef struct {
	ID             *int        `mapstructure:"id" yaml:"id"`
	Name           string      `mapstructure:"name" yaml:"name"`
	X              int         `mapstructure:"x" yaml:"x"`
	Y              int         `mapstructure:"y" yaml:"y"`
	Player         int         `mapstructure:"player" yaml:"player"`
	Family         string      `mapstructure:"family" yaml:"family"`
	Tribe          string      `mapstructure:"tribe" yaml:"tribe"`
	Capital        bool        `mapstructure:"capital" yaml:"capital"`
	Citizens       int         `mapstructure:"citizens" yaml:"citizens"`
	Culture        string      `mapstructure:"culture" yaml:"culture"`
	BuildQueue     []BuildItem `mapstructure:"build_queue" yaml:"build_queue"`
	ExtraTerritory []XY        `mapstructure:"extra_territory" yaml:"extra_territory"`
	Radius         *int        `mapstructure:"radius" yaml:"radius"`
	XMin           *int        `mapstructure:"x_min" yaml:"x_min"`
	XMax           *int        `mapstructure:"x_max" yaml:"x_max"`
	YMin           *int        `mapstructure:"y_min" yaml:"y_min"`
	YMax           *int        `mapstructure:"y_max" yaml:"y_max"`
}

// UnitDef 预置单位。
type UnitDef struct {
	ID     *int   `mapstructure:"id" yaml:"id"`
	X      int    `mapstructure:"x" yaml:"x"`
	Y      int    `mapstructure:"y" yaml:"y"`
	Type   string `mapstructure:"type" yaml:"type"`
	Player int    `mapstructure:"player" yaml:"player"`
}

// StanceOverride 覆盖某个 (部族, 玩家) 对的默认外交态度。
type StanceOverride struct {
	Tribe  string `mapstructure:"tribe" yaml:"tribe"`
	Player int    `mapstructure:"player" yaml:"player"`
	Stance string `mapstructure:"stance" yaml:"stance"`
}

// IDBase 各类实体的 ID 分配基准。
type IDBase struct {
	Unit      int `mapstructure:"unit" yaml:"unit"`
	City      int `mapstructure:"city" yaml:"city"`
	Character int `mapstructure:"character" yaml:"character"`
}

// Chapter 一章剧本的完整配置。
type Chapter struct {
	Scenario      string `mapstructure:"scenario" yaml:"scenario"`
	GameName      string `mapstructure:"game_name" yaml:"game_name"`
	MapSize       string `mapstructure:"map_size" yaml:"map_size"`
	FirstSeed     int64  `mapstructure:"first_seed" yaml:"first_seed"`
	GameSeed      int64  `mapstructure:"game_seed" yaml:"game_seed"`
	CharacterSeed int64  `mapstructure:"character_seed" yaml:"character_seed"`
	UnitSeed      int64  `mapstructure:"unit_seed" yaml:"unit_seed"`
	BoundaryWidth int    `mapstructure:"boundary_width" yaml:"boundary_width"`

	IDBase     IDBase           `mapstructure:"id_base" yaml:"id_base"`
	Players    []PlayerDef      `mapstructure:"players" yaml:"players"`
	Characters []CharacterDef   `mapstructure:"characters" yaml:"characters"`
	Cities     []CityDef        `mapstructure:"cities" yaml:"cities"`
	Units      []UnitDef        `mapstructure:"units" yaml:"units"`
	Diplomacy  []StanceOverride `mapstructure:"diplomacy" yaml:"diplomacy"`
}

const (
	defaultMapSize       = "MAPSIZE_SMALL"
	defaultCulture       = "CULTURE_WEAK"
	defaultRadius        = 2
	defaultBoundaryWidth = 2

	// 默认外交态度
	StanceTruce = "DIPLOMACY_TRUCE"
	StanceWar   = "DIPLOMACY_WAR"
	StanceTeam  = "DIPLOMACY_TEAM"
)

// LoadChapter 从 YAML 读入章节配置并补默认值。
func LoadChapter(path string) (*Chapter, error) {
	ch := &Chapter{}
	if err := config.Load(path, ch); err != nil {
		return nil, err
	}
	ch.applyDefaults()
	return ch, nil
}

func (ch *Chapter) applyDefaults() {
	if ch.MapSize == "" {
		ch.MapSize = defaultMapSize
	}
	if ch.BoundaryWidth == 0 {
		ch.BoundaryWidth = defaultBoundaryWidth
	}
	for i := range ch.Cities {
		if ch.Cities[i].Culture == "" {
			ch.Cities[i].Culture = defaultCulture
		}
	}
}
