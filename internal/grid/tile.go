package grid

// SiteState 城址状态。
type SiteState string

const (
	SiteNone     SiteState = ""       // 未声明
	SiteReserved SiteState = "ACTIVE" // 预留给引擎运行时建城
	SiteUsed     SiteState = "USED"   // 已被预置城市占用
)

// entity
type Tile struct {
	Terrain     string
	Height      string
	Vegetation  string
	Resource    string
	Road        bool
	RiverW      *int // 西边沿的河流旋转值，nil 表示无河
	RiverSW     *int
	RiverSE     *int
	CitySite    SiteState
	Improvement string
	TribeSite   string
	NationSite  string
	Label       string // ElementName 文案引用
	Boundary    bool
}

// HasRiver 任一可声明边沿上有河。
func (t *Tile) HasRiver() bool {
	return t.RiverW != nil || t.RiverSW != nil || t.RiverSE != nil
}

// Clone 深拷贝（河流旋转值是指针，需单独复制）。
func (t *Tile) Clone() Tile {
	out := *t
	out.RiverW = cloneRotation(t.RiverW)
	out.RiverSW = cloneRotation(t.RiverSW)
	out.RiverSE = cloneRotation(t.RiverSE)
	return out
}

func cloneRotation(v *int) *int {
	if v == nil {
		return nil
	}
	r := *v
	return &r
}

// Rotation 构造河流旋转值。
func Rotation(v int) *int {
	return &v
}
