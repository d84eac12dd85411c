package grid

// Direction 六方向。Y 轴向下为南，odd-row-right 偏移布局。
type Direction uint8

const (
	East Direction = iota
	NorthEast
	NorthWest
	West
	SouthWest
	SouthEast
)

func (d Direction) String() string {
	switch d {
	case East:
		return "E"
	case NorthEast:
		return "NE"
	case NorthWest:
		return "NW"
	case West:
		return "W"
	case SouthWest:
		return "SW"
	case SouthEast:
		return "SE"
	}
	return "?"
}

// Directions 按固定顺序枚举全部方向。
var Directions = [6]Direction{East, NorthEast, NorthWest, West, SouthWest, SouthEast}
