package scenario

import "GallicWars/modules/kit/errx"

var (
	// ErrSiteConflict 同一 tile 既预留给引擎建城又被预置城市占用。
	ErrSiteConflict = errx.NewBiz("SCENARIO_SITE_CONFLICT", "城址声明冲突")
	// ErrIDCollision 同类实体分配到重复 ID。
	ErrIDCollision = errx.NewBiz("SCENARIO_ID_COLLISION", "实体 ID 重复")
	// ErrDiplomacyIncomplete 外交矩阵补全后仍有空洞。
	ErrDiplomacyIncomplete = errx.NewBiz("SCENARIO_DIPLOMACY_INCOMPLETE", "外交矩阵不完整")
	// ErrDanglingRef 实体引用了不存在的 tile、玩家、家族或部族。
	ErrDanglingRef = errx.NewBiz("SCENARIO_DANGLING_REF", "实体引用悬空")
)
