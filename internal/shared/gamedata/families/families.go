package families

import (
	"path/filepath"
	"runtime"

	"GallicWars/internal/shared/config"
)

type cfg struct {
	ID    string `json:"id"`
	Class string `json:"class"`
}

type familyConf struct {
	Title string `json:"title"`
	Cfg   []cfg  `json:"cfg"`
}

var FamilyConf = familyConf{}

func Load() {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("load family config failed: runtime.Caller(0) error")
	}
	configPath := filepath.Join(filepath.Dir(file), "families.json")
	config.MustLoad(configPath, &FamilyConf)
	if len(FamilyConf.Cfg) == 0 {
		panic("load family config failed: empty list")
	}
}

// Classes 返回 family -> class 映射，保持配置顺序由调用方自行处理。
func Classes() map[string]string {
	out := make(map[string]string, len(FamilyConf.Cfg))
	for _, c := range FamilyConf.Cfg {
		out[c.ID] = c.Class
	}
	return out
}

// Order 返回配置文件中的 family 顺序，用于确定性输出。
func Order() []string {
	out := make([]string, 0, len(FamilyConf.Cfg))
	for _, c := range FamilyConf.Cfg {
		out = append(out, c.ID)
	}
	return out
}

// Known 判断 family 是否在名册内。
func Known(id string) bool {
	for _, c := range FamilyConf.Cfg {
		if c.ID == id {
			return true
		}
	}
	return false
}
