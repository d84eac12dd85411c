package tribes

import (
	"path/filepath"
	"runtime"

	"GallicWars/internal/shared/config"
)

type cfg struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Hostile bool   `json:"hostile"`
}

type tribeConf struct {
	Title string `json:"title"`
	Cfg   []cfg  `json:"cfg"`
}

var TribeConf = tribeConf{}

func Load() {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("load tribe config failed: runtime.Caller(0) error")
	}
	configPath := filepath.Join(filepath.Dir(file), "tribes.json")
	config.MustLoad(configPath, &TribeConf)
	if len(TribeConf.Cfg) == 0 {
		panic("load tribe config failed: empty roster")
	}
}

// Roster 返回全部部族 ID，保持配置文件中的顺序。
func Roster() []string {
	out := make([]string, 0, len(TribeConf.Cfg))
	for _, c := range TribeConf.Cfg {
		out = append(out, c.ID)
	}
	return out
}

// IsHostile 返回部族是否属于天然敌对阵营（默认外交态度为战争）。
func IsHostile(id string) bool {
	for _, c := range TribeConf.Cfg {
		if c.ID == id {
			return c.Hostile
		}
	}
	return false
}
