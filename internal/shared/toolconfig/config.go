package toolconfig

import (
	"os"
	"path/filepath"

	"GallicWars/internal/shared/config"
)

const defaultConfigRelPath = "configs/conf.yml"

var Conf Config

// Load 加载工具配置。
// 约定：
// 1) 传入 cfgPath（相对/绝对路径）则优先使用；
// 2) 否则从当前目录开始向上查找 configs/conf.yml。
func Load(cfgPath string) {
	if cfgPath != "" {
		if !filepath.IsAbs(cfgPath) {
			curDir, err := os.Getwd()
			if err != nil {
				panic(err)
			}
			cfgPath = filepath.Join(curDir, cfgPath)
		}
		config.MustLoad(cfgPath, &Conf)
		return
	}

	curDir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	config.MustLoad(findConfigUpward(curDir), &Conf)
}

func findConfigUpward(startDir string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, defaultConfigRelPath)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("config file not exist, searched configs/conf.yml from: " + startDir)
		}
		dir = parent
	}
}
