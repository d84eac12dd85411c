package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"GallicWars/internal/pipeline"
	"GallicWars/internal/shared/logs"
	"GallicWars/internal/shared/toolconfig"
)

func main() {
	var (
		cfgPath     string
		terrainPath string
		axis        string
		after       int
		count       int
	)
	flag.StringVar(&cfgPath, "conf", "", "配置文件路径，留空则向上查找 configs/conf.yml")
	flag.StringVar(&terrainPath, "terrain", "", "地形文件，留空取配置 data.terrain_file")
	flag.StringVar(&axis, "axis", "rows", "插入方向：rows 或 columns")
	flag.IntVar(&after, "after", -1, "在第几行/列之后插入，-1 表示最前")
	flag.IntVar(&count, "count", 2, "插入数量，插行必须为偶数")
	flag.Parse()

	toolconfig.Load(cfgPath)
	if err := logs.Init("reshape", toolconfig.Conf.Log); err != nil {
		panic(err)
	}

	if terrainPath == "" {
		terrainPath = toolconfig.Conf.Data.TerrainFile
	}
	if axis != string(pipeline.AxisRows) && axis != string(pipeline.AxisColumns) {
		fmt.Fprintln(os.Stderr, "ERROR: -axis must be rows or columns")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := pipeline.Reshape(ctx, pipeline.ReshapeConfig{
		TerrainPath: terrainPath,
		Axis:        pipeline.Axis(axis),
		After:       after,
		Count:       count,
	})
	if err != nil {
		logs.Error("reshape failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
	fmt.Printf("reshaped %s to %dx%d\n", terrainPath, report.Width, report.Height)
	// 坐标位移提醒：章节配置里按坐标引用的 tile 需要手工跟进。
	for _, s := range report.Shifted {
		fmt.Printf("REMINDER: %s moved (%d,%d) -> (%d,%d)\n",
			s.Label, s.From.X, s.From.Y, s.To.X, s.To.Y)
	}
}
