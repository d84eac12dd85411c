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
		cfgPath    string
		sourcePath string
		outputPath string
		xMin, xMax int
		yMin, yMax int
	)
	flag.StringVar(&cfgPath, "conf", "", "配置文件路径，留空则向上查找 configs/conf.yml")
	flag.StringVar(&sourcePath, "src", "", "来源地图文件")
	flag.StringVar(&outputPath, "out", "", "输出地形文件，留空取配置 data.terrain_file")
	flag.IntVar(&xMin, "xmin", 0, "提取区间左界（含）")
	flag.IntVar(&xMax, "xmax", 0, "提取区间右界（含）")
	flag.IntVar(&yMin, "ymin", 0, "提取区间上界（含，必须为偶数）")
	flag.IntVar(&yMax, "ymax", 0, "提取区间下界（含）")
	flag.Parse()

	toolconfig.Load(cfgPath)
	if err := logs.Init("extract", toolconfig.Conf.Log); err != nil {
		panic(err)
	}

	if outputPath == "" {
		outputPath = toolconfig.Conf.Data.TerrainFile
	}
	if sourcePath == "" {
		fmt.Fprintln(os.Stderr, "ERROR: -src is required")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := pipeline.Extract(ctx, pipeline.ExtractConfig{
		SourcePath: sourcePath,
		OutputPath: outputPath,
		XMin:       xMin, XMax: xMax,
		YMin: yMin, YMax: yMax,
	})
	for _, w := range report.Diags.Warnings() {
		fmt.Fprintln(os.Stderr, "WARNING:", w.Error())
	}
	if err != nil {
		logs.Error("extract failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%dx%d)\n", report.OutputPath, report.Width, report.Height)
}
