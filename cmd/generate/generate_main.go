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
	"GallicWars/internal/shared/gamedata/families"
	"GallicWars/internal/shared/gamedata/tribes"
	"GallicWars/internal/shared/logs"
	"GallicWars/internal/shared/toolconfig"
	"GallicWars/modules/kit/tracex"
)

func main() {
	var (
		cfgPath     string
		terrainPath string
		chapterPath string
		outputPath  string
		workers     int
	)
	flag.StringVar(&cfgPath, "conf", "", "配置文件路径，留空则向上查找 configs/conf.yml")
	flag.StringVar(&terrainPath, "terrain", "", "地形文件，留空取配置 data.terrain_file")
	flag.StringVar(&chapterPath, "chapter", "", "章节配置文件，留空取配置 data.scenario_file")
	flag.StringVar(&outputPath, "out", "", "输出文件，留空取配置 data.output_file")
	flag.IntVar(&workers, "workers", 0, "tile 检查并行度，0 取 CPU 数")
	flag.Parse()

	toolconfig.Load(cfgPath)
	if err := logs.Init("generate", toolconfig.Conf.Log); err != nil {
		panic(err)
	}
	tribes.Load()
	families.Load()

	if terrainPath == "" {
		terrainPath = toolconfig.Conf.Data.TerrainFile
	}
	if chapterPath == "" {
		chapterPath = toolconfig.Conf.Data.ScenarioFile
	}
	if outputPath == "" {
		outputPath = toolconfig.Conf.Data.OutputFile
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = tracex.WithRunID(ctx, tracex.NewRunID())

	report, err := pipeline.Generate(ctx, pipeline.GenerateConfig{
		TerrainPath: terrainPath,
		ChapterPath: chapterPath,
		OutputPath:  outputPath,
		Workers:     workers,
	})
	for _, w := range report.Diags.Warnings() {
		fmt.Fprintln(os.Stderr, "WARNING:", w.Error())
	}
	if err != nil {
		logs.Error("generate failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%d tiles, %d river chains, %d warnings)\n",
		report.OutputPath, report.Tiles, report.Chains, len(report.Diags.Warnings()))
}
