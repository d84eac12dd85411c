package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"GallicWars/internal/preview"
	"GallicWars/internal/shared/logs"
	"GallicWars/internal/shared/toolconfig"
)

func main() {
	var (
		cfgPath     string
		terrainPath string
	)
	flag.StringVar(&cfgPath, "conf", "", "配置文件路径，留空则向上查找 configs/conf.yml")
	flag.StringVar(&terrainPath, "terrain", "", "地形文件，留空取配置 data.terrain_file")
	flag.Parse()

	toolconfig.Load(cfgPath)
	if err := logs.Init("preview", toolconfig.Conf.Log); err != nil {
		panic(err)
	}
	if !toolconfig.Conf.Log.Dev {
		gin.SetMode(gin.ReleaseMode)
	}

	if terrainPath == "" {
		terrainPath = toolconfig.Conf.Data.TerrainFile
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := preview.NewServer(toolconfig.Conf.Preview, terrainPath)
	if err := server.Run(ctx); err != nil {
		logs.Fatal("preview server exited", zap.Error(err))
	}
	logs.Info("preview server stopped")
}
