package pipeline

import (
	"context"
	"os"

	"go.uber.org/zap"

	"GallicWars/internal/grid"
	"GallicWars/internal/pipeline/diag"
	"GallicWars/internal/savefile"
	"GallicWars/internal/shared/logs"
	"GallicWars/modules/kit/errx"
)

// ErrDroppedFields 提取时丢弃了来源地图独有字段（警告级别）。
var ErrDroppedFields = errx.NewBiz("EXTRACT_FIELDS_DROPPED", "来源地图字段未进入地形层")

// ExtractConfig 从来源地图提取地形子区域。区间闭合；YMin 必须为偶数。
type ExtractConfig struct {
	SourcePath string
	OutputPath string
	XMin, XMax int
	YMin, YMax int
}

// ExtractReport 提取结果。
type ExtractReport struct {
	OutputPath string
	Width      int
	Height     int
	Diags      *diag.List
}

// Extract 来源地图 → 子区域网格 → 地形文档。奇数行偏移立即失败；
// 来源独有的 TribeSite/NationSite 被清掉并记入诊断，不做静默丢弃。
func Extract(ctx context.Context, cfg ExtractConfig) (*ExtractReport, error) {
	report := &ExtractReport{OutputPath: cfg.OutputPath, Diags: &diag.List{}}
	if err := ctx.Err(); err != nil {
		return report, err
	}

	data, err := os.ReadFile(cfg.SourcePath)
	if err != nil {
		e := errx.ErrIOFailure.WithCause(err).WithData("path", cfg.SourcePath)
		report.Diags.Fatal(e)
		return report, e
	}
	src, err := savefile.ParseTerrain(data)
	if err != nil {
		report.Diags.Fatal(asCoded(err))
		return report, err
	}

	sub, err := grid.ExtractRegion(src, cfg.XMin, cfg.XMax, cfg.YMin, cfg.YMax)
	if err != nil {
		report.Diags.Fatal(asCoded(err))
		return report, err
	}
	report.Width, report.Height = sub.Width, sub.Height

	tribeSites, nationSites := 0, 0
	for id := range sub.Tiles {
		if sub.Tiles[id].TribeSite != "" {
			sub.Tiles[id].TribeSite = ""
			tribeSites++
		}
		if sub.Tiles[id].NationSite != "" {
			sub.Tiles[id].NationSite = ""
			nationSites++
		}
	}
	if tribeSites > 0 || nationSites > 0 {
		report.Diags.Warn(ErrDroppedFields.
			WithData("tribe_sites", tribeSites).
			WithData("nation_sites", nationSites))
	}

	if err := savefile.WriteAtomic(cfg.OutputPath, savefile.EncodeTerrain(sub)); err != nil {
		report.Diags.Fatal(asCoded(err))
		return report, err
	}
	logs.Info("terrain region extracted",
		zap.String("source", cfg.SourcePath),
		zap.String("output", cfg.OutputPath),
		zap.Int("width", sub.Width), zap.Int("height", sub.Height))
	return report, nil
}

func asCoded(err error) *errx.Error {
	if coded, ok := err.(*errx.Error); ok {
		return coded
	}
	return errx.ErrInternal.WithCause(err)
}
