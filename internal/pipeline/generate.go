// Package pipeline 串起地形读入、河网校验、剧本组装与落盘的批处理流程。
package pipeline

import (
	"context"
	"os"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"GallicWars/internal/grid"
	"GallicWars/internal/pipeline/diag"
	"GallicWars/internal/river"
	"GallicWars/internal/savefile"
	"GallicWars/internal/scenario"
	"GallicWars/internal/shared/logs"
	"GallicWars/modules/kit/errx"
	"GallicWars/modules/kit/logx"
	"GallicWars/modules/kit/tracex"
)

// GenerateConfig 一次生成运行的输入输出位置。
type GenerateConfig struct {
	TerrainPath string
	ChapterPath string
	OutputPath  string
	Workers     int // 每 tile 检查的并行度，0 取 CPU 数
}

// GenerateReport 生成结果与诊断集合。
type GenerateReport struct {
	OutputPath string
	Tiles      int
	Chains     int
	Diags      *diag.List
}

// Generate 地形 → 网格 → 并行 tile 检查 → 河网校验 → 剧本组装 →
// 编码落盘。警告不阻断；任一致命诊断中止且不写输出文件。
func Generate(ctx context.Context, cfg GenerateConfig) (*GenerateReport, error) {
	report := &GenerateReport{OutputPath: cfg.OutputPath, Diags: &diag.List{}}
	if _, ok := tracex.RunIDFrom(ctx); !ok {
		ctx = tracex.WithRunID(ctx, tracex.NewRunID())
	}
	log := logx.NewZapLogger(logs.Logger())

	data, err := os.ReadFile(cfg.TerrainPath)
	if err != nil {
		e := errx.ErrIOFailure.WithCause(err).WithData("path", cfg.TerrainPath)
		report.Diags.Fatal(e)
		return report, e
	}
	g, err := savefile.ParseTerrain(data)
	if err != nil {
		return report, fatal(report, err)
	}
	report.Tiles = len(g.Tiles)
	log.WithContext(tracex.WithOp(ctx, "load")).Info("terrain loaded",
		zap.String("path", cfg.TerrainPath),
		zap.Int("width", g.Width), zap.Int("height", g.Height))

	if err := checkTiles(ctx, g, cfg.Workers); err != nil {
		return report, fatal(report, err)
	}

	network := river.ValidateNetwork(g)
	report.Chains = len(network.Chains)
	validateLog := log.WithContext(tracex.WithOp(ctx, "validate"))
	for _, w := range network.Warnings {
		report.Diags.Warn(w)
		validateLog.Warn("river segment suspicious", zap.String("detail", w.Error()))
	}

	ch, err := scenario.LoadChapter(cfg.ChapterPath)
	if err != nil {
		return report, fatal(report, err)
	}
	graph, err := scenario.Assemble(g, ch)
	if err != nil {
		return report, fatal(report, err)
	}

	doc := scenario.BuildDocument(graph)
	if err := savefile.WriteAtomic(cfg.OutputPath, savefile.Encode(doc)); err != nil {
		return report, fatal(report, err)
	}
	log.WithContext(tracex.WithOp(ctx, "encode")).Info("scenario document written",
		zap.String("path", cfg.OutputPath),
		zap.String("game_id", graph.GameID),
		zap.Int("tiles", report.Tiles),
		zap.Int("chains", report.Chains),
		zap.Int("warnings", len(report.Diags.Warnings())))
	return report, nil
}

// checkTiles 按行分片在 errgroup 上并行跑无状态 tile 检查。
func checkTiles(ctx context.Context, g *grid.Grid, workers int) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for y := 0; y < g.Height; y++ {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for x := 0; x < g.Width; x++ {
				if err := river.CheckTile(g, grid.Coord{X: x, Y: y}); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return eg.Wait()
}

// fatal 出口处统一打结构化错误日志，再把致命诊断记入报告。
func fatal(report *GenerateReport, err error) error {
	meta := logx.BuildErrorLog(err)
	logs.Error("generate aborted",
		zap.String("code", meta.Code),
		zap.String("origin", meta.Origin),
		zap.Error(err))
	report.Diags.Fatal(asCoded(err))
	return err
}
