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

// Axis 插入方向。
type Axis string

const (
	AxisRows    Axis = "rows"
	AxisColumns Axis = "columns"
)

// ErrBadInsertPoint 插入点超出网格范围。
var ErrBadInsertPoint = errx.NewBiz("RESHAPE_BAD_INSERT_POINT", "插入点超出网格范围")

// ReshapeConfig 对地形文件做插行/插列维护。After 取 -1 表示在最前插入。
type ReshapeConfig struct {
	TerrainPath string
	Axis        Axis
	After       int
	Count       int
}

// ShiftedTile 有标识字段的 tile 在插入后的坐标变化，
// 提醒维护者同步更新章节配置里的坐标。
type ShiftedTile struct {
	Label string
	From  grid.Coord
	To    grid.Coord
}

// ReshapeReport 插入结果与坐标位移提醒清单。
type ReshapeReport struct {
	Width   int
	Height  int
	Axis    Axis
	After   int
	Count   int
	Shifted []ShiftedTile
	Diags   *diag.List
}

// Reshape 读入地形文件，插入行或列，原地写回。
// 插行数必须为偶数（行奇偶对齐），插列无约束。
func Reshape(ctx context.Context, cfg ReshapeConfig) (*ReshapeReport, error) {
	report := &ReshapeReport{Axis: cfg.Axis, After: cfg.After, Count: cfg.Count, Diags: &diag.List{}}
	if err := ctx.Err(); err != nil {
		return report, err
	}

	data, err := os.ReadFile(cfg.TerrainPath)
	if err != nil {
		e := errx.ErrIOFailure.WithCause(err).WithData("path", cfg.TerrainPath)
		report.Diags.Fatal(e)
		return report, e
	}
	g, err := savefile.ParseTerrain(data)
	if err != nil {
		report.Diags.Fatal(asCoded(err))
		return report, err
	}

	limit := g.Height
	if cfg.Axis == AxisColumns {
		limit = g.Width
	}
	if cfg.After < -1 || cfg.After >= limit {
		e := ErrBadInsertPoint.
			WithData("axis", string(cfg.Axis)).
			WithData("after", cfg.After).
			WithData("limit", limit-1)
		report.Diags.Fatal(e)
		return report, e
	}

	report.Shifted = shiftedTiles(g, cfg)

	var out *grid.Grid
	switch cfg.Axis {
	case AxisColumns:
		out, err = grid.InsertColumns(g, cfg.After, cfg.Count)
	default:
		out, err = grid.InsertRows(g, cfg.After, cfg.Count)
	}
	if err != nil {
		report.Diags.Fatal(asCoded(err))
		return report, err
	}
	report.Width, report.Height = out.Width, out.Height

	if err := savefile.WriteAtomic(cfg.TerrainPath, savefile.EncodeTerrain(out)); err != nil {
		report.Diags.Fatal(asCoded(err))
		return report, err
	}
	logs.Info("terrain reshaped",
		zap.String("path", cfg.TerrainPath),
		zap.String("axis", string(cfg.Axis)),
		zap.Int("after", cfg.After), zap.Int("count", cfg.Count),
		zap.Int("width", out.Width), zap.Int("height", out.Height),
		zap.Int("shifted", len(report.Shifted)))
	return report, nil
}

// shiftedTiles 收集插入点之后带标识字段的 tile 的新旧坐标。
func shiftedTiles(g *grid.Grid, cfg ReshapeConfig) []ShiftedTile {
	var out []ShiftedTile
	for id := range g.Tiles {
		t := &g.Tiles[id]
		label := tileLabel(t)
		if label == "" {
			continue
		}
		c := grid.CoordOf(id, g.Width)
		to := c
		if cfg.Axis == AxisColumns {
			if c.X <= cfg.After {
				continue
			}
			to.X += cfg.Count
		} else {
			if c.Y <= cfg.After {
				continue
			}
			to.Y += cfg.Count
		}
		out = append(out, ShiftedTile{Label: label, From: c, To: to})
	}
	return out
}

func tileLabel(t *grid.Tile) string {
	switch {
	case t.Label != "":
		return t.Label
	case t.CitySite != grid.SiteNone:
		return "CitySite"
	case t.Improvement != "":
		return t.Improvement
	}
	return ""
}
