package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"GallicWars/internal/grid"
	"GallicWars/internal/savefile"
)

func writeTerrain(t *testing.T, g *grid.Grid) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "base_terrain.xml")
	if err := os.WriteFile(path, savefile.EncodeTerrain(g), 0o644); err != nil {
		t.Fatalf("写地形文件失败：%v", err)
	}
	return path
}

func TestReshape_插偶数行并提醒坐标位移(t *testing.T) {
	g := pipelineGrid(5, 6)
	g.At(grid.Coord{X: 2, Y: 4}).Label = "TEXT_GENAVA"
	path := writeTerrain(t, g)

	report, err := Reshape(context.Background(), ReshapeConfig{
		TerrainPath: path,
		Axis:        AxisRows,
		After:       1,
		Count:       2,
	})
	if err != nil {
		t.Fatalf("插偶数行不应失败：%v", err)
	}
	if report.Height != 8 || report.Width != 5 {
		t.Fatalf("期望 5x8，got=%dx%d", report.Width, report.Height)
	}
	if len(report.Shifted) != 1 {
		t.Fatalf("应提醒 1 个带标识 tile 的位移，got=%d", len(report.Shifted))
	}
	s := report.Shifted[0]
	if s.Label != "TEXT_GENAVA" || s.From != (grid.Coord{X: 2, Y: 4}) || s.To != (grid.Coord{X: 2, Y: 6}) {
		t.Fatalf("位移提醒不正确：%+v", s)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读回失败：%v", err)
	}
	out, err := savefile.ParseTerrain(data)
	if err != nil {
		t.Fatalf("写回的文件应可解析：%v", err)
	}
	if out.At(grid.Coord{X: 2, Y: 6}).Label != "TEXT_GENAVA" {
		t.Fatalf("标识 tile 应落在新坐标上")
	}
}

func TestReshape_奇数行数拒绝且不写回(t *testing.T) {
	g := pipelineGrid(5, 6)
	path := writeTerrain(t, g)
	before, _ := os.ReadFile(path)

	_, err := Reshape(context.Background(), ReshapeConfig{
		TerrainPath: path,
		Axis:        AxisRows,
		After:       1,
		Count:       3,
	})
	if !errors.Is(err, grid.ErrParityViolation) {
		t.Fatalf("期望 GRID_PARITY_VIOLATION，got=%v", err)
	}
	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Fatalf("失败时不应改动地形文件")
	}
}

func TestReshape_插列无奇偶约束(t *testing.T) {
	g := pipelineGrid(5, 4)
	g.At(grid.Coord{X: 3, Y: 2}).Improvement = "IMPROVEMENT_FARM"
	path := writeTerrain(t, g)

	report, err := Reshape(context.Background(), ReshapeConfig{
		TerrainPath: path,
		Axis:        AxisColumns,
		After:       0,
		Count:       1,
	})
	if err != nil {
		t.Fatalf("插列不应失败：%v", err)
	}
	if report.Width != 6 {
		t.Fatalf("期望宽度 6，got=%d", report.Width)
	}
	if len(report.Shifted) != 1 || report.Shifted[0].To != (grid.Coord{X: 4, Y: 2}) {
		t.Fatalf("位移提醒不正确：%+v", report.Shifted)
	}
}

func TestReshape_插入点越界(t *testing.T) {
	g := pipelineGrid(5, 4)
	path := writeTerrain(t, g)

	_, err := Reshape(context.Background(), ReshapeConfig{
		TerrainPath: path,
		Axis:        AxisRows,
		After:       9,
		Count:       2,
	})
	if !errors.Is(err, ErrBadInsertPoint) {
		t.Fatalf("期望 RESHAPE_BAD_INSERT_POINT，got=%v", err)
	}
}

func TestExtract_丢弃来源字段并告警(t *testing.T) {
	g := pipelineGrid(10, 10)
	g.At(grid.Coord{X: 4, Y: 4}).TribeSite = "TRIBE_AEDUI"
	g.At(grid.Coord{X: 5, Y: 4}).NationSite = "NATION_ROME"
	src := writeTerrain(t, g)
	out := filepath.Join(filepath.Dir(src), "extracted.xml")

	report, err := Extract(context.Background(), ExtractConfig{
		SourcePath: src,
		OutputPath: out,
		XMin:       2, XMax: 8,
		YMin: 2, YMax: 8,
	})
	if err != nil {
		t.Fatalf("提取不应失败：%v", err)
	}
	if report.Width != 7 || report.Height != 7 {
		t.Fatalf("期望 7x7，got=%dx%d", report.Width, report.Height)
	}
	if len(report.Diags.Warnings()) != 1 {
		t.Fatalf("丢弃来源字段应产生一条警告")
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("输出应已写出：%v", err)
	}
	sub, err := savefile.ParseTerrain(data)
	if err != nil {
		t.Fatalf("输出应可解析：%v", err)
	}
	for id := range sub.Tiles {
		if sub.Tiles[id].TribeSite != "" || sub.Tiles[id].NationSite != "" {
			t.Fatalf("来源独有字段不应进入地形层")
		}
	}
}

func TestExtract_奇数行偏移拒绝(t *testing.T) {
	g := pipelineGrid(10, 10)
	src := writeTerrain(t, g)

	_, err := Extract(context.Background(), ExtractConfig{
		SourcePath: src,
		OutputPath: filepath.Join(filepath.Dir(src), "extracted.xml"),
		XMin:       2, XMax: 8,
		YMin: 3, YMax: 7,
	})
	if !errors.Is(err, grid.ErrParityViolation) {
		t.Fatalf("期望 GRID_PARITY_VIOLATION，got=%v", err)
	}
}
