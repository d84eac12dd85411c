package river

import (
	"GallicWars/internal/grid"
	"GallicWars/modules/kit/errx"
)

var (
	ErrInvalidRotation = errx.NewBiz("RIVER_INVALID_ROTATION", "河流旋转值必须是 0 或 1")
	// WarnDisconnected 是警告级别：合法的源头/入海口同样是单端链，
	// 最终视觉正确性由渲染引擎裁决，这里只提示可疑断口。
	WarnDisconnected = errx.NewBiz("RIVER_DISCONNECTED_SEGMENT", "河段在此处疑似断开")
)

// EndKind 链端分类。
type EndKind uint8

const (
	Spring EndKind = iota // 源头：自由端是该边沿的上游顶点
	Mouth                 // 入海口：自由端是下游顶点
)

func (k EndKind) String() string {
	if k == Spring {
		return "spring"
	}
	return "mouth"
}

// ChainEnd 链的一个自由端。
type ChainEnd struct {
	Vertex Vertex
	Edge   Edge
	Kind   EndKind
}

// Chain 一条水文链：经由共享顶点连通的边沿集合。
type Chain struct {
	Edges []Edge
	Ends  []ChainEnd
}

// Report 全图河网校验结果。Warnings 不阻断生成。
type Report struct {
	Chains   []Chain
	Warnings []*errx.Error
}

// CheckTile 单 tile 的无状态检查，可并行执行：旋转值必须是二值。
func CheckTile(g *grid.Grid, c grid.Coord) error {
	t := g.At(c)
	if t == nil {
		return nil
	}
	for _, decl := range []struct {
		kind EdgeKind
		rot  *int
	}{
		{EdgeW, t.RiverW},
		{EdgeSW, t.RiverSW},
		{EdgeSE, t.RiverSE},
	} {
		if decl.rot != nil && *decl.rot != 0 && *decl.rot != 1 {
			return ErrInvalidRotation.
				WithData("x", c.X).
				WithData("y", c.Y).
				WithData("edge", decl.kind.String()).
				WithData("rotation", *decl.rot)
		}
	}
	return nil
}

// ValidateNetwork 追踪全部河流边沿，按共享顶点归并成链，
// 并把每条链的自由端分类为源头或入海口。
func ValidateNetwork(g *grid.Grid) *Report {
	edges := CollectEdges(g)
	report := &Report{}
	if len(edges) == 0 {
		return report
	}

	// 顶点 -> 关联边下标
	incident := make(map[Vertex][]int, len(edges)*2)
	for i, e := range edges {
		a, b := e.Endpoints()
		incident[a] = append(incident[a], i)
		incident[b] = append(incident[b], i)
	}

	visited := make([]bool, len(edges))
	for start := range edges {
		if visited[start] {
			continue
		}
		// BFS 连通分量
		var member []int
		queue := []int{start}
		visited[start] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			member = append(member, cur)
			a, b := edges[cur].Endpoints()
			for _, v := range []Vertex{a, b} {
				for _, next := range incident[v] {
					if !visited[next] {
						visited[next] = true
						queue = append(queue, next)
					}
				}
			}
		}

		chain := Chain{Edges: make([]Edge, 0, len(member))}
		for _, i := range member {
			chain.Edges = append(chain.Edges, edges[i])
		}

		// 自由端：度为 1 的顶点
		for _, i := range member {
			a, b := edges[i].Endpoints()
			for _, v := range []Vertex{a, b} {
				if len(incident[v]) != 1 {
					continue
				}
				end := ChainEnd{Vertex: v, Edge: edges[i]}
				if edges[i].Upstream() == v {
					end.Kind = Spring
				} else {
					end.Kind = Mouth
				}
				chain.Ends = append(chain.Ends, end)
				if w := disconnectWarning(g, incident, end); w != nil {
					report.Warnings = append(report.Warnings, w)
				}
			}
		}
		report.Chains = append(report.Chains, chain)
	}
	return report
}

// disconnectWarning 判断链端是否疑似断开：
// 端点周围存在界内 tile 声明了河流边沿，却没有任何已声明边沿经过端点。
// 贴图边缘或四周无河的自由端视为合法的源头/入海口，不告警。
func disconnectWarning(g *grid.Grid, incident map[Vertex][]int, end ChainEnd) *errx.Error {
	for _, c := range vertexTiles(end.Vertex) {
		if c == end.Edge.Tile {
			continue
		}
		t := g.At(c)
		if t == nil || !t.HasRiver() {
			continue
		}
		// 邻居有河但没有任何边沿接到端点上
		return WarnDisconnected.
			WithData("x", end.Edge.Tile.X).
			WithData("y", end.Edge.Tile.Y).
			WithData("edge", end.Edge.Kind.String()).
			WithData("end", end.Kind.String()).
			WithData("neighbor_x", c.X).
			WithData("neighbor_y", c.Y)
	}
	return nil
}

// vertexTiles 返回可能在该顶点声明互补边沿的 tile。
//
//	(t,SW) 角的三条关联边：W@t、SW@t、SE@west(t)
//	(t,S)  角的三条关联边：SW@t、SE@t、W@se(t)
func vertexTiles(v Vertex) []grid.Coord {
	if v.Corner == CornerSW {
		return []grid.Coord{v.Tile, v.Tile.Shift(grid.West)}
	}
	return []grid.Coord{v.Tile, v.Tile.Shift(grid.SouthEast)}
}
