package preview

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"GallicWars/internal/grid"
	"GallicWars/internal/river"
	"GallicWars/internal/savefile"
	"GallicWars/internal/shared/logs"
	"GallicWars/internal/shared/toolconfig"
	"GallicWars/modules/kit/errx"
	"GallicWars/modules/kit/logx"
)

// Warning 对外暴露的诊断视图。
type Warning struct {
	Code string         `json:"code"`
	Msg  string         `json:"msg"`
	Data map[string]any `json:"data,omitempty"`
}

// State 一次地形刷新的结果快照。
type State struct {
	LoadedAt time.Time `json:"loaded_at"`
	Width    int       `json:"width"`
	Height   int       `json:"height"`
	Chains   int       `json:"chains"`
	Warnings []Warning `json:"warnings"`
	Error    string    `json:"error,omitempty"`
}

// Server 地形预览服务。监听地形文件变更，随时给出最新的缩略图与河网诊断。
type Server struct {
	terrainPath string
	addr        string

	engine *gin.Engine
	srv    *http.Server
	hub    *hub
	log    logx.Logger

	mu      sync.RWMutex
	state   State
	minimap string
}

func NewServer(cfg toolconfig.PreviewConfig, terrainPath string) *Server {
	abs, err := filepath.Abs(terrainPath)
	if err == nil {
		terrainPath = abs
	}
	s := &Server{
		terrainPath: terrainPath,
		addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		hub:         newHub(),
		log:         logx.NewZapLogger(logs.Logger()),
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors())
	engine.Use(accessLog())
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/api/minimap", s.handleMinimap)
	engine.GET("/api/diagnostics", s.handleDiagnostics)
	engine.GET("/ws", s.handleWS)

	s.engine = engine
	s.srv = &http.Server{
		Addr:              s.addr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Engine 暴露路由供测试直接打请求。
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run 启动预览服务（阻塞）。首轮刷新失败不阻止启动，错误会出现在
// 诊断接口里；ctx 取消后优雅停机。
func (s *Server) Run(ctx context.Context) error {
	s.Refresh()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errx.ErrInternal.WithCause(err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(s.terrainPath)); err != nil {
		return errx.ErrIOFailure.WithCause(err).WithData("path", s.terrainPath)
	}
	go s.watch(ctx, watcher)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.ListenAndServe()
	}()
	logs.Info("preview server started",
		zap.String("addr", s.addr),
		zap.String("terrain", s.terrainPath))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.hub.closeAll()
		return s.srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// watch 编辑器保存往往是"写临时文件再替换"，所以监听目录而不是
// 文件本身，事件上做短暂合并，避免一次保存触发多轮刷新。
func (s *Server) watch(ctx context.Context, watcher *fsnotify.Watcher) {
	var pending *time.Timer
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != s.terrainPath {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(200*time.Millisecond, func() {
				s.Refresh()
				s.hub.broadcast([]byte(s.Minimap()))
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logs.Warn("terrain watch error", zap.Error(err))
		}
	}
}

// Refresh 重新读入地形并重算缩略图与河网诊断。
func (s *Server) Refresh() {
	state := State{LoadedAt: time.Now()}
	minimap := ""

	g, err := s.loadTerrain()
	if err != nil {
		state.Error = err.Error()
		logx.ReportSysErrorWithLoggerContext(context.Background(), s.log,
			logx.NewSysLog("preview_refresh", err))
	} else {
		report := river.ValidateNetwork(g)
		state.Width, state.Height = g.Width, g.Height
		state.Chains = len(report.Chains)
		for _, w := range report.Warnings {
			state.Warnings = append(state.Warnings, Warning{
				Code: w.CodeText(),
				Msg:  w.Msg(),
				Data: w.Data(),
			})
		}
		minimap = Render(g)
		logs.Info("terrain refreshed",
			zap.Int("width", g.Width), zap.Int("height", g.Height),
			zap.Int("chains", state.Chains),
			zap.Int("warnings", len(state.Warnings)))
	}

	s.mu.Lock()
	s.state = state
	s.minimap = minimap
	s.mu.Unlock()
}

func (s *Server) loadTerrain() (*grid.Grid, error) {
	data, err := os.ReadFile(s.terrainPath)
	if err != nil {
		return nil, errx.ErrIOFailure.WithCause(err).WithData("path", s.terrainPath)
	}
	g, err := savefile.ParseTerrain(data)
	if err != nil {
		return nil, err
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if err := river.CheckTile(g, grid.Coord{X: x, Y: y}); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// Minimap 当前缩略图，尚未加载成功时为空串。
func (s *Server) Minimap() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.minimap
}

func (s *Server) handleMinimap(c *gin.Context) {
	s.mu.RLock()
	minimap, loadErr := s.minimap, s.state.Error
	s.mu.RUnlock()

	if minimap == "" {
		logx.ReportBizWithLoggerContext(c.Request.Context(), s.log,
			logx.NewBizLog("preview_minimap", "terrain_not_loaded", loadErr))
		c.String(http.StatusServiceUnavailable, "terrain not loaded: %s", loadErr)
		return
	}
	c.String(http.StatusOK, minimap)
}

func (s *Server) handleDiagnostics(c *gin.Context) {
	s.mu.RLock()
	state := s.state
	s.mu.RUnlock()
	c.JSON(http.StatusOK, state)
}

// handleWS 升级连接后先推一份当前缩略图，之后由 watch 触发增量推送。
func (s *Server) handleWS(c *gin.Context) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logs.Warn("websocket upgrade error", zap.Error(err))
		return
	}
	s.hub.add(conn)

	if minimap := s.Minimap(); minimap != "" {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(minimap)); err != nil {
			s.hub.remove(conn)
			return
		}
	}

	go func() {
		defer s.hub.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
