package server

import (
	"embed"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"github.com/wine-cx/wine-pricing-system/internal/api"
	"github.com/wine-cx/wine-pricing-system/internal/config"
	"github.com/wine-cx/wine-pricing-system/internal/store"
)

//go:embed index.html
var staticFiles embed.FS

// Server HTTP 服务器
type Server struct {
	router *gin.Engine
	store  *store.Store
	api    *api.Handler
	cron   *cron.Cron
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	dbPath := filepath.Join(dataDir, "winecx.db")

	sqliteStore, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	apiHandler := api.NewHandler(cfg, sqliteStore, dataDir)

	s := &Server{
		router: gin.Default(),
		store:  sqliteStore,
		api:    apiHandler,
	}

	s.setupRoutes(devMode)
	s.setupBackupCron(cfg)

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	if devMode {
		// 开发模式：代理到前端开发服务器
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
		return
	}

	serveIndex := func(c *gin.Context) {
		data, _ := staticFiles.ReadFile("index.html")
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	}
	s.router.GET("/", serveIndex)
	s.router.NoRoute(serveIndex)
}

// setupBackupCron 定时把导出件镜像到远端（可选）
func (s *Server) setupBackupCron(cfg *config.AppConfig) {
	if !cfg.Data.AutoBackup || !s.api.MirrorEnabled() {
		return
	}

	s.cron = cron.New()
	_, err := s.cron.AddFunc(cfg.Data.BackupCron, func() {
		message := "scheduled backup " + time.Now().Format("2006-01-02 15:04:05")
		if err := s.api.MirrorExport(message); err != nil {
			if os.IsNotExist(err) {
				// 还没有导出件，等下一轮
				return
			}
			log.Printf("定时镜像失败（本地数据不受影响）: %v", err)
		}
	})
	if err != nil {
		log.Printf("定时备份表达式无效: %v", err)
		s.cron = nil
		return
	}
	s.cron.Start()
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Shutdown 停止定时任务并关闭存储
func (s *Server) Shutdown() error {
	if s.cron != nil {
		s.cron.Stop()
	}
	return s.store.Close()
}

// GetStore 获取存储（用于测试）
func (s *Server) GetStore() *store.Store {
	return s.store
}
