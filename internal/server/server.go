package server

import (
	"log"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	v1 "netinv/internal/api/v1"
	"netinv/internal/assist"
	"netinv/internal/config"
	"netinv/internal/importer"
	"netinv/internal/registry"
	"netinv/internal/store"
)

// Server HTTP服务器
type Server struct {
	router *gin.Engine
	store  *store.Store
	v1     *v1.Handler
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化 SQLite Store
	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	dbPath := filepath.Join(dataDir, "netinv.db")

	sqliteStore, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	registryClient := registry.NewClient(cfg.Registry.BaseURL, time.Duration(cfg.Registry.TimeoutSeconds)*time.Second)
	assistClient := assist.NewClient(cfg.Assist.BaseURL, time.Duration(cfg.Assist.TimeoutSeconds)*time.Second)

	sessionTTL := time.Duration(cfg.Import.SessionTTLMinutes) * time.Minute
	if sessionTTL <= 0 {
		sessionTTL = time.Hour
	}
	sessions := importer.NewSessionStore(sessionTTL)

	v1Handler := v1.NewHandler(sqliteStore, sessions, registryClient, assistClient)

	s := &Server{
		router: gin.Default(),
		store:  sqliteStore,
		v1:     v1Handler,
	}

	s.setupRoutes(cfg)

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(cfg *config.AppConfig) {
	// CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "X-Project-ID"}
	s.router.Use(cors.New(corsConfig))

	// 上传体积上限
	if cfg.Import.MaxUploadMB > 0 {
		s.router.MaxMultipartMemory = int64(cfg.Import.MaxUploadMB) << 20
	}

	// V1 API 路由
	api := s.router.Group("/api")
	{
		s.v1.RegisterRoutes(api)
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// GetStore 获取存储（用于测试）
func (s *Server) GetStore() *store.Store {
	return s.store
}
