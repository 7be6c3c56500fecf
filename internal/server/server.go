package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dreamlonglll/mini-todo/internal/config"
	"github.com/dreamlonglll/mini-todo/internal/holiday"
	"github.com/dreamlonglll/mini-todo/internal/screen"
	"github.com/dreamlonglll/mini-todo/internal/screenconfig"
	"github.com/dreamlonglll/mini-todo/internal/storage"
	"github.com/dreamlonglll/mini-todo/internal/todo"
	"github.com/dreamlonglll/mini-todo/internal/window"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Server Web 服务器, 承载管理界面和全部后端操作
type Server struct {
	router        *gin.Engine
	configMgr     *config.Manager
	storageMgr    *storage.Manager
	todos         *todo.Store
	screenConfigs *screenconfig.Store
	controller    *window.Controller
	holidays      *holiday.Service
	enum          screen.Enumerator
	addr          string
	version       string
	httpServer    *http.Server
}

// NewServer 创建 Web 服务器
func NewServer(
	configMgr *config.Manager,
	storageMgr *storage.Manager,
	todos *todo.Store,
	screenConfigs *screenconfig.Store,
	controller *window.Controller,
	holidays *holiday.Service,
	enum screen.Enumerator,
	version string,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	serverCfg := configMgr.GetServer()
	addr := fmt.Sprintf("%s:%d", serverCfg.Host, serverCfg.Port)

	s := &Server{
		router:        router,
		configMgr:     configMgr,
		storageMgr:    storageMgr,
		todos:         todos,
		screenConfigs: screenConfigs,
		controller:    controller,
		holidays:      holidays,
		enum:          enum,
		addr:          addr,
		version:       version,
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware 设置请求标识和跨域中间件
func (s *Server) setupMiddleware() {
	// 每个请求分配唯一标识, 便于日志排查
	s.router.Use(func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	})

	if s.configMgr.GetServer().EnableCORS {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "X-Request-ID")
		s.router.Use(cors.New(corsCfg))
	}
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// 静态文件(管理界面)
	s.router.Static("/static", "./web/static")

	api := s.router.Group("/api")
	{
		// 系统信息
		api.GET("/version", s.handleGetVersion)

		// 配置管理
		api.GET("/config", s.handleGetConfig)
		api.PUT("/config", s.handleUpdateConfig)

		// 待办
		api.GET("/todos", s.handleGetTodos)
		api.GET("/todos/pending", s.handleGetPendingTodos)
		api.GET("/todos/completed", s.handleGetCompletedTodos)
		api.GET("/todos/counts", s.handleGetTodoCounts)
		api.POST("/todos", s.handleCreateTodo)
		api.PUT("/todos/:id", s.handleUpdateTodo)
		api.DELETE("/todos/:id", s.handleDeleteTodo)
		api.POST("/todos/:id/toggle", s.handleToggleTodo)
		api.POST("/todos/reorder", s.handleReorderTodos)

		// 子任务
		api.POST("/subtasks", s.handleCreateSubTask)
		api.PUT("/subtasks/:id", s.handleUpdateSubTask)
		api.DELETE("/subtasks/:id", s.handleDeleteSubTask)
		api.POST("/subtasks/:id/toggle", s.handleToggleSubTask)

		// 设置
		api.GET("/settings", s.handleGetSettings)
		api.PUT("/settings", s.handleSaveSettings)
		api.GET("/settings/notification-type", s.handleGetNotificationType)
		api.PUT("/settings/notification-type", s.handleSetNotificationType)

		// 屏幕配置
		api.GET("/screen-configs", s.handleListScreenConfigs)
		api.GET("/screen-configs/current", s.handleGetCurrentScreenConfig)
		api.POST("/screen-configs", s.handleSaveScreenConfig)
		api.PUT("/screen-configs/:configId/name", s.handleRenameScreenConfig)
		api.DELETE("/screen-configs/:configId", s.handleDeleteScreenConfig)

		// 窗口控制
		api.GET("/window/state", s.handleGetWindowState)
		api.POST("/window/toggle-fixed", s.handleToggleFixedMode)
		api.POST("/window/save-state", s.handleSaveWindowState)
		api.POST("/window/reset", s.handleResetWindow)

		// 节假日
		api.GET("/holidays/:year", s.handleGetYearHolidays)
		api.GET("/holidays/info/:date", s.handleGetHolidayInfo)
		api.POST("/holidays/preload", s.handlePreloadHolidays)
		api.POST("/holidays/clear-cache", s.handleClearHolidayCache)

		// 农历
		api.GET("/lunar/:date", s.handleGetLunarInfo)
		api.GET("/lunar/:date/display", s.handleGetLunarDisplay)
		api.GET("/lunar/month/:year/:month", s.handleGetMonthLunar)

		// 数据导入导出
		api.GET("/export", s.handleExportData)
		api.POST("/import", s.handleImportData)
		api.GET("/export/excel", s.handleExportExcel)
	}
}

// Start 启动服务器(阻塞)
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: s.router,
	}

	fmt.Printf("🌐 Web服务器启动: http://%s\n", s.addr)

	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown 优雅关闭服务器
func (s *Server) Shutdown() error {
	if s.httpServer == nil {
		return nil
	}

	fmt.Println("🛑 正在关闭 Web 服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		fmt.Printf("⚠️ 服务器关闭错误: %v\n", err)
		return err
	}

	fmt.Println("✅ Web 服务器已关闭")
	return nil
}

// URL 管理界面地址
func (s *Server) URL() string {
	return fmt.Sprintf("http://%s", s.addr)
}

// handleGetVersion 获取版本信息
func (s *Server) handleGetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": s.version,
		"name":    "mini-todo",
	})
}
