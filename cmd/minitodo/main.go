package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dreamlonglll/mini-todo/internal/config"
	"github.com/dreamlonglll/mini-todo/internal/holiday"
	"github.com/dreamlonglll/mini-todo/internal/scheduler"
	"github.com/dreamlonglll/mini-todo/internal/screen"
	"github.com/dreamlonglll/mini-todo/internal/screenconfig"
	"github.com/dreamlonglll/mini-todo/internal/server"
	"github.com/dreamlonglll/mini-todo/internal/singleton"
	"github.com/dreamlonglll/mini-todo/internal/storage"
	"github.com/dreamlonglll/mini-todo/internal/todo"
	"github.com/dreamlonglll/mini-todo/internal/tray"
	"github.com/dreamlonglll/mini-todo/internal/window"
	"github.com/dreamlonglll/mini-todo/pkg/logger"
)

const (
	AppName    = "MiniTodo"
	AppVersion = "1.2.0"
)

// getAppDataDir 获取应用数据目录
// Windows: %LOCALAPPDATA%\MiniTodo
// 如果环境变量不存在，则使用当前工作目录
func getAppDataDir() string {
	if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
		return filepath.Join(localAppData, AppName)
	}

	workDir, err := os.Getwd()
	if err != nil {
		log.Fatalf("❌ 无法获取工作目录: %v", err)
	}
	return workDir
}

func main() {
	// 单实例检测 - 防止程序重复启动
	mutex, err := singleton.EnsureSingleInstance(AppName)
	if err != nil {
		// 已有实例在运行，退出
		os.Exit(1)
	}
	// 确保程序退出时释放互斥锁
	defer mutex.Close()

	// 获取应用数据目录
	appDataDir := getAppDataDir()

	if err := os.MkdirAll(appDataDir, 0755); err != nil {
		log.Fatalf("❌ 创建应用数据目录失败 %s: %v", appDataDir, err)
	}

	// 初始化配置管理器
	configPath := filepath.Join(appDataDir, "data", "config.json")
	configMgr, err := config.NewManager(configPath)
	if err != nil {
		log.Fatalf("❌ 初始化配置管理器失败: %v", err)
	}
	fmt.Println("✅ 配置管理器初始化完成")

	// 确保必要的目录存在
	storageCfg := configMgr.GetStorage()
	for _, dir := range []string{storageCfg.DataDir, storageCfg.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("❌ 创建目录失败 %s: %v", dir, err)
		}
	}
	fmt.Println("✅ 目录结构初始化完成")

	// 初始化日志系统
	if err := logger.Init(storageCfg.LogsDir, false); err != nil {
		log.Printf("⚠️ 日志系统初始化失败: %v, 使用控制台输出", err)
	} else {
		fmt.Println("✅ 日志系统初始化完成")
		logger.Info("==================== mini-todo %s 启动 ====================", AppVersion)
		logger.Info("应用数据目录: %s", appDataDir)
		logger.Info("数据目录: %s", storageCfg.DataDir)
	}

	// 初始化存储管理器
	storageMgr, err := storage.NewManager(storageCfg.DataDir)
	if err != nil {
		log.Fatalf("❌ 初始化存储管理器失败: %v", err)
	}
	fmt.Println("✅ 存储管理器初始化完成")

	// 初始化待办内存镜像
	todos := todo.NewStore(storageMgr)
	if err := todos.Fetch(); err != nil {
		log.Printf("⚠️ 加载待办列表失败: %v", err)
	}
	fmt.Println("✅ 待办数据加载完成")

	// 初始化屏幕配置缓存
	screenConfigs := screenconfig.NewStore(storageMgr)
	enum := screen.DesktopEnumerator{}

	// 初始化窗口控制器并恢复窗口状态
	windowCfg := configMgr.GetWindow()
	shell := window.NewShell(windowCfg.Title)
	controller := window.NewController(shell, screenConfigs, enum, windowCfg)
	controller.InitSettings()
	fmt.Println("✅ 窗口控制器初始化完成")

	// 初始化节假日服务
	holidayCfg := configMgr.GetHoliday()
	holidays := holiday.NewService(holiday.NewHTTPFetcher(holidayCfg.SourceURL), holidayCfg)
	fmt.Println("✅ 节假日服务初始化完成")

	// 初始化任务调度器
	sched := scheduler.NewScheduler(configMgr, storageMgr, holidays, controller, nil)
	if err := sched.Start(); err != nil {
		log.Fatalf("❌ 启动任务调度器失败: %v", err)
	}

	// 初始化 Web 服务器
	webServer := server.NewServer(configMgr, storageMgr, todos, screenConfigs, controller, holidays, enum, AppVersion)

	// 启动 Web 服务器（在独立 goroutine 中）
	go func() {
		if err := webServer.Start(); err != nil {
			log.Printf("❌ Web 服务器错误: %v", err)
		}
	}()

	serverCfg := configMgr.GetServer()

	// 初始化系统托盘
	fmt.Println("🎯 启动系统托盘...")
	trayApp := tray.NewTrayApp(
		controller,
		sched,
		webServer.URL(),
		serverCfg.AutoOpenBrowser,
		func() {
			// 清理资源
			fmt.Println("📦 正在清理资源...")
			webServer.Shutdown()
			storageMgr.Close()
			logger.Close()
			fmt.Println("✅ 资源清理完成")
		},
	)

	// 运行托盘应用（阻塞）
	trayApp.Run()
}
