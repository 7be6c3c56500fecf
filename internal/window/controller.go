package window

import (
	"sync"

	"github.com/dreamlonglll/mini-todo/internal/screen"
	"github.com/dreamlonglll/mini-todo/internal/screenconfig"
	"github.com/dreamlonglll/mini-todo/pkg/logger"
	"github.com/dreamlonglll/mini-todo/pkg/models"
)

// PrimaryDisplayFunc 主显示器信息提供者(原点/尺寸为物理像素, scale 为百分比)
type PrimaryDisplayFunc func() (x, y, width, height, scale int)

// Controller 窗口表现控制器, 管理普通/固定两种模式
// 所有窗口操作失败只记日志不中断, 窗口丢失不能拖垮应用
type Controller struct {
	shell   Shell
	store   *screenconfig.Store
	enum    screen.Enumerator
	cfg     models.WindowConfig
	primary PrimaryDisplayFunc

	mu       sync.Mutex
	isFixed  bool
	configID string
}

// NewController 创建窗口控制器
func NewController(shell Shell, store *screenconfig.Store, enum screen.Enumerator, cfg models.WindowConfig) *Controller {
	return &Controller{
		shell:   shell,
		store:   store,
		enum:    enum,
		cfg:     cfg,
		primary: screen.PrimaryDisplay,
	}
}

// currentConfigID 返回当前屏幕组合标识, 未缓存时重新计算
func (c *Controller) currentConfigID() string {
	if c.configID == "" {
		c.configID = screen.Generate(c.enum)
	}
	return c.configID
}

// InitSettings 按当前屏幕组合恢复窗口状态
// 有记录: 恢复位置/尺寸/模式; 无记录: 居中放置默认尺寸并落库
func (c *Controller) InitSettings() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.configID = screen.Generate(c.enum)
	logger.Info("当前屏幕配置: %s", c.configID)

	config := c.store.Get(c.configID)
	if config != nil {
		c.restore(config)
	} else {
		c.placeDefault()
	}

	// 刷新配置列表供管理界面使用
	c.store.Refresh()
}

// restore 按已保存的配置恢复窗口
func (c *Controller) restore(config *models.ScreenConfig) {
	if err := c.shell.SetPosition(config.WindowX, config.WindowY); err != nil {
		logger.Warn("恢复窗口位置失败: %v", err)
	}
	if err := c.shell.SetSize(config.WindowWidth, config.WindowHeight); err != nil {
		logger.Warn("恢复窗口尺寸失败: %v", err)
	}

	c.isFixed = config.IsFixed
	if c.isFixed {
		c.applyFixedMode()
	} else {
		c.applyNormalMode()
	}
	logger.Info("已恢复屏幕配置 %s 的窗口状态, 固定模式: %v", config.ConfigID, config.IsFixed)
}

// placeDefault 无记录时居中放置默认尺寸窗口, 并为当前屏幕组合创建新记录
func (c *Controller) placeDefault() {
	px, py, pw, ph, scale := c.primary()

	width := c.cfg.DefaultWidth * scale / 100
	height := c.cfg.DefaultHeight * scale / 100
	x := px + (pw-width)/2
	y := py + (ph-height)/2

	if err := c.shell.SetPosition(x, y); err != nil {
		logger.Warn("设置默认窗口位置失败: %v", err)
	}
	if err := c.shell.SetSize(width, height); err != nil {
		logger.Warn("设置默认窗口尺寸失败: %v", err)
	}

	c.isFixed = false
	c.applyNormalMode()

	// 新记录带上派生的默认名称; 后续几何保存不再传名称, 避免覆盖用户自定义
	displayName := screen.DisplayName(c.configID)
	if _, err := c.store.Save(&models.SaveScreenConfigRequest{
		ConfigID:     c.configID,
		DisplayName:  &displayName,
		WindowX:      x,
		WindowY:      y,
		WindowWidth:  width,
		WindowHeight: height,
		IsFixed:      false,
	}); err != nil {
		logger.Warn("保存新屏幕配置失败: %v", err)
	}
	logger.Info("屏幕配置 %s 无记录, 已居中放置默认窗口 %dx%d", c.configID, width, height)
}

// ToggleFixedMode 切换固定模式, 返回切换后的状态
func (c *Controller) ToggleFixedMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.isFixed = !c.isFixed
	if c.isFixed {
		c.applyFixedMode()
	} else {
		c.applyNormalMode()
	}

	c.persistState()
	logger.Info("固定模式已切换为: %v", c.isFixed)
	return c.isFixed
}

// applyFixedMode 进入固定模式: 禁止调整大小, 工具窗口样式
func (c *Controller) applyFixedMode() {
	if err := c.shell.SetResizable(false); err != nil {
		logger.Warn("禁用窗口调整失败: %v", err)
	}
	if err := c.shell.SetToolWindow(true); err != nil {
		logger.Warn("应用工具窗口样式失败: %v", err)
	}
}

// applyNormalMode 恢复普通模式
func (c *Controller) applyNormalMode() {
	if err := c.shell.SetResizable(true); err != nil {
		logger.Warn("恢复窗口调整失败: %v", err)
	}
	if err := c.shell.SetToolWindow(false); err != nil {
		logger.Warn("恢复窗口样式失败: %v", err)
	}
}

// SaveWindowState 保存当前窗口几何到当前屏幕组合的记录
func (c *Controller) SaveWindowState() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.persistState()
}

// persistState 读取当前几何并落库 (调用方需持有锁)
func (c *Controller) persistState() {
	x, y, err := c.shell.OuterPosition()
	if err != nil {
		logger.Warn("读取窗口位置失败: %v", err)
		return
	}
	width, height, err := c.shell.OuterSize()
	if err != nil {
		logger.Warn("读取窗口尺寸失败: %v", err)
		return
	}

	if _, err := c.store.Save(&models.SaveScreenConfigRequest{
		ConfigID:     c.currentConfigID(),
		WindowX:      x,
		WindowY:      y,
		WindowWidth:  width,
		WindowHeight: height,
		IsFixed:      c.isFixed,
	}); err != nil {
		logger.Warn("保存窗口状态失败: %v", err)
	}
}

// Reset 重置窗口到主显示器 10% 边距处, 恢复默认尺寸和可调整状态
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	px, py, pw, ph, scale := c.primary()

	x := px + pw/10
	y := py + ph/10
	width := c.cfg.DefaultWidth * scale / 100
	height := c.cfg.DefaultHeight * scale / 100

	if err := c.shell.SetPosition(x, y); err != nil {
		logger.Warn("重置窗口位置失败: %v", err)
	}
	if err := c.shell.SetSize(width, height); err != nil {
		logger.Warn("重置窗口尺寸失败: %v", err)
	}
	if err := c.shell.SetResizable(true); err != nil {
		logger.Warn("恢复窗口调整失败: %v", err)
	}

	logger.Info("窗口已重置到 (%d, %d) %dx%d", x, y, width, height)
}

// State 返回当前屏幕组合标识和固定模式状态
func (c *Controller) State() (configID string, isFixed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentConfigID(), c.isFixed
}

// IsFixed 当前是否固定模式
func (c *Controller) IsFixed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isFixed
}
