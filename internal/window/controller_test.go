package window

import (
	"testing"

	"github.com/dreamlonglll/mini-todo/internal/screenconfig"
	"github.com/dreamlonglll/mini-todo/internal/storage"
	"github.com/dreamlonglll/mini-todo/pkg/models"
)

type fakeShell struct {
	x, y          int
	width, height int
	resizable     bool
	toolCalls     []bool
}

func (s *fakeShell) OuterPosition() (int, int, error) { return s.x, s.y, nil }
func (s *fakeShell) OuterSize() (int, int, error)     { return s.width, s.height, nil }
func (s *fakeShell) SetPosition(x, y int) error {
	s.x, s.y = x, y
	return nil
}
func (s *fakeShell) SetSize(width, height int) error {
	s.width, s.height = width, height
	return nil
}
func (s *fakeShell) SetResizable(resizable bool) error {
	s.resizable = resizable
	return nil
}
func (s *fakeShell) SetToolWindow(enabled bool) error {
	s.toolCalls = append(s.toolCalls, enabled)
	return nil
}

type fakeEnum struct {
	samples []models.MonitorSample
}

func (f fakeEnum) Displays() ([]models.MonitorSample, error) { return f.samples, nil }

type memBackend struct {
	configs map[string]*models.ScreenConfig
}

func newMemBackend() *memBackend {
	return &memBackend{configs: map[string]*models.ScreenConfig{}}
}

func (b *memBackend) GetScreenConfig(configID string) (*models.ScreenConfig, error) {
	config, ok := b.configs[configID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	clone := *config
	return &clone, nil
}

func (b *memBackend) SaveScreenConfig(req *models.SaveScreenConfigRequest) (*models.ScreenConfig, error) {
	config := &models.ScreenConfig{
		ConfigID:     req.ConfigID,
		DisplayName:  req.DisplayName,
		WindowX:      req.WindowX,
		WindowY:      req.WindowY,
		WindowWidth:  req.WindowWidth,
		WindowHeight: req.WindowHeight,
		IsFixed:      req.IsFixed,
	}
	// 与真实后端一致: 未提供名称时保留已有名称
	if existing, ok := b.configs[req.ConfigID]; ok && req.DisplayName == nil {
		config.DisplayName = existing.DisplayName
	}
	b.configs[req.ConfigID] = config
	clone := *config
	return &clone, nil
}

func (b *memBackend) ListScreenConfigs() ([]models.ScreenConfig, error) {
	var configs []models.ScreenConfig
	for _, c := range b.configs {
		configs = append(configs, *c)
	}
	return configs, nil
}

func (b *memBackend) DeleteScreenConfig(configID string) error {
	delete(b.configs, configID)
	return nil
}

func (b *memBackend) RenameScreenConfig(configID, displayName string) error {
	config, ok := b.configs[configID]
	if !ok {
		return storage.ErrNotFound
	}
	config.DisplayName = &displayName
	return nil
}

func newTestController(t *testing.T, backend *memBackend) (*Controller, *fakeShell) {
	t.Helper()
	shell := &fakeShell{width: 380, height: 600}
	store := screenconfig.NewStore(backend)
	enum := fakeEnum{samples: []models.MonitorSample{{Width: 1920, Height: 1080, Scale: 100}}}
	cfg := models.WindowConfig{Title: "mini-todo", DefaultWidth: 380, DefaultHeight: 600}

	c := NewController(shell, store, enum, cfg)
	c.primary = func() (int, int, int, int, int) { return 0, 0, 1920, 1080, 100 }
	return c, shell
}

func TestInitSettingsNewFingerprint(t *testing.T) {
	backend := newMemBackend()
	c, shell := newTestController(t, backend)

	c.InitSettings()

	// 1920x1080 @100%, 默认 380x600 居中
	if shell.x != 770 || shell.y != 240 {
		t.Errorf("position = (%d, %d), want (770, 240)", shell.x, shell.y)
	}
	if shell.width != 380 || shell.height != 600 {
		t.Errorf("size = %dx%d, want 380x600", shell.width, shell.height)
	}

	// 新屏幕组合应已落库, 并带上派生的默认名称
	saved, ok := backend.configs["1_1920x1080@100"]
	if !ok {
		t.Fatal("new screen config not persisted")
	}
	if saved.WindowX != 770 || saved.IsFixed {
		t.Errorf("saved = %+v", saved)
	}
	if saved.DisplayName == nil || *saved.DisplayName != "1屏: 1920x1080 (100%)" {
		t.Errorf("display name = %v, want derived default", saved.DisplayName)
	}
}

func TestSaveWindowStateKeepsCustomName(t *testing.T) {
	backend := newMemBackend()
	c, shell := newTestController(t, backend)
	c.InitSettings()

	// 用户重命名后移动窗口, 几何保存不应覆盖自定义名称
	if err := backend.RenameScreenConfig("1_1920x1080@100", "书房"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	shell.x, shell.y = 500, 300
	c.SaveWindowState()

	saved := backend.configs["1_1920x1080@100"]
	if saved == nil || saved.WindowX != 500 {
		t.Fatalf("saved = %+v", saved)
	}
	if saved.DisplayName == nil || *saved.DisplayName != "书房" {
		t.Errorf("display name = %v, want 书房", saved.DisplayName)
	}
}

func TestInitSettingsScaledDefault(t *testing.T) {
	backend := newMemBackend()
	c, shell := newTestController(t, backend)
	c.primary = func() (int, int, int, int, int) { return 0, 0, 2560, 1440, 125 }

	c.InitSettings()

	// 380x600 逻辑尺寸 × 125% = 475x750
	if shell.width != 475 || shell.height != 750 {
		t.Errorf("size = %dx%d, want 475x750", shell.width, shell.height)
	}
}

func TestInitSettingsRestoresExisting(t *testing.T) {
	backend := newMemBackend()
	backend.configs["1_1920x1080@100"] = &models.ScreenConfig{
		ConfigID:     "1_1920x1080@100",
		WindowX:      100,
		WindowY:      150,
		WindowWidth:  420,
		WindowHeight: 700,
		IsFixed:      true,
	}
	c, shell := newTestController(t, backend)

	c.InitSettings()

	if shell.x != 100 || shell.y != 150 || shell.width != 420 || shell.height != 700 {
		t.Errorf("geometry = (%d,%d) %dx%d", shell.x, shell.y, shell.width, shell.height)
	}
	if !c.IsFixed() {
		t.Error("fixed mode not restored")
	}
	if shell.resizable {
		t.Error("window resizable in fixed mode")
	}
	if len(shell.toolCalls) == 0 || !shell.toolCalls[len(shell.toolCalls)-1] {
		t.Errorf("tool window not applied: %v", shell.toolCalls)
	}
}

func TestToggleFixedModePersists(t *testing.T) {
	backend := newMemBackend()
	c, shell := newTestController(t, backend)
	c.InitSettings()
	shell.toolCalls = nil

	if got := c.ToggleFixedMode(); !got {
		t.Fatal("toggle should enter fixed mode")
	}
	if shell.resizable {
		t.Error("window still resizable in fixed mode")
	}

	saved := backend.configs["1_1920x1080@100"]
	if saved == nil || !saved.IsFixed {
		t.Errorf("fixed mode not persisted: %+v", saved)
	}
}

func TestToggleTwiceReturnsToNormal(t *testing.T) {
	backend := newMemBackend()
	c, shell := newTestController(t, backend)
	c.InitSettings()
	shell.toolCalls = nil

	c.ToggleFixedMode()
	c.ToggleFixedMode()

	if c.IsFixed() {
		t.Error("still fixed after toggling twice")
	}
	if !shell.resizable {
		t.Error("window not resizable after returning to normal")
	}
	// 两次切换恰好两次样式变更: 进入工具窗口, 再恢复
	if len(shell.toolCalls) != 2 || !shell.toolCalls[0] || shell.toolCalls[1] {
		t.Errorf("tool window calls = %v, want [true false]", shell.toolCalls)
	}

	saved := backend.configs["1_1920x1080@100"]
	if saved == nil || saved.IsFixed {
		t.Errorf("normal mode not persisted: %+v", saved)
	}
}

func TestSaveWindowState(t *testing.T) {
	backend := newMemBackend()
	c, shell := newTestController(t, backend)
	c.InitSettings()

	// 模拟用户拖动窗口
	shell.x, shell.y = 333, 444
	shell.width, shell.height = 400, 650

	c.SaveWindowState()

	saved := backend.configs["1_1920x1080@100"]
	if saved == nil {
		t.Fatal("state not persisted")
	}
	if saved.WindowX != 333 || saved.WindowY != 444 || saved.WindowWidth != 400 || saved.WindowHeight != 650 {
		t.Errorf("saved = %+v", saved)
	}
}

func TestReset(t *testing.T) {
	backend := newMemBackend()
	c, shell := newTestController(t, backend)
	c.InitSettings()
	c.ToggleFixedMode()

	c.Reset()

	// 10% 边距, 默认尺寸, 恢复可调整
	if shell.x != 192 || shell.y != 108 {
		t.Errorf("position = (%d, %d), want (192, 108)", shell.x, shell.y)
	}
	if shell.width != 380 || shell.height != 600 {
		t.Errorf("size = %dx%d, want 380x600", shell.width, shell.height)
	}
	if !shell.resizable {
		t.Error("window not resizable after reset")
	}
}

func TestStateExposesFingerprint(t *testing.T) {
	backend := newMemBackend()
	c, _ := newTestController(t, backend)
	c.InitSettings()

	configID, isFixed := c.State()
	if configID != "1_1920x1080@100" {
		t.Errorf("configID = %q", configID)
	}
	if isFixed {
		t.Error("fresh controller should not be fixed")
	}
}
