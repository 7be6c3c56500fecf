package screenconfig

import (
	"errors"
	"sync"

	"github.com/dreamlonglll/mini-todo/internal/storage"
	"github.com/dreamlonglll/mini-todo/pkg/logger"
	"github.com/dreamlonglll/mini-todo/pkg/models"
)

// Backend 屏幕配置持久化接口
type Backend interface {
	GetScreenConfig(configID string) (*models.ScreenConfig, error)
	SaveScreenConfig(req *models.SaveScreenConfigRequest) (*models.ScreenConfig, error)
	ListScreenConfigs() ([]models.ScreenConfig, error)
	DeleteScreenConfig(configID string) error
	RenameScreenConfig(configID, displayName string) error
}

// Store 屏幕配置存储
// 读取路径全部失败吸收: 查不到或后端出错都按"无记录"处理,
// 窗口初始化不能因为一条配置读不出来而中断。
type Store struct {
	backend Backend

	mu      sync.RWMutex
	configs []models.ScreenConfig
}

// NewStore 创建屏幕配置存储
func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Get 获取指定标识的屏幕配置, 不存在或读取失败返回 nil
func (s *Store) Get(configID string) *models.ScreenConfig {
	config, err := s.backend.GetScreenConfig(configID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("读取屏幕配置失败: %s, %v", configID, err)
		}
		return nil
	}
	return config
}

// Save 保存屏幕配置并刷新缓存列表
func (s *Store) Save(req *models.SaveScreenConfigRequest) (*models.ScreenConfig, error) {
	config, err := s.backend.SaveScreenConfig(req)
	if err != nil {
		return nil, err
	}
	s.Refresh()
	return config, nil
}

// List 返回缓存的屏幕配置列表
func (s *Store) List() []models.ScreenConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	configs := make([]models.ScreenConfig, len(s.configs))
	copy(configs, s.configs)
	return configs
}

// Refresh 从后端刷新配置列表, 失败时保留旧缓存
func (s *Store) Refresh() {
	configs, err := s.backend.ListScreenConfigs()
	if err != nil {
		logger.Warn("刷新屏幕配置列表失败: %v", err)
		return
	}
	if configs == nil {
		configs = []models.ScreenConfig{}
	}

	s.mu.Lock()
	s.configs = configs
	s.mu.Unlock()
}

// Delete 删除屏幕配置并刷新缓存列表
func (s *Store) Delete(configID string) error {
	if err := s.backend.DeleteScreenConfig(configID); err != nil {
		return err
	}
	s.Refresh()
	return nil
}

// Rename 更新屏幕配置的显示名称并刷新缓存列表
func (s *Store) Rename(configID, displayName string) error {
	if err := s.backend.RenameScreenConfig(configID, displayName); err != nil {
		return err
	}
	s.Refresh()
	return nil
}
