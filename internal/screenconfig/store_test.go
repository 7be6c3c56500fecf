package screenconfig

import (
	"errors"
	"testing"

	"github.com/dreamlonglll/mini-todo/internal/storage"
	"github.com/dreamlonglll/mini-todo/pkg/models"
)

type fakeBackend struct {
	configs map[string]*models.ScreenConfig
	getErr  error
	listErr error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{configs: map[string]*models.ScreenConfig{}}
}

func (f *fakeBackend) GetScreenConfig(configID string) (*models.ScreenConfig, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	config, ok := f.configs[configID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	clone := *config
	return &clone, nil
}

func (f *fakeBackend) SaveScreenConfig(req *models.SaveScreenConfigRequest) (*models.ScreenConfig, error) {
	config := &models.ScreenConfig{
		ID:           int64(len(f.configs) + 1),
		ConfigID:     req.ConfigID,
		DisplayName:  req.DisplayName,
		WindowX:      req.WindowX,
		WindowY:      req.WindowY,
		WindowWidth:  req.WindowWidth,
		WindowHeight: req.WindowHeight,
		IsFixed:      req.IsFixed,
	}
	if existing, ok := f.configs[req.ConfigID]; ok {
		config.ID = existing.ID
		if req.DisplayName == nil {
			config.DisplayName = existing.DisplayName
		}
	}
	f.configs[req.ConfigID] = config
	clone := *config
	return &clone, nil
}

func (f *fakeBackend) ListScreenConfigs() ([]models.ScreenConfig, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var configs []models.ScreenConfig
	for _, c := range f.configs {
		configs = append(configs, *c)
	}
	return configs, nil
}

func (f *fakeBackend) DeleteScreenConfig(configID string) error {
	delete(f.configs, configID)
	return nil
}

func (f *fakeBackend) RenameScreenConfig(configID, displayName string) error {
	config, ok := f.configs[configID]
	if !ok {
		return storage.ErrNotFound
	}
	config.DisplayName = &displayName
	return nil
}

func TestGetMissReturnsNil(t *testing.T) {
	store := NewStore(newFakeBackend())
	if got := store.Get("1_1920x1080@100"); got != nil {
		t.Errorf("Get on miss = %+v, want nil", got)
	}
}

func TestGetBackendFailureAbsorbed(t *testing.T) {
	backend := newFakeBackend()
	backend.getErr = errors.New("database is locked")
	store := NewStore(backend)

	// 后端出错和查不到一样返回 nil, 不向上传播
	if got := store.Get("1_1920x1080@100"); got != nil {
		t.Errorf("Get on failure = %+v, want nil", got)
	}
}

func TestSaveThenGet(t *testing.T) {
	store := NewStore(newFakeBackend())

	saved, err := store.Save(&models.SaveScreenConfigRequest{
		ConfigID:     "1_1920x1080@100",
		WindowX:      10,
		WindowY:      20,
		WindowWidth:  380,
		WindowHeight: 600,
		IsFixed:      true,
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.ConfigID != "1_1920x1080@100" {
		t.Errorf("saved = %+v", saved)
	}

	got := store.Get("1_1920x1080@100")
	if got == nil || got.WindowX != 10 || !got.IsFixed {
		t.Errorf("Get after save = %+v", got)
	}
}

func TestSaveRefreshesList(t *testing.T) {
	store := NewStore(newFakeBackend())

	if got := store.List(); len(got) != 0 {
		t.Fatalf("initial list = %+v, want empty", got)
	}

	if _, err := store.Save(&models.SaveScreenConfigRequest{ConfigID: "1_1920x1080@100"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if got := store.List(); len(got) != 1 {
		t.Errorf("list after save = %+v, want 1 entry", got)
	}
}

func TestListFailureKeepsOldCache(t *testing.T) {
	backend := newFakeBackend()
	store := NewStore(backend)

	if _, err := store.Save(&models.SaveScreenConfigRequest{ConfigID: "1_1920x1080@100"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	backend.listErr = errors.New("database is locked")
	store.Refresh()

	// 刷新失败不应清空已有缓存
	if got := store.List(); len(got) != 1 {
		t.Errorf("list after failed refresh = %+v, want cached entry", got)
	}
}

func TestDeleteAndRename(t *testing.T) {
	store := NewStore(newFakeBackend())

	if _, err := store.Save(&models.SaveScreenConfigRequest{ConfigID: "1_1920x1080@100"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := store.Rename("1_1920x1080@100", "书房"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	got := store.Get("1_1920x1080@100")
	if got == nil || got.DisplayName == nil || *got.DisplayName != "书房" {
		t.Errorf("after rename = %+v", got)
	}

	if err := store.Delete("1_1920x1080@100"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := store.Get("1_1920x1080@100"); got != nil {
		t.Errorf("Get after delete = %+v, want nil", got)
	}
	if got := store.List(); len(got) != 0 {
		t.Errorf("list after delete = %+v, want empty", got)
	}
}
