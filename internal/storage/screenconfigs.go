package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dreamlonglll/mini-todo/pkg/models"
)

const screenConfigColumns = `id, config_id, display_name, window_x, window_y,
	window_width, window_height, is_fixed, created_at, updated_at`

func scanScreenConfig(row interface{ Scan(...interface{}) error }) (*models.ScreenConfig, error) {
	sc := &models.ScreenConfig{}
	var isFixed int
	err := row.Scan(
		&sc.ID,
		&sc.ConfigID,
		&sc.DisplayName,
		&sc.WindowX,
		&sc.WindowY,
		&sc.WindowWidth,
		&sc.WindowHeight,
		&isFixed,
		&sc.CreatedAt,
		&sc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	sc.IsFixed = isFixed != 0
	return sc, nil
}

// GetScreenConfig 按配置标识获取屏幕配置, 不存在返回 ErrNotFound
func (m *Manager) GetScreenConfig(configID string) (*models.ScreenConfig, error) {
	query := fmt.Sprintf(`SELECT %s FROM screen_configs WHERE config_id = ?`, screenConfigColumns)
	sc, err := scanScreenConfig(m.db.QueryRow(query, configID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query screen config: %w", err)
	}
	return sc, nil
}

// SaveScreenConfig 保存屏幕配置, 同一 config_id 覆盖更新
// display_name 仅在请求显式提供时覆盖, 避免覆盖用户自定义名称
func (m *Manager) SaveScreenConfig(req *models.SaveScreenConfigRequest) (*models.ScreenConfig, error) {
	_, err := m.db.Exec(`
		INSERT INTO screen_configs (config_id, display_name, window_x, window_y, window_width, window_height, is_fixed)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(config_id) DO UPDATE SET
			display_name = COALESCE(excluded.display_name, display_name),
			window_x = excluded.window_x,
			window_y = excluded.window_y,
			window_width = excluded.window_width,
			window_height = excluded.window_height,
			is_fixed = excluded.is_fixed,
			updated_at = datetime('now', 'localtime')
	`,
		req.ConfigID,
		req.DisplayName,
		req.WindowX,
		req.WindowY,
		req.WindowWidth,
		req.WindowHeight,
		boolToInt(req.IsFixed),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save screen config: %w", err)
	}

	return m.GetScreenConfig(req.ConfigID)
}

// ListScreenConfigs 获取全部屏幕配置, 按更新时间降序
func (m *Manager) ListScreenConfigs() ([]models.ScreenConfig, error) {
	query := fmt.Sprintf(`SELECT %s FROM screen_configs ORDER BY updated_at DESC`, screenConfigColumns)
	rows, err := m.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query screen configs: %w", err)
	}
	defer rows.Close()

	var configs []models.ScreenConfig
	for rows.Next() {
		sc, err := scanScreenConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan screen config: %w", err)
		}
		configs = append(configs, *sc)
	}
	return configs, rows.Err()
}

// DeleteScreenConfig 删除屏幕配置
func (m *Manager) DeleteScreenConfig(configID string) error {
	_, err := m.db.Exec(`DELETE FROM screen_configs WHERE config_id = ?`, configID)
	if err != nil {
		return fmt.Errorf("failed to delete screen config: %w", err)
	}
	return nil
}

// RenameScreenConfig 更新屏幕配置的显示名称
func (m *Manager) RenameScreenConfig(configID, displayName string) error {
	result, err := m.db.Exec(
		`UPDATE screen_configs SET display_name = ?, updated_at = datetime('now', 'localtime') WHERE config_id = ?`,
		displayName, configID,
	)
	if err != nil {
		return fmt.Errorf("failed to rename screen config: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
