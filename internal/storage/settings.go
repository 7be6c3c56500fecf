package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dreamlonglll/mini-todo/pkg/models"
)

// getSetting 读取单个设置项, 不存在返回 ErrNotFound
func (m *Manager) getSetting(key string) (string, error) {
	var value string
	err := m.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to query setting %s: %w", key, err)
	}
	return value, nil
}

// setSetting 写入单个设置项
func (m *Manager) setSetting(key, value string) error {
	_, err := m.db.Exec(
		`INSERT OR REPLACE INTO settings (key, value, updated_at) VALUES (?, ?, datetime('now', 'localtime'))`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to save setting %s: %w", key, err)
	}
	return nil
}

// GetSettings 读取应用设置, 缺失项使用默认值
func (m *Manager) GetSettings() (*models.AppSettings, error) {
	settings := &models.AppSettings{
		TextTheme: "dark",
	}

	if val, err := m.getSetting("is_fixed"); err == nil {
		settings.IsFixed = val == "true"
	}

	if val, err := m.getSetting("window_position"); err == nil {
		var pos models.WindowPosition
		if err := json.Unmarshal([]byte(val), &pos); err == nil {
			settings.WindowPosition = &pos
		}
	}

	if val, err := m.getSetting("window_size"); err == nil {
		var size models.WindowSize
		if err := json.Unmarshal([]byte(val), &size); err == nil {
			settings.WindowSize = &size
		}
	}

	if val, err := m.getSetting("text_theme"); err == nil {
		settings.TextTheme = val
	}

	return settings, nil
}

// SaveSettings 保存应用设置
func (m *Manager) SaveSettings(settings *models.AppSettings) error {
	isFixed := "false"
	if settings.IsFixed {
		isFixed = "true"
	}
	if err := m.setSetting("is_fixed", isFixed); err != nil {
		return err
	}

	if settings.WindowPosition != nil {
		data, err := json.Marshal(settings.WindowPosition)
		if err != nil {
			return fmt.Errorf("failed to marshal window position: %w", err)
		}
		if err := m.setSetting("window_position", string(data)); err != nil {
			return err
		}
	}

	if settings.WindowSize != nil {
		data, err := json.Marshal(settings.WindowSize)
		if err != nil {
			return fmt.Errorf("failed to marshal window size: %w", err)
		}
		if err := m.setSetting("window_size", string(data)); err != nil {
			return err
		}
	}

	return m.setSetting("text_theme", settings.TextTheme)
}

// GetNotificationType 获取通知类型, 默认 system
func (m *Manager) GetNotificationType() string {
	val, err := m.getSetting("notification_type")
	if err != nil {
		return "system"
	}
	return val
}

// SetNotificationType 设置通知类型, 仅接受 system/app, 非法值回落到 system
func (m *Manager) SetNotificationType(notificationType string) error {
	switch notificationType {
	case "system", "app":
	default:
		notificationType = "system"
	}
	return m.setSetting("notification_type", notificationType)
}
