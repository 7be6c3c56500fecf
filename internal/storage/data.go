package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dreamlonglll/mini-todo/pkg/models"
)

// ExportJSON 导出全部待办和设置为 JSON
func (m *Manager) ExportJSON() (string, error) {
	todos, err := m.ListTodos()
	if err != nil {
		return "", fmt.Errorf("failed to load todos for export: %w", err)
	}
	if todos == nil {
		todos = []models.Todo{}
	}

	settings, err := m.GetSettings()
	if err != nil {
		return "", fmt.Errorf("failed to load settings for export: %w", err)
	}

	export := models.ExportData{
		Version:    "1.0",
		ExportedAt: time.Now().Format("2006-01-02T15:04:05-07:00"),
		Todos:      todos,
		Settings:   *settings,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal export data: %w", err)
	}
	return string(data), nil
}

// ImportJSON 导入 JSON 数据, 清空现有待办后恢复
func (m *Manager) ImportJSON(jsonData string) error {
	var importData models.ExportData
	if err := json.Unmarshal([]byte(jsonData), &importData); err != nil {
		return fmt.Errorf("invalid JSON format: %w", err)
	}

	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// 清空现有数据
	if _, err := tx.Exec(`DELETE FROM subtasks`); err != nil {
		return fmt.Errorf("failed to clear subtasks: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM todos`); err != nil {
		return fmt.Errorf("failed to clear todos: %w", err)
	}

	for _, todo := range importData.Todos {
		result, err := tx.Exec(`
			INSERT INTO todos (title, description, color, quadrant, notify_at, notify_before,
			                   notified, completed, sort_order, start_time, end_time, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			todo.Title,
			todo.Description,
			todo.Color,
			todo.Quadrant,
			todo.NotifyAt,
			todo.NotifyBefore,
			boolToInt(todo.Notified),
			boolToInt(todo.Completed),
			todo.SortOrder,
			todo.StartTime,
			todo.EndTime,
			todo.CreatedAt,
			todo.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to import todo: %w", err)
		}

		newID, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get insert id: %w", err)
		}

		for _, subtask := range todo.Subtasks {
			_, err := tx.Exec(`
				INSERT INTO subtasks (parent_id, title, completed, sort_order, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?)
			`,
				newID,
				subtask.Title,
				boolToInt(subtask.Completed),
				subtask.SortOrder,
				subtask.CreatedAt,
				subtask.UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to import subtask: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	// 导入设置 (设置表不在事务内清空, 逐项覆盖即可)
	return m.SaveSettings(&importData.Settings)
}
