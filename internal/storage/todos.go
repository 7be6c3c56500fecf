package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dreamlonglll/mini-todo/pkg/models"
)

const todoColumns = `id, title, description, color, quadrant, notify_at, notify_before,
	notified, completed, sort_order, start_time, end_time, created_at, updated_at`

// scanTodo 扫描一行待办记录
func scanTodo(row interface{ Scan(...interface{}) error }) (*models.Todo, error) {
	t := &models.Todo{Subtasks: []models.SubTask{}}
	var notified, completed int
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Color,
		&t.Quadrant,
		&t.NotifyAt,
		&t.NotifyBefore,
		&notified,
		&completed,
		&t.SortOrder,
		&t.StartTime,
		&t.EndTime,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Notified = notified != 0
	t.Completed = completed != 0
	return t, nil
}

func scanSubTask(row interface{ Scan(...interface{}) error }) (*models.SubTask, error) {
	s := &models.SubTask{}
	var completed int
	err := row.Scan(
		&s.ID,
		&s.ParentID,
		&s.Title,
		&completed,
		&s.SortOrder,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Completed = completed != 0
	return s, nil
}

// ListTodos 获取所有待办(含子任务)
// 排序: 未完成在前, sort_order 升序, 创建时间降序
func (m *Manager) ListTodos() ([]models.Todo, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM todos
		ORDER BY completed ASC, sort_order ASC, created_at DESC
	`, todoColumns)

	rows, err := m.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}
	defer rows.Close()

	var todos []models.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}

	// 填充子任务
	for i := range todos {
		subtasks, err := m.listSubTasks(todos[i].ID)
		if err != nil {
			return nil, err
		}
		todos[i].Subtasks = subtasks
	}

	return todos, nil
}

// GetTodo 获取单条待办(含子任务)
func (m *Manager) GetTodo(id int64) (*models.Todo, error) {
	query := fmt.Sprintf(`SELECT %s FROM todos WHERE id = ?`, todoColumns)
	t, err := scanTodo(m.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query todo: %w", err)
	}

	subtasks, err := m.listSubTasks(id)
	if err != nil {
		return nil, err
	}
	t.Subtasks = subtasks
	return t, nil
}

func (m *Manager) listSubTasks(parentID int64) ([]models.SubTask, error) {
	rows, err := m.db.Query(`
		SELECT id, parent_id, title, completed, sort_order, created_at, updated_at
		FROM subtasks WHERE parent_id = ? ORDER BY sort_order ASC
	`, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subtasks: %w", err)
	}
	defer rows.Close()

	subtasks := []models.SubTask{}
	for rows.Next() {
		s, err := scanSubTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subtask: %w", err)
		}
		subtasks = append(subtasks, *s)
	}
	return subtasks, rows.Err()
}

// CreateTodo 创建待办, 排序值为未完成待办的最大值+1
func (m *Manager) CreateTodo(req *models.CreateTodoRequest) (*models.Todo, error) {
	var maxOrder int
	err := m.db.QueryRow(`SELECT COALESCE(MAX(sort_order), -1) FROM todos WHERE completed = 0`).Scan(&maxOrder)
	if err != nil {
		maxOrder = -1
	}

	notifyBefore := 0
	if req.NotifyBefore != nil {
		notifyBefore = *req.NotifyBefore
	}
	quadrant := req.Quadrant
	if quadrant == 0 {
		quadrant = 4
	}

	result, err := m.db.Exec(`
		INSERT INTO todos (title, description, color, quadrant, notify_at, notify_before, start_time, end_time, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		req.Title,
		req.Description,
		req.Color,
		quadrant,
		req.NotifyAt,
		notifyBefore,
		req.StartTime,
		req.EndTime,
		maxOrder+1,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert todo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get insert id: %w", err)
	}

	return m.GetTodo(id)
}

// UpdateTodo 部分更新待办, 仅更新非空字段; clear 标志可显式清除可空字段
func (m *Manager) UpdateTodo(id int64, req *models.UpdateTodoRequest) (*models.Todo, error) {
	var updates []string
	var params []interface{}

	if req.Title != nil {
		updates = append(updates, "title = ?")
		params = append(params, *req.Title)
	}
	if req.Description != nil {
		updates = append(updates, "description = ?")
		params = append(params, *req.Description)
	}
	if req.Color != nil {
		updates = append(updates, "color = ?")
		params = append(params, *req.Color)
	}
	if req.Quadrant != nil {
		updates = append(updates, "quadrant = ?")
		params = append(params, *req.Quadrant)
	}
	// 明确清除通知时间
	if req.ClearNotifyAt {
		updates = append(updates, "notify_at = NULL", "notified = 0")
	} else if req.NotifyAt != nil {
		// 设置新通知时间时，重置已通知状态
		updates = append(updates, "notify_at = ?", "notified = 0")
		params = append(params, *req.NotifyAt)
	}
	if req.NotifyBefore != nil {
		updates = append(updates, "notify_before = ?")
		params = append(params, *req.NotifyBefore)
	}
	if req.Completed != nil {
		updates = append(updates, "completed = ?")
		params = append(params, boolToInt(*req.Completed))
	}
	if req.SortOrder != nil {
		updates = append(updates, "sort_order = ?")
		params = append(params, *req.SortOrder)
	}
	if req.ClearStartTime {
		updates = append(updates, "start_time = NULL")
	} else if req.StartTime != nil {
		updates = append(updates, "start_time = ?")
		params = append(params, *req.StartTime)
	}
	if req.ClearEndTime {
		updates = append(updates, "end_time = NULL")
	} else if req.EndTime != nil {
		updates = append(updates, "end_time = ?")
		params = append(params, *req.EndTime)
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	updates = append(updates, "updated_at = datetime('now', 'localtime')")
	params = append(params, id)

	query := fmt.Sprintf("UPDATE todos SET %s WHERE id = ?", strings.Join(updates, ", "))
	result, err := m.db.Exec(query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}

	return m.GetTodo(id)
}

// DeleteTodo 删除待办(子任务级联删除)
func (m *Manager) DeleteTodo(id int64) error {
	_, err := m.db.Exec(`DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

// ReorderTodos 按给定顺序重新分配排序值
func (m *Manager) ReorderTodos(ids []int64) error {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for index, id := range ids {
		_, err := tx.Exec(
			`UPDATE todos SET sort_order = ?, updated_at = datetime('now', 'localtime') WHERE id = ?`,
			index, id,
		)
		if err != nil {
			return fmt.Errorf("failed to reorder todo %d: %w", id, err)
		}
	}

	return tx.Commit()
}

// CreateSubTask 创建子任务, 排序值为同级最大值+1
func (m *Manager) CreateSubTask(req *models.CreateSubTaskRequest) (*models.SubTask, error) {
	var maxOrder int
	err := m.db.QueryRow(`SELECT COALESCE(MAX(sort_order), -1) FROM subtasks WHERE parent_id = ?`, req.ParentID).Scan(&maxOrder)
	if err != nil {
		maxOrder = -1
	}

	result, err := m.db.Exec(
		`INSERT INTO subtasks (parent_id, title, sort_order) VALUES (?, ?, ?)`,
		req.ParentID, req.Title, maxOrder+1,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert subtask: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get insert id: %w", err)
	}

	return m.getSubTask(id)
}

func (m *Manager) getSubTask(id int64) (*models.SubTask, error) {
	s, err := scanSubTask(m.db.QueryRow(`
		SELECT id, parent_id, title, completed, sort_order, created_at, updated_at
		FROM subtasks WHERE id = ?
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query subtask: %w", err)
	}
	return s, nil
}

// UpdateSubTask 部分更新子任务
func (m *Manager) UpdateSubTask(id int64, req *models.UpdateSubTaskRequest) (*models.SubTask, error) {
	var updates []string
	var params []interface{}

	if req.Title != nil {
		updates = append(updates, "title = ?")
		params = append(params, *req.Title)
	}
	if req.Completed != nil {
		updates = append(updates, "completed = ?")
		params = append(params, boolToInt(*req.Completed))
	}
	if req.SortOrder != nil {
		updates = append(updates, "sort_order = ?")
		params = append(params, *req.SortOrder)
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	updates = append(updates, "updated_at = datetime('now', 'localtime')")
	params = append(params, id)

	query := fmt.Sprintf("UPDATE subtasks SET %s WHERE id = ?", strings.Join(updates, ", "))
	result, err := m.db.Exec(query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to update subtask: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}

	return m.getSubTask(id)
}

// DeleteSubTask 删除子任务
func (m *Manager) DeleteSubTask(id int64) error {
	_, err := m.db.Exec(`DELETE FROM subtasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete subtask: %w", err)
	}
	return nil
}

// GetDueNotifications 获取到期待通知的待办
// 到期条件: 未完成, 未通知, notify_at 提前 notify_before 分钟后不晚于当前本地时间
func (m *Manager) GetDueNotifications() ([]models.PendingNotification, error) {
	rows, err := m.db.Query(`
		SELECT id, title, description
		FROM todos
		WHERE completed = 0
		  AND notified = 0
		  AND notify_at IS NOT NULL
		  AND datetime(notify_at, '-' || notify_before || ' minutes') <= datetime('now', 'localtime')
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query due notifications: %w", err)
	}
	defer rows.Close()

	var pending []models.PendingNotification
	for rows.Next() {
		var p models.PendingNotification
		if err := rows.Scan(&p.ID, &p.Title, &p.Description); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		pending = append(pending, p)
	}
	return pending, rows.Err()
}

// MarkNotified 标记待办已通知
func (m *Manager) MarkNotified(id int64) error {
	_, err := m.db.Exec(
		`UPDATE todos SET notified = 1, updated_at = datetime('now', 'localtime') WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notified: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
