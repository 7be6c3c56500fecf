package models

// Todo 待办事项
type Todo struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	// 颜色（HEX 格式，如 #EF4444）
	Color string `json:"color"`
	// 四象限：1=重要紧急, 2=重要不紧急, 3=紧急不重要, 4=不紧急不重要
	Quadrant     int     `json:"quadrant"`
	NotifyAt     *string `json:"notifyAt"`
	NotifyBefore int     `json:"notifyBefore"`
	Notified     bool    `json:"notified"`
	Completed    bool    `json:"completed"`
	SortOrder    int     `json:"sortOrder"`
	// 开始时间（可为空，空则使用 createdAt）
	StartTime *string `json:"startTime"`
	// 截止时间（可为空）
	EndTime   *string   `json:"endTime"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
	Subtasks  []SubTask `json:"subtasks"`
}

// SubTask 子任务
type SubTask struct {
	ID        int64  `json:"id"`
	ParentID  int64  `json:"parentId"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	SortOrder int    `json:"sortOrder"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// CreateTodoRequest 创建待办请求
type CreateTodoRequest struct {
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	Color        string  `json:"color"`
	Quadrant     int     `json:"quadrant"`
	NotifyAt     *string `json:"notifyAt"`
	NotifyBefore *int    `json:"notifyBefore"`
	StartTime    *string `json:"startTime"`
	EndTime      *string `json:"endTime"`
}

// UpdateTodoRequest 更新待办请求（仅更新非空字段）
type UpdateTodoRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Color        *string `json:"color"`
	Quadrant     *int    `json:"quadrant"`
	NotifyAt     *string `json:"notifyAt"`
	NotifyBefore *int    `json:"notifyBefore"`
	Completed    *bool   `json:"completed"`
	SortOrder    *int    `json:"sortOrder"`
	// 是否明确清除通知时间
	ClearNotifyAt bool    `json:"clearNotifyAt"`
	StartTime     *string `json:"startTime"`
	EndTime       *string `json:"endTime"`
	// 是否明确清除开始/截止时间
	ClearStartTime bool `json:"clearStartTime"`
	ClearEndTime   bool `json:"clearEndTime"`
}

// CreateSubTaskRequest 创建子任务请求
type CreateSubTaskRequest struct {
	ParentID int64  `json:"parentId"`
	Title    string `json:"title"`
}

// UpdateSubTaskRequest 更新子任务请求
type UpdateSubTaskRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
	SortOrder *int    `json:"sortOrder"`
}

// TodoCount 待办数量统计
type TodoCount struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

// PendingNotification 待发送通知的待办
type PendingNotification struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
}
