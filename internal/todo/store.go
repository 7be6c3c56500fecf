package todo

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dreamlonglll/mini-todo/pkg/models"
)

// Backend 待办持久化接口
type Backend interface {
	ListTodos() ([]models.Todo, error)
	CreateTodo(req *models.CreateTodoRequest) (*models.Todo, error)
	UpdateTodo(id int64, req *models.UpdateTodoRequest) (*models.Todo, error)
	DeleteTodo(id int64) error
	ReorderTodos(ids []int64) error
	CreateSubTask(req *models.CreateSubTaskRequest) (*models.SubTask, error)
	UpdateSubTask(id int64, req *models.UpdateSubTaskRequest) (*models.SubTask, error)
	DeleteSubTask(id int64) error
}

// Store 待办内存镜像
// 所有变更先写库再整体重载, 镜像永远反映数据库内容
type Store struct {
	backend Backend

	mu          sync.RWMutex
	todos       []models.Todo
	subscribers []func()
}

// NewStore 创建待办存储
func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Subscribe 注册变更通知回调, 每次镜像刷新后调用
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

// Fetch 从数据库重载全部待办
func (s *Store) Fetch() error {
	todos, err := s.backend.ListTodos()
	if err != nil {
		return fmt.Errorf("failed to fetch todos: %w", err)
	}
	if todos == nil {
		todos = []models.Todo{}
	}

	s.mu.Lock()
	s.todos = todos
	subscribers := make([]func(), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn()
	}
	return nil
}

// All 返回全部待办
func (s *Store) All() []models.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todos := make([]models.Todo, len(s.todos))
	copy(todos, s.todos)
	return todos
}

// Pending 未完成待办, 按排序值升序
func (s *Store) Pending() []models.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pending []models.Todo
	for _, t := range s.todos {
		if !t.Completed {
			pending = append(pending, t)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].SortOrder < pending[j].SortOrder
	})
	return pending
}

// Completed 已完成待办, 按排序值降序
func (s *Store) Completed() []models.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var completed []models.Todo
	for _, t := range s.todos {
		if t.Completed {
			completed = append(completed, t)
		}
	}
	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].SortOrder > completed[j].SortOrder
	})
	return completed
}

// Counts 待办数量统计
func (s *Store) Counts() models.TodoCount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := models.TodoCount{Total: len(s.todos)}
	for _, t := range s.todos {
		if t.Completed {
			count.Completed++
		} else {
			count.Pending++
		}
	}
	return count
}

// Add 创建待办
func (s *Store) Add(req *models.CreateTodoRequest) (*models.Todo, error) {
	created, err := s.backend.CreateTodo(req)
	if err != nil {
		return nil, err
	}
	if err := s.Fetch(); err != nil {
		return nil, err
	}
	return created, nil
}

// Update 更新待办
func (s *Store) Update(id int64, req *models.UpdateTodoRequest) (*models.Todo, error) {
	updated, err := s.backend.UpdateTodo(id, req)
	if err != nil {
		return nil, err
	}
	if err := s.Fetch(); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete 删除待办
func (s *Store) Delete(id int64) error {
	if err := s.backend.DeleteTodo(id); err != nil {
		return err
	}
	return s.Fetch()
}

// ToggleComplete 切换待办完成状态
func (s *Store) ToggleComplete(id int64) (*models.Todo, error) {
	current, ok := s.find(id)
	if !ok {
		return nil, fmt.Errorf("todo %d not found", id)
	}
	completed := !current.Completed
	return s.Update(id, &models.UpdateTodoRequest{Completed: &completed})
}

// Reorder 按给定顺序重排待办
func (s *Store) Reorder(ids []int64) error {
	if err := s.backend.ReorderTodos(ids); err != nil {
		return err
	}
	return s.Fetch()
}

// AddSubTask 创建子任务
func (s *Store) AddSubTask(req *models.CreateSubTaskRequest) (*models.SubTask, error) {
	created, err := s.backend.CreateSubTask(req)
	if err != nil {
		return nil, err
	}
	if err := s.Fetch(); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateSubTask 更新子任务
func (s *Store) UpdateSubTask(id int64, req *models.UpdateSubTaskRequest) (*models.SubTask, error) {
	updated, err := s.backend.UpdateSubTask(id, req)
	if err != nil {
		return nil, err
	}
	if err := s.Fetch(); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteSubTask 删除子任务
func (s *Store) DeleteSubTask(id int64) error {
	if err := s.backend.DeleteSubTask(id); err != nil {
		return err
	}
	return s.Fetch()
}

// ToggleSubTask 切换子任务完成状态
func (s *Store) ToggleSubTask(id int64) (*models.SubTask, error) {
	sub, ok := s.findSubTask(id)
	if !ok {
		return nil, fmt.Errorf("subtask %d not found", id)
	}
	completed := !sub.Completed
	return s.UpdateSubTask(id, &models.UpdateSubTaskRequest{Completed: &completed})
}

func (s *Store) find(id int64) (models.Todo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.todos {
		if t.ID == id {
			return t, true
		}
	}
	return models.Todo{}, false
}

func (s *Store) findSubTask(id int64) (models.SubTask, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.todos {
		for _, sub := range t.Subtasks {
			if sub.ID == id {
				return sub, true
			}
		}
	}
	return models.SubTask{}, false
}
