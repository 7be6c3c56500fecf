//go:build !windows
// +build !windows

package window

import (
	"sync"
)

// MemoryShell 非Windows平台的内存外壳, 仅记录状态
type MemoryShell struct {
	mu         sync.Mutex
	x, y       int
	width      int
	height     int
	resizable  bool
	toolWindow bool
}

// NewMemoryShell 创建内存窗口外壳
func NewMemoryShell() *MemoryShell {
	return &MemoryShell{width: 380, height: 600, resizable: true}
}

func (s *MemoryShell) OuterPosition() (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.x, s.y, nil
}

func (s *MemoryShell) OuterSize() (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height, nil
}

func (s *MemoryShell) SetPosition(x, y int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.x, s.y = x, y
	return nil
}

func (s *MemoryShell) SetSize(width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
	return nil
}

func (s *MemoryShell) SetResizable(resizable bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resizable = resizable
	return nil
}

func (s *MemoryShell) SetToolWindow(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toolWindow = enabled
	return nil
}

// NewShell 创建当前平台的窗口外壳(非Windows平台窗口样式不可控, 退化为内存状态)
func NewShell(title string) Shell {
	return NewMemoryShell()
}
