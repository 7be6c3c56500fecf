//go:build windows
// +build windows

package window

import (
	"fmt"
	"syscall"
	"unsafe"
)

var (
	user32             = syscall.NewLazyDLL("user32.dll")
	procFindWindow     = user32.NewProc("FindWindowW")
	procGetWindowRect  = user32.NewProc("GetWindowRect")
	procSetWindowPos   = user32.NewProc("SetWindowPos")
	procGetWindowLong  = user32.NewProc("GetWindowLongW")
	procSetWindowLong  = user32.NewProc("SetWindowLongW")
)

const (
	gwlStyle   = ^uintptr(15) // GWL_STYLE = -16
	gwlExStyle = ^uintptr(19) // GWL_EXSTYLE = -20

	wsThickFrame   = 0x00040000
	wsExToolWindow = 0x00000080
	wsExAppWindow  = 0x00040000

	swpNoZOrder   = 0x0004
	swpNoActivate = 0x0010
	swpNoSize     = 0x0001
	swpNoMove     = 0x0002
)

type rect struct {
	Left, Top, Right, Bottom int32
}

// NativeShell 基于 user32 的窗口外壳, 按标题定位窗口句柄
type NativeShell struct {
	title string
}

// NewNativeShell 创建系统窗口外壳
func NewNativeShell(title string) *NativeShell {
	return &NativeShell{title: title}
}

func (s *NativeShell) findWindow() (uintptr, error) {
	titlePtr, err := syscall.UTF16PtrFromString(s.title)
	if err != nil {
		return 0, err
	}
	hwnd, _, _ := procFindWindow.Call(0, uintptr(unsafe.Pointer(titlePtr)))
	if hwnd == 0 {
		return 0, fmt.Errorf("window not found: %s", s.title)
	}
	return hwnd, nil
}

func (s *NativeShell) windowRect() (*rect, error) {
	hwnd, err := s.findWindow()
	if err != nil {
		return nil, err
	}
	var r rect
	ret, _, _ := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return nil, fmt.Errorf("GetWindowRect failed")
	}
	return &r, nil
}

// OuterPosition 获取窗口左上角位置
func (s *NativeShell) OuterPosition() (int, int, error) {
	r, err := s.windowRect()
	if err != nil {
		return 0, 0, err
	}
	return int(r.Left), int(r.Top), nil
}

// OuterSize 获取窗口外框尺寸
func (s *NativeShell) OuterSize() (int, int, error) {
	r, err := s.windowRect()
	if err != nil {
		return 0, 0, err
	}
	return int(r.Right - r.Left), int(r.Bottom - r.Top), nil
}

// SetPosition 移动窗口
func (s *NativeShell) SetPosition(x, y int) error {
	hwnd, err := s.findWindow()
	if err != nil {
		return err
	}
	ret, _, _ := procSetWindowPos.Call(
		hwnd, 0,
		uintptr(x), uintptr(y), 0, 0,
		swpNoZOrder|swpNoActivate|swpNoSize,
	)
	if ret == 0 {
		return fmt.Errorf("SetWindowPos failed")
	}
	return nil
}

// SetSize 调整窗口尺寸
func (s *NativeShell) SetSize(width, height int) error {
	hwnd, err := s.findWindow()
	if err != nil {
		return err
	}
	ret, _, _ := procSetWindowPos.Call(
		hwnd, 0,
		0, 0, uintptr(width), uintptr(height),
		swpNoZOrder|swpNoActivate|swpNoMove,
	)
	if ret == 0 {
		return fmt.Errorf("SetWindowPos failed")
	}
	return nil
}

// SetResizable 通过 WS_THICKFRAME 样式控制窗口是否可调整大小
func (s *NativeShell) SetResizable(resizable bool) error {
	hwnd, err := s.findWindow()
	if err != nil {
		return err
	}
	style, _, _ := procGetWindowLong.Call(hwnd, gwlStyle)
	if resizable {
		style |= wsThickFrame
	} else {
		style &^= wsThickFrame
	}
	procSetWindowLong.Call(hwnd, gwlStyle, style)
	return nil
}

// SetToolWindow 切换工具窗口样式
// 固定模式: 设置 WS_EX_TOOLWINDOW 并去掉 WS_EX_APPWINDOW, 不显示在任务栏, 忽略 Win+D
func (s *NativeShell) SetToolWindow(enabled bool) error {
	hwnd, err := s.findWindow()
	if err != nil {
		return err
	}
	exStyle, _, _ := procGetWindowLong.Call(hwnd, gwlExStyle)
	if enabled {
		exStyle = (exStyle | wsExToolWindow) &^ wsExAppWindow
	} else {
		// 恢复为普通窗口样式
		exStyle = (exStyle &^ wsExToolWindow) | wsExAppWindow
	}
	procSetWindowLong.Call(hwnd, gwlExStyle, exStyle)
	return nil
}

// NewShell 创建当前平台的窗口外壳
func NewShell(title string) Shell {
	return NewNativeShell(title)
}
