//go:build windows
// +build windows

package screen

import (
	"syscall"
	"unsafe"
)

var (
	user32               = syscall.NewLazyDLL("user32.dll")
	gdi32                = syscall.NewLazyDLL("gdi32.dll")
	shcore               = syscall.NewLazyDLL("shcore.dll")
	procGetDC            = user32.NewProc("GetDC")
	procReleaseDC        = user32.NewProc("ReleaseDC")
	procGetDeviceCaps    = gdi32.NewProc("GetDeviceCaps")
	procMonitorFromPoint = user32.NewProc("MonitorFromPoint")
	procGetDpiForMonitor = shcore.NewProc("GetDpiForMonitor")
)

const (
	// LOGPIXELSX 水平逻辑 DPI
	logPixelsX = 88

	monitorDefaultToNearest = 2
	mdtEffectiveDpi         = 0
)

// displayScaleAt 获取包含指定点的显示器缩放比例(百分比), 96 DPI 为 100%
// 优先使用各显示器独立 DPI (Windows 8.1+ 的 shcore), 不可用时回退系统 DPI
func displayScaleAt(x, y int) int {
	if err := procGetDpiForMonitor.Find(); err == nil {
		// POINT 结构体按值传递, 64 位下打包为单个参数
		pt := uintptr(uint32(int32(x))) | uintptr(uint32(int32(y)))<<32
		monitor, _, _ := procMonitorFromPoint.Call(pt, monitorDefaultToNearest)
		if monitor != 0 {
			var dpiX, dpiY uint32
			ret, _, _ := procGetDpiForMonitor.Call(
				monitor,
				mdtEffectiveDpi,
				uintptr(unsafe.Pointer(&dpiX)),
				uintptr(unsafe.Pointer(&dpiY)),
			)
			// S_OK = 0
			if ret == 0 && dpiX > 0 {
				return int(dpiX) * 100 / 96
			}
		}
	}

	return systemScalePercent()
}

// systemScalePercent 读取系统 DPI
func systemScalePercent() int {
	hdc, _, _ := procGetDC.Call(0)
	if hdc == 0 {
		return 100
	}
	defer procReleaseDC.Call(0, hdc)

	dpi, _, _ := procGetDeviceCaps.Call(hdc, uintptr(logPixelsX))
	if dpi == 0 {
		return 100
	}
	return int(dpi) * 100 / 96
}
