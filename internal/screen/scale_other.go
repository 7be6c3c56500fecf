//go:build !windows
// +build !windows

package screen

// displayScaleAt 获取包含指定点的显示器缩放比例(非Windows平台按 100% 处理)
func displayScaleAt(x, y int) int {
	return 100
}
