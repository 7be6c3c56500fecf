package window

// Shell 窗口外壳接口, 封装对系统窗口的几何和样式操作
// 坐标与尺寸均为物理像素
type Shell interface {
	// OuterPosition 获取窗口左上角位置
	OuterPosition() (x, y int, err error)
	// OuterSize 获取窗口外框尺寸
	OuterSize() (width, height int, err error)
	// SetPosition 移动窗口
	SetPosition(x, y int) error
	// SetSize 调整窗口尺寸
	SetSize(width, height int) error
	// SetResizable 设置窗口是否可调整大小
	SetResizable(resizable bool) error
	// SetToolWindow 切换工具窗口样式(不显示在任务栏, 忽略 Win+D)
	SetToolWindow(enabled bool) error
}
