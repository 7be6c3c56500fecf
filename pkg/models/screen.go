package models

// MonitorSample 单个显示器的采样信息（仅用于生成配置标识，不落库）
type MonitorSample struct {
	Width  int `json:"width"`  // 物理像素宽度
	Height int `json:"height"` // 物理像素高度
	Scale  int `json:"scale"`  // 缩放比例（百分比，如 125）
}

// ScreenConfig 屏幕配置记录，用于存储不同屏幕组合下的窗口状态
type ScreenConfig struct {
	ID int64 `json:"id"`
	// 屏幕配置唯一标识（如 "2_2560x1440@125_1920x1080@100"）
	ConfigID string `json:"configId"`
	// 显示名称（用户可编辑）
	DisplayName  *string `json:"displayName"`
	WindowX      int     `json:"windowX"`
	WindowY      int     `json:"windowY"`
	WindowWidth  int     `json:"windowWidth"`
	WindowHeight int     `json:"windowHeight"`
	// 是否固定模式
	IsFixed   bool   `json:"isFixed"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// SaveScreenConfigRequest 保存/更新屏幕配置的请求
type SaveScreenConfigRequest struct {
	ConfigID     string  `json:"configId"`
	DisplayName  *string `json:"displayName"`
	WindowX      int     `json:"windowX"`
	WindowY      int     `json:"windowY"`
	WindowWidth  int     `json:"windowWidth"`
	WindowHeight int     `json:"windowHeight"`
	IsFixed      bool    `json:"isFixed"`
}
