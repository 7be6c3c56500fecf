package models

// AppConfig 应用程序配置
type AppConfig struct {
	// 服务器配置
	Server ServerConfig `json:"server"`

	// 存储配置
	Storage StorageConfig `json:"storage"`

	// 窗口配置
	Window WindowConfig `json:"window"`

	// 节假日数据配置
	Holiday HolidayConfig `json:"holiday"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port            int    `json:"port"`              // 端口号
	Host            string `json:"host"`              // 主机地址
	EnableCORS      bool   `json:"enable_cors"`       // 是否启用 CORS
	AutoOpenBrowser bool   `json:"auto_open_browser"` // 启动时自动打开浏览器
}

// StorageConfig 存储配置
type StorageConfig struct {
	DataDir string `json:"data_dir"` // 数据目录
	LogsDir string `json:"logs_dir"` // 日志存储目录
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Title           string `json:"title"`            // 窗口标题（用于定位窗口句柄）
	DefaultWidth    int    `json:"default_width"`    // 默认宽度（逻辑单位）
	DefaultHeight   int    `json:"default_height"`   // 默认高度（逻辑单位）
	AutosaveMinutes int    `json:"autosave_minutes"` // 窗口状态自动保存间隔（分钟，0 关闭）
}

// HolidayConfig 节假日数据配置
type HolidayConfig struct {
	SourceURL         string `json:"source_url"`           // 数据源 URL 模板，%d 为年份
	MaxRetries        int    `json:"max_retries"`          // 最大重试次数
	RetryBaseDelayMs  int    `json:"retry_base_delay_ms"`  // 重试基础延迟（毫秒）
	PreloadYearsAhead int    `json:"preload_years_ahead"`  // 预加载未来几年
}

// DefaultConfig 返回默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:            9530,
			Host:            "localhost",
			EnableCORS:      true,
			AutoOpenBrowser: false,
		},
		Storage: StorageConfig{
			DataDir: "./data",
			LogsDir: "./data/logs",
		},
		Window: WindowConfig{
			Title:           "mini-todo",
			DefaultWidth:    380,
			DefaultHeight:   600,
			AutosaveMinutes: 5,
		},
		Holiday: HolidayConfig{
			SourceURL:         "https://raw.githubusercontent.com/NateScarlet/holiday-cn/master/%d.json",
			MaxRetries:        3,
			RetryBaseDelayMs:  2000,
			PreloadYearsAhead: 1,
		},
	}
}
