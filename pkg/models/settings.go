package models

// WindowPosition 窗口位置（物理像素）
type WindowPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// WindowSize 窗口尺寸（物理像素）
type WindowSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// AppSettings 应用设置（旧版单条记录路径，保留兼容）
type AppSettings struct {
	IsFixed        bool            `json:"isFixed"`
	WindowPosition *WindowPosition `json:"windowPosition"`
	WindowSize     *WindowSize     `json:"windowSize"`
	// 文本主题：light（浅色文字，适配深色背景）或 dark（深色文字，适配浅色背景）
	TextTheme string `json:"textTheme"`
}

// ExportData 导出数据格式
type ExportData struct {
	Version    string      `json:"version"`
	ExportedAt string      `json:"exportedAt"`
	Todos      []Todo      `json:"todos"`
	Settings   AppSettings `json:"settings"`
}
