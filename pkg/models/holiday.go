package models

// HolidayInfo 某一天的节假日信息
type HolidayInfo struct {
	// 日期（YYYY-MM-DD）
	Date string `json:"date"`
	// 是否休息日
	IsHoliday bool `json:"isHoliday"`
	// 是否工作日（调休上班也算）
	IsWorkday bool `json:"isWorkday"`
	// 是否调休（周末补班）
	IsAdjust bool `json:"isAdjust"`
	// 节假日名称（如 "春节"）
	Name string `json:"name"`
	// 节日类型: 1=法定节假日, 2=调休上班
	Type int `json:"type"`
}

// RawHolidayDay holiday-cn 数据源中的单日记录
type RawHolidayDay struct {
	Date     string `json:"date"`
	Name     string `json:"name"`
	IsOffDay bool   `json:"isOffDay"`
}

// RawHolidayYear holiday-cn 数据源的年度响应
type RawHolidayYear struct {
	Year int             `json:"year"`
	Days []RawHolidayDay `json:"days"`
}
