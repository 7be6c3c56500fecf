package models

// LunarInfo 某一天的农历信息
type LunarInfo struct {
	// 农历日期文本（如 初一、十五）
	DayText string `json:"dayText"`
	// 农历月份（如 正月、二月）
	MonthText string `json:"monthText"`
	// 农历年份干支（如 甲辰年）
	YearText string `json:"yearText"`
	// 节气（如 立春、清明），无则为空
	SolarTerm string `json:"solarTerm"`
	// 传统节日（如 春节、中秋节），无则为空
	Festival string `json:"festival"`
	// 是否农历初一
	IsFirstDay bool `json:"isFirstDay"`
	// 完整农历日期（如 二〇二四年正月初一）
	FullText string `json:"fullText"`
}

// LunarDisplayText 日历单元格的显示文本
// 优先级: 传统节日 > 节气 > 农历日期（初一显示月份）
type LunarDisplayText struct {
	Text string `json:"text"`
	// 类型: festival / solarTerm / lunar
	Type string `json:"type"`
}
