package lunar

import (
	"fmt"
	"time"

	"github.com/dreamlonglll/mini-todo/pkg/models"

	"github.com/6tail/lunar-go/calendar"
)

// GetInfo 获取指定公历日期的农历信息, date 格式 YYYY-MM-DD
func GetInfo(date string) (*models.LunarInfo, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return fromSolar(t.Year(), int(t.Month()), t.Day()), nil
}

func fromSolar(year, month, day int) *models.LunarInfo {
	solar := calendar.NewSolarFromYmd(year, month, day)
	lunar := solar.GetLunar()

	monthText := lunar.GetMonthInChinese() + "月"
	yearText := lunar.GetYearInGanZhi() + "年"

	festival := ""
	if festivals := lunar.GetFestivals(); festivals.Len() > 0 {
		festival = festivals.Front().Value.(string)
	}

	return &models.LunarInfo{
		DayText:    lunar.GetDayInChinese(),
		MonthText:  monthText,
		YearText:   yearText,
		SolarTerm:  lunar.GetJieQi(),
		Festival:   festival,
		IsFirstDay: lunar.GetDay() == 1,
		FullText:   lunar.GetYearInChinese() + "年" + monthText + lunar.GetDayInChinese(),
	}
}

// DisplayText 日历单元格显示文本
// 优先级: 传统节日 > 节气 > 农历日期(初一显示月份)
func DisplayText(date string) (*models.LunarDisplayText, error) {
	info, err := GetInfo(date)
	if err != nil {
		return nil, err
	}

	if info.Festival != "" {
		return &models.LunarDisplayText{Text: info.Festival, Type: "festival"}, nil
	}
	if info.SolarTerm != "" {
		return &models.LunarDisplayText{Text: info.SolarTerm, Type: "solarTerm"}, nil
	}

	text := info.DayText
	if info.IsFirstDay {
		text = info.MonthText
	}
	return &models.LunarDisplayText{Text: text, Type: "lunar"}, nil
}

// MonthInfo 批量获取某月每天的农历信息, 键为 YYYY-MM-DD
func MonthInfo(year, month int) (map[string]models.LunarInfo, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("invalid month %d", month)
	}

	// 下月第 0 天即当月最后一天
	daysInMonth := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.Local).Day()

	result := make(map[string]models.LunarInfo, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		result[date] = *fromSolar(year, month, day)
	}
	return result, nil
}
