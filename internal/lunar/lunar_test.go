package lunar

import (
	"testing"
)

func TestGetInfoSpringFestival(t *testing.T) {
	// 2024-02-10 甲辰年正月初一, 春节
	info, err := GetInfo("2024-02-10")
	if err != nil {
		t.Fatalf("GetInfo: %v", err)
	}
	if info.DayText != "初一" {
		t.Errorf("dayText = %q, want 初一", info.DayText)
	}
	if info.MonthText != "正月" {
		t.Errorf("monthText = %q, want 正月", info.MonthText)
	}
	if info.YearText != "甲辰年" {
		t.Errorf("yearText = %q, want 甲辰年", info.YearText)
	}
	if !info.IsFirstDay {
		t.Error("isFirstDay = false, want true")
	}
	if info.Festival != "春节" {
		t.Errorf("festival = %q, want 春节", info.Festival)
	}
}

func TestGetInfoInvalidDate(t *testing.T) {
	if _, err := GetInfo("2024-13-99"); err == nil {
		t.Fatal("expected error for invalid date")
	}
	if _, err := GetInfo("not-a-date"); err == nil {
		t.Fatal("expected error for garbage input")
	}
}

func TestDisplayTextPriority(t *testing.T) {
	// 节日优先
	festival, err := DisplayText("2024-02-10")
	if err != nil {
		t.Fatalf("DisplayText: %v", err)
	}
	if festival.Type != "festival" || festival.Text != "春节" {
		t.Errorf("festival display = %+v", festival)
	}

	// 无节日时节气其次: 2024-02-04 立春
	term, err := DisplayText("2024-02-04")
	if err != nil {
		t.Fatalf("DisplayText: %v", err)
	}
	if term.Type != "solarTerm" || term.Text != "立春" {
		t.Errorf("solar term display = %+v", term)
	}

	// 普通日显示农历日期
	plain, err := DisplayText("2024-02-12")
	if err != nil {
		t.Fatalf("DisplayText: %v", err)
	}
	if plain.Type != "lunar" || plain.Text != "初三" {
		t.Errorf("plain display = %+v", plain)
	}
}

func TestMonthInfo(t *testing.T) {
	infos, err := MonthInfo(2024, 2)
	if err != nil {
		t.Fatalf("MonthInfo: %v", err)
	}
	// 2024 年 2 月有 29 天
	if len(infos) != 29 {
		t.Errorf("len = %d, want 29", len(infos))
	}
	if info, ok := infos["2024-02-10"]; !ok || info.Festival != "春节" {
		t.Errorf("2024-02-10 = %+v", info)
	}

	if _, err := MonthInfo(2024, 13); err == nil {
		t.Fatal("expected error for month 13")
	}
}
