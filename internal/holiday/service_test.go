package holiday

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dreamlonglll/mini-todo/pkg/models"
)

type fakeFetcher struct {
	mu       sync.Mutex
	calls    int
	failures int
	days     []models.RawHolidayDay
}

func (f *fakeFetcher) FetchYear(ctx context.Context, year int) ([]models.RawHolidayDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("connection reset")
	}
	return f.days, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testConfig() models.HolidayConfig {
	return models.HolidayConfig{MaxRetries: 3, RetryBaseDelayMs: 0}
}

var sampleDays = []models.RawHolidayDay{
	{Date: "2026-01-01", Name: "元旦", IsOffDay: true},
	{Date: "2026-01-04", Name: "元旦", IsOffDay: false},
}

func TestYearHolidaysRetriesThenCaches(t *testing.T) {
	fetcher := &fakeFetcher{failures: 2, days: sampleDays}
	s := NewService(fetcher, testConfig())

	holidays := s.YearHolidays(context.Background(), 2026)
	if len(holidays) != 2 {
		t.Fatalf("holidays = %d entries, want 2", len(holidays))
	}
	if fetcher.callCount() != 3 {
		t.Errorf("calls = %d, want 3 (2 failures + 1 success)", fetcher.callCount())
	}

	// 第二次查询走缓存, 不再请求
	s.YearHolidays(context.Background(), 2026)
	if fetcher.callCount() != 3 {
		t.Errorf("calls after cached query = %d, want 3", fetcher.callCount())
	}
}

func TestAllAttemptsFailNotCached(t *testing.T) {
	fetcher := &fakeFetcher{failures: 100, days: sampleDays}
	s := NewService(fetcher, testConfig())

	holidays := s.YearHolidays(context.Background(), 2026)
	if len(holidays) != 0 {
		t.Fatalf("holidays = %+v, want empty", holidays)
	}
	if fetcher.callCount() != 3 {
		t.Errorf("calls = %d, want 3", fetcher.callCount())
	}

	// 失败结果不缓存, 再查会重新尝试
	s.YearHolidays(context.Background(), 2026)
	if fetcher.callCount() != 6 {
		t.Errorf("calls after retry = %d, want 6", fetcher.callCount())
	}
}

func TestProjections(t *testing.T) {
	fetcher := &fakeFetcher{days: sampleDays}
	s := NewService(fetcher, testConfig())
	ctx := context.Background()

	if !s.IsHoliday(ctx, "2026-01-01") {
		t.Error("2026-01-01 should be a holiday")
	}
	if s.IsAdjustWorkday(ctx, "2026-01-01") {
		t.Error("2026-01-01 should not be an adjust workday")
	}
	if !s.IsAdjustWorkday(ctx, "2026-01-04") {
		t.Error("2026-01-04 should be an adjust workday")
	}

	info := s.GetHolidayInfo(ctx, "2026-01-01")
	if info == nil || info.Name != "元旦" || info.Type != 1 {
		t.Errorf("info = %+v", info)
	}
	adjust := s.GetHolidayInfo(ctx, "2026-01-04")
	if adjust == nil || adjust.Type != 2 || !adjust.IsWorkday {
		t.Errorf("adjust = %+v", adjust)
	}

	// 普通日不在数据中
	if got := s.GetHolidayInfo(ctx, "2026-03-03"); got != nil {
		t.Errorf("normal day info = %+v, want nil", got)
	}

	// 非法日期
	if got := s.GetHolidayInfo(ctx, "bad"); got != nil {
		t.Errorf("invalid date info = %+v, want nil", got)
	}
}

func TestPreloadYearsDedupes(t *testing.T) {
	fetcher := &fakeFetcher{days: sampleDays}
	s := NewService(fetcher, testConfig())

	s.PreloadYears(context.Background(), []int{2026, 2026, 2027})
	if fetcher.callCount() != 2 {
		t.Errorf("calls = %d, want 2 (one per distinct year)", fetcher.callCount())
	}

	// 已缓存的年份不再拉取
	s.PreloadYears(context.Background(), []int{2026, 2027})
	if fetcher.callCount() != 2 {
		t.Errorf("calls after second preload = %d, want 2", fetcher.callCount())
	}
}

func TestClearCache(t *testing.T) {
	fetcher := &fakeFetcher{days: sampleDays}
	s := NewService(fetcher, testConfig())
	ctx := context.Background()

	s.YearHolidays(ctx, 2026)
	if got := s.CachedYears(); len(got) != 1 {
		t.Fatalf("cached years = %v", got)
	}

	s.ClearCache()
	if got := s.CachedYears(); len(got) != 0 {
		t.Fatalf("cached years after clear = %v", got)
	}

	s.YearHolidays(ctx, 2026)
	if fetcher.callCount() != 2 {
		t.Errorf("calls = %d, want 2 (re-fetch after clear)", fetcher.callCount())
	}
}
