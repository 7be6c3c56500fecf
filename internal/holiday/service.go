package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/dreamlonglll/mini-todo/pkg/logger"
	"github.com/dreamlonglll/mini-todo/pkg/models"

	"github.com/puzpuzpuz/xsync/v4"
)

// Fetcher 节假日数据源接口
type Fetcher interface {
	FetchYear(ctx context.Context, year int) ([]models.RawHolidayDay, error)
}

// HTTPFetcher 从 holiday-cn 开源数据获取年度节假日
type HTTPFetcher struct {
	client      *http.Client
	urlTemplate string
}

// NewHTTPFetcher 创建 HTTP 数据源, urlTemplate 中 %d 为年份
func NewHTTPFetcher(urlTemplate string) *HTTPFetcher {
	return &HTTPFetcher{
		client:      &http.Client{Timeout: 15 * time.Second},
		urlTemplate: urlTemplate,
	}
}

// FetchYear 拉取指定年份的节假日数据
func (f *HTTPFetcher) FetchYear(ctx context.Context, year int) ([]models.RawHolidayDay, error) {
	url := fmt.Sprintf(f.urlTemplate, year)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday source returned status %d", resp.StatusCode)
	}

	var payload models.RawHolidayYear
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse holiday response: %w", err)
	}
	return payload.Days, nil
}

// Service 节假日查询服务, 按年缓存
// 拉取失败返回空数据但不缓存, 下次查询重新尝试
type Service struct {
	fetcher    Fetcher
	maxRetries int
	baseDelay  time.Duration

	cache *xsync.Map[int, map[string]models.HolidayInfo]

	// 预加载去重
	mu       sync.Mutex
	inflight map[int]bool
}

// NewService 创建节假日服务
func NewService(fetcher Fetcher, cfg models.HolidayConfig) *Service {
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 1
	}
	return &Service{
		fetcher:    fetcher,
		maxRetries: maxRetries,
		baseDelay:  time.Duration(cfg.RetryBaseDelayMs) * time.Millisecond,
		cache:      xsync.NewMap[int, map[string]models.HolidayInfo](),
		inflight:   map[int]bool{},
	}
}

// YearHolidays 获取某年的节假日数据, 键为 YYYY-MM-DD
func (s *Service) YearHolidays(ctx context.Context, year int) map[string]models.HolidayInfo {
	if cached, ok := s.cache.Load(year); ok {
		return cached
	}

	holidays := s.fetchWithRetry(ctx, year)

	// 仅缓存有效数据, 空结果下次重试
	if len(holidays) > 0 {
		s.cache.Store(year, holidays)
	}
	return holidays
}

// fetchWithRetry 带重试拉取并转换为查询结构
func (s *Service) fetchWithRetry(ctx context.Context, year int) map[string]models.HolidayInfo {
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		days, err := s.fetcher.FetchYear(ctx, year)
		if err == nil {
			result := make(map[string]models.HolidayInfo, len(days))
			for _, day := range days {
				result[day.Date] = models.HolidayInfo{
					Date:      day.Date,
					IsHoliday: day.IsOffDay,
					IsWorkday: !day.IsOffDay,
					// 不是休息日但出现在节假日数据中, 说明是调休上班
					IsAdjust: !day.IsOffDay,
					Name:     day.Name,
					Type:     holidayType(day.IsOffDay),
				}
			}
			return result
		}

		logger.Warn("获取 %d 年节假日数据失败 (第 %d/%d 次): %v", year, attempt, s.maxRetries, err)
		if attempt < s.maxRetries {
			// 递增延迟重试
			select {
			case <-time.After(s.baseDelay * time.Duration(attempt)):
			case <-ctx.Done():
				return map[string]models.HolidayInfo{}
			}
		}
	}

	logger.Error("获取 %d 年节假日数据全部 %d 次尝试失败", year, s.maxRetries)
	return map[string]models.HolidayInfo{}
}

func holidayType(isOffDay bool) int {
	if isOffDay {
		return 1
	}
	return 2
}

// GetHolidayInfo 获取某天的节假日信息, 普通日返回 nil
// date 格式 YYYY-MM-DD
func (s *Service) GetHolidayInfo(ctx context.Context, date string) *models.HolidayInfo {
	year, ok := yearOf(date)
	if !ok {
		return nil
	}
	if info, found := s.YearHolidays(ctx, year)[date]; found {
		return &info
	}
	return nil
}

// IsHoliday 某天是否法定休息日
func (s *Service) IsHoliday(ctx context.Context, date string) bool {
	info := s.GetHolidayInfo(ctx, date)
	return info != nil && info.IsHoliday
}

// IsAdjustWorkday 某天是否调休上班日
func (s *Service) IsAdjustWorkday(ctx context.Context, date string) bool {
	info := s.GetHolidayInfo(ctx, date)
	return info != nil && info.IsAdjust
}

// PreloadYears 并发预加载多个年份, 重复年份和已缓存年份跳过
func (s *Service) PreloadYears(ctx context.Context, years []int) {
	var wg sync.WaitGroup
	for _, year := range dedupe(years) {
		if _, ok := s.cache.Load(year); ok {
			continue
		}

		s.mu.Lock()
		if s.inflight[year] {
			s.mu.Unlock()
			continue
		}
		s.inflight[year] = true
		s.mu.Unlock()

		wg.Add(1)
		go func(y int) {
			defer wg.Done()
			defer func() {
				s.mu.Lock()
				delete(s.inflight, y)
				s.mu.Unlock()
			}()
			s.YearHolidays(ctx, y)
		}(year)
	}
	wg.Wait()
}

// ClearCache 清空节假日缓存
func (s *Service) ClearCache() {
	s.cache.Clear()
}

// CachedYears 当前已缓存的年份
func (s *Service) CachedYears() []int {
	var years []int
	s.cache.Range(func(year int, _ map[string]models.HolidayInfo) bool {
		years = append(years, year)
		return true
	})
	return years
}

func yearOf(date string) (int, bool) {
	if len(date) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0, false
	}
	return year, true
}

func dedupe(years []int) []int {
	seen := map[int]bool{}
	var result []int
	for _, y := range years {
		if !seen[y] {
			seen[y] = true
			result = append(result, y)
		}
	}
	return result
}
