package screen

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dreamlonglll/mini-todo/pkg/logger"
	"github.com/dreamlonglll/mini-todo/pkg/models"

	"github.com/kbinani/screenshot"
)

const (
	// ConfigUnknown 无法枚举显示器时的哨兵标识
	ConfigUnknown = "unknown"
	// ConfigLegacy 旧版本数据的哨兵标识
	ConfigLegacy = "legacy"
)

// Enumerator 显示器枚举接口
type Enumerator interface {
	Displays() ([]models.MonitorSample, error)
}

// DesktopEnumerator 基于系统接口的显示器枚举器
type DesktopEnumerator struct{}

// Displays 枚举当前所有显示器
func (DesktopEnumerator) Displays() ([]models.MonitorSample, error) {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		return nil, nil
	}

	samples := make([]models.MonitorSample, 0, n)
	for i := 0; i < n; i++ {
		bounds := screenshot.GetDisplayBounds(i)
		samples = append(samples, models.MonitorSample{
			Width:  bounds.Dx(),
			Height: bounds.Dy(),
			// 按显示器中心点取各自的 DPI, 混合缩放的多屏组合互不影响
			Scale: displayScaleAt(bounds.Min.X+bounds.Dx()/2, bounds.Min.Y+bounds.Dy()/2),
		})
	}
	return samples, nil
}

// Generate 生成当前屏幕组合的配置标识
// 格式: {数量}_{宽}x{高}@{缩放}_... 按像素面积降序排列,
// 保证同一组显示器无论系统枚举顺序如何都得到相同标识。
// 枚举失败不向上传播, 统一返回 "unknown"。
func Generate(e Enumerator) (configID string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("枚举显示器异常: %v", r)
			configID = ConfigUnknown
		}
	}()

	samples, err := e.Displays()
	if err != nil {
		logger.Warn("枚举显示器失败: %v", err)
		return ConfigUnknown
	}
	if len(samples) == 0 {
		return ConfigUnknown
	}

	// 按像素面积降序, 相同面积保持原有顺序
	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Width*samples[i].Height > samples[j].Width*samples[j].Height
	})

	parts := make([]string, 0, len(samples)+1)
	parts = append(parts, strconv.Itoa(len(samples)))
	for _, s := range samples {
		parts = append(parts, fmt.Sprintf("%dx%d@%d", s.Width, s.Height, s.Scale))
	}
	return strings.Join(parts, "_")
}

var segmentPattern = regexp.MustCompile(`^(\d+)x(\d+)@(\d+)$`)

// DisplayName 根据配置标识生成默认显示名称
// 如 "2_2560x1440@125_1920x1080@100" -> "2屏: 2560x1440 (125%) + 1920x1080 (100%)"
// 无法解析的标识原样返回。
func DisplayName(configID string) string {
	switch configID {
	case ConfigUnknown:
		return "未知屏幕配置"
	case ConfigLegacy:
		return "旧版屏幕配置"
	}

	parts := strings.Split(configID, "_")
	if len(parts) < 2 {
		return configID
	}

	count, err := strconv.Atoi(parts[0])
	if err != nil || count != len(parts)-1 {
		return configID
	}

	segments := make([]string, 0, count)
	for _, part := range parts[1:] {
		m := segmentPattern.FindStringSubmatch(part)
		if m == nil {
			return configID
		}
		segments = append(segments, fmt.Sprintf("%sx%s (%s%%)", m[1], m[2], m[3]))
	}

	return fmt.Sprintf("%d屏: %s", count, strings.Join(segments, " + "))
}

// PrimaryDisplay 返回主显示器的像素尺寸、原点和缩放比例
// 获取失败时回退到 1920x1080@100
func PrimaryDisplay() (x, y, width, height, scale int) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("获取主显示器异常: %v", r)
			x, y, width, height, scale = 0, 0, 1920, 1080, 100
		}
	}()

	if screenshot.NumActiveDisplays() <= 0 {
		return 0, 0, 1920, 1080, 100
	}

	bounds := screenshot.GetDisplayBounds(0)
	scale = displayScaleAt(bounds.Min.X+bounds.Dx()/2, bounds.Min.Y+bounds.Dy()/2)
	return bounds.Min.X, bounds.Min.Y, bounds.Dx(), bounds.Dy(), scale
}
