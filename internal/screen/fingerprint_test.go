package screen

import (
	"errors"
	"testing"

	"github.com/dreamlonglll/mini-todo/pkg/models"
)

type fakeEnumerator struct {
	samples []models.MonitorSample
	err     error
	panics  bool
}

func (f fakeEnumerator) Displays() ([]models.MonitorSample, error) {
	if f.panics {
		panic("enumeration blew up")
	}
	return f.samples, f.err
}

func TestGenerateOrderIndependent(t *testing.T) {
	big := models.MonitorSample{Width: 2560, Height: 1440, Scale: 125}
	small := models.MonitorSample{Width: 1920, Height: 1080, Scale: 100}

	a := Generate(fakeEnumerator{samples: []models.MonitorSample{big, small}})
	b := Generate(fakeEnumerator{samples: []models.MonitorSample{small, big}})

	want := "2_2560x1440@125_1920x1080@100"
	if a != want {
		t.Errorf("Generate = %q, want %q", a, want)
	}
	if a != b {
		t.Errorf("枚举顺序影响了标识: %q != %q", a, b)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	enum := fakeEnumerator{samples: []models.MonitorSample{
		{Width: 1920, Height: 1080, Scale: 100},
	}}

	first := Generate(enum)
	for i := 0; i < 10; i++ {
		if got := Generate(enum); got != first {
			t.Fatalf("Generate unstable: %q != %q", got, first)
		}
	}
	if first != "1_1920x1080@100" {
		t.Errorf("Generate = %q", first)
	}
}

func TestGenerateUnknownSentinel(t *testing.T) {
	cases := []struct {
		name string
		enum Enumerator
	}{
		{"no displays", fakeEnumerator{}},
		{"error", fakeEnumerator{err: errors.New("no display server")}},
		{"panic", fakeEnumerator{panics: true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Generate(tc.enum); got != ConfigUnknown {
				t.Errorf("Generate = %q, want %q", got, ConfigUnknown)
			}
		})
	}
}

func TestGenerateTiesKeepInputOrder(t *testing.T) {
	// 相同面积不同缩放, 稳定排序应保持输入顺序
	enum := fakeEnumerator{samples: []models.MonitorSample{
		{Width: 1920, Height: 1080, Scale: 125},
		{Width: 1920, Height: 1080, Scale: 100},
	}}

	want := "2_1920x1080@125_1920x1080@100"
	if got := Generate(enum); got != want {
		t.Errorf("Generate = %q, want %q", got, want)
	}
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		configID string
		want     string
	}{
		{"2_2560x1440@125_1920x1080@100", "2屏: 2560x1440 (125%) + 1920x1080 (100%)"},
		{"1_1920x1080@100", "1屏: 1920x1080 (100%)"},
		{ConfigUnknown, "未知屏幕配置"},
		{ConfigLegacy, "旧版屏幕配置"},
		// 无法解析的标识原样返回
		{"garbage", "garbage"},
		{"2_1920x1080@100", "2_1920x1080@100"},
		{"1_1920x1080", "1_1920x1080"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := DisplayName(tc.configID); got != tc.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tc.configID, got, tc.want)
		}
	}
}
