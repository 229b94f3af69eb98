package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

const validYAML = `
window:
  width: 480
  height: 320
animation:
  seekDurationMs: 250
  expandDurationMs: 150
sliders:
  - id: volume
    label: Volume
    maxValue: 100
    initialValue: 50
    x: 40
    y: 90
    width: 400
`

func TestParseSliderPanelConfig_Defaults(t *testing.T) {
	cfg, err := ParseSliderPanelConfig([]byte(validYAML))
	if err != nil {
		t.Fatalf("ParseSliderPanelConfig() error: %v", err)
	}

	if cfg.Window.Title != "Capsule Slider" {
		t.Errorf("Title = %q, 期望默认标题", cfg.Window.Title)
	}
	if cfg.Input.MinHitHeight != DefaultMinHitHeight {
		t.Errorf("MinHitHeight = %v, 期望 %v", cfg.Input.MinHitHeight, DefaultMinHitHeight)
	}
	if cfg.Animation.SeekEasing != "easeOutCubic" || cfg.Animation.ExpandEasing != "easeInOutSine" {
		t.Errorf("easing defaults = %q / %q", cfg.Animation.SeekEasing, cfg.Animation.ExpandEasing)
	}
	if cfg.Animation.SeekDuration() != 250*time.Millisecond {
		t.Errorf("SeekDuration = %v, 期望 250ms", cfg.Animation.SeekDuration())
	}
	if cfg.Animation.ExpandDuration() != 150*time.Millisecond {
		t.Errorf("ExpandDuration = %v, 期望 150ms", cfg.Animation.ExpandDuration())
	}

	s := cfg.Sliders[0]
	if s.BaseHeight != 9 || s.ExpandedHeight != 20 {
		t.Errorf("heights = %v / %v, 期望 9 / 20", s.BaseHeight, s.ExpandedHeight)
	}
}

func TestParseSliderPanelConfig_Invalid(t *testing.T) {
	base := func(slider string) string {
		return "window: {width: 100, height: 100}\nsliders:\n" + slider
	}

	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"YAML 语法错误", "window: [", "failed to parse"},
		{"窗口尺寸为 0", "window: {width: 0, height: 10}\nsliders:\n  - {id: a, maxValue: 1, width: 10}", "window size"},
		{"没有滑动条", "window: {width: 10, height: 10}", "at least one slider"},
		{"缺少 ID", base("  - {maxValue: 1, width: 10}"), "id is required"},
		{"重复 ID", base("  - {id: a, maxValue: 1, width: 10}\n  - {id: a, maxValue: 1, width: 10}"), "duplicate id"},
		{"maxValue 为 0", base("  - {id: a, maxValue: 0, width: 10}"), "maxValue"},
		{"maxValue 为 NaN", base("  - {id: a, maxValue: .nan, width: 10}"), "maxValue"},
		{"maxValue 为无穷大", base("  - {id: a, maxValue: .inf, width: 10}"), "maxValue"},
		{"初始值为 NaN", base("  - {id: a, maxValue: 1, width: 10, initialValue: .nan}"), "initialValue"},
		{"负高度", base("  - {id: a, maxValue: 1, width: 10, baseHeight: -2}"), "heights"},
		{"宽度为 0", base("  - {id: a, maxValue: 1}"), "width"},
		{"初始值越界", base("  - {id: a, maxValue: 1, width: 10, initialValue: 2}"), "initialValue"},
		{"负步长", base("  - {id: a, maxValue: 1, width: 10, step: -1}"), "step"},
		{"未知缓动", "window: {width: 10, height: 10}\nanimation: {seekEasing: bounce}\nsliders:\n  - {id: a, maxValue: 1, width: 10}", "seekEasing"},
		{"负时长", "window: {width: 10, height: 10}\nanimation: {seekDurationMs: -1}\nsliders:\n  - {id: a, maxValue: 1, width: 10}", "durations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSliderPanelConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("期望返回错误")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, 期望包含 %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadSliderPanelConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sliders.yaml")
	if err := os.WriteFile(path, []byte(validYAML), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadSliderPanelConfig(path)
	if err != nil {
		t.Fatalf("LoadSliderPanelConfig() error: %v", err)
	}
	if len(cfg.Sliders) != 1 || cfg.Sliders[0].ID != "volume" {
		t.Errorf("unexpected sliders: %+v", cfg.Sliders)
	}

	if _, err := LoadSliderPanelConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("期望缺失文件返回错误")
	}
}

// TestBundledConfig 验证随程序发布的 data/sliders.yaml
func TestBundledConfig(t *testing.T) {
	cfg, err := LoadSliderPanelConfig("../../data/sliders.yaml")
	if err != nil {
		t.Fatalf("bundled config invalid: %v", err)
	}
	if len(cfg.Sliders) == 0 {
		t.Error("bundled config has no sliders")
	}
}

func TestDefaultSliderPanelConfig(t *testing.T) {
	cfg := DefaultSliderPanelConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Animation.SeekDurationMs != DefaultSeekDurationMs {
		t.Errorf("SeekDurationMs = %d, 期望 %d", cfg.Animation.SeekDurationMs, DefaultSeekDurationMs)
	}
}

// TestDefaultMatchesBundledConfig 内置默认面板与 data/sliders.yaml 一致
func TestDefaultMatchesBundledConfig(t *testing.T) {
	bundled, err := LoadSliderPanelConfig("../../data/sliders.yaml")
	if err != nil {
		t.Fatalf("bundled config invalid: %v", err)
	}
	if got := DefaultSliderPanelConfig(); !reflect.DeepEqual(got, bundled) {
		t.Errorf("DefaultSliderPanelConfig() = %+v\n期望与 data/sliders.yaml 一致: %+v", got, bundled)
	}
}
