package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/decker502/capslider/pkg/slider"
	"github.com/decker502/capslider/pkg/utils"
)

// 滑动条面板配置
//
// 配置文件位置: data/sliders.yaml（默认随程序嵌入，可通过 --config 覆盖）

const (
	// DefaultMinHitHeight 拖动目标的最小有效高度（像素）
	// 在触摸设备上小于 40 的拖动目标很难命中，轨道本身更矮时用透明区域补足
	DefaultMinHitHeight = 40.0

	// DefaultSeekDurationMs 点击跳转的过渡时长
	DefaultSeekDurationMs = 250
	// DefaultExpandDurationMs 轨道展开/收起的过渡时长
	DefaultExpandDurationMs = 150

	defaultSeekEasing   = "easeOutCubic"
	defaultExpandEasing = "easeInOutSine"
)

// SliderPanelConfig 滑动条面板配置
type SliderPanelConfig struct {
	Window    WindowConfig    `yaml:"window"`
	Animation AnimationConfig `yaml:"animation"`
	Input     InputConfig     `yaml:"input"`
	Sliders   []SliderConfig  `yaml:"sliders"`
}

// WindowConfig 窗口与逻辑屏幕尺寸
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// AnimationConfig 过渡动画参数
type AnimationConfig struct {
	// SeekDurationMs 点击跳转过渡时长（毫秒），0 表示直接跳转
	SeekDurationMs int `yaml:"seekDurationMs"`
	// SeekEasing 点击跳转的缓动函数名称
	SeekEasing string `yaml:"seekEasing"`
	// ExpandDurationMs 轨道展开过渡时长（毫秒）
	ExpandDurationMs int `yaml:"expandDurationMs"`
	// ExpandEasing 轨道展开的缓动函数名称
	ExpandEasing string `yaml:"expandEasing"`
}

// InputConfig 输入参数
type InputConfig struct {
	// MinHitHeight 拖动目标的最小有效高度
	MinHitHeight float64 `yaml:"minHitHeight"`
}

// SliderConfig 单个滑动条的配置
type SliderConfig struct {
	// ID 唯一标识，用于持久化数值
	ID string `yaml:"id"`
	// Label 辅助功能名称，同时显示在轨道上方
	Label string `yaml:"label"`
	// MaxValue 数值上限，必须 > 0
	MaxValue float64 `yaml:"maxValue"`
	// InitialValue 没有已保存数值时使用的初始值
	InitialValue float64 `yaml:"initialValue"`
	// BaseHeight / ExpandedHeight 轨道高度，0 使用默认值 9 / 20
	BaseHeight     float64 `yaml:"baseHeight"`
	ExpandedHeight float64 `yaml:"expandedHeight"`
	// X, Y 轨道左端、垂直中心的屏幕坐标
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	// Width 轨道宽度
	Width float64 `yaml:"width"`
	// Step 辅助功能每次增减的步长，0 表示 maxValue/10
	Step float64 `yaml:"step"`
}

// DefaultSliderPanelConfig 内置的默认面板（移动端或缺少配置文件时使用）
// 与 data/sliders.yaml 保持一致，两端显示相同的面板
func DefaultSliderPanelConfig() *SliderPanelConfig {
	cfg := &SliderPanelConfig{
		Window: WindowConfig{Width: 480, Height: 320, Title: "Capsule Slider"},
		Animation: AnimationConfig{
			SeekDurationMs:   DefaultSeekDurationMs,
			ExpandDurationMs: DefaultExpandDurationMs,
		},
		Sliders: []SliderConfig{
			{ID: "volume", Label: "Volume", MaxValue: 100, InitialValue: 50, X: 40, Y: 90, Width: 400, Step: 5},
			{ID: "playback", Label: "Playback Position", MaxValue: 245, X: 40, Y: 170, Width: 400, Step: 15},
			{ID: "brightness", Label: "Brightness", MaxValue: 1, InitialValue: 0.8,
				BaseHeight: 12, ExpandedHeight: 26, X: 40, Y: 250, Width: 400},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// LoadSliderPanelConfig 从文件加载面板配置
//
// 参数:
//   - path: 配置文件路径（如 "data/sliders.yaml"）
//
// 返回:
//   - *SliderPanelConfig: 加载并验证后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadSliderPanelConfig(path string) (*SliderPanelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read slider config: %w", err)
	}
	return ParseSliderPanelConfig(data)
}

// ParseSliderPanelConfig 解析 YAML 格式的面板配置
func ParseSliderPanelConfig(data []byte) (*SliderPanelConfig, error) {
	var cfg SliderPanelConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse slider config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid slider config: %w", err)
	}
	return &cfg, nil
}

// applyDefaults 为未填写的字段补充默认值
func (c *SliderPanelConfig) applyDefaults() {
	if c.Window.Title == "" {
		c.Window.Title = "Capsule Slider"
	}
	if c.Animation.SeekEasing == "" {
		c.Animation.SeekEasing = defaultSeekEasing
	}
	if c.Animation.ExpandEasing == "" {
		c.Animation.ExpandEasing = defaultExpandEasing
	}
	if c.Input.MinHitHeight == 0 {
		c.Input.MinHitHeight = DefaultMinHitHeight
	}
	for i := range c.Sliders {
		s := &c.Sliders[i]
		if s.BaseHeight == 0 {
			s.BaseHeight = slider.DefaultBaseHeight
		}
		if s.ExpandedHeight == 0 {
			s.ExpandedHeight = slider.DefaultExpandedHeight
		}
	}
}

// Validate 验证配置有效性
//
// 检查：
//   - 窗口尺寸为正
//   - 动画时长非负，缓动函数名称有效
//   - 至少一个滑动条，ID 唯一且非空
//   - 每个滑动条 maxValue > 0、高度非负、宽度为正、初始值在 [0, maxValue] 内
func (c *SliderPanelConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Animation.SeekDurationMs < 0 || c.Animation.ExpandDurationMs < 0 {
		return fmt.Errorf("animation durations must not be negative")
	}
	if _, err := utils.EasingByName(c.Animation.SeekEasing); err != nil {
		return fmt.Errorf("animation.seekEasing: %w", err)
	}
	if _, err := utils.EasingByName(c.Animation.ExpandEasing); err != nil {
		return fmt.Errorf("animation.expandEasing: %w", err)
	}
	if c.Input.MinHitHeight < 0 {
		return fmt.Errorf("input.minHitHeight must not be negative, got %.1f", c.Input.MinHitHeight)
	}
	if len(c.Sliders) == 0 {
		return fmt.Errorf("at least one slider is required")
	}

	seen := make(map[string]bool, len(c.Sliders))
	for i, s := range c.Sliders {
		if s.ID == "" {
			return fmt.Errorf("sliders[%d]: id is required", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("sliders[%d]: duplicate id %q", i, s.ID)
		}
		seen[s.ID] = true

		if s.MaxValue <= 0 || math.IsNaN(s.MaxValue) || math.IsInf(s.MaxValue, 0) {
			return fmt.Errorf("slider %q: maxValue must be > 0, got %v", s.ID, s.MaxValue)
		}
		if s.BaseHeight < 0 || s.ExpandedHeight < 0 {
			return fmt.Errorf("slider %q: heights must not be negative", s.ID)
		}
		if s.Width <= 0 {
			return fmt.Errorf("slider %q: width must be > 0, got %v", s.ID, s.Width)
		}
		if math.IsNaN(s.InitialValue) || s.InitialValue < 0 || s.InitialValue > s.MaxValue {
			return fmt.Errorf("slider %q: initialValue %v out of range [0, %v]", s.ID, s.InitialValue, s.MaxValue)
		}
		if s.Step < 0 {
			return fmt.Errorf("slider %q: step must not be negative", s.ID)
		}
	}
	return nil
}

// SeekDuration 点击跳转过渡时长
func (a AnimationConfig) SeekDuration() time.Duration {
	return time.Duration(a.SeekDurationMs) * time.Millisecond
}

// ExpandDuration 轨道展开过渡时长
func (a AnimationConfig) ExpandDuration() time.Duration {
	return time.Duration(a.ExpandDurationMs) * time.Millisecond
}
