package utils

import (
	"math"
	"testing"
)

// TestEaseLinear 测试线性缓动函数
func TestEaseLinear(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"中点", 0.5, 0.5},
		{"终点", 1.0, 1.0},
		{"四分之一", 0.25, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseLinear(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseLinear(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

// TestEasingEndpoints 所有缓动函数都从 0 开始、在 1 结束
func TestEasingEndpoints(t *testing.T) {
	for _, name := range EasingNames() {
		t.Run(name, func(t *testing.T) {
			fn, err := EasingByName(name)
			if err != nil {
				t.Fatalf("EasingByName(%q) error: %v", name, err)
			}
			if v := fn(0); math.Abs(v) > 0.001 {
				t.Errorf("%s(0) = %v, 期望 0", name, v)
			}
			if v := fn(1); math.Abs(v-1) > 0.001 {
				t.Errorf("%s(1) = %v, 期望 1", name, v)
			}
		})
	}
}

// TestEaseOutCubic 测试三次方缓出函数
func TestEaseOutCubic(t *testing.T) {
	if v := EaseOutCubic(0.5); math.Abs(v-0.875) > 0.001 {
		t.Errorf("EaseOutCubic(0.5) = %v, 期望 0.875", v)
	}

	// 验证"开始快，结束慢"的特性
	for p := 0.1; p < 0.5; p += 0.1 {
		if EaseOutCubic(p) <= EaseLinear(p) {
			t.Errorf("EaseOutCubic(%v) 应该大于线性值（开始快）", p)
		}
	}
}

// TestEaseInOutCubic 测试缓入缓出的对称性
func TestEaseInOutCubic(t *testing.T) {
	if v := EaseInOutCubic(0.5); math.Abs(v-0.5) > 0.001 {
		t.Errorf("EaseInOutCubic(0.5) = %v, 期望 0.5", v)
	}
	for _, p := range []float64{0.1, 0.2, 0.3, 0.4} {
		sum := EaseInOutCubic(p) + EaseInOutCubic(1-p)
		if math.Abs(sum-1) > 0.001 {
			t.Errorf("EaseInOutCubic(%v) + EaseInOutCubic(%v) = %v, 期望 1", p, 1-p, sum)
		}
	}
}

// TestLerp 测试线性插值
func TestLerp(t *testing.T) {
	tests := []struct {
		name     string
		a, b, t  float64
		expected float64
	}{
		{"t=0", 10, 20, 0, 10},
		{"t=1", 10, 20, 1, 20},
		{"t=0.5", 10, 20, 0.5, 15},
		{"负向", 75, 20, 0.5, 47.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Lerp(tt.a, tt.b, tt.t)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Lerp(%v, %v, %v) = %v, 期望 %v", tt.a, tt.b, tt.t, result, tt.expected)
			}
		})
	}
}

// TestEasingByNameUnknown 未知名称返回错误
func TestEasingByNameUnknown(t *testing.T) {
	if _, err := EasingByName("bounce"); err == nil {
		t.Error("EasingByName(\"bounce\") 应返回错误")
	}
}
