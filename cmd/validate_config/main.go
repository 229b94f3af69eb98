// validate_config 校验滑动条面板配置文件
//
// 用法：
//
//	go run ./cmd/validate_config [--config data/sliders.yaml]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decker502/capslider/pkg/config"
	"github.com/decker502/capslider/pkg/slider"
)

var configPath = flag.String("config", "data/sliders.yaml", "配置文件路径")

func main() {
	flag.Parse()

	panel, err := config.LoadSliderPanelConfig(*configPath)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ YAML 格式正确: %s\n", *configPath)
	fmt.Printf("✅ 窗口 %dx%d %q\n", panel.Window.Width, panel.Window.Height, panel.Window.Title)
	fmt.Printf("✅ 过渡: 跳转 %v (%s), 展开 %v (%s)\n",
		panel.Animation.SeekDuration(), panel.Animation.SeekEasing,
		panel.Animation.ExpandDuration(), panel.Animation.ExpandEasing)
	fmt.Printf("✅ 滑动条数量: %d\n", len(panel.Sliders))

	for _, sc := range panel.Sliders {
		// 用控制器走一遍构造，确保初始值收回后的结果和预期一致
		binding := slider.NewValueBinding(sc.InitialValue)
		c, err := slider.New(binding, slider.Options{
			MaxValue:       sc.MaxValue,
			BaseHeight:     sc.BaseHeight,
			ExpandedHeight: sc.ExpandedHeight,
			Label:          sc.Label,
		})
		if err != nil {
			fmt.Printf("❌ %s: %v\n", sc.ID, err)
			os.Exit(1)
		}
		fmt.Printf("   - %-12s max=%-8g value=%-8g height=%g/%g width=%g\n",
			sc.ID, c.MaxValue(), c.Value(), c.BaseHeight(), c.ExpandedHeight(), sc.Width)
	}
}
