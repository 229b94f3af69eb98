// Package app 提供滑动条面板应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/capslider/pkg/config"
	"github.com/decker502/capslider/pkg/ecs"
	"github.com/decker502/capslider/pkg/embedded"
	"github.com/decker502/capslider/pkg/entities"
	"github.com/decker502/capslider/pkg/game"
	"github.com/decker502/capslider/pkg/slider"
	"github.com/decker502/capslider/pkg/systems"
	"github.com/decker502/capslider/pkg/utils"
)

const (
	// embeddedConfigPath 嵌入的默认面板配置
	embeddedConfigPath = "data/sliders.yaml"

	deltaTime       = 1.0 / 60.0
	captionDuration = 2.5 // 辅助功能播报文字的显示时长（秒）

	mobileMinHitHeight = 48.0
)

var backgroundColor = color.NRGBA{R: 58, G: 62, B: 72, A: 255}

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 面板配置文件路径，为空则使用嵌入的 data/sliders.yaml
	ConfigPath string
	// Reset 忽略已保存的滑动条数值
	Reset bool
	// Ephemeral 不打开 gdata 存储，设置只保存在内存中
	Ephemeral bool
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	panel    *config.SliderPanelConfig
	settings *game.SettingsManager

	entityManager       *ecs.EntityManager
	sliderSystem        *systems.SliderSystem
	accessibilitySystem *systems.SliderAccessibilitySystem
	renderSystem        *systems.SliderRenderSystem

	bindings map[string]*slider.ValueBinding

	caption      string
	captionTimer float64

	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 使用嵌入配置前，必须先调用 embedded.Init() 初始化嵌入资源；
// 未初始化时使用内置的默认面板。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	panel, err := loadPanelConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("面板配置加载失败: %w", err)
	}
	log.Printf("[Config] Loaded %d slider(s)", len(panel.Sliders))

	// 触摸设备上放大命中区域
	if utils.IsMobile() && panel.Input.MinHitHeight < mobileMinHitHeight {
		panel.Input.MinHitHeight = mobileMinHitHeight
	}

	var storage *gdata.Manager
	if !cfg.Ephemeral {
		storage = game.OpenStorage(game.AppName)
	}
	settings, _ := game.NewSettingsManager(storage)
	if cfg.Reset {
		settings.ResetSliderValues()
		log.Printf("[App] Persisted slider values ignored (--reset)")
	}

	a, err := newApp(panel, settings)
	if err != nil {
		return nil, err
	}
	a.verbose = cfg.Verbose

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}
	return a, nil
}

// newApp 根据面板配置创建实体和系统
func newApp(panel *config.SliderPanelConfig, settings *game.SettingsManager) (*App, error) {
	em := ecs.NewEntityManager()

	renderSystem, err := systems.NewSliderRenderSystem(em)
	if err != nil {
		return nil, fmt.Errorf("渲染系统初始化失败: %w", err)
	}

	a := &App{
		panel:               panel,
		settings:            settings,
		entityManager:       em,
		sliderSystem:        systems.NewSliderSystem(em),
		accessibilitySystem: systems.NewSliderAccessibilitySystem(em),
		renderSystem:        renderSystem,
		bindings:            make(map[string]*slider.ValueBinding, len(panel.Sliders)),
	}
	a.accessibilitySystem.SetAnnouncer(a.announce)

	callbacks := entities.SliderCallbacks{
		OnEditingChanged:   a.onEditingChanged,
		OnExtremityChanged: a.onExtremityChanged,
	}

	for _, sc := range panel.Sliders {
		initial := sc.InitialValue
		if saved, ok := settings.SliderValue(sc.ID); ok {
			initial = saved
			log.Printf("[App] Restored %q = %.2f", sc.ID, saved)
		}

		binding := slider.NewValueBinding(initial)
		id := sc.ID
		binding.Subscribe(func(v float64) {
			settings.SetSliderValue(id, v)
		})

		if _, err := entities.NewSliderEntity(em, sc, panel.Animation, panel.Input, binding, callbacks); err != nil {
			return nil, fmt.Errorf("滑动条创建失败: %w", err)
		}
		a.bindings[sc.ID] = binding
	}

	return a, nil
}

// loadPanelConfig 按优先级加载面板配置：命令行路径 > 嵌入文件 > 内置默认
func loadPanelConfig(path string) (*config.SliderPanelConfig, error) {
	if path != "" {
		log.Printf("[Config] Loading slider config from %s", path)
		return config.LoadSliderPanelConfig(path)
	}
	if embedded.IsInitialized() {
		data, err := embedded.ReadFile(embeddedConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded slider config: %w", err)
		}
		return config.ParseSliderPanelConfig(data)
	}
	log.Printf("[Config] Embedded data unavailable, using built-in slider panel")
	return config.DefaultSliderPanelConfig(), nil
}

// onEditingChanged 编辑结束时保存数值
func (a *App) onEditingChanged(id string, editing bool) {
	if editing {
		log.Printf("[App] Editing %q started", id)
		return
	}
	log.Printf("[App] Editing %q ended", id)
	if err := a.settings.SaveIfDirty(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// onExtremityChanged 数值到达两端
// 桌面端没有触感反馈，这里只记录日志
func (a *App) onExtremityChanged(id string, atExtremity bool) {
	if atExtremity {
		log.Printf("[App] %q reached a bound", id)
	}
}

// announce 显示辅助功能播报
func (a *App) announce(message string) {
	a.caption = message
	a.captionTimer = captionDuration
}

// Update 更新应用逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.panel.Window.Width, a.panel.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.panel.Window.Width, a.panel.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.update(deltaTime)
	return nil
}

// update 推进所有系统，与窗口操作分离以便测试
func (a *App) update(dt float64) {
	a.sliderSystem.Update(dt)
	a.accessibilitySystem.Update(dt)
	a.entityManager.RemoveMarkedEntities()
	a.tickCaption(dt)
}

// tickCaption 播报文字倒计时
func (a *App) tickCaption(dt float64) {
	if a.captionTimer <= 0 {
		return
	}
	a.captionTimer -= dt
	if a.captionTimer <= 0 {
		a.caption = ""
	}
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		a.settings.SetFullscreen(false)
	} else {
		ebiten.SetFullscreen(true)
		a.settings.SetFullscreen(true)
	}
	if err := a.settings.SaveIfDirty(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	a.renderSystem.Draw(screen)

	if a.caption != "" {
		face := a.renderSystem.LabelFace()
		w, h := text.Measure(a.caption, face, 0)
		op := &text.DrawOptions{}
		op.GeoM.Translate((float64(a.panel.Window.Width)-w)/2, float64(a.panel.Window.Height)-h-12)
		op.ColorScale.ScaleWithColor(color.White)
		text.Draw(screen, a.caption, face, op)
	}
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.panel.Window.Width, a.panel.Window.Height
}

// Window 返回窗口配置，供入口设置窗口大小和标题
func (a *App) Window() config.WindowConfig {
	return a.panel.Window
}

// Binding 返回滑动条的数值通道
func (a *App) Binding(id string) (*slider.ValueBinding, bool) {
	b, ok := a.bindings[id]
	return b, ok
}

// Shutdown 保存未写入的设置，在窗口关闭后调用
func (a *App) Shutdown() {
	if err := a.settings.SaveIfDirty(); err != nil {
		log.Printf("[App] Warning: failed to save settings on exit: %v", err)
	}
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
