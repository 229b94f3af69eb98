package game

import (
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/capslider/pkg/utils"
)

// AppName gdata 存储使用的应用名
const AppName = "capslider"

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "sliders"
)

// SliderSettings 持久化的滑动条设置
type SliderSettings struct {
	// Values 各滑动条的数值，键为滑动条 ID
	Values map[string]float64 `yaml:"values"`

	// Fullscreen 启动时是否全屏
	Fullscreen bool `yaml:"fullscreen"`
}

// DefaultSettings 返回默认设置（没有任何已保存的数值）
func DefaultSettings() *SliderSettings {
	return &SliderSettings{
		Values: make(map[string]float64),
	}
}

// OpenStorage 打开 gdata 存储
// 失败时返回 nil，调用方进入降级模式（仅内存设置）
func OpenStorage(appName string) *gdata.Manager {
	if err := utils.EnsureStorageDir(appName); err != nil {
		log.Printf("[SettingsManager] Warning: %v", err)
	}
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("[SettingsManager] Warning: gdata unavailable: %v (settings will not persist)", err)
		return nil
	}
	return manager
}

// SettingsManager 设置管理器
// 负责滑动条数值的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *SliderSettings
	dirty        bool
}

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 始终为 nil，加载失败只记录警告并使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
//
// 返回：
//   - error: 如果读取或反序列化失败返回错误
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	sm.dirty = false

	if sm.gdataManager == nil {
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loaded SliderSettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if loaded.Values == nil {
		loaded.Values = make(map[string]float64)
	}
	// 丢弃损坏的数值
	for id, v := range loaded.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			delete(loaded.Values, id)
		}
	}

	sm.settings = &loaded
	log.Printf("[SettingsManager] Settings loaded: %d slider value(s)", len(loaded.Values))
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		sm.dirty = false
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	sm.dirty = false
	log.Printf("[SettingsManager] Settings saved")
	return nil
}

// SaveIfDirty 仅在有未保存的修改时保存
func (sm *SettingsManager) SaveIfDirty() error {
	if !sm.dirty {
		return nil
	}
	return sm.Save()
}

// ResetSliderValues 清空所有已保存的滑动条数值，保留全屏等其他设置
// 仅修改内存，需调用 Save 持久化
func (sm *SettingsManager) ResetSliderValues() {
	sm.settings.Values = make(map[string]float64)
	sm.dirty = true
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *SliderSettings {
	return sm.settings
}

// SliderValue 读取滑动条的已保存数值
func (sm *SettingsManager) SliderValue(id string) (float64, bool) {
	v, ok := sm.settings.Values[id]
	return v, ok
}

// SetSliderValue 记录滑动条数值
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetSliderValue(id string, value float64) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return
	}
	if old, ok := sm.settings.Values[id]; ok && old == value {
		return
	}
	sm.settings.Values[id] = value
	sm.dirty = true
}

// SliderIDs 已保存数值的滑动条 ID（有序）
func (sm *SettingsManager) SliderIDs() []string {
	ids := make([]string, 0, len(sm.settings.Values))
	for id := range sm.settings.Values {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SetFullscreen 设置全屏模式
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	if sm.settings.Fullscreen == enabled {
		return
	}
	sm.settings.Fullscreen = enabled
	sm.dirty = true
}

// IsDirty 是否有未保存的修改
func (sm *SettingsManager) IsDirty() bool {
	return sm.dirty
}
