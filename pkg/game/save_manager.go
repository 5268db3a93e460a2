package game

import (
	"fmt"
	"log"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/mergeroom/pkg/utils"
)

// ProgressData 合成进度存档数据
//
// 保存内容：
//   - 运行ID（区分不同局的存档）
//   - 已完成的故事步骤和得分
//   - 棋盘上的物品（槽位、等级、种类）
type ProgressData struct {
	RunID          string     `yaml:"runId"`          // 本局运行ID（UUID）
	Started        bool       `yaml:"started"`        // 玩家是否已开始游戏
	Score          int        `yaml:"score"`          // 得分
	CompletedKinds []int      `yaml:"completedKinds"` // 已完成的故事步骤种类
	JunkCursor     int        `yaml:"junkCursor"`     // 杂物轮换游标
	Items          []ItemData `yaml:"items"`          // 棋盘物品
	SavedAt        time.Time  `yaml:"savedAt"`        // 保存时间
}

// ItemData 单个物品的存档数据
type ItemData struct {
	Slot int `yaml:"slot"`
	Tier int `yaml:"tier"`
	Kind int `yaml:"kind"`
}

// 存储路径常量
const (
	progressObject = "progress"
	defaultProfile = "default"
)

// SaveManager 进度存档管理器
//
// 职责：
//   - 通过 gdata 跨平台存储加载和保存合成进度
//   - 支持多个存档槽（profile）
//
// 架构说明：
//   - gdataManager 为 nil 时进入降级模式：只保存在内存中，不报错
//   - 数据格式为 YAML，与配置文件保持一致，便于调试
type SaveManager struct {
	gdataManager *gdata.Manager
	profile      string
	memory       []byte // 降级模式下的内存存档
}

// NewSaveManager 创建存档管理器
//
// 参数：
//   - gdataManager: gdata 存储管理器，可为 nil（降级模式）
//   - profile: 存档槽名称，为空时使用 "default"
func NewSaveManager(gdataManager *gdata.Manager, profile string) *SaveManager {
	if profile == "" {
		profile = defaultProfile
	}
	return &SaveManager{
		gdataManager: gdataManager,
		profile:      profile,
	}
}

// OpenGdataManager 打开 gdata 存储
// 失败时返回 nil，调用方使用降级模式继续运行
func OpenGdataManager(appName string) *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[SaveManager] Warning: storage dir not ready: %v", err)
	}
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("[SaveManager] Warning: gdata unavailable: %v (progress will not persist)", err)
		return nil
	}
	return manager
}

// Profile 返回存档槽名称
func (sm *SaveManager) Profile() string {
	return sm.profile
}

// IsPersistent 是否可以持久化（非降级模式）
func (sm *SaveManager) IsPersistent() bool {
	return sm.gdataManager != nil
}

// HasSave 当前存档槽是否有存档
func (sm *SaveManager) HasSave() bool {
	if sm.gdataManager == nil {
		return len(sm.memory) > 0
	}
	return sm.gdataManager.ObjectPropExists(progressObject, sm.profile)
}

// Load 加载存档
//
// 返回：
//   - *ProgressData: 存档数据，没有存档时为 nil
//   - error: 读取或反序列化失败
func (sm *SaveManager) Load() (*ProgressData, error) {
	var raw []byte
	if sm.gdataManager == nil {
		raw = sm.memory
	} else {
		if !sm.gdataManager.ObjectPropExists(progressObject, sm.profile) {
			return nil, nil
		}
		data, err := sm.gdataManager.LoadObjectProp(progressObject, sm.profile)
		if err != nil {
			return nil, fmt.Errorf("failed to load progress %q: %w", sm.profile, err)
		}
		raw = data
	}

	if len(raw) == 0 {
		return nil, nil
	}

	var progress ProgressData
	if err := yaml.Unmarshal(raw, &progress); err != nil {
		return nil, fmt.Errorf("failed to parse progress %q: %w", sm.profile, err)
	}
	log.Printf("[SaveManager] Loaded progress %q: run=%s, score=%d, items=%d",
		sm.profile, progress.RunID, progress.Score, len(progress.Items))
	return &progress, nil
}

// Save 保存存档
func (sm *SaveManager) Save(progress *ProgressData) error {
	if progress == nil {
		return fmt.Errorf("progress data is nil")
	}
	progress.SavedAt = time.Now()

	data, err := yaml.Marshal(progress)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}

	if sm.gdataManager == nil {
		sm.memory = data
		return nil
	}

	if err := sm.gdataManager.SaveObjectProp(progressObject, sm.profile, data); err != nil {
		return fmt.Errorf("failed to save progress %q: %w", sm.profile, err)
	}
	log.Printf("[SaveManager] Saved progress %q: run=%s, score=%d, items=%d",
		sm.profile, progress.RunID, progress.Score, len(progress.Items))
	return nil
}

// Clear 清空当前存档槽（写入空存档，下次 Load 返回 nil）
func (sm *SaveManager) Clear() error {
	if sm.gdataManager == nil {
		sm.memory = nil
		return nil
	}
	if err := sm.gdataManager.SaveObjectProp(progressObject, sm.profile, []byte{}); err != nil {
		return fmt.Errorf("failed to clear progress %q: %w", sm.profile, err)
	}
	return nil
}

// SaveSession 保存会话进度
func (sm *SaveManager) SaveSession(s *Session) error {
	return sm.Save(s.Snapshot())
}

// RestoreSession 将存档恢复到会话
//
// 返回：
//   - bool: 是否有存档被恢复
//   - error: 读取失败
func (sm *SaveManager) RestoreSession(s *Session) (bool, error) {
	progress, err := sm.Load()
	if err != nil {
		return false, err
	}
	if progress == nil {
		return false, nil
	}
	s.Restore(progress)
	return true, nil
}
