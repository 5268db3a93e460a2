package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/mergeroom/pkg/board"
	"github.com/gonewx/mergeroom/pkg/systems"
	"github.com/gonewx/mergeroom/pkg/utils"
)

// 默认棋盘参数（与原版场景一致：5x5 共 25 个槽位）
const (
	DefaultSnapThreshold   = 80.0 // 吸附距离阈值
	DefaultTerminalTier    = 3    // 终极等级（0..3 四个外观阶段）
	DefaultTotalSteps      = 3    // 修房间的故事步骤数
	DefaultCompletionDelay = 1.0  // 终极合成后延迟移除的时间（秒）
	DefaultInitialItems    = 2    // 开局生成的基础物品数量
)

// 游戏窗口尺寸（逻辑分辨率）
const (
	GameWindowWidth  = 720
	GameWindowHeight = 1280
)

// BoardConfig 棋盘与故事推进配置
type BoardConfig struct {
	Layout        LayoutConfig `yaml:"layout"`        // 槽位布局
	SnapThreshold float64      `yaml:"snapThreshold"` // 吸附距离阈值（观察值 80~150）
	TerminalTier  int          `yaml:"terminalTier"`  // 终极等级

	TotalSteps int    `yaml:"totalSteps"` // 故事步骤总数（每步对应一个种类 0..N-1）
	Policy     string `yaml:"policy"`     // 推进策略："sequential"（默认）或 "anyOrder"

	CompletionDelay     float64 `yaml:"completionDelay"`     // 终极合成后移除存活物品的延迟（秒，观察值 0.5~1.5）
	InitialItems        int     `yaml:"initialItems"`        // 开局生成的当前步骤基础物品数量
	RespawnOnMerge      bool    `yaml:"respawnOnMerge"`      // 每次合成后补一个基础物品
	ClearOnStepComplete bool    `yaml:"clearOnStepComplete"` // 步骤完成后清空棋盘并开始新一轮

	Junk JunkConfig `yaml:"junk"` // 开局杂物
}

// LayoutConfig 槽位布局配置
type LayoutConfig struct {
	StartX     float64 `yaml:"startX"`
	StartY     float64 `yaml:"startY"`
	Columns    int     `yaml:"columns"`
	Rows       int     `yaml:"rows"`
	CellWidth  float64 `yaml:"cellWidth"`
	CellHeight float64 `yaml:"cellHeight"`
}

// JunkConfig 杂物生成配置
type JunkConfig struct {
	Count int    `yaml:"count"` // 每轮数量，0 表示不生成
	Mode  string `yaml:"mode"`  // "random"（默认）或 "rotation"
	Kinds []int  `yaml:"kinds"` // 候选种类
	Tier  int    `yaml:"tier"`  // 杂物等级
}

// DefaultBoardConfig 返回默认配置
func DefaultBoardConfig() *BoardConfig {
	cfg := &BoardConfig{InitialItems: DefaultInitialItems}
	applyBoardDefaults(cfg)
	return cfg
}

// LoadBoardConfig 从 YAML 文件加载棋盘配置
// 参数：
//
//	filePath - 配置文件路径
//
// 返回：
//
//	*BoardConfig - 解析后的配置（已应用默认值并通过验证）
//	error - 文件读取、解析或验证失败
func LoadBoardConfig(filePath string) (*BoardConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read board config file %s: %w", filePath, err)
	}

	cfg, err := ParseBoardConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid board config in %s: %w", filePath, err)
	}
	return cfg, nil
}

// ParseBoardConfig 从 YAML 数据解析棋盘配置
func ParseBoardConfig(data []byte) (*BoardConfig, error) {
	// initialItems 允许显式写 0，因此在解析前填默认值
	cfg := BoardConfig{InitialItems: DefaultInitialItems}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse board config YAML: %w", err)
	}

	applyBoardDefaults(&cfg)

	if err := validateBoardConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyBoardDefaults 为缺失的可选字段设置默认值
func applyBoardDefaults(cfg *BoardConfig) {
	if cfg.Layout.Columns == 0 && cfg.Layout.Rows == 0 {
		cfg.Layout = LayoutConfig{
			StartX:     85,
			StartY:     400,
			Columns:    5,
			Rows:       5,
			CellWidth:  110,
			CellHeight: 110,
		}
	}
	if cfg.SnapThreshold == 0 {
		cfg.SnapThreshold = DefaultSnapThreshold
	}
	if cfg.TerminalTier == 0 {
		cfg.TerminalTier = DefaultTerminalTier
	}
	if cfg.TotalSteps == 0 {
		cfg.TotalSteps = DefaultTotalSteps
	}
	if cfg.Policy == "" {
		cfg.Policy = systems.PolicySequential.String()
	}
	if cfg.CompletionDelay == 0 {
		cfg.CompletionDelay = DefaultCompletionDelay
	}
	if cfg.Junk.Mode == "" {
		cfg.Junk.Mode = "random"
	}
}

// validateBoardConfig 验证配置的有效性
func validateBoardConfig(cfg *BoardConfig) error {
	if cfg.Layout.Columns <= 0 || cfg.Layout.Rows <= 0 {
		return fmt.Errorf("layout must have positive columns and rows, got %dx%d", cfg.Layout.Columns, cfg.Layout.Rows)
	}
	if cfg.Layout.CellWidth <= 0 || cfg.Layout.CellHeight <= 0 {
		return fmt.Errorf("layout cell size must be positive, got %vx%v", cfg.Layout.CellWidth, cfg.Layout.CellHeight)
	}
	if cfg.SnapThreshold < 0 {
		return fmt.Errorf("snapThreshold must be >= 0, got %v", cfg.SnapThreshold)
	}
	if cfg.TerminalTier < 1 {
		return fmt.Errorf("terminalTier must be >= 1, got %d", cfg.TerminalTier)
	}
	if cfg.TotalSteps < 1 {
		return fmt.Errorf("totalSteps must be >= 1, got %d", cfg.TotalSteps)
	}
	if _, err := systems.ParseProgressionPolicy(cfg.Policy); err != nil {
		return err
	}
	if cfg.CompletionDelay < 0 {
		return fmt.Errorf("completionDelay must be >= 0, got %v", cfg.CompletionDelay)
	}
	if cfg.InitialItems < 0 {
		return fmt.Errorf("initialItems must be >= 0, got %d", cfg.InitialItems)
	}
	if cfg.InitialItems+cfg.Junk.Count > cfg.Layout.Columns*cfg.Layout.Rows {
		return fmt.Errorf("initialItems (%d) + junk.count (%d) exceed %d slots",
			cfg.InitialItems, cfg.Junk.Count, cfg.Layout.Columns*cfg.Layout.Rows)
	}

	// 杂物配置
	if cfg.Junk.Count < 0 {
		return fmt.Errorf("junk.count must be >= 0, got %d", cfg.Junk.Count)
	}
	if cfg.Junk.Mode != "random" && cfg.Junk.Mode != "rotation" {
		return fmt.Errorf("junk.mode must be \"random\" or \"rotation\", got %q", cfg.Junk.Mode)
	}
	if cfg.Junk.Count > 0 && len(cfg.Junk.Kinds) == 0 {
		return fmt.Errorf("junk.kinds cannot be empty when junk.count > 0")
	}
	for _, kind := range cfg.Junk.Kinds {
		if kind >= 0 && kind < cfg.TotalSteps {
			return fmt.Errorf("junk.kinds must not overlap story kinds [0, %d), got %d", cfg.TotalSteps, kind)
		}
	}
	if cfg.Junk.Tier < 0 || cfg.Junk.Tier >= cfg.TerminalTier {
		return fmt.Errorf("junk.tier must be in [0, %d), got %d", cfg.TerminalTier, cfg.Junk.Tier)
	}

	return nil
}

// GridLayout 转换为布局工具使用的结构
func (c *BoardConfig) GridLayout() utils.GridLayout {
	return utils.GridLayout{
		StartX:     c.Layout.StartX,
		StartY:     c.Layout.StartY,
		Columns:    c.Layout.Columns,
		Rows:       c.Layout.Rows,
		CellWidth:  c.Layout.CellWidth,
		CellHeight: c.Layout.CellHeight,
	}
}

// ProgressionPolicy 返回解析后的推进策略
// 配置已通过验证，解析失败时回退为顺序推进
func (c *BoardConfig) ProgressionPolicy() systems.ProgressionPolicy {
	policy, _ := systems.ParseProgressionPolicy(c.Policy)
	return policy
}

// JunkPolicy 返回杂物生成策略
func (c *BoardConfig) JunkPolicy() board.JunkPolicy {
	mode := board.JunkRandom
	if c.Junk.Mode == "rotation" {
		mode = board.JunkRotation
	}
	kinds := make([]int, len(c.Junk.Kinds))
	copy(kinds, c.Junk.Kinds)
	return board.JunkPolicy{
		Count: c.Junk.Count,
		Mode:  mode,
		Kinds: kinds,
		Tier:  c.Junk.Tier,
	}
}
