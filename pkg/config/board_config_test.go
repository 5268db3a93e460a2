package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gonewx/mergeroom/pkg/board"
	"github.com/gonewx/mergeroom/pkg/systems"
)

// TestDefaultBoardConfig 默认配置应该通过验证
func TestDefaultBoardConfig(t *testing.T) {
	cfg := DefaultBoardConfig()
	if err := validateBoardConfig(cfg); err != nil {
		t.Fatalf("Default config is invalid: %v", err)
	}

	if cfg.GridLayout().SlotCount() != 25 {
		t.Errorf("Expected 25 slots, got %d", cfg.GridLayout().SlotCount())
	}
	if cfg.SnapThreshold != DefaultSnapThreshold {
		t.Errorf("SnapThreshold = %v, want %v", cfg.SnapThreshold, DefaultSnapThreshold)
	}
	if cfg.TerminalTier != 3 || cfg.TotalSteps != 3 {
		t.Errorf("TerminalTier/TotalSteps = %d/%d, want 3/3", cfg.TerminalTier, cfg.TotalSteps)
	}
	if cfg.ProgressionPolicy() != systems.PolicySequential {
		t.Errorf("Default policy = %v, want sequential", cfg.ProgressionPolicy())
	}
}

// TestLoadBoardConfig 从文件加载配置
func TestLoadBoardConfig(t *testing.T) {
	content := `
layout:
  startX: 10
  startY: 20
  columns: 4
  rows: 2
  cellWidth: 100
  cellHeight: 120
snapThreshold: 150
totalSteps: 2
policy: anyOrder
completionDelay: 0.5
respawnOnMerge: true
junk:
  count: 2
  mode: rotation
  kinds: [5, 6]
`
	path := filepath.Join(t.TempDir(), "board.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadBoardConfig(path)
	if err != nil {
		t.Fatalf("LoadBoardConfig() error: %v", err)
	}

	if cfg.GridLayout().SlotCount() != 8 {
		t.Errorf("SlotCount = %d, want 8", cfg.GridLayout().SlotCount())
	}
	if cfg.SnapThreshold != 150 {
		t.Errorf("SnapThreshold = %v, want 150", cfg.SnapThreshold)
	}
	if cfg.TerminalTier != DefaultTerminalTier {
		t.Errorf("TerminalTier should default to %d, got %d", DefaultTerminalTier, cfg.TerminalTier)
	}
	if cfg.ProgressionPolicy() != systems.PolicyAnyOrder {
		t.Errorf("Policy = %v, want anyOrder", cfg.ProgressionPolicy())
	}
	if !cfg.RespawnOnMerge {
		t.Error("RespawnOnMerge should be true")
	}

	junk := cfg.JunkPolicy()
	if junk.Mode != board.JunkRotation || junk.Count != 2 || len(junk.Kinds) != 2 {
		t.Errorf("JunkPolicy = %+v", junk)
	}
}

// TestLoadBoardConfig_MissingFile 文件不存在返回错误
func TestLoadBoardConfig_MissingFile(t *testing.T) {
	_, err := LoadBoardConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read board config file") {
		t.Errorf("Unexpected error: %v", err)
	}
}

// TestParseBoardConfig_Invalid 测试各种无效配置
func TestParseBoardConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"YAML 语法错误", "layout: [", "failed to parse"},
		{"未知策略", "policy: random", "unknown progression policy"},
		{"负的吸附阈值", "snapThreshold: -1", "snapThreshold"},
		{"负的延迟", "completionDelay: -0.5", "completionDelay"},
		{"杂物缺少候选种类", "junk:\n  count: 2", "junk.kinds"},
		{"未知杂物模式", "junk:\n  mode: shuffle", "junk.mode"},
		{"杂物等级过高", "junk:\n  tier: 3", "junk.tier"},
		{"开局物品超过槽位", "layout:\n  columns: 1\n  rows: 1\n  cellWidth: 10\n  cellHeight: 10\ninitialItems: 2", "exceed"},
		{"无效格子尺寸", "layout:\n  columns: 2\n  rows: 2", "cell size"},
		{"杂物种类与故事种类重叠", "totalSteps: 3\njunk:\n  count: 1\n  kinds: [3, 1]", "overlap story kinds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBoardConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

// TestParseBoardConfig_InitialItems 未填写时使用默认值，显式写 0 时保留
func TestParseBoardConfig_InitialItems(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want int
	}{
		{"未填写", "totalSteps: 2", DefaultInitialItems},
		{"显式为 0", "initialItems: 0", 0},
		{"显式为 4", "initialItems: 4", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseBoardConfig([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("ParseBoardConfig() error: %v", err)
			}
			if cfg.InitialItems != tt.want {
				t.Errorf("InitialItems = %d, want %d", cfg.InitialItems, tt.want)
			}
		})
	}
	if DefaultBoardConfig().InitialItems != DefaultInitialItems {
		t.Error("DefaultBoardConfig should use DefaultInitialItems")
	}
}

// TestShippedBoardConfig 仓库自带的配置文件应该可以加载
func TestShippedBoardConfig(t *testing.T) {
	cfg, err := LoadBoardConfig(filepath.Join("..", "..", "data", "config", "board.yaml"))
	if err != nil {
		t.Fatalf("Failed to load shipped config: %v", err)
	}
	if cfg.GridLayout().SlotCount() != 25 {
		t.Errorf("Shipped config should have 25 slots, got %d", cfg.GridLayout().SlotCount())
	}
}
