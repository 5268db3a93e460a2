// validate_config 检查棋盘配置文件
//
// 用法：
//
//	go run ./cmd/validate_config data/config/board.yaml
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gonewx/mergeroom/pkg/config"
)

func main() {
	flag.Parse()
	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"data/config/board.yaml"}
	}

	failed := 0
	for _, path := range paths {
		cfg, err := config.LoadBoardConfig(path)
		if err != nil {
			fmt.Printf("❌ %s: %v\n", path, err)
			failed++
			continue
		}

		layout := cfg.GridLayout()
		fmt.Printf("✅ %s\n", path)
		fmt.Printf("   槽位: %dx%d = %d, 吸附阈值: %.0f\n", layout.Columns, layout.Rows, layout.SlotCount(), cfg.SnapThreshold)
		fmt.Printf("   故事步骤: %d (%s), 终极等级: %d\n", cfg.TotalSteps, cfg.ProgressionPolicy(), cfg.TerminalTier)
		fmt.Printf("   开局物品: %d, 杂物: %d (%s)\n", cfg.InitialItems, cfg.Junk.Count, cfg.Junk.Mode)

		spacing := min(layout.CellWidth, layout.CellHeight)
		if cfg.SnapThreshold > spacing {
			fmt.Printf("   ⚠️ snapThreshold %.0f 大于槽位间距 %.0f\n", cfg.SnapThreshold, spacing)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}
