// simulate 无界面自动游玩，用于检查棋盘配置是否可以通关
//
// 用法：
//
//	go run ./cmd/simulate -games 100 -config data/config/board.yaml
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/gonewx/mergeroom/pkg/config"
	"github.com/gonewx/mergeroom/pkg/game"
	"github.com/gonewx/mergeroom/pkg/systems"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "data/config/board.yaml", "棋盘配置文件路径")
	games      = flag.Int("games", 20, "模拟局数")
	seed       = flag.Int64("seed", 1, "随机种子")
	maxMoves   = flag.Int("max-moves", 500, "每局最多操作次数")
	policy     = flag.String("policy", "", "覆盖推进策略（sequential/anyOrder）")
)

// frameStep 每次操作后推进的模拟时间（秒）
const frameStep = 0.25

// result 单局模拟结果
type result struct {
	won    bool
	moves  int
	spawns int
	rounds int
	score  int
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadBoardConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ 加载配置失败: %v\n", err)
		os.Exit(1)
	}
	if *policy != "" {
		if _, err := systems.ParseProgressionPolicy(*policy); err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}
		cfg.Policy = *policy
	}

	rng := rand.New(rand.NewSource(*seed))
	var wins, totalMoves, totalSpawns, totalRounds int
	for i := 0; i < *games; i++ {
		r := play(cfg, rand.New(rand.NewSource(rng.Int63())))
		if r.won {
			wins++
		}
		totalMoves += r.moves
		totalSpawns += r.spawns
		totalRounds += r.rounds
		if *verbose {
			fmt.Printf("game %3d: won=%v moves=%d spawns=%d rounds=%d score=%d\n",
				i+1, r.won, r.moves, r.spawns, r.rounds, r.score)
		}
	}

	n := float64(*games)
	fmt.Printf("策略: %s, 局数: %d\n", cfg.ProgressionPolicy(), *games)
	fmt.Printf("通关: %d/%d\n", wins, *games)
	fmt.Printf("平均操作: %.1f, 平均生成: %.1f, 平均轮次: %.1f\n",
		float64(totalMoves)/n, float64(totalSpawns)/n, float64(totalRounds)/n)
	if wins < *games {
		os.Exit(2)
	}
}

// play 自动游玩一局：优先合成提示的物品对，否则点击提示手指向的生成按钮
func play(cfg *config.BoardConfig, rng *rand.Rand) result {
	s := game.NewSession(cfg, rng)
	s.Start()

	var r result
	for r.moves < *maxMoves && !s.Progression().IsAllComplete() {
		r.moves++

		if a, b, ok := s.Hint(); ok {
			item, _ := s.Grid().Occupant(a)
			target := s.Grid().Position(b)
			if s.BeginDrag(item) {
				s.EndDrag(item, &target)
			}
		} else if kind, ok := s.SuggestedSpawner(); ok {
			if _, spawned := s.SpawnFromSpawner(kind); spawned {
				r.spawns++
			} else if s.PendingContinuations() == 0 {
				// 棋盘已满且没有可合成的物品
				s.NextRound()
				r.rounds++
			}
		}
		s.Update(frameStep)
	}

	// 等待最后一次终极合成完成
	s.Update(cfg.CompletionDelay)
	r.won = s.Progression().IsAllComplete()
	r.score = s.Score()
	return r
}
