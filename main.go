package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/mergeroom/pkg/app"
	"github.com/gonewx/mergeroom/pkg/config"
	"github.com/gonewx/mergeroom/pkg/embedded"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "", "棋盘配置文件路径（为空时使用内置配置）")
	seed       = flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	profile    = flag.String("profile", "", "存档槽名称")
	fresh      = flag.Bool("fresh", false, "忽略已有存档，开始新的一局")
	mute       = flag.Bool("mute", false, "关闭音效")
	volume     = flag.Float64("volume", 0, "音效音量 (0-1]，0 表示使用已保存的设置")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:         *verbose,
		BoardConfigPath: *configPath,
		Seed:            *seed,
		Profile:         *profile,
		Fresh:           *fresh,
		Mute:            *mute,
		Volume:          *volume,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "游戏初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.GameWindowWidth/2, config.GameWindowHeight/2)
	ebiten.SetWindowTitle("Merge Room")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	runErr := ebiten.RunGame(gameApp)
	gameApp.SaveOnExit()
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		fmt.Fprintf(os.Stderr, "游戏异常退出: %v\n", runErr)
		os.Exit(1)
	}
}
