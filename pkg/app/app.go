// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/mergeroom/pkg/config"
	"github.com/gonewx/mergeroom/pkg/embedded"
	"github.com/gonewx/mergeroom/pkg/game"
	"github.com/gonewx/mergeroom/pkg/scenes"
)

// AppName gdata 存储使用的应用名
const AppName = "mergeroom"

// embeddedBoardConfig 内置棋盘配置路径
const embeddedBoardConfig = "data/config/board.yaml"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// BoardConfigPath 棋盘配置文件路径，为空时使用内置配置
	BoardConfigPath string
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// Profile 存档槽名称
	Profile string
	// Fresh 忽略已有存档，开始新的一局
	Fresh bool
	// Mute 本次运行关闭音效，不创建音频上下文，也不修改已保存的设置
	Mute bool
	// Volume 音效音量 (0, 1]，0 表示使用已保存的设置
	Volume float64
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	session                  *game.Session
	saveManager              *game.SaveManager
	audio                    *game.AudioManager
	settings                 *game.SettingsManager
	muted                    bool
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	boardConfig, err := loadBoardConfig(cfg.BoardConfigPath)
	if err != nil {
		return nil, fmt.Errorf("棋盘配置加载失败: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	session := game.NewSession(boardConfig, rand.New(rand.NewSource(seed)))
	gdataManager := game.OpenGdataManager(AppName)
	saveManager := game.NewSaveManager(gdataManager, cfg.Profile)
	settings := game.NewSettingsManager(gdataManager)

	if cfg.Fresh {
		if err := saveManager.Clear(); err != nil {
			log.Printf("[App] Warning: failed to clear save: %v", err)
		}
	} else if restored, err := saveManager.RestoreSession(session); err != nil {
		// 存档损坏不阻止游戏启动
		log.Printf("[App] Warning: failed to restore save: %v", err)
	} else if restored {
		log.Printf("[App] Restored run %s from profile %q", session.RunID(), saveManager.Profile())
	}

	if cfg.Volume > 0 {
		settings.SetSoundVolume(cfg.Volume)
	}
	audioManager := game.NewAudioManager(nil, 0)
	if !cfg.Mute {
		audioManager = game.NewAudioManager(game.OpenAudioContext(), settings.Settings().SoundVolume)
		audioManager.SetEnabled(settings.Settings().SoundEnabled)
	}
	if settings.Settings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.Register(game.SceneDecision, func() game.Scene {
		return scenes.NewDecisionScene(session, sceneManager)
	})
	sceneManager.Register(game.SceneBoard, func() game.Scene {
		return scenes.NewBoardScene(session, saveManager, audioManager)
	})

	start := game.SceneDecision
	if session.IsStarted() {
		start = game.SceneBoard
	}
	if err := sceneManager.Load(start); err != nil {
		return nil, err
	}
	log.Printf("[App] Starting at scene %s (seed %d)", start, seed)

	return &App{
		sceneManager: sceneManager,
		session:      session,
		saveManager:  saveManager,
		audio:        audioManager,
		settings:     settings,
		muted:        cfg.Mute,
		verbose:      cfg.Verbose,
	}, nil
}

// loadBoardConfig 加载棋盘配置
// 优先使用指定文件，其次使用内置配置，都没有时使用默认配置
func loadBoardConfig(path string) (*config.BoardConfig, error) {
	if path != "" {
		log.Printf("[Config] Loading board config: %s", path)
		return config.LoadBoardConfig(path)
	}
	if !embedded.IsInitialized() {
		log.Printf("[Config] No embedded data, using default board config")
		return config.DefaultBoardConfig(), nil
	}

	data, err := embedded.ReadFile(embeddedBoardConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded %s: %w", embeddedBoardConfig, err)
	}
	log.Printf("[Config] Loading embedded board config: %s", embeddedBoardConfig)
	return config.ParseBoardConfig(data)
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 玩家在决策界面选择了离开
	if a.session.HasLeft() {
		log.Printf("[App] Player left, exiting")
		return ebiten.Termination
	}
	// 窗口关闭由 main 在 RunGame 返回后保存进度
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth/2, config.GameWindowHeight/2)
			a.pendingWindowSizeReset = false
		}
	}

	// M 开关音效（--mute 运行时不可用）
	if !a.muted && inpututil.IsKeyJustPressed(ebiten.KeyM) {
		a.audio.SetEnabled(!a.audio.IsEnabled())
		a.settings.SetSoundEnabled(a.audio.IsEnabled())
		a.saveSettings()
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		if !fullscreen {
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		}
		a.settings.SetFullscreen(fullscreen)
		a.saveSettings()
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时两侧填充黑色，游戏画面使用线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// SaveOnExit 游戏关闭时保存当前场景的进度
func (a *App) SaveOnExit() {
	saved, err := a.sceneManager.SaveOnExit()
	switch {
	case err != nil:
		log.Printf("[App] Failed to save on exit: %v", err)
	case saved:
		log.Printf("[App] Progress saved to profile %q", a.saveManager.Profile())
	}
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Failed to save settings: %v", err)
	}
}

// Session 返回当前游戏会话
func (a *App) Session() *game.Session {
	return a.session
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
