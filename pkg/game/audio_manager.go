package game

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate 音频采样率
const SampleRate = 44100

// SoundID 音效标识
type SoundID string

const (
	SoundSpawn    SoundID = "spawn"
	SoundMerge    SoundID = "merge"
	SoundReject   SoundID = "reject"
	SoundComplete SoundID = "complete"
)

// tone 一段音效由若干个依次播放的音符组成
type tone struct {
	freq     float64 // Hz
	duration float64 // 秒
}

// soundTones 每种音效的音符序列
var soundTones = map[SoundID][]tone{
	SoundSpawn:    {{freq: 523.25, duration: 0.06}},
	SoundMerge:    {{freq: 659.25, duration: 0.06}, {freq: 880, duration: 0.09}},
	SoundReject:   {{freq: 196, duration: 0.12}},
	SoundComplete: {{freq: 523.25, duration: 0.1}, {freq: 659.25, duration: 0.1}, {freq: 783.99, duration: 0.18}},
}

// AudioManager 音效管理器
// 音效在启动时合成为 PCM 数据，不依赖音频资源文件
// audioContext 为 nil 时所有播放都是空操作（静音模式）
type AudioManager struct {
	audioContext *audio.Context
	pcm          map[SoundID][]byte
	volume       float64
	enabled      bool
}

// NewAudioManager 创建音效管理器
//
// 参数：
//   - ctx: Ebitengine 音频上下文，可为 nil（静音）
//   - volume: 音量 [0, 1]
func NewAudioManager(ctx *audio.Context, volume float64) *AudioManager {
	am := &AudioManager{
		audioContext: ctx,
		pcm:          make(map[SoundID][]byte, len(soundTones)),
		volume:       math.Max(0, math.Min(1, volume)),
		enabled:      ctx != nil,
	}
	if ctx != nil {
		for id, tones := range soundTones {
			am.pcm[id] = synthesize(ctx.SampleRate(), tones)
		}
		log.Printf("[AudioManager] Synthesized %d sounds at %d Hz", len(am.pcm), ctx.SampleRate())
	}
	return am
}

// OpenAudioContext 返回进程唯一的音频上下文
// Ebitengine 只允许创建一个音频上下文
func OpenAudioContext() *audio.Context {
	if ctx := audio.CurrentContext(); ctx != nil {
		return ctx
	}
	return audio.NewContext(SampleRate)
}

// SetEnabled 开关音效
func (am *AudioManager) SetEnabled(enabled bool) {
	am.enabled = enabled && am.audioContext != nil
}

// IsEnabled 音效是否开启
func (am *AudioManager) IsEnabled() bool {
	return am.enabled
}

// PlaySound 播放音效，返回是否实际播放
func (am *AudioManager) PlaySound(id SoundID) bool {
	if am == nil || !am.enabled {
		return false
	}
	data, ok := am.pcm[id]
	if !ok {
		log.Printf("[AudioManager] Unknown sound: %s", id)
		return false
	}
	player := am.audioContext.NewPlayerFromBytes(data)
	player.SetVolume(am.volume)
	player.Play()
	return true
}

// synthesize 把音符序列合成为 16 位小端立体声 PCM
// 每个音符带线性淡出，避免结尾爆音
func synthesize(sampleRate int, tones []tone) []byte {
	var total int
	for _, t := range tones {
		total += int(t.duration * float64(sampleRate))
	}
	buf := make([]byte, 0, total*4)

	for _, t := range tones {
		n := int(t.duration * float64(sampleRate))
		for i := 0; i < n; i++ {
			envelope := 1 - float64(i)/float64(n)
			v := math.Sin(2*math.Pi*t.freq*float64(i)/float64(sampleRate)) * envelope * 0.3
			sample := uint16(int16(v * math.MaxInt16))
			buf = binary.LittleEndian.AppendUint16(buf, sample) // L
			buf = binary.LittleEndian.AppendUint16(buf, sample) // R
		}
	}
	return buf
}
