package game

import (
	"encoding/binary"
	"testing"
)

// TestAudioManager_Muted 没有音频上下文时静音
func TestAudioManager_Muted(t *testing.T) {
	am := NewAudioManager(nil, 0.8)
	if am.IsEnabled() {
		t.Error("Manager without context should be muted")
	}
	am.SetEnabled(true)
	if am.IsEnabled() {
		t.Error("SetEnabled(true) must not enable a manager without context")
	}
	if am.PlaySound(SoundMerge) {
		t.Error("Muted manager should not play")
	}

	var nilManager *AudioManager
	if nilManager.PlaySound(SoundSpawn) {
		t.Error("Nil manager should not play")
	}
}

func TestSynthesize(t *testing.T) {
	tests := []struct {
		name  string
		tones []tone
	}{
		{"single", []tone{{freq: 440, duration: 0.1}}},
		{"sequence", []tone{{freq: 440, duration: 0.05}, {freq: 880, duration: 0.08}}},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pcm := synthesize(SampleRate, tt.tones)
			want := 0
			for _, tn := range tt.tones {
				want += int(tn.duration*float64(SampleRate)) * 4
			}
			if len(pcm) != want {
				t.Errorf("len(pcm) = %d, want %d", len(pcm), want)
			}
			if len(pcm) >= 4 {
				// 第一个采样 sin(0)=0，左右声道相同
				l := binary.LittleEndian.Uint16(pcm[0:])
				r := binary.LittleEndian.Uint16(pcm[2:])
				if l != 0 || r != 0 {
					t.Errorf("First sample = (%d, %d), want silence", l, r)
				}
			}
		})
	}
}

// TestSoundTones 每个音效都有音符
func TestSoundTones(t *testing.T) {
	for _, id := range []SoundID{SoundSpawn, SoundMerge, SoundReject, SoundComplete} {
		if len(soundTones[id]) == 0 {
			t.Errorf("Sound %s has no tones", id)
		}
	}
}
