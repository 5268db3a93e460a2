//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// androidDataRoot Android 应用私有数据根目录
const androidDataRoot = "/data/data"

// EnsureStorageDir 在打开 gdata 之前准备 Android 存档目录
// gdata 使用 /data/data/{package}/ 保存数据，但不会创建 saves 子目录
func EnsureStorageDir() error {
	dir := GetStoragePath()
	if dir == "" {
		return fmt.Errorf("cannot detect Android package name")
	}
	savesDir := filepath.Join(dir, "saves")
	if err := os.MkdirAll(savesDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", savesDir, err)
	}

	probe := filepath.Join(savesDir, ".probe")
	if err := os.WriteFile(probe, nil, 0644); err != nil {
		return fmt.Errorf("%s is not writable: %w", savesDir, err)
	}
	return os.Remove(probe)
}

// GetStoragePath 应用数据目录，无法识别包名时返回空字符串
func GetStoragePath() string {
	cmdline, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return ""
	}
	// cmdline 以 NUL 分隔，第一段是包名
	pkg, _, _ := bytes.Cut(cmdline, []byte{0})
	pkg = bytes.TrimSpace(pkg)
	if len(pkg) == 0 {
		return ""
	}
	return filepath.Join(androidDataRoot, string(pkg))
}
