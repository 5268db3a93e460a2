//go:build !android

package utils

import "testing"

func TestEnsureStorageDir_Default(t *testing.T) {
	if err := EnsureStorageDir(); err != nil {
		t.Errorf("EnsureStorageDir() error: %v", err)
	}
	if GetStoragePath() != "" {
		t.Error("GetStoragePath() should be empty off Android")
	}
}
