package game

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestOpenStorage(t *testing.T) {
	t.Run("empty app name", func(t *testing.T) {
		if _, err := OpenStorage(""); err == nil {
			t.Error("Expected error for empty app name")
		}
	})

	t.Run("round trip", func(t *testing.T) {
		appName := fmt.Sprintf("coffee_oracle_storage_test_%d", time.Now().UnixNano())
		manager, err := OpenStorage(appName)
		if err != nil {
			t.Skipf("Skipping test: failed to create gdata manager: %v", err)
		}
		t.Cleanup(func() {
			homeDir, err := os.UserHomeDir()
			if err == nil {
				os.RemoveAll(filepath.Join(homeDir, ".local", "share", appName))
			}
		})

		if err := manager.SaveObjectProp("oracle", "probe", []byte("1")); err != nil {
			t.Fatalf("SaveObjectProp() failed: %v", err)
		}

		data, err := manager.LoadObjectProp("oracle", "probe")
		if err != nil {
			t.Fatalf("LoadObjectProp() failed: %v", err)
		}
		if string(data) != "1" {
			t.Errorf("Expected %q, got %q", "1", data)
		}
	})
}

func TestIsMobile(t *testing.T) {
	if runtime.GOOS == "android" || runtime.GOOS == "ios" {
		t.Skip("desktop only")
	}
	t.Setenv(mobileEmulateEnv, "")
	if IsMobile() {
		t.Error("Expected desktop to report non-mobile")
	}

	t.Setenv(mobileEmulateEnv, "1")
	if !IsMobile() {
		t.Error("Expected emulation env to force mobile mode")
	}
}

func TestEnsureStorageDirDesktop(t *testing.T) {
	if runtime.GOOS == "android" {
		t.Skip("desktop only")
	}
	if err := EnsureStorageDir(); err != nil {
		t.Errorf("EnsureStorageDir() on %s = %v, want nil", runtime.GOOS, err)
	}
}
