package game

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/quasilyte/gdata/v2"
)

// mobileEmulateEnv 设置为 "1" 时桌面端按移动端处理（本地调试用）
const mobileEmulateEnv = "COFFEE_ORACLE_MOBILE_EMULATE"

// IsMobile 报告是否运行在移动设备上（Android/iOS，或设置了模拟环境变量）
func IsMobile() bool {
	switch runtime.GOOS {
	case "android", "ios":
		return true
	}
	return os.Getenv(mobileEmulateEnv) == "1"
}

// OpenStorage 打开 gdata 跨平台存储
//
// 参数:
//   - appName: 应用名，决定存档目录
//
// 返回:
//   - *gdata.Manager: 存储管理器
//   - error: 目录准备或 gdata 初始化失败时返回错误（调用方应进入降级模式）
func OpenStorage(appName string) (*gdata.Manager, error) {
	if appName == "" {
		return nil, fmt.Errorf("storage app name is empty")
	}

	if err := EnsureStorageDir(); err != nil {
		return nil, fmt.Errorf("failed to prepare storage dir: %w", err)
	}

	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open gdata storage %q: %w", appName, err)
	}

	log.Printf("[Storage] gdata storage opened: %s", appName)
	return manager, nil
}

// EnsureStorageDir 在 gdata 初始化前准备存档目录
//
// gdata 在 Android 上使用 /data/data/{package}/ 但不会创建子目录，
// 其他平台由 gdata 自己创建，直接返回 nil。
func EnsureStorageDir() error {
	if runtime.GOOS != "android" {
		return nil
	}

	pkg, err := androidPackage()
	if err != nil {
		return fmt.Errorf("failed to detect Android app: %w", err)
	}

	savesDir := filepath.Join("/data/data", pkg, "saves")
	if err := os.MkdirAll(savesDir, 0755); err != nil {
		return fmt.Errorf("failed to create saves directory %s: %w", savesDir, err)
	}

	probe := filepath.Join(savesDir, ".write_test")
	if err := os.WriteFile(probe, nil, 0644); err != nil {
		return fmt.Errorf("saves directory %s is not writable: %w", savesDir, err)
	}
	return os.Remove(probe)
}

// androidPackage 从 /proc/self/cmdline 读取应用包名
func androidPackage() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}

	name := make([]byte, 0, len(data))
	for _, ch := range data {
		if ch != 0 && ch != '\n' {
			name = append(name, ch)
		}
	}
	if len(name) == 0 {
		return "", fmt.Errorf("empty /proc/self/cmdline")
	}
	return string(name), nil
}
