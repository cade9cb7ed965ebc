package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
)

func TestDefaultBrokerConfig(t *testing.T) {
	config := DefaultBrokerConfig()

	if config.BundleID != DefaultBundleID {
		t.Errorf("默认 BundleID 应为 %s, 实际为 %s", DefaultBundleID, config.BundleID)
	}
	if config.LogLevel != "info" {
		t.Errorf("默认 LogLevel 应为 info, 实际为 %s", config.LogLevel)
	}
	if config.LogFile != "" {
		t.Error("默认 LogFile 应为空")
	}
	if config.HomeDir != "" {
		t.Error("默认 HomeDir 应为空")
	}

	t.Logf("默认配置: %+v", config)
}

func TestManagerSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	if manager.Exists() {
		t.Error("初始时配置文件不应存在")
	}

	config := &BrokerConfig{
		BundleID: "com.example.host",
		LogLevel: "debug",
		LogFile:  filepath.Join(tempDir, "permbroker.log"),
		HomeDir:  "/Users/tester",
	}

	if err := manager.Save(config); err != nil {
		t.Fatalf("保存配置失败: %v", err)
	}
	if !manager.Exists() {
		t.Error("保存后配置文件应存在")
	}

	loaded, err := manager.Load()
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	if *loaded != *config {
		t.Errorf("配置不匹配: 期望 %+v, 实际 %+v", config, loaded)
	}

	t.Logf("加载的配置: %+v", loaded)
}

func TestManagerLoadPartialFile(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	// 只写入部分字段，其余应取默认值
	err := os.WriteFile(manager.GetConfigFile(), []byte(`{"log_level":"warn"}`), 0600)
	if err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}

	config, err := manager.Load()
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	if config.LogLevel != "warn" {
		t.Errorf("LogLevel 应为 warn, 实际为 %s", config.LogLevel)
	}
	if config.BundleID != DefaultBundleID {
		t.Errorf("缺失的 BundleID 应取默认值, 实际为 %s", config.BundleID)
	}
}

func TestManagerClear(t *testing.T) {
	manager := NewManagerWithDir(t.TempDir())

	if err := manager.Save(DefaultBrokerConfig()); err != nil {
		t.Fatalf("保存配置失败: %v", err)
	}
	if !manager.Exists() {
		t.Fatal("保存后配置文件应存在")
	}

	if err := manager.Clear(); err != nil {
		t.Fatalf("清除配置失败: %v", err)
	}
	if manager.Exists() {
		t.Error("清除后配置文件不应存在")
	}

	// 清除不存在的文件不应报错
	if err := manager.Clear(); err != nil {
		t.Errorf("清除不存在的配置不应报错: %v", err)
	}
}

func TestManagerLoadNonExistent(t *testing.T) {
	manager := NewManagerWithDir(t.TempDir())

	config, err := manager.Load()
	if err != nil {
		t.Fatalf("加载不存在的配置不应报错: %v", err)
	}
	if config.BundleID != DefaultBundleID {
		t.Errorf("应返回默认 BundleID")
	}
}

func TestManagerLoadCorruptedFile(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	configFile := filepath.Join(tempDir, "config.json")
	if err := os.WriteFile(configFile, []byte("not valid json"), 0600); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}

	config, err := manager.Load()
	if err == nil {
		t.Error("加载损坏的配置应返回错误")
	}
	if config == nil || config.BundleID != DefaultBundleID {
		t.Error("即使出错也应返回默认配置")
	}

	t.Logf("加载损坏配置的错误: %v", err)
}

func TestHomeDirFunc(t *testing.T) {
	config := &BrokerConfig{HomeDir: "/Users/override"}
	home, err := config.HomeDirFunc()()
	if err != nil || home != "/Users/override" {
		t.Errorf("应使用配置的主目录, 实际为 %q, %v", home, err)
	}

	var nilConfig *BrokerConfig
	if nilConfig.HomeDirFunc() == nil {
		t.Error("nil 配置也应返回可用的解析函数")
	}
}

func TestBrokerConfigSet(t *testing.T) {
	config := DefaultBrokerConfig()

	for _, kv := range [][2]string{
		{"bundle_id", "com.example.host"},
		{"log_level", "debug"},
		{"log_file", "/tmp/permbroker.log"},
		{"home_dir", "/Users/tester"},
	} {
		if err := config.Set(kv[0], kv[1]); err != nil {
			t.Errorf("Set(%s) 失败: %v", kv[0], err)
		}
	}
	want := BrokerConfig{
		BundleID: "com.example.host",
		LogLevel: "debug",
		LogFile:  "/tmp/permbroker.log",
		HomeDir:  "/Users/tester",
	}
	if *config != want {
		t.Errorf("配置不匹配: 期望 %+v, 实际 %+v", want, config)
	}

	if err := config.Set("log_level", "verbose"); err == nil {
		t.Error("无效的日志级别应返回错误")
	}
	if err := config.Set("bundle_id", ""); err == nil {
		t.Error("空 bundle_id 应返回错误")
	}
	if err := config.Set("color", "red"); err == nil {
		t.Error("未知配置项应返回错误")
	}
	if len(Keys()) != 4 {
		t.Errorf("配置项数量应为 4, 实际为 %d", len(Keys()))
	}
}

func TestDefaultManager(t *testing.T) {
	manager := GetDefaultManager()
	if manager == nil {
		t.Fatal("GetDefaultManager 返回 nil")
	}

	expectedDir := filepath.Join(xdg.ConfigHome, "permbroker")
	if manager.GetConfigFile() != filepath.Join(expectedDir, "config.json") {
		t.Errorf("默认配置文件路径不正确: %s", manager.GetConfigFile())
	}

	t.Logf("默认配置文件: %s", manager.GetConfigFile())
}

func TestConfigFilePermissions(t *testing.T) {
	manager := NewManagerWithDir(t.TempDir())

	if err := manager.Save(DefaultBrokerConfig()); err != nil {
		t.Fatalf("保存配置失败: %v", err)
	}

	info, err := os.Stat(manager.GetConfigFile())
	if err != nil {
		t.Fatalf("获取文件信息失败: %v", err)
	}

	perm := info.Mode().Perm()
	if perm&0077 != 0 {
		t.Logf("警告: 配置文件权限为 %o, 建议设为 0600", perm)
	}
	t.Logf("配置文件权限: %o", perm)
}

// BenchmarkSaveLoad 基准测试
func BenchmarkSaveLoad(b *testing.B) {
	manager := NewManagerWithDir(b.TempDir())
	config := DefaultBrokerConfig()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		manager.Save(config)
		manager.Load()
	}
}
