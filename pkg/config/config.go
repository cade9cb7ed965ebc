package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
)

// DefaultBundleID 默认的应用 bundle ID，用于 tccutil 重置
const DefaultBundleID = "com.zoey.permbroker"

// BrokerConfig 权限代理配置
type BrokerConfig struct {
	// BundleID 重置权限时使用的应用标识
	BundleID string `json:"bundle_id"`
	// LogLevel 日志级别 (debug/info/warn/error)
	LogLevel string `json:"log_level"`
	// LogFile 日志文件路径，为空时只输出到控制台
	LogFile string `json:"log_file"`
	// HomeDir 覆盖完全磁盘访问探测使用的主目录
	HomeDir string `json:"home_dir,omitempty"`
}

// DefaultBrokerConfig 默认配置
func DefaultBrokerConfig() *BrokerConfig {
	return &BrokerConfig{
		BundleID: DefaultBundleID,
		LogLevel: "info",
		LogFile:  "",
	}
}

// HomeDirFunc 返回主目录解析函数，配置了 HomeDir 时优先使用
func (c *BrokerConfig) HomeDirFunc() func() (string, error) {
	if c != nil && c.HomeDir != "" {
		home := c.HomeDir
		return func() (string, error) { return home, nil }
	}
	return os.UserHomeDir
}

// Keys 可通过 Set 修改的配置项
func Keys() []string {
	return []string{"bundle_id", "log_level", "log_file", "home_dir"}
}

// Set 按 JSON 键名修改配置项
func (c *BrokerConfig) Set(key, value string) error {
	switch key {
	case "bundle_id":
		if value == "" {
			return fmt.Errorf("bundle_id 不能为空")
		}
		c.BundleID = value
	case "log_level":
		switch value {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("无效的日志级别: %s", value)
		}
		c.LogLevel = value
	case "log_file":
		c.LogFile = value
	case "home_dir":
		c.HomeDir = value
	default:
		return fmt.Errorf("未知的配置项: %s", key)
	}
	return nil
}

// Manager 配置管理器
type Manager struct {
	configDir  string
	configFile string
	mu         sync.RWMutex
}

// NewManager 创建配置管理器，配置目录位于 $XDG_CONFIG_HOME/permbroker
func NewManager() *Manager {
	return NewManagerWithDir(filepath.Join(xdg.ConfigHome, "permbroker"))
}

// NewManagerWithDir 使用指定目录创建配置管理器
func NewManagerWithDir(configDir string) *Manager {
	return &Manager{
		configDir:  configDir,
		configFile: filepath.Join(configDir, "config.json"),
	}
}

// ensureDir 确保配置目录存在
func (m *Manager) ensureDir() error {
	return os.MkdirAll(m.configDir, 0755)
}

// Load 加载配置，文件中缺失的字段使用默认值
func (m *Manager) Load() (*BrokerConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		return DefaultBrokerConfig(), nil
	}

	data, err := os.ReadFile(m.configFile)
	if err != nil {
		return DefaultBrokerConfig(), fmt.Errorf("读取配置文件失败: %w", err)
	}

	config := DefaultBrokerConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return DefaultBrokerConfig(), fmt.Errorf("解析配置文件失败: %w", err)
	}

	return config, nil
}

// Save 保存配置
func (m *Manager) Save(config *BrokerConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureDir(); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(m.configFile, data, 0600); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}

// Clear 清除配置
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		return nil
	}

	return os.Remove(m.configFile)
}

// GetConfigFile 获取配置文件路径
func (m *Manager) GetConfigFile() string {
	return m.configFile
}

// Exists 检查配置文件是否存在
func (m *Manager) Exists() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, err := os.Stat(m.configFile)
	return err == nil
}

// 全局配置管理器
var defaultManager = NewManager()

// GetDefaultManager 获取默认配置管理器
func GetDefaultManager() *Manager {
	return defaultManager
}

// Load 使用默认管理器加载配置
func Load() (*BrokerConfig, error) {
	return defaultManager.Load()
}
