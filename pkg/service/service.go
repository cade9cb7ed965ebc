// Package service 将权限操作暴露给宿主应用
//
// PermissionService 的导出方法由宿主（Wails 应用或命令行）直接绑定调用，
// 每个方法彼此独立、不保存状态。
package service

import (
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/zoeyai/permbroker/internal/logger"
	"github.com/zoeyai/permbroker/pkg/config"
	"github.com/zoeyai/permbroker/pkg/permissions"
)

// PermissionService 权限服务
type PermissionService struct {
	broker   permissions.Broker
	bundleID string
}

// NewPermissionService 创建权限服务，cfg 为 nil 时使用默认配置
func NewPermissionService(broker permissions.Broker, cfg *config.BrokerConfig) *PermissionService {
	if cfg == nil {
		cfg = config.DefaultBrokerConfig()
	}
	return &PermissionService{
		broker:   broker,
		bundleID: cfg.BundleID,
	}
}

// NewDefault 根据配置创建当前平台的权限服务
func NewDefault(cfg *config.BrokerConfig) *PermissionService {
	if cfg == nil {
		cfg = config.DefaultBrokerConfig()
	}
	broker := permissions.New(permissions.WithHomeDir(cfg.HomeDirFunc()))
	return NewPermissionService(broker, cfg)
}

// ==================== 辅助功能 ====================

// CheckAccessibilityPermission 检查辅助功能权限
func (s *PermissionService) CheckAccessibilityPermission() bool {
	return s.broker.Check(permissions.Accessibility)
}

// RequestAccessibilityPermission 请求辅助功能权限（触发系统弹窗）
func (s *PermissionService) RequestAccessibilityPermission() {
	s.request(permissions.Accessibility)
}

// ==================== 完全磁盘访问 ====================

// CheckFullDiskAccessPermission 检查完全磁盘访问权限
// 结果来自受保护目录的探测，只是近似判断
func (s *PermissionService) CheckFullDiskAccessPermission() bool {
	return s.broker.Check(permissions.FullDiskAccess)
}

// RequestFullDiskAccessPermission 打开完全磁盘访问设置页面
func (s *PermissionService) RequestFullDiskAccessPermission() error {
	return s.request(permissions.FullDiskAccess)
}

// ==================== 屏幕录制 ====================

// CheckScreenRecordingPermission 检查屏幕录制权限
func (s *PermissionService) CheckScreenRecordingPermission() bool {
	return s.broker.Check(permissions.ScreenRecording)
}

// RequestScreenRecordingPermission 请求屏幕录制权限
// 系统只在首次请求时弹窗，之后需要用户在设置中手动修改
func (s *PermissionService) RequestScreenRecordingPermission() {
	s.request(permissions.ScreenRecording)
}

// ==================== 麦克风 / 音频 ====================

// CheckMicrophonePermission 检查麦克风权限
func (s *PermissionService) CheckMicrophonePermission() bool {
	return s.broker.Check(permissions.Microphone)
}

// RequestMicrophonePermission 打开麦克风设置页面
func (s *PermissionService) RequestMicrophonePermission() error {
	return s.request(permissions.Microphone)
}

// CheckAudioPermission 检查音频录制权限
func (s *PermissionService) CheckAudioPermission() bool {
	return s.broker.Check(permissions.Audio)
}

// RequestAudioPermission 打开音频录制设置页面
func (s *PermissionService) RequestAudioPermission() error {
	return s.request(permissions.Audio)
}

func (s *PermissionService) request(kind permissions.Kind) error {
	if err := s.broker.Request(kind); err != nil {
		logger.Error("请求%s权限失败: %v", kind.DisplayName(), err)
		return err
	}
	return nil
}

// ==================== 汇总 ====================

// PermissionInfo 权限信息
type PermissionInfo struct {
	*permissions.PermissionStatus
	Message string `json:"message"`
}

// GetPermissionStatus 检查全部权限状态（不触发弹窗）
func (s *PermissionService) GetPermissionStatus() PermissionInfo {
	status := permissions.Snapshot(s.broker)
	return PermissionInfo{
		PermissionStatus: status,
		Message:          permissions.Instructions(status),
	}
}

// ResetPermission 重置指定权限的授权记录，授权后需要重启应用
func (s *PermissionService) ResetPermission(kind string) error {
	k, err := permissions.ParseKind(kind)
	if err != nil {
		return err
	}
	return s.broker.Reset(k, s.bundleID)
}

// ==================== 系统信息 ====================

// SystemInfo 系统信息
type SystemInfo struct {
	Hostname        string `json:"hostname"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platform_version"`
	Version         string `json:"version"`
	Supported       bool   `json:"supported"`
}

// GetSystemInfo 获取系统信息，Supported 表示当前平台是否需要隐私权限授权
func (s *PermissionService) GetSystemInfo() SystemInfo {
	info := SystemInfo{
		Platform:  runtime.GOOS,
		Version:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Supported: runtime.GOOS == "darwin",
	}

	hi, err := host.Info()
	if err != nil {
		logger.Warn("获取主机信息失败: %v", err)
		info.Hostname, _ = os.Hostname()
		return info
	}

	info.Hostname = hi.Hostname
	if hi.Platform != "" {
		info.Platform = hi.Platform
	}
	info.PlatformVersion = hi.PlatformVersion
	return info
}
