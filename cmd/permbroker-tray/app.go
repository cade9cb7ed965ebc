package main

import (
	"context"

	"github.com/wailsapp/wails/v3/pkg/application"

	"github.com/zoeyai/permbroker/internal/logger"
	"github.com/zoeyai/permbroker/pkg/permissions"
	"github.com/zoeyai/permbroker/pkg/service"
)

// App 绑定到 Wails 的服务，导出 PermissionService 的全部方法
type App struct {
	*service.PermissionService
}

// ServiceStartup 应用启动时检查权限
func (a *App) ServiceStartup(ctx context.Context, options application.ServiceOptions) error {
	info := a.GetPermissionStatus()
	for _, k := range permissions.AllKinds() {
		logger.Info("%s权限: %v", k.DisplayName(), info.Granted(k))
	}
	if info.AllGranted {
		logger.Info("✓ 所有权限已授予")
		return nil
	}
	logger.Warn("缺少权限:\n%s", info.Message)
	return nil
}

// ServiceShutdown 应用关闭时调用
func (a *App) ServiceShutdown() error {
	logger.Info("权限服务已停止")
	return nil
}

// requestFuncs 托盘菜单使用的请求入口
func (a *App) requestFuncs() map[permissions.Kind]func() error {
	return map[permissions.Kind]func() error{
		permissions.Accessibility: func() error {
			a.RequestAccessibilityPermission()
			return nil
		},
		permissions.FullDiskAccess: a.RequestFullDiskAccessPermission,
		permissions.ScreenRecording: func() error {
			a.RequestScreenRecordingPermission()
			return nil
		},
		permissions.Microphone: a.RequestMicrophonePermission,
		permissions.Audio:      a.RequestAudioPermission,
	}
}
