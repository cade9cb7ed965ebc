package main

import (
	"fmt"

	"github.com/wailsapp/wails/v3/pkg/application"

	"github.com/zoeyai/permbroker/internal/logger"
	"github.com/zoeyai/permbroker/pkg/permissions"
)

func itemLabel(kind permissions.Kind, granted bool) string {
	mark := "✗"
	if granted {
		mark = "✓"
	}
	return fmt.Sprintf("%s %s", mark, kind.DisplayName())
}

// setupSystemTray 设置系统托盘
// 每个权限一个菜单项，点击后请求该权限
func setupSystemTray(app *application.App, svc *App) {
	tray := app.SystemTray.New()
	tray.SetLabel("权限")
	tray.SetTooltip("Permission Broker - macOS 隐私权限")

	trayMenu := app.NewMenu()
	items := make(map[permissions.Kind]*application.MenuItem)
	requests := svc.requestFuncs()

	refresh := func() {
		status := svc.GetPermissionStatus()
		for kind, item := range items {
			item.SetLabel(itemLabel(kind, status.Granted(kind)))
		}
		trayMenu.Update()
	}

	for _, kind := range permissions.AllKinds() {
		items[kind] = trayMenu.Add(itemLabel(kind, false)).OnClick(func(ctx *application.Context) {
			if err := requests[kind](); err != nil {
				logger.Error("请求%s权限失败: %v", kind.DisplayName(), err)
			}
			refresh()
		})
	}

	trayMenu.AddSeparator()

	trayMenu.Add("刷新状态").OnClick(func(ctx *application.Context) {
		refresh()
	})

	trayMenu.AddSeparator()

	trayMenu.Add("退出").OnClick(func(ctx *application.Context) {
		app.Quit()
	})

	tray.SetMenu(trayMenu)
	refresh()
}
