package main

import (
	"log"

	"github.com/wailsapp/wails/v3/pkg/application"

	"github.com/zoeyai/permbroker/internal/logger"
	"github.com/zoeyai/permbroker/pkg/config"
	"github.com/zoeyai/permbroker/pkg/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Warn("加载配置失败: %v", err)
	}
	logger.Default().SetLevel(logger.ParseLevel(cfg.LogLevel))
	if cfg.LogFile != "" {
		if err := logger.Default().SetFile(true, cfg.LogFile); err != nil {
			logger.Warn("%v", err)
		} else {
			// 托盘程序通常没有终端，只写文件
			logger.Default().SetConsole(false)
		}
	}
	defer logger.Default().Close()

	svc := &App{PermissionService: service.NewDefault(cfg)}

	// 只有托盘，没有窗口；前端可通过绑定调用 PermissionService 的方法
	app := application.New(application.Options{
		Name:        "Permission Broker",
		Description: "macOS 隐私权限代理",
		Services: []application.Service{
			application.NewService(svc),
		},
		Mac: application.MacOptions{
			ActivationPolicy: application.ActivationPolicyAccessory,
			ApplicationShouldTerminateAfterLastWindowClosed: false,
		},
	})

	setupSystemTray(app, svc)

	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
