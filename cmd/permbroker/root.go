package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/zoeyai/permbroker/internal/logger"
	"github.com/zoeyai/permbroker/pkg/config"
	"github.com/zoeyai/permbroker/pkg/permissions"
	"github.com/zoeyai/permbroker/pkg/service"
)

// errNotGranted --strict 模式下存在未授权项时返回
var errNotGranted = errors.New("存在未授权的权限")

type cliOptions struct {
	logLevel string
	homeDir  string
	bundleID string
	jsonOut  bool
	strict   bool
	quiet    bool

	manager *config.Manager
	broker  permissions.Broker
	cfg     *config.BrokerConfig
	svc     *service.PermissionService
}

func newRootCmd() *cobra.Command {
	return newRootCmdWithOptions(&cliOptions{})
}

func newRootCmdWithOptions(opts *cliOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "permbroker",
		Short: "macOS 隐私权限检查与请求工具",
		Long: "permbroker 查询和请求 macOS 隐私权限（辅助功能、完全磁盘访问、屏幕录制、麦克风、音频）。\n" +
			"非 macOS 平台上所有权限均视为已授权。",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "日志级别 (debug/info/warn/error)")
	rootCmd.PersistentFlags().StringVar(&opts.homeDir, "home", "", "完全磁盘访问探测使用的主目录")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "以 JSON 格式输出")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "不输出日志")

	rootCmd.AddCommand(
		newCheckCmd(opts),
		newRequestCmd(opts),
		newStatusCmd(opts),
		newResetCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// setup 加载配置，命令行参数优先级高于配置文件
func (o *cliOptions) setup(cmd *cobra.Command) error {
	if o.manager == nil {
		o.manager = config.GetDefaultManager()
	}
	cfg, err := o.manager.Load()
	if err != nil {
		logger.Warn("加载配置失败: %v", err)
	}

	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.homeDir != "" {
		cfg.HomeDir = o.homeDir
	}

	logger.Default().SetWriter(cmd.ErrOrStderr())
	logger.Default().SetEnabled(!o.quiet)
	logger.Default().SetLevel(logger.ParseLevel(cfg.LogLevel))
	if cfg.LogFile != "" {
		if err := logger.Default().SetFile(true, cfg.LogFile); err != nil {
			logger.Warn("%v", err)
		}
	}

	o.cfg = cfg
	if o.broker == nil {
		o.broker = permissions.New(permissions.WithHomeDir(cfg.HomeDirFunc()))
	}
	o.svc = service.NewPermissionService(o.broker, cfg)
	return nil
}

func newCheckCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [kind...]",
		Short: "检查权限状态（不触发弹窗）",
		Long:  "检查指定权限的授权状态，不指定时检查全部。\n可用类型: " + kindList(),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := permissions.AllKinds()
			if len(args) > 0 {
				parsed, err := parseKinds(args)
				if err != nil {
					return err
				}
				kinds = parsed
			}

			result := make(map[string]bool, len(kinds))
			allGranted := true
			for _, k := range kinds {
				granted := opts.broker.Check(k)
				result[k.String()] = granted
				allGranted = allGranted && granted
			}

			if opts.jsonOut {
				if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}
			} else {
				for _, k := range kinds {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", k.DisplayName(), result[k.String()])
				}
			}

			if opts.strict && !allGranted {
				return errNotGranted
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "存在未授权项时以非零状态退出")
	return cmd
}

func newRequestCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "request <kind>",
		Short: "请求权限（弹出系统对话框或打开设置页面）",
		Long:  "请求指定权限。辅助功能和屏幕录制会弹出系统对话框，其余类型打开对应的系统设置页面。\n可用类型: " + kindList(),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := permissions.ParseKind(args[0])
			if err != nil {
				return err
			}
			if err := opts.broker.Request(kind); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[INFO] 已请求%s权限\n", kind.DisplayName())
			return nil
		},
	}
}

func newStatusCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "显示全部权限状态及授权说明",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := opts.svc.GetPermissionStatus()
			if opts.jsonOut {
				return writeJSON(cmd.OutOrStdout(), info)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "权限状态:")
			for _, k := range permissions.AllKinds() {
				fmt.Fprintf(out, "  %s: %v\n", k.DisplayName(), info.Granted(k))
			}
			if info.AllGranted {
				fmt.Fprintln(out, "✓ 所有权限已授予")
				return nil
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, info.Message)
			return nil
		},
	}
}

func newResetCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset <kind>",
		Short: "使用 tccutil 重置权限授权记录",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := permissions.ParseKind(args[0])
			if err != nil {
				return err
			}

			bundleID := opts.cfg.BundleID
			if opts.bundleID != "" {
				bundleID = opts.bundleID
			}
			if err := opts.broker.Reset(kind, bundleID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[INFO] 已重置 %s 的%s权限，需要重启应用后重新授权\n", bundleID, kind.DisplayName())
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.bundleID, "bundle-id", "", "应用 bundle ID (默认读取配置)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示版本信息",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "permbroker v%s\n", Version)
			fmt.Fprintf(out, "Build Time: %s\n", BuildTime)
			fmt.Fprintf(out, "Git Commit: %s\n", GitCommit)
		},
	}
}

func parseKinds(args []string) ([]permissions.Kind, error) {
	kinds := make([]permissions.Kind, 0, len(args))
	for _, arg := range args {
		k, err := permissions.ParseKind(arg)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func kindList() string {
	names := lo.Map(permissions.AllKinds(), func(k permissions.Kind, _ int) string {
		return k.String()
	})
	return strings.Join(names, ", ")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
