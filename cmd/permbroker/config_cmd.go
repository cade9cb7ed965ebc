package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zoeyai/permbroker/pkg/config"
)

func newConfigCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "查看或修改配置文件",
	}
	cmd.AddCommand(
		newConfigShowCmd(opts),
		newConfigSetCmd(opts),
		newConfigClearCmd(opts),
	)
	return cmd
}

func newConfigShowCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "显示配置文件内容",
		RunE: func(cmd *cobra.Command, args []string) error {
			// 显示文件中的值，不含命令行覆盖
			cfg, err := opts.manager.Load()
			if err != nil {
				return err
			}
			if opts.jsonOut {
				return writeJSON(cmd.OutOrStdout(), cfg)
			}

			out := cmd.OutOrStdout()
			if opts.manager.Exists() {
				fmt.Fprintf(out, "配置文件: %s\n", opts.manager.GetConfigFile())
			} else {
				fmt.Fprintf(out, "配置文件: %s (不存在，使用默认配置)\n", opts.manager.GetConfigFile())
			}
			fmt.Fprintf(out, "  bundle_id: %s\n", cfg.BundleID)
			fmt.Fprintf(out, "  log_level: %s\n", cfg.LogLevel)
			fmt.Fprintf(out, "  log_file:  %s\n", cfg.LogFile)
			fmt.Fprintf(out, "  home_dir:  %s\n", cfg.HomeDir)
			return nil
		},
	}
}

func newConfigSetCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "修改配置项并保存",
		Long:  "修改配置项并保存到配置文件。\n可用配置项: " + strings.Join(config.Keys(), ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.manager.Load()
			if err != nil {
				return err
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := opts.manager.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[INFO] 已保存 %s = %s\n", args[0], args[1])
			return nil
		},
	}
}

func newConfigClearCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "删除配置文件，恢复默认配置",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.manager.Clear(); err != nil {
				return fmt.Errorf("清除配置失败: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "[INFO] 配置已清除")
			return nil
		},
	}
}
