// Package cmdutil 提供外部命令执行的辅助函数
package cmdutil

import (
	"fmt"
	"os/exec"
	"strings"
)

// Command 创建 exec.Cmd，并在 Windows 上隐藏控制台窗口
func Command(name string, args ...string) *exec.Cmd {
	cmd := exec.Command(name, args...)
	HideWindow(cmd)
	return cmd
}

// Run 执行命令并等待结束，失败时错误中附带命令输出
func Run(name string, args ...string) error {
	output, err := Command(name, args...).CombinedOutput()
	if err != nil {
		if out := strings.TrimSpace(string(output)); out != "" {
			return fmt.Errorf("%w: %s", err, out)
		}
		return err
	}
	return nil
}
