package permissions

import (
	"errors"
	"io"
	"os/exec"

	"github.com/pkg/browser"

	"github.com/zoeyai/permbroker/internal/logger"
)

func init() {
	// 设置面板进程的输出不写入宿主的 stdout/stderr
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

// openSettings 默认的 Opener。
// 只有进程无法启动时返回错误；进程已启动但以非零状态退出视为成功。
func openSettings(uri string) error {
	err := browser.OpenURL(uri)
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		logger.Debug("打开 %s 时进程退出: %v", uri, exitErr)
		return nil
	}
	return err
}
