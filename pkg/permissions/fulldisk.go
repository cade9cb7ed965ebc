package permissions

import (
	"os"
	"path/filepath"
)

// HomeDirFunc 解析当前用户主目录
type HomeDirFunc func() (string, error)

// 受保护目录，只有获得完全磁盘访问权限的进程才能列出其内容。
// 参考 https://github.com/inket/FullDiskAccess 的做法。
var fullDiskProbeDirs = []string{
	filepath.Join("Library", "Containers", "com.apple.stocks"),
	filepath.Join("Library", "Safari"),
}

// probeFullDiskAccess 通过尝试列出受保护目录推断是否拥有完全磁盘访问权限。
//
// 这是启发式判断，并非系统提供的真实状态：系统版本调整目录布局、
// 或目录本身不存在时会得到 false。主目录无法解析时返回 false。
func probeFullDiskAccess(homeDir HomeDirFunc) bool {
	if homeDir == nil {
		return false
	}
	home, err := homeDir()
	if err != nil || home == "" {
		return false
	}

	for _, dir := range fullDiskProbeDirs {
		if _, err := os.ReadDir(filepath.Join(home, dir)); err == nil {
			return true
		}
	}
	return false
}
