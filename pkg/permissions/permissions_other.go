//go:build !darwin

package permissions

// New 创建当前平台的 Broker
// 非 macOS 系统没有对应的隐私权限，所有检查视为已授权
func New(opts ...Option) Broker {
	return NewFallback()
}
