package permissions

import (
	"fmt"
	"os"
	"time"

	"github.com/zoeyai/permbroker/internal/logger"
	"github.com/zoeyai/permbroker/pkg/cmdutil"
)

// Broker 权限代理
//
// Check 从不失败；Request 只在拉起系统进程失败时返回错误。
// 实现不持有可变状态，可并发调用。
type Broker interface {
	// Check 查询当前授权状态
	Check(kind Kind) bool
	// Request 触发系统授权弹窗或打开对应的设置面板，不等待用户操作
	Request(kind Kind) error
	// Reset 使用 tccutil 重置指定应用的授权记录
	Reset(kind Kind, bundleID string) error
}

// System 平台权限 API
type System interface {
	// AccessibilityTrusted 查询辅助功能授权，prompt 为 true 时弹出系统对话框
	AccessibilityTrusted(prompt bool) bool
	// ScreenCaptureAccess request 为 false 时仅预检，为 true 时请求授权
	ScreenCaptureAccess(request bool) bool
	// MediaAuthorizationStatus 查询媒体类型的授权状态
	MediaAuthorizationStatus(mediaType string) AuthorizationStatus
}

// Opener 打开系统设置面板
type Opener func(uri string) error

// Runner 执行外部命令
type Runner func(name string, args ...string) error

type options struct {
	homeDir HomeDirFunc
	opener  Opener
	runner  Runner
}

// Option 配置 Broker
type Option func(*options)

// WithHomeDir 指定主目录解析函数，用于完全磁盘访问探测
func WithHomeDir(fn HomeDirFunc) Option {
	return func(o *options) {
		o.homeDir = fn
	}
}

// WithOpener 指定设置面板的打开方式
func WithOpener(fn Opener) Option {
	return func(o *options) {
		o.opener = fn
	}
}

// WithRunner 指定外部命令执行方式
func WithRunner(fn Runner) Option {
	return func(o *options) {
		o.runner = fn
	}
}

func defaultOptions() options {
	return options{
		homeDir: os.UserHomeDir,
		opener:  openSettings,
		runner:  cmdutil.Run,
	}
}

// strategy 单个权限类型的处理方式。
// prompt 为 nil 时 Request 打开 settingsURI。
type strategy struct {
	check       func() bool
	prompt      func()
	settingsURI string
}

type nativeBroker struct {
	opts  options
	table map[Kind]strategy
}

// NewNative 基于给定的平台 API 创建 Broker
func NewNative(sys System, opts ...Option) Broker {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	b := &nativeBroker{opts: o}
	b.table = map[Kind]strategy{
		Accessibility: {
			check:  func() bool { return sys.AccessibilityTrusted(false) },
			prompt: func() { sys.AccessibilityTrusted(true) },
		},
		FullDiskAccess: {
			check:       func() bool { return probeFullDiskAccess(o.homeDir) },
			settingsURI: FullDiskAccessSettingsURI,
		},
		ScreenRecording: {
			check: func() bool { return sys.ScreenCaptureAccess(false) },
			// 同一 bundle 只在首次调用时弹窗
			prompt: func() { sys.ScreenCaptureAccess(true) },
		},
		Microphone: {
			// 沿用 "vide" 媒体类型，与既有插件行为保持一致
			check:       func() bool { return sys.MediaAuthorizationStatus(MediaTypeVideo).Granted() },
			settingsURI: MicrophoneSettingsURI,
		},
		Audio: {
			check:       func() bool { return sys.MediaAuthorizationStatus(MediaTypeAudio).Granted() },
			settingsURI: AudioSettingsURI,
		},
	}
	return b
}

// Check 查询授权状态，未知类型返回 false
func (b *nativeBroker) Check(kind Kind) bool {
	s, ok := b.table[kind]
	if !ok {
		logger.Warn("未知的权限类型: %s", kind)
		return false
	}

	granted := s.check()
	logger.Debug("检查权限 %s: %v", kind, granted)
	return granted
}

// Request 请求授权
func (b *nativeBroker) Request(kind Kind) error {
	s, ok := b.table[kind]
	if !ok {
		return fmt.Errorf("未知的权限类型: %s", kind)
	}

	start := time.Now()
	if s.prompt != nil {
		s.prompt()
		logger.LogEvent("PERM", true, elapsedMs(start), fmt.Sprintf("request %s: prompt", kind))
		return nil
	}

	if err := b.opts.opener(s.settingsURI); err != nil {
		logger.LogEvent("PERM", false, elapsedMs(start), fmt.Sprintf("request %s: %v", kind, err))
		return err
	}
	logger.LogEvent("PERM", true, elapsedMs(start), fmt.Sprintf("request %s: %s", kind, s.settingsURI))
	return nil
}

// Reset 执行 tccutil reset <service> <bundleID>
func (b *nativeBroker) Reset(kind Kind, bundleID string) error {
	if !kind.Valid() {
		return fmt.Errorf("未知的权限类型: %s", kind)
	}
	if bundleID == "" {
		return fmt.Errorf("重置%s权限失败: 缺少 bundle ID", kind.DisplayName())
	}

	if err := b.opts.runner("tccutil", "reset", kind.TCCService(), bundleID); err != nil {
		return fmt.Errorf("重置%s权限失败: %w", kind.DisplayName(), err)
	}
	logger.Info("已重置 %s 的%s权限", bundleID, kind.DisplayName())
	return nil
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
