// Package permissions 查询和请求 macOS 隐私权限
//
// 支持辅助功能、完全磁盘访问、屏幕录制、麦克风和音频五类权限。
// macOS 上使用系统 API 查询授权状态，其他平台一律视为已授权。
package permissions

import (
	"fmt"
	"strings"
)

// Kind 权限类型
type Kind int

const (
	Accessibility Kind = iota
	FullDiskAccess
	ScreenRecording
	Microphone
	Audio
)

// 系统设置面板 URI
const (
	settingsPrefix = "x-apple.systempreferences:com.apple.preference.security?"

	FullDiskAccessSettingsURI = settingsPrefix + "Privacy_AllFiles"
	MicrophoneSettingsURI     = settingsPrefix + "Privacy_Microphone"
	AudioSettingsURI          = settingsPrefix + "Privacy_AudioRecording"
)

type kindInfo struct {
	name         string
	displayName  string
	settingsPath string
	tccService   string
}

var kinds = [...]kindInfo{
	Accessibility: {
		name:         "accessibility",
		displayName:  "辅助功能",
		settingsPath: "系统设置 > 隐私与安全性 > 辅助功能",
		tccService:   "Accessibility",
	},
	FullDiskAccess: {
		name:         "full-disk-access",
		displayName:  "完全磁盘访问",
		settingsPath: "系统设置 > 隐私与安全性 > 完全磁盘访问权限",
		tccService:   "SystemPolicyAllFiles",
	},
	ScreenRecording: {
		name:         "screen-recording",
		displayName:  "屏幕录制",
		settingsPath: "系统设置 > 隐私与安全性 > 屏幕录制",
		tccService:   "ScreenCapture",
	},
	Microphone: {
		name:         "microphone",
		displayName:  "麦克风",
		settingsPath: "系统设置 > 隐私与安全性 > 麦克风",
		tccService:   "Microphone",
	},
	Audio: {
		name:         "audio",
		displayName:  "音频录制",
		settingsPath: "系统设置 > 隐私与安全性 > 屏幕与系统录音",
		tccService:   "AudioCapture",
	},
}

// AllKinds 返回全部权限类型
func AllKinds() []Kind {
	return []Kind{Accessibility, FullDiskAccess, ScreenRecording, Microphone, Audio}
}

// Valid 是否为已知权限类型
func (k Kind) Valid() bool {
	return k >= Accessibility && k <= Audio
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kinds[k].name
}

// DisplayName 面向用户的名称
func (k Kind) DisplayName() string {
	if !k.Valid() {
		return k.String()
	}
	return kinds[k].displayName
}

// SettingsPath 系统设置中的菜单路径
func (k Kind) SettingsPath() string {
	if !k.Valid() {
		return ""
	}
	return kinds[k].settingsPath
}

// TCCService tccutil 使用的服务名
func (k Kind) TCCService() string {
	if !k.Valid() {
		return ""
	}
	return kinds[k].tccService
}

// ParseKind 解析权限类型名称，忽略大小写，"_" 与 "-" 等价
func ParseKind(s string) (Kind, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for _, k := range AllKinds() {
		if kinds[k].name == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("未知的权限类型: %q", s)
}

// MarshalText 实现 encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("未知的权限类型: %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
