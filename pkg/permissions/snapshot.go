package permissions

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// PermissionStatus 全部权限的授权状态
type PermissionStatus struct {
	Accessibility   bool   `json:"accessibility"`
	FullDiskAccess  bool   `json:"full_disk_access"`
	ScreenRecording bool   `json:"screen_recording"`
	Microphone      bool   `json:"microphone"`
	Audio           bool   `json:"audio"`
	AllGranted      bool   `json:"all_granted"`
	Missing         []Kind `json:"missing,omitempty"`
}

// Granted 返回指定类型的授权状态
func (s *PermissionStatus) Granted(kind Kind) bool {
	switch kind {
	case Accessibility:
		return s.Accessibility
	case FullDiskAccess:
		return s.FullDiskAccess
	case ScreenRecording:
		return s.ScreenRecording
	case Microphone:
		return s.Microphone
	case Audio:
		return s.Audio
	default:
		return false
	}
}

// Snapshot 检查全部权限（不触发弹窗）
func Snapshot(b Broker) *PermissionStatus {
	granted := lo.Associate(AllKinds(), func(k Kind) (Kind, bool) {
		return k, b.Check(k)
	})

	missing := lo.Filter(AllKinds(), func(k Kind, _ int) bool {
		return !granted[k]
	})

	return &PermissionStatus{
		Accessibility:   granted[Accessibility],
		FullDiskAccess:  granted[FullDiskAccess],
		ScreenRecording: granted[ScreenRecording],
		Microphone:      granted[Microphone],
		Audio:           granted[Audio],
		AllGranted:      len(missing) == 0,
		Missing:         missing,
	}
}

// Instructions 获取权限说明，全部已授权时返回空字符串
func Instructions(status *PermissionStatus) string {
	if status == nil || status.AllGranted {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("需要授权以下权限才能正常工作:\n\n")
	for i, k := range status.Missing {
		fmt.Fprintf(&sb, "%d. %s权限\n", i+1, k.DisplayName())
		fmt.Fprintf(&sb, "   %s\n\n", k.SettingsPath())
	}
	sb.WriteString("授权后需要重启应用才能生效。")

	return sb.String()
}
