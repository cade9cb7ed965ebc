package permissions

// AuthorizationStatus 媒体设备授权状态，取值与 AVAuthorizationStatus 一致
type AuthorizationStatus int

const (
	StatusNotDetermined AuthorizationStatus = iota
	StatusRestricted
	StatusDenied
	StatusAuthorized
)

// AVMediaType 常量的字符串值
const (
	MediaTypeVideo = "vide"
	MediaTypeAudio = "soun"
)

// Granted 仅 Authorized 视为已授权
func (s AuthorizationStatus) Granted() bool {
	return s == StatusAuthorized
}

func (s AuthorizationStatus) String() string {
	switch s {
	case StatusNotDetermined:
		return "not-determined"
	case StatusRestricted:
		return "restricted"
	case StatusDenied:
		return "denied"
	case StatusAuthorized:
		return "authorized"
	default:
		return "unknown"
	}
}
