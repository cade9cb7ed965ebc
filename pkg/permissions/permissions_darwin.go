//go:build darwin

package permissions

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Foundation -framework ApplicationServices -framework CoreGraphics -framework AVFoundation
#include <stdlib.h>
#import <Foundation/Foundation.h>
#import <ApplicationServices/ApplicationServices.h>
#import <CoreGraphics/CoreGraphics.h>
#import <AVFoundation/AVFoundation.h>

int accessibilityTrusted(int prompt) {
    NSDictionary *options = @{(__bridge NSString *)kAXTrustedCheckOptionPrompt: prompt ? @YES : @NO};
    return AXIsProcessTrustedWithOptions((__bridge CFDictionaryRef)options) ? 1 : 0;
}

int screenCaptureAccess(int request) {
    if (@available(macOS 10.15, *)) {
        if (request) {
            return CGRequestScreenCaptureAccess() ? 1 : 0;
        }
        return CGPreflightScreenCaptureAccess() ? 1 : 0;
    }
    return 1;
}

int mediaAuthorizationStatus(const char *mediaType) {
    @autoreleasepool {
        NSString *type = [NSString stringWithUTF8String:mediaType];
        return (int)[AVCaptureDevice authorizationStatusForMediaType:type];
    }
}
*/
import "C"
import "unsafe"

// darwinSystem 通过 cgo 调用 macOS 权限 API
type darwinSystem struct{}

func (darwinSystem) AccessibilityTrusted(prompt bool) bool {
	return C.accessibilityTrusted(cBool(prompt)) == 1
}

func (darwinSystem) ScreenCaptureAccess(request bool) bool {
	return C.screenCaptureAccess(cBool(request)) == 1
}

func (darwinSystem) MediaAuthorizationStatus(mediaType string) AuthorizationStatus {
	cs := C.CString(mediaType)
	defer C.free(unsafe.Pointer(cs))
	return AuthorizationStatus(C.mediaAuthorizationStatus(cs))
}

func cBool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}

// New 创建当前平台的 Broker
func New(opts ...Option) Broker {
	return NewNative(darwinSystem{}, opts...)
}
