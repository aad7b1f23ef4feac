//go:build darwin

package ui

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Foundation -framework AppKit

#import <AppKit/AppKit.h>

// Dock icon and menu bar.
const long policyRegular = 0;
// No Dock icon, not listed in Force Quit.
const long policyAccessory = 1;

// applyPolicy switches the activation policy. Activating the app makes the
// change visible right away.
void applyPolicy(long policy) {
    [NSApp setActivationPolicy:policy];
    [NSApp activateIgnoringOtherApps:YES];
}
*/
import "C"

// darwinOS leaves the Dock in desktop mode, the way a tool window leaves
// the Windows taskbar.
type darwinOS struct{}

// TransformToForeground shows the Dock icon.
func (d *darwinOS) TransformToForeground() {
	C.applyPolicy(C.policyRegular)
}

// TransformToBackground hides the Dock icon.
func (d *darwinOS) TransformToBackground() {
	C.applyPolicy(C.policyAccessory)
}

func getOS() OS {
	return &darwinOS{}
}
