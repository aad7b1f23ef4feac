//go:build !windows

package dialogs

import "fyne.io/fyne/v2"

func newPicker(parent fyne.Window) Picker {
	return &fynePicker{parent: parent}
}
