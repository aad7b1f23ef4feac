package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// settingLabelRatio is the share of a settings row taken by its label.
const settingLabelRatio = 0.6

// createSectionTitleLabel creates a label heading a group of settings.
func createSectionTitleLabel(desc string) *widget.Label {
	label := widget.NewLabel(desc)
	label.Importance = widget.HighImportance
	label.TextStyle = fyne.TextStyle{Bold: true}
	return label
}

// createSettingTitleLabel creates a label for a setting title
func createSettingTitleLabel(desc string) *widget.Label {
	label := widget.NewLabel(desc)
	label.Wrapping = fyne.TextWrapWord
	label.TextStyle = fyne.TextStyle{Bold: true}
	return label
}

// createSettingDescriptionLabel creates a label for a setting description
func createSettingDescriptionLabel(desc string) *widget.Label {
	label := widget.NewLabel(desc)
	label.Wrapping = fyne.TextWrapWord
	label.Importance = widget.LowImportance
	label.TextStyle = fyne.TextStyle{Italic: true}
	return label
}

// settingRow puts a titled control above its description.
func settingRow(title, desc string, control fyne.CanvasObject) fyne.CanvasObject {
	row := newSplitRow(createSettingTitleLabel(title), control, settingLabelRatio)
	if desc == "" {
		return row
	}
	return container.NewVBox(row, createSettingDescriptionLabel(desc))
}
