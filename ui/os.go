package ui

// OS is the platform specific part of the application shell.
type OS interface {
	TransformToForeground() // Shows the app in the Dock or task switcher.
	TransformToBackground() // Hides the app from the Dock or task switcher.
}
