package ui

import "time"

// aboutSplashTime is how long the about screen is shown
const aboutSplashTime = 3 * time.Second

// updateMenuItemPrefix is the copy for the new update available tray menu item
const updateMenuItemPrefix = "Update to "

// shutdownTimeout bounds how long the command bridge may take to close
const shutdownTimeout = 2 * time.Second

// maintenanceInterval is the pause between database maintenance runs
const maintenanceInterval = 24 * time.Hour

// updateCheckTimeout bounds a single update check
const updateCheckTimeout = 30 * time.Second
