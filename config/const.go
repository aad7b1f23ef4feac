package config

import "strings"

// AppVersion is the version of the application, set at build time.
var AppVersion string

// AppName is the name of the application.
const AppName = "DeskNote"

// AppID is the reverse-domain application identifier.
const AppID = "com.desknote.app"

// MainWindowID is the well-known identifier of the main window.
const MainWindowID = "main"

// TrayTooltip is shown when hovering the tray icon.
const TrayTooltip = "DeskNote — 点击显示/隐藏"

// DatabaseFile is the name of the SQLite database file in the data directory.
const DatabaseFile = "desknote.db"

// LogWinSubDir is the sub directory for the log files on windows.
var LogWinSubDir = AppName

// LogSubDir is the sub directory for the log files.
var LogSubDir = "." + strings.ToLower(AppName)

// LogExt is the extension for the log files.
var LogExt = ".log"
