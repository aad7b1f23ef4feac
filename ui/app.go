// Package ui is the DeskNote application: main window, tray icon, commands
// and the capability plugins they rely on.
package ui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/desknote/desknote/asset"
	"github.com/desknote/desknote/config"
	pkgdesktop "github.com/desknote/desknote/pkg/desktop"
	"github.com/desknote/desknote/pkg/hotkey"
	"github.com/desknote/desknote/pkg/ipc"
	"github.com/desknote/desknote/pkg/plugin"
	"github.com/desknote/desknote/pkg/tray"
	"github.com/desknote/desknote/util/log"
)

// Command names understood by the registry.
const (
	CmdSendToDesktop = "send_to_desktop"
	CmdOnFocusLost   = "on_focus_lost"
)

// ErrMainWindowNotFound is returned by Bootstrap when no window carries the
// main window id.
var ErrMainWindowNotFound = errors.New("main window not found")

// DeskNoteApp represents the application.
type DeskNoteApp struct {
	app      fyne.App
	cfg      *config.AppConfig
	assetMgr *asset.Manager
	registry *ipc.Registry
	plugins  *plugin.Manager
	desk     *pkgdesktop.Controller
	os       OS

	// replaced in tests
	windowFactory func(fyne.App) map[string]fyne.Window
	trayBackend   func(fyne.App) (tray.Backend, bool)

	sql      *sqlPlugin
	dialogs  *dialogPlugin
	files    *fsPlugin
	winState *windowStatePlugin

	windows  map[string]fyne.Window
	main     *mainWindow
	trayIcon *tray.Icon
	trayMenu *fyne.Menu
	toggler  *tray.Toggler
	hotkeys  *hotkey.Listener
	views    *views

	bridgeMu sync.Mutex
	bridge   *ipc.Server

	cancel       context.CancelFunc
	updateOnce   sync.Once
	shutdownOnce sync.Once
	wg           sync.WaitGroup
}

// New creates the application around a. Nothing is shown until Bootstrap.
func New(a fyne.App) *DeskNoteApp {
	da := &DeskNoteApp{
		app:           a,
		cfg:           config.NewAppConfig(a.Preferences()),
		assetMgr:      asset.NewManager(),
		registry:      ipc.NewRegistry(),
		plugins:       plugin.NewManager(),
		desk:          pkgdesktop.NewController(),
		os:            getOS(),
		windowFactory: createWindows,
		trayBackend:   fyneTrayBackend,
	}
	da.registerCommands()
	return da
}

// createWindows creates every window declared by the application, keyed by
// id.
func createWindows(a fyne.App) map[string]fyne.Window {
	w := a.NewWindow(config.AppName)
	w.Resize(fyne.NewSize(360, 560))
	return map[string]fyne.Window{config.MainWindowID: w}
}

func fyneTrayBackend(a fyne.App) (tray.Backend, bool) {
	desk, ok := a.(desktop.App)
	if !ok {
		return nil, false
	}
	return &tray.FyneBackend{Desk: desk}, true
}

// registerCommands adds the window commands the UI layer invokes.
func (da *DeskNoteApp) registerCommands() {
	da.registry.MustRegister(CmdSendToDesktop, ipc.Action(func() {
		if da.main != nil {
			da.desk.PinToDesktop(da.main)
		}
	}))
	da.registry.MustRegister(CmdOnFocusLost, ipc.Action(func() {
		if da.main != nil {
			da.desk.RestorePinOnFocusLoss(da.main)
		}
	}))
}

// invoke runs a registered command from inside the application.
func (da *DeskNoteApp) invoke(name string) {
	if _, err := da.registry.Invoke(context.Background(), name, nil); err != nil {
		log.Warnf("command %s failed: %v", name, err)
	}
}

// Bootstrap registers the plugins, finds the main window and sets up the
// tray icon. A returned error is fatal to the application.
func (da *DeskNoteApp) Bootstrap() error {
	da.windows = da.windowFactory(da.app)

	da.sql = &sqlPlugin{onChange: da.changed}
	da.dialogs = &dialogPlugin{}
	da.files = &fsPlugin{da: da}
	da.winState = &windowStatePlugin{da: da}
	for _, p := range []plugin.Plugin{
		&logPlugin{},
		da.sql,
		&storePlugin{},
		da.dialogs,
		da.files,
		da.winState,
	} {
		if err := da.plugins.Register(p); err != nil {
			return err
		}
	}
	if err := da.plugins.InitAll(da); err != nil {
		da.plugins.CloseAll()
		return fmt.Errorf("runtime init failed: %w", err)
	}

	win, ok := da.windows[config.MainWindowID]
	if !ok || win == nil {
		da.plugins.CloseAll()
		return ErrMainWindowNotFound
	}
	da.main = newMainWindow(win, da.desk)
	win.SetCloseIntercept(func() { da.main.Hide() })
	da.toggler = tray.NewToggler(func() (tray.Window, bool) {
		if da.main == nil {
			return nil, false
		}
		return da.main, true
	})

	da.views = newViews(da)
	win.SetContent(da.views.content())
	if icon, err := da.assetMgr.GetIcon(asset.AppIcon); err == nil {
		da.app.SetIcon(icon)
	}

	da.setupTray()
	da.setupLifecycle()

	ctx, cancel := context.WithCancel(context.Background())
	da.cancel = cancel
	da.wg.Add(1)
	go func() {
		defer da.wg.Done()
		da.runMaintenance(ctx)
	}()

	if da.cfg.GetBridgeEnabled() {
		da.startBridge()
	}

	if da.winState.state.Visible {
		da.main.shown.Set(true)
		win.Show()
	}
	return nil
}

// setupTray creates the tray icon. Its left-click toggles the main window.
func (da *DeskNoteApp) setupTray() {
	backend, ok := da.trayBackend(da.app)
	if !ok {
		log.Warnf("Tray icon not supported on this platform")
		return
	}
	icon, err := da.assetMgr.GetIcon(asset.TrayIcon)
	if err != nil {
		log.Warnf("Failed to load tray icon: %v", err)
	}
	da.trayMenu = da.createTrayMenu()
	da.trayIcon = tray.NewIcon(backend, icon, config.TrayTooltip, da.trayMenu, da.toggler)
}

func (da *DeskNoteApp) createTrayMenu() *fyne.Menu {
	quit := fyne.NewMenuItem("Quit", func() { da.app.Quit() })
	quit.IsQuit = true
	return fyne.NewMenu(config.AppName,
		fyne.NewMenuItem("Show / Hide", da.toggler.Toggle),
		fyne.NewMenuItem("Send to Desktop", func() { da.invoke(CmdSendToDesktop) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("About DeskNote", func() { da.CreateSplashScreen() }),
		fyne.NewMenuItemSeparator(),
		quit,
	)
}

// trayStarted applies the tray tooltip. The driver creates the native tray
// before OnStarted, so it is queued behind the tray setup.
func (da *DeskNoteApp) trayStarted() {
	if da.trayIcon != nil {
		fyne.Do(da.trayIcon.Ready)
	}
}

// addUpdateMenuItem offers a newer release in the tray menu.
func (da *DeskNoteApp) addUpdateMenuItem(version string, releaseURL *url.URL) {
	if da.trayMenu == nil || releaseURL == nil {
		return
	}
	item := fyne.NewMenuItem(updateMenuItemPrefix+version, func() {
		if err := da.app.OpenURL(releaseURL); err != nil {
			log.Warnf("Failed to open release page: %v", err)
		}
	})
	items := da.trayMenu.Items
	da.trayMenu.Items = append([]*fyne.MenuItem{item, fyne.NewMenuItemSeparator()}, items...)
	da.trayMenu.Refresh()
}

// setupLifecycle applies window effects once the driver runs and keeps the
// window pinned while desktop mode is on.
func (da *DeskNoteApp) setupLifecycle() {
	lc := da.app.Lifecycle()
	lc.SetOnStarted(func() {
		da.trayStarted()
		da.winState.restorePosition()
		if da.desk.ApplyBackdrop(da.main) {
			log.Debugf("backdrop applied")
		}
		da.desk.SetOpacity(da.main, da.cfg.GetOpacity())
		if da.cfg.GetDesktopMode() {
			da.setDesktopMode(true)
		}
		da.hotkeys = hotkey.Start(hotkey.ToggleWindow(da.toggler.Toggle))
	})
	lc.SetOnExitedForeground(func() {
		if da.cfg.GetDesktopMode() {
			da.invoke(CmdOnFocusLost)
		}
	})
	lc.SetOnStopped(da.Shutdown)
}

// setDesktopMode pins the window below others. Pinning is sticky until
// restart, so turning the mode off only stops re-pinning on focus loss.
func (da *DeskNoteApp) setDesktopMode(enabled bool) {
	da.cfg.SetDesktopMode(enabled)
	if enabled {
		da.os.TransformToBackground()
		da.invoke(CmdSendToDesktop)
		return
	}
	da.os.TransformToForeground()
}

// startBridge serves the command registry on the loopback bridge.
func (da *DeskNoteApp) startBridge() {
	da.bridgeMu.Lock()
	defer da.bridgeMu.Unlock()
	if da.bridge != nil {
		return
	}
	srv := ipc.NewServer(da.registry, config.AppVersion)
	da.bridge = srv
	addr := da.cfg.GetBridgeAddr()
	da.wg.Add(1)
	go func() {
		defer da.wg.Done()
		if err := srv.Start(addr); err != nil {
			log.Warnf("command bridge stopped: %v", err)
		}
	}()
}

func (da *DeskNoteApp) stopBridge() {
	da.bridgeMu.Lock()
	srv := da.bridge
	da.bridge = nil
	da.bridgeMu.Unlock()
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		log.Warnf("failed to stop command bridge: %v", err)
	}
}

// bridgeAddr returns the address the bridge listens on, or "" when it is
// not serving.
func (da *DeskNoteApp) bridgeAddr() string {
	da.bridgeMu.Lock()
	defer da.bridgeMu.Unlock()
	if da.bridge == nil {
		return ""
	}
	return da.bridge.Addr()
}

// changed refreshes the views showing kind and tells bridge clients.
func (da *DeskNoteApp) changed(kind string) {
	if da.views != nil {
		fyne.Do(func() { da.views.refresh(kind) })
	}
	da.bridgeMu.Lock()
	srv := da.bridge
	da.bridgeMu.Unlock()
	if srv != nil {
		srv.Broadcast("changed", map[string]string{"kind": kind})
	}
}

// Run runs the application until it quits.
func (da *DeskNoteApp) Run() {
	da.app.Run()
	da.Shutdown()
}

// Shutdown stops background work, releases the tray icon and closes the
// plugins in reverse order. It is safe to call more than once.
func (da *DeskNoteApp) Shutdown() {
	da.shutdownOnce.Do(func() {
		if da.cancel != nil {
			da.cancel()
		}
		if da.hotkeys != nil {
			da.hotkeys.Stop()
		}
		da.stopBridge()
		da.wg.Wait()
		if da.trayIcon != nil {
			da.trayIcon.Close()
			da.trayIcon = nil
		}
		if err := da.plugins.CloseAll(); err != nil {
			log.Warnf("shutdown: %v", err)
		}
	})
}

// App returns the fyne application.
func (da *DeskNoteApp) App() fyne.App {
	return da.app
}

// Commands returns the command registry.
func (da *DeskNoteApp) Commands() *ipc.Registry {
	return da.registry
}

// Config returns the settings store.
func (da *DeskNoteApp) Config() *config.AppConfig {
	return da.cfg
}

// MainWindow returns the main window, or nil before Bootstrap created it.
func (da *DeskNoteApp) MainWindow() fyne.Window {
	return da.windows[config.MainWindowID]
}

// Notify shows a system notification.
func (da *DeskNoteApp) Notify(title, message string) {
	da.app.SendNotification(fyne.NewNotification(title, message))
}

// Toggler returns the main window toggle shared by the tray and hotkey.
func (da *DeskNoteApp) Toggler() *tray.Toggler {
	return da.toggler
}
