package ui

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desknote/desknote/config"
	"github.com/desknote/desknote/pkg/store"
	"github.com/desknote/desknote/pkg/tray"
)

type fakeTray struct {
	icon    fyne.Resource
	menu    *fyne.Menu
	tooltip string
	handler func(tray.Event)
}

func (b *fakeTray) SetIcon(res fyne.Resource) { b.icon = res }
func (b *fakeTray) SetMenu(menu *fyne.Menu) { b.menu = menu }
func (b *fakeTray) SetTooltip(tooltip string) { b.tooltip = tooltip }
func (b *fakeTray) OnEvent(fn func(tray.Event)) { b.handler = fn }

// newTestApp returns an application on a test driver with its data in a
// temp dir, the update check off and a fake tray.
func newTestApp(t *testing.T) (*DeskNoteApp, *fakeTray) {
	t.Helper()
	config.SetDataDir(t.TempDir())
	t.Cleanup(func() { config.SetDataDir("") })

	da := New(test.NewTempApp(t))
	da.cfg.SetUpdateCheckEnabled(false)
	backend := &fakeTray{}
	da.trayBackend = func(fyne.App) (tray.Backend, bool) { return backend, true }
	return da, backend
}

func TestBootstrap(t *testing.T) {
	da, backend := newTestApp(t)
	require.NoError(t, da.Bootstrap())
	t.Cleanup(da.Shutdown)

	assert.Equal(t, []string{"log", "sql", "store", "dialog", "fs", "window-state"}, da.plugins.Names())
	assert.Subset(t, da.registry.Names(), []string{
		CmdSendToDesktop, CmdOnFocusLost,
		"todo_add", "note_list", "worklog_add",
		"settings_get", "notes_export", "notes_import",
	})

	require.NotNil(t, da.main)
	assert.True(t, da.main.shown.Value(), "window is shown when no state was saved")
	assert.Empty(t, backend.tooltip, "tooltip waits for the tray to start")
	da.trayStarted()
	assert.Equal(t, config.TrayTooltip, backend.tooltip)
	assert.NotNil(t, backend.icon)
	require.NotNil(t, backend.menu)
	assert.Equal(t, "Show / Hide", backend.menu.Items[0].Label)

	_, err := da.registry.Invoke(context.Background(), CmdSendToDesktop, nil)
	assert.NoError(t, err)
	_, err = da.registry.Invoke(context.Background(), CmdOnFocusLost, nil)
	assert.NoError(t, err)
}

func TestTrayClickTogglesMainWindow(t *testing.T) {
	da, backend := newTestApp(t)
	require.NoError(t, da.Bootstrap())
	t.Cleanup(da.Shutdown)
	require.NotNil(t, backend.handler)

	backend.handler(tray.Event{Button: tray.MouseLeft})
	assert.False(t, da.main.shown.Value())

	backend.handler(tray.Event{Button: tray.MouseRight})
	assert.False(t, da.main.shown.Value(), "only the left button toggles")

	backend.handler(tray.Event{Button: tray.MouseLeft})
	assert.True(t, da.main.shown.Value())
}

func TestBootstrapMissingMainWindow(t *testing.T) {
	da, backend := newTestApp(t)
	da.windowFactory = func(fyne.App) map[string]fyne.Window {
		return map[string]fyne.Window{}
	}

	err := da.Bootstrap()
	assert.ErrorIs(t, err, ErrMainWindowNotFound)
	assert.Nil(t, da.sql.db, "plugins are closed after a failed bootstrap")
	assert.Nil(t, backend.handler, "no tray icon without a main window")
}

func TestBootstrapInitFailure(t *testing.T) {
	da, _ := newTestApp(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	config.SetDataDir(filepath.Join(blocker, "data"))

	err := da.Bootstrap()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "runtime init failed")
	assert.NotErrorIs(t, err, ErrMainWindowNotFound)
}

func TestBootstrapWithoutTray(t *testing.T) {
	da, _ := newTestApp(t)
	da.trayBackend = func(fyne.App) (tray.Backend, bool) { return nil, false }

	require.NoError(t, da.Bootstrap())
	t.Cleanup(da.Shutdown)
	assert.Nil(t, da.trayIcon)
	assert.NotNil(t, da.Toggler())
}

func TestShutdownReleasesTray(t *testing.T) {
	da, backend := newTestApp(t)
	require.NoError(t, da.Bootstrap())

	da.Shutdown()
	assert.Nil(t, backend.handler)
	assert.Nil(t, da.trayIcon)
	assert.Nil(t, da.sql.db)
	assert.NotPanics(t, da.Shutdown)
}

func TestStoreCommands(t *testing.T) {
	da, _ := newTestApp(t)
	require.NoError(t, da.Bootstrap())
	t.Cleanup(da.Shutdown)
	ctx := context.Background()

	res, err := da.registry.Invoke(ctx, "todo_add", json.RawMessage(`{"content":"  water plants "}`))
	require.NoError(t, err)
	todo := res.(store.Todo)
	assert.Equal(t, "water plants", todo.Content)

	_, err = da.registry.Invoke(ctx, "todo_add", json.RawMessage(`{"content":"   "}`))
	assert.ErrorIs(t, err, store.ErrEmpty)

	_, err = da.registry.Invoke(ctx, "todo_toggle", json.RawMessage(`{"id":"`+todo.ID+`"}`))
	require.NoError(t, err)

	res, err = da.registry.Invoke(ctx, "todo_list", nil)
	require.NoError(t, err)
	todos := res.([]store.Todo)
	require.Len(t, todos, 1)
	assert.True(t, todos[0].Done)

	_, err = da.registry.Invoke(ctx, "notes_export", json.RawMessage(`{"dir":"relative"}`))
	assert.Error(t, err)

	res, err = da.registry.Invoke(ctx, "settings_get", nil)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultOpacity, res.(map[string]any)[config.OpacityKey])
}

func TestNotesExportImport(t *testing.T) {
	da, _ := newTestApp(t)
	require.NoError(t, da.Bootstrap())
	t.Cleanup(da.Shutdown)
	ctx := context.Background()

	_, err := da.sql.db.CreateNote(ctx, "Groceries", "eggs")
	require.NoError(t, err)

	dir := t.TempDir()
	paths, err := da.files.ExportDir(ctx, dir)
	require.NoError(t, err)
	require.Len(t, paths, 1)

	n, err := da.files.ImportDir(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "notes that are not newer are skipped")

	file := filepath.Join(t.TempDir(), "all.md")
	require.NoError(t, da.files.ExportFile(ctx, file))
	assert.FileExists(t, file)
}

func TestDecodeArgs(t *testing.T) {
	var a idArgs
	assert.NoError(t, decodeArgs(nil, &a))
	assert.Empty(t, a.ID)

	assert.NoError(t, decodeArgs(json.RawMessage(`{"id":"x"}`), &a))
	assert.Equal(t, "x", a.ID)

	assert.Error(t, decodeArgs(json.RawMessage(`{`), &a))
}

func TestBridgeStoppedRightAfterStart(t *testing.T) {
	da, _ := newTestApp(t)
	da.app.Preferences().SetString(config.BridgeAddrKey, "127.0.0.1:0")
	require.NoError(t, da.Bootstrap())

	da.startBridge()
	da.stopBridge()
	assert.Empty(t, da.bridgeAddr())
	da.changed(kindTodos)

	done := make(chan struct{})
	go func() {
		da.Shutdown()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Shutdown blocked on the command bridge")
	}
}

func TestBridgeAddr(t *testing.T) {
	da, _ := newTestApp(t)
	da.app.Preferences().SetString(config.BridgeAddrKey, "127.0.0.1:0")
	require.NoError(t, da.Bootstrap())
	t.Cleanup(da.Shutdown)

	da.startBridge()
	require.Eventually(t, func() bool { return da.bridgeAddr() != "" }, time.Second, 10*time.Millisecond)
	da.changed(kindNotes)
	da.stopBridge()
	assert.Empty(t, da.bridgeAddr())
}
