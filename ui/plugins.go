package ui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"

	"github.com/desknote/desknote/config"
	pkgdesktop "github.com/desknote/desknote/pkg/desktop"
	"github.com/desknote/desknote/pkg/dialogs"
	"github.com/desknote/desknote/pkg/export"
	"github.com/desknote/desknote/pkg/ipc"
	"github.com/desknote/desknote/pkg/plugin"
	"github.com/desknote/desknote/pkg/store"
	"github.com/desknote/desknote/pkg/sysinfo"
	"github.com/desknote/desknote/pkg/winstate"
	"github.com/desknote/desknote/util/log"
)

// decodeArgs unmarshals command arguments into v. Empty arguments leave v
// untouched.
func decodeArgs(args json.RawMessage, v any) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// logPlugin applies the log threshold. DESKNOTE_LOG_LEVEL=debug lowers it.
type logPlugin struct{}

func (p *logPlugin) Name() string { return "log" }

func (p *logPlugin) Init(plugin.Host) error {
	level := log.LevelWarn
	switch strings.ToLower(os.Getenv("DESKNOTE_LOG_LEVEL")) {
	case "debug":
		level = log.LevelDebug
	case "info":
		level = log.LevelInfo
	case "error":
		level = log.LevelError
	}
	log.SetLevel(level)
	return nil
}

func (p *logPlugin) Close() error { return nil }

// sqlPlugin owns the database.
type sqlPlugin struct {
	db       *store.Store
	onChange func(kind string)
}

func (p *sqlPlugin) Name() string { return "sql" }

func (p *sqlPlugin) Init(h plugin.Host) error {
	path, err := config.DatabasePath()
	if err != nil {
		return err
	}
	db, err := store.Open(path)
	if err != nil {
		return err
	}
	p.db = db
	return registerStoreCommands(h.Commands(), db, func(kind string) {
		if p.onChange != nil {
			p.onChange(kind)
		}
	})
}

func (p *sqlPlugin) Close() error {
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}

type idArgs struct {
	ID string `json:"id"`
}

// registerStoreCommands exposes the store on the registry. changed is
// called with the kind of data after every successful mutation.
func registerStoreCommands(r *ipc.Registry, db *store.Store, changed func(kind string)) error {
	mutation := func(kind string, fn ipc.Command) ipc.Command {
		return func(ctx context.Context, args json.RawMessage) (any, error) {
			res, err := fn(ctx, args)
			if err == nil {
				changed(kind)
			}
			return res, err
		}
	}

	r.MustRegister("todo_list", func(ctx context.Context, _ json.RawMessage) (any, error) {
		return db.ListTodos(ctx)
	})
	r.MustRegister("todo_add", mutation(kindTodos, func(ctx context.Context, args json.RawMessage) (any, error) {
		var a struct {
			Content string `json:"content"`
		}
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		return db.AddTodo(ctx, a.Content)
	}))
	r.MustRegister("todo_toggle", mutation(kindTodos, func(ctx context.Context, args json.RawMessage) (any, error) {
		var a idArgs
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		return db.ToggleTodo(ctx, a.ID)
	}))
	r.MustRegister("todo_set_priority", mutation(kindTodos, func(ctx context.Context, args json.RawMessage) (any, error) {
		var a struct {
			ID       string         `json:"id"`
			Priority store.Priority `json:"priority"`
		}
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		return nil, db.SetTodoPriority(ctx, a.ID, a.Priority)
	}))
	r.MustRegister("todo_delete", mutation(kindTodos, func(ctx context.Context, args json.RawMessage) (any, error) {
		var a idArgs
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		return nil, db.DeleteTodo(ctx, a.ID)
	}))

	r.MustRegister("note_list", func(ctx context.Context, _ json.RawMessage) (any, error) {
		return db.ListNotes(ctx)
	})
	r.MustRegister("note_create", mutation(kindNotes, func(ctx context.Context, args json.RawMessage) (any, error) {
		var a struct {
			Title   string `json:"title"`
			Content string `json:"content"`
		}
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		return db.CreateNote(ctx, a.Title, a.Content)
	}))
	r.MustRegister("note_update", mutation(kindNotes, func(ctx context.Context, args json.RawMessage) (any, error) {
		var a struct {
			ID      string `json:"id"`
			Title   string `json:"title"`
			Content string `json:"content"`
		}
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		return db.UpdateNote(ctx, a.ID, a.Title, a.Content)
	}))
	r.MustRegister("note_delete", mutation(kindNotes, func(ctx context.Context, args json.RawMessage) (any, error) {
		var a idArgs
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		return nil, db.DeleteNote(ctx, a.ID)
	}))

	r.MustRegister("worklog_list", func(ctx context.Context, _ json.RawMessage) (any, error) {
		return db.ListWorkLogs(ctx)
	})
	r.MustRegister("worklog_add", mutation(kindWorkLogs, func(ctx context.Context, args json.RawMessage) (any, error) {
		var a struct {
			Date    string `json:"date"`
			Content string `json:"content"`
		}
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		return db.AddWorkLog(ctx, a.Date, a.Content)
	}))
	r.MustRegister("worklog_delete", mutation(kindWorkLogs, func(ctx context.Context, args json.RawMessage) (any, error) {
		var a idArgs
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		return nil, db.DeleteWorkLog(ctx, a.ID)
	}))
	return nil
}

// storePlugin is the settings store. It exposes the settings the web
// front end of earlier releases read.
type storePlugin struct{}

func (p *storePlugin) Name() string { return "store" }

func (p *storePlugin) Init(h plugin.Host) error {
	cfg := h.Config()
	return h.Commands().Register("settings_get", func(context.Context, json.RawMessage) (any, error) {
		return map[string]any{
			config.OpacityKey:        cfg.GetOpacity(),
			config.DesktopModeKey:    cfg.GetDesktopMode(),
			config.CollapsedCardsKey: cfg.GetCardCollapsed(),
		}, nil
	})
}

func (p *storePlugin) Close() error { return nil }

// dialogPlugin provides file pickers attached to the main window.
type dialogPlugin struct {
	picker dialogs.Picker
}

func (p *dialogPlugin) Name() string { return "dialog" }

func (p *dialogPlugin) Init(h plugin.Host) error {
	p.picker = dialogs.New(h.MainWindow())
	return nil
}

func (p *dialogPlugin) Close() error { return nil }

// fsPlugin moves notes between the database and Markdown files.
type fsPlugin struct {
	da *DeskNoteApp
}

func (p *fsPlugin) Name() string { return "fs" }

func (p *fsPlugin) Init(h plugin.Host) error {
	type dirArgs struct {
		Dir string `json:"dir"`
	}
	dirFrom := func(args json.RawMessage) (string, error) {
		var a dirArgs
		if err := decodeArgs(args, &a); err != nil {
			return "", err
		}
		if a.Dir == "" || !filepath.IsAbs(a.Dir) {
			return "", errors.New("dir must be an absolute path")
		}
		return filepath.Clean(a.Dir), nil
	}

	if err := h.Commands().Register("notes_export", func(ctx context.Context, args json.RawMessage) (any, error) {
		dir, err := dirFrom(args)
		if err != nil {
			return nil, err
		}
		return p.ExportDir(ctx, dir)
	}); err != nil {
		return err
	}
	return h.Commands().Register("notes_import", func(ctx context.Context, args json.RawMessage) (any, error) {
		dir, err := dirFrom(args)
		if err != nil {
			return nil, err
		}
		return p.ImportDir(ctx, dir)
	})
}

func (p *fsPlugin) Close() error { return nil }

func (p *fsPlugin) db() (*store.Store, error) {
	if p.da.sql == nil || p.da.sql.db == nil {
		return nil, errors.New("database is not open")
	}
	return p.da.sql.db, nil
}

// ExportDir writes every note to dir and returns the written paths.
func (p *fsPlugin) ExportDir(ctx context.Context, dir string) ([]string, error) {
	db, err := p.db()
	if err != nil {
		return nil, err
	}
	return export.ToDir(ctx, db, dir)
}

// ExportFile writes every note into one Markdown document.
func (p *fsPlugin) ExportFile(ctx context.Context, path string) error {
	db, err := p.db()
	if err != nil {
		return err
	}
	return export.ToFile(ctx, db, path)
}

// ImportDir reads the Markdown notes in dir.
func (p *fsPlugin) ImportDir(ctx context.Context, dir string) (int, error) {
	db, err := p.db()
	if err != nil {
		return 0, err
	}
	n, err := export.FromDir(ctx, db, dir)
	if n > 0 {
		p.da.changed(kindNotes)
	}
	return n, err
}

// ImportFile reads one Markdown note. It reports whether the note was
// stored.
func (p *fsPlugin) ImportFile(ctx context.Context, path string) (bool, error) {
	db, err := p.db()
	if err != nil {
		return false, err
	}
	stored, err := export.FromFile(ctx, db, path)
	if stored {
		p.da.changed(kindNotes)
	}
	return stored, err
}

// windowStatePlugin restores the main window geometry at startup and saves
// it at shutdown.
type windowStatePlugin struct {
	da      *DeskNoteApp
	tracker *winstate.Tracker
	win     fyne.Window
	state   winstate.State
}

func (p *windowStatePlugin) Name() string { return "window-state" }

func (p *windowStatePlugin) Init(h plugin.Host) error {
	p.state = winstate.State{Visible: true}
	p.win = h.MainWindow()
	if p.win == nil {
		return nil
	}
	source := pkgdesktop.HandleFunc(func() (uintptr, error) {
		if p.da.main == nil {
			return 0, pkgdesktop.ErrNoHandle
		}
		return p.da.main.NativeHandle()
	})
	p.tracker = winstate.New(h.App().Preferences(), config.MainWindowID, p.da.desk, source)
	p.tracker.KeepOnScreen(sysinfo.ScreenSize)
	p.state, _ = p.tracker.RestoreSize(p.win)
	return nil
}

func (p *windowStatePlugin) restorePosition() {
	if p.tracker != nil {
		p.tracker.RestorePosition()
	}
}

func (p *windowStatePlugin) Close() error {
	if p.tracker == nil || p.da.main == nil {
		return nil
	}
	visible, err := p.da.main.IsVisible()
	if err != nil {
		visible = p.da.main.shown.Value()
	}
	p.tracker.Save(p.win, visible)
	return nil
}
