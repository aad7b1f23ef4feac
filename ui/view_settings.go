package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/desknote/desknote/config"
	"github.com/desknote/desknote/pkg/dialogs"
	"github.com/desknote/desknote/util/log"
)

const opacityStep = 0.05

type settingsView struct {
	da *DeskNoteApp
}

func newSettingsView(da *DeskNoteApp) *settingsView {
	return &settingsView{da: da}
}

func (v *settingsView) build() fyne.CanvasObject {
	cfg := v.da.cfg

	opacity := widget.NewSlider(config.MinOpacity, 1)
	opacity.Step = opacityStep
	opacity.SetValue(cfg.GetOpacity())
	opacity.OnChangeEnded = func(value float64) {
		value = cfg.SetOpacity(value)
		if v.da.main != nil {
			v.da.desk.SetOpacity(v.da.main, value)
		}
	}

	desktopMode := widget.NewCheck("", nil)
	desktopMode.SetChecked(cfg.GetDesktopMode())
	desktopMode.OnChanged = v.da.setDesktopMode

	updates := widget.NewCheck("", nil)
	updates.SetChecked(cfg.GetUpdateCheckEnabled())
	updates.OnChanged = cfg.SetUpdateCheckEnabled

	bridge := widget.NewCheck("", nil)
	bridge.SetChecked(cfg.GetBridgeEnabled())
	bridge.OnChanged = func(enabled bool) {
		cfg.SetBridgeEnabled(enabled)
		if enabled {
			v.da.startBridge()
		} else {
			v.da.stopBridge()
		}
	}

	exportDir := widget.NewButton("Export to folder", v.exportDir)
	exportFile := widget.NewButton("Export to file", v.exportFile)
	importNotes := widget.NewButton("Import folder", v.importDir)
	importFile := widget.NewButton("Import file", v.importFile)

	return container.NewVBox(
		createSectionTitleLabel("Window"),
		settingRow("Opacity", "Only applied on Windows.", opacity),
		settingRow("Desktop mode", "Keep the window below other windows and out of the taskbar.", desktopMode),
		createSectionTitleLabel("Notes"),
		container.NewGridWithColumns(2, exportDir, exportFile, importNotes, importFile),
		createSectionTitleLabel("Application"),
		settingRow("Check for updates", "", updates),
		settingRow("Command bridge", fmt.Sprintf("Serve commands on %s.", cfg.GetBridgeAddr()), bridge),
		widget.NewButton("About "+config.AppName, v.about),
	)
}

func (v *settingsView) picker() dialogs.Picker {
	if v.da.dialogs == nil || v.da.dialogs.picker == nil {
		return nil
	}
	return v.da.dialogs.picker
}

// background runs fn off the fyne thread and reports its outcome.
func (v *settingsView) background(fn func(ctx context.Context) (string, error)) {
	go func() {
		msg, err := fn(context.Background())
		fyne.Do(func() {
			if err != nil {
				v.da.showError(err)
			}
			if msg != "" {
				if w := v.da.MainWindow(); w != nil {
					dialog.ShowInformation(config.AppName, msg, w)
				}
			}
		})
	}()
}

func cancelled(err error) bool {
	return errors.Is(err, dialogs.ErrCancelled)
}

func (v *settingsView) exportDir() {
	p := v.picker()
	if p == nil {
		return
	}
	p.PickFolder("Export notes", func(dir string, err error) {
		if cancelled(err) {
			return
		}
		if err != nil {
			v.da.showError(err)
			return
		}
		v.background(func(ctx context.Context) (string, error) {
			paths, err := v.da.files.ExportDir(ctx, dir)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Exported %d notes.", len(paths)), nil
		})
	})
}

func (v *settingsView) exportFile() {
	p := v.picker()
	if p == nil {
		return
	}
	name := fmt.Sprintf("desknote-%s.md", time.Now().Format("2006-01-02"))
	p.SaveFile("Export notes", name, []dialogs.Filter{dialogs.Markdown}, func(path string, err error) {
		if cancelled(err) {
			return
		}
		if err != nil {
			v.da.showError(err)
			return
		}
		v.background(func(ctx context.Context) (string, error) {
			if err := v.da.files.ExportFile(ctx, path); err != nil {
				return "", err
			}
			return "Notes exported.", nil
		})
	})
}

func (v *settingsView) importDir() {
	p := v.picker()
	if p == nil {
		return
	}
	p.PickFolder("Import notes", func(dir string, err error) {
		if cancelled(err) {
			return
		}
		if err != nil {
			v.da.showError(err)
			return
		}
		v.background(func(ctx context.Context) (string, error) {
			n, err := v.da.files.ImportDir(ctx, dir)
			if err != nil {
				log.Warnf("import finished with errors: %v", err)
			}
			return fmt.Sprintf("Imported %d notes.", n), err
		})
	})
}

func (v *settingsView) importFile() {
	p := v.picker()
	if p == nil {
		return
	}
	p.OpenFile("Import note", []dialogs.Filter{dialogs.Markdown}, func(path string, err error) {
		if cancelled(err) {
			return
		}
		if err != nil {
			v.da.showError(err)
			return
		}
		v.background(func(ctx context.Context) (string, error) {
			stored, err := v.da.files.ImportFile(ctx, path)
			if err != nil {
				return "", err
			}
			if !stored {
				return "A newer copy of this note already exists.", nil
			}
			return "Note imported.", nil
		})
	})
}

func (v *settingsView) about() {
	w := v.da.MainWindow()
	if w == nil {
		return
	}
	stats := v.da.desk.Stats()
	version := config.AppVersion
	if version == "" {
		version = "dev"
	}
	info := widget.NewLabel(fmt.Sprintf("%s %s\nSkipped window calls: %d unavailable, %d unsupported, %d failed",
		config.AppName, version, stats.HandleUnavailable, stats.CapabilityUnavailable, stats.CallFailed))
	if addr := v.da.bridgeAddr(); addr != "" {
		info.SetText(info.Text + "\nCommand bridge on " + addr)
	}
	text := widget.NewLabel(v.da.aboutText())
	text.Wrapping = fyne.TextWrapWord
	dialog.ShowCustom("About "+config.AppName, "Close", container.NewVBox(info, text), w)
	v.da.CreateSplashScreen()
}
