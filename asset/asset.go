// Package asset provides the images, icons and texts used by the UI. Images
// are drawn at runtime; texts are embedded.
package asset

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"github.com/disintegration/imaging"

	"github.com/desknote/desknote/util/log"
)

//go:embed text/*
var assets embed.FS

// Image names known to the Manager.
const (
	TrayIcon   = "tray.png"
	AppIcon    = "app.png"
	SplashName = "splash.png"
)

var painters = map[string]func() image.Image{
	TrayIcon:   func() image.Image { return drawNote(trayIconSize) },
	AppIcon:    func() image.Image { return drawNote(appIconSize) },
	SplashName: func() image.Image { return drawSplash(splashSize) },
}

// Manager manages the loading of UI assets. Generated PNGs are cached.
type Manager struct {
	mu    sync.Mutex
	icons map[string]fyne.Resource
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{icons: make(map[string]fyne.Resource)}
}

// GetImage returns the image asset by name.
func (am *Manager) GetImage(name string) (image.Image, error) {
	paint, ok := painters[name]
	if !ok {
		return nil, fmt.Errorf("unknown image %q", name)
	}
	return paint(), nil
}

// GetIcon returns the image asset by name as a PNG resource.
func (am *Manager) GetIcon(name string) (fyne.Resource, error) {
	if name == "" {
		return nil, fmt.Errorf("icon name is empty")
	}

	am.mu.Lock()
	defer am.mu.Unlock()
	if res, ok := am.icons[name]; ok {
		return res, nil
	}

	img, err := am.GetImage(name)
	if err != nil {
		log.Warnf("Error loading icon: %v", err)
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode icon %s: %w", name, err)
	}
	res := fyne.NewStaticResource(name, buf.Bytes())
	am.icons[name] = res
	return res, nil
}

// GetText loads and returns embedded text asset by name.
func (am *Manager) GetText(name string) (string, error) {
	textBytes, err := assets.ReadFile("text/" + name)
	if err != nil {
		log.Warnf("Error loading text: %v", err)
		return "", err
	}
	return string(textBytes), nil
}
