package ui

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/desknote/desknote/asset"
	"github.com/desknote/desknote/config"
	"github.com/desknote/desknote/util/log"
)

// addVersionWatermark draws the version in the bottom right corner of img.
func addVersionWatermark(img image.Image) image.Image {
	version := config.AppVersion
	if version == "" {
		version = "dev"
	}
	text := fmt.Sprintf("Version: %s", version)

	watermark := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), color.Transparent)
	col := color.NRGBA{R: 90, G: 70, B: 10, A: 200}

	bounds, _ := font.BoundString(basicfont.Face7x13, text)
	textWidth := bounds.Max.X.Ceil()

	d := &font.Drawer{
		Dst:  watermark,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot: fixed.Point26_6{
			X: fixed.I(img.Bounds().Dx() - textWidth - 10),
			Y: fixed.I(img.Bounds().Dy() - 10),
		},
	}
	d.DrawString(text)

	return imaging.Overlay(img, watermark, image.Pt(0, 0), 1)
}

// CreateSplashScreen shows the about splash for a few seconds.
func (da *DeskNoteApp) CreateSplashScreen() {
	drv, ok := da.app.Driver().(desktop.Driver)
	if !ok {
		log.Debugf("splash screen not supported")
		return
	}

	splashImg, err := da.assetMgr.GetImage(asset.SplashName)
	if err != nil {
		log.Warnf("Failed to load splash image: %v", err)
		return
	}

	img := canvas.NewImageFromImage(addVersionWatermark(splashImg))
	img.FillMode = canvas.ImageFillOriginal

	splash := drv.CreateSplashWindow()
	splash.SetContent(img)
	splash.Resize(fyne.NewSize(300, 300))
	splash.CenterOnScreen()
	splash.Show()

	go func() {
		time.Sleep(aboutSplashTime)
		fyne.Do(splash.Close)
	}()
}

// aboutText returns the about blurb shown in settings.
func (da *DeskNoteApp) aboutText() string {
	text, err := da.assetMgr.GetText("about.txt")
	if err != nil {
		log.Warnf("Failed to load about text: %v", err)
		return config.AppName
	}
	return text
}
