package asset

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	trayIconSize = 64
	appIconSize  = 256
	splashSize   = 300
)

var (
	noteYellow = color.NRGBA{R: 0xFF, G: 0xE0, B: 0x82, A: 0xFF}
	foldShade  = color.NRGBA{R: 0xE0, G: 0xB8, B: 0x4A, A: 0xFF}
	ruleColor  = color.NRGBA{R: 0xC8, G: 0x9B, B: 0x3C, A: 0xC0}
	inkColor   = color.NRGBA{R: 0x5A, G: 0x3E, B: 0x10, A: 0xFF}
)

// drawNote paints a sticky note with ruled lines and a folded corner.
func drawNote(size int) *image.NRGBA {
	pad := size / 16
	side := size - 2*pad
	fold := side / 4

	img := imaging.New(size, size, color.Transparent)
	img = imaging.Paste(img, imaging.New(side, side, noteYellow), image.Pt(pad, pad))

	// cut the corner and draw the flap
	for y := 0; y < fold; y++ {
		for x := side - fold + y; x < side; x++ {
			img.Set(pad+x, pad+y, color.Transparent)
		}
		for x := side - fold; x < side-fold+y; x++ {
			img.Set(pad+x, pad+y, foldShade)
		}
	}

	lineHeight := max(1, size/64)
	gap := side / 6
	for i := 2; i < 6; i++ {
		width := side - 2*gap
		if i == 5 {
			width /= 2
		}
		line := imaging.New(width, lineHeight, ruleColor)
		img = imaging.Overlay(img, line, image.Pt(pad+gap, pad+i*gap), 1)
	}
	return img
}

// drawSplash paints the about screen: a large note with the app name.
func drawSplash(size int) *image.NRGBA {
	img := drawNote(size)

	const title = "DeskNote"
	bounds, _ := font.BoundString(basicfont.Face7x13, title)
	w, h := bounds.Max.X.Ceil()-bounds.Min.X.Floor(), basicfont.Face7x13.Metrics().Height.Ceil()

	text := imaging.New(w+2, h+2, color.Transparent)
	d := &font.Drawer{
		Dst:  text,
		Src:  image.NewUniform(inkColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(1, basicfont.Face7x13.Metrics().Ascent.Ceil()+1),
	}
	d.DrawString(title)

	// scale the bitmap font up without smoothing
	scale := size / 2 / text.Bounds().Dx()
	if scale > 1 {
		text = imaging.Resize(text, text.Bounds().Dx()*scale, 0, imaging.NearestNeighbor)
	}

	at := image.Pt((size-text.Bounds().Dx())/2, size/10)
	draw.Draw(img, text.Bounds().Add(at), text, image.Point{}, draw.Over)
	return img
}
