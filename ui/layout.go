package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// splitLayout places two objects side by side, the first taking ratio of
// the width.
type splitLayout struct {
	ratio float32
}

func (s *splitLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var size fyne.Size
	for _, o := range objects {
		if !o.Visible() {
			continue
		}
		m := o.MinSize()
		size.Width += m.Width
		size.Height = fyne.Max(size.Height, m.Height)
	}
	return size
}

func (s *splitLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) != 2 {
		return
	}
	firstWidth := size.Width * s.ratio
	if m := objects[0].MinSize().Width; firstWidth < m {
		firstWidth = m
	}
	objects[0].Resize(fyne.NewSize(firstWidth, size.Height))
	objects[0].Move(fyne.NewPos(0, 0))
	objects[1].Resize(fyne.NewSize(size.Width-firstWidth, size.Height))
	objects[1].Move(fyne.NewPos(firstWidth, 0))
}

// newSplitRow lays out a label and its control, the label taking ratio of
// the row.
func newSplitRow(first, second fyne.CanvasObject, ratio float32) *fyne.Container {
	return container.New(&splitLayout{ratio: ratio}, first, second)
}
