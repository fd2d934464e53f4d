// Package layout holds the custom containers the demo pages are built
// from, sized around fixed aspect instrument widgets.
package layout

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// Horizontal spreads objects evenly across the width, each at its own
// minimum size and centered in its slot.
type Horizontal struct{}

func (l *Horizontal) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	width := size.Width / float32(len(objects))
	for i, o := range objects {
		ms := o.MinSize()
		o.Resize(ms)
		o.Move(fyne.NewPos(
			float32(i)*width+width*.5-ms.Width*.5,
			size.Height*.5-ms.Height*.5,
		))
	}
}

func (l *Horizontal) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var width, height float32
	for _, o := range objects {
		ms := o.MinSize()
		width += ms.Width
		if ms.Height > height {
			height = ms.Height
		}
	}
	return fyne.NewSize(width, height)
}

// Vertical spreads objects evenly down the height, each at its own
// minimum size and centered in its slot.
type Vertical struct{}

func (l *Vertical) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	height := size.Height / float32(len(objects))
	for i, o := range objects {
		ms := o.MinSize()
		o.Resize(ms)
		o.Move(fyne.NewPos(
			size.Width*.5-ms.Width*.5,
			float32(i)*height+height*.5-ms.Height*.5,
		))
	}
}

func (l *Vertical) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var width, height float32
	for _, o := range objects {
		ms := o.MinSize()
		if ms.Width > width {
			width = ms.Width
		}
		height += ms.Height
	}
	return fyne.NewSize(width, height)
}

// NewFixedWidth pins obj to a fixed width, the usual treatment for the
// control sidebar next to a stretching gallery.
func NewFixedWidth(width float32, obj fyne.CanvasObject) *fyne.Container {
	return container.New(&FixedWidthContainer{width: width}, obj)
}

type FixedWidthContainer struct {
	width float32
}

func (d *FixedWidthContainer) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var h float32
	for _, o := range objects {
		if ms := o.MinSize(); ms.Height > h {
			h = ms.Height
		}
	}
	return fyne.NewSize(d.width, h)
}

func (d *FixedWidthContainer) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, o := range objects {
		o.Move(fyne.NewPos(0, 0))
		o.Resize(fyne.NewSize(d.width, size.Height))
	}
}

// RatioContainer divides the width between objects by the given
// fractions, spacing them with whatever fraction is left over.
type RatioContainer struct {
	Widths []float32
}

func (d *RatioContainer) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var width, height float32
	for _, o := range objects {
		ms := o.MinSize()
		width += ms.Width
		if ms.Height > height {
			height = ms.Height
		}
	}
	return fyne.NewSize(width, height)
}

func (d *RatioContainer) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	var x float32
	padd := size.Width * ((1.0 - sumFloat32(d.Widths)) / float32(len(d.Widths)))
	for i, o := range objects {
		width := size.Width * d.Widths[i]
		o.Resize(fyne.NewSize(width, size.Height))
		o.Move(fyne.NewPos(x, 0))
		x += width + padd
	}
}

func sumFloat32(a []float32) float32 {
	var sum float32
	for _, v := range a {
		sum += v
	}
	return sum
}
