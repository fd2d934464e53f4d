package layout

import (
	"fyne.io/fyne/v2"
)

// Gallery arranges objects in a fixed grid of equally sized cells, row
// by row from the top left. Each child fills its cell, so widgets that
// keep their own aspect center themselves inside it.
type Gallery struct {
	Cols, Rows int
	Padding    float32
	lastSize   fyne.Size
}

// NewGallery creates a Gallery with the given cell counts.
func NewGallery(cols, rows int, padding float32) *Gallery {
	return &Gallery{
		Cols:    max(cols, 1),
		Rows:    max(rows, 1),
		Padding: padding,
	}
}

func (g *Gallery) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if size == g.lastSize {
		return
	}
	g.lastSize = size

	pad2 := g.Padding * 2
	cellW := (size.Width - float32(g.Cols)*pad2) / float32(g.Cols)
	cellH := (size.Height - float32(g.Rows)*pad2) / float32(g.Rows)

	for i, obj := range objects[:min(len(objects), g.Rows*g.Cols)] {
		row := i / g.Cols
		col := i % g.Cols
		obj.Move(fyne.NewPos(
			float32(col)*(cellW+pad2)+g.Padding,
			float32(row)*(cellH+pad2)+g.Padding,
		))
		obj.Resize(fyne.Size{Width: cellW, Height: cellH})
	}
}

func (g *Gallery) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var w, h float32
	for _, o := range objects {
		ms := o.MinSize()
		if ms.Width > w {
			w = ms.Width
		}
		if ms.Height > h {
			h = ms.Height
		}
	}
	pad2 := g.Padding * 2
	return fyne.Size{
		Width:  (w + pad2) * float32(g.Cols),
		Height: (h + pad2) * float32(g.Rows),
	}
}
