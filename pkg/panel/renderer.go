package panel

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"github.com/itohio/quadled/pkg/segment"
)

type digitObjects struct {
	segments [7]*canvas.Rectangle // A..G
	point    *canvas.Circle
}

// panelRenderer renders the panel widget.
type panelRenderer struct {
	panel      *Panel
	background *canvas.Rectangle
	digits     []digitObjects
	objects    []fyne.CanvasObject
}

// MinSize returns the minimum size of the widget.
func (r *panelRenderer) MinSize() fyne.Size {
	return fyne.NewSize(float32(len(r.digits))*60, 100)
}

// Layout places the segments of every digit in equal cells.
func (r *panelRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)

	n := len(r.digits)
	if n == 0 {
		return
	}
	cellW := size.Width / float32(n)
	pad := cellW * 0.15
	w := cellW - 2*pad
	h := size.Height - 2*pad
	t := w * 0.14 // stroke

	for i, d := range r.digits {
		x := float32(i)*cellW + pad
		y := pad
		half := (h - 3*t) / 2

		place := func(s segment.Segment, px, py, sw, sh float32) {
			d.segments[s].Move(fyne.NewPos(px, py))
			d.segments[s].Resize(fyne.NewSize(sw, sh))
		}
		place(segment.A, x+t, y, w-2*t, t)
		place(segment.B, x+w-t, y+t, t, half)
		place(segment.C, x+w-t, y+2*t+half, t, half)
		place(segment.D, x+t, y+h-t, w-2*t, t)
		place(segment.E, x, y+2*t+half, t, half)
		place(segment.F, x, y+t, t, half)
		place(segment.G, x+t, y+t+half, w-2*t, t)

		d.point.Move(fyne.NewPos(x+w+pad*0.2, y+h-t))
		d.point.Resize(fyne.NewSize(t, t))
	}
}

// Refresh recolors the segments from the shown patterns.
func (r *panelRenderer) Refresh() {
	shown := r.panel.Shown()
	for i, d := range r.digits {
		var p segment.Pattern
		if i < len(shown) {
			p = shown[i]
		}
		for j, s := range segment.Segments {
			d.segments[j].FillColor = colorFor(p.Lit(s))
			d.segments[j].Refresh()
		}
		d.point.FillColor = colorFor(p.Lit(segment.DP))
		d.point.Refresh()
	}
	r.background.Refresh()
}

// Objects returns the canvas objects of the widget.
func (r *panelRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy is a no-op.
func (r *panelRenderer) Destroy() {}

func colorFor(lit bool) color.Color {
	if lit {
		return colorLit
	}
	return colorDark
}
