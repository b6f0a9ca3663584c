// Package panel is a virtual quad-digit 7-segment display for the desktop
// simulator.
package panel

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/quadled/pkg/hal"
	"github.com/itohio/quadled/pkg/segment"
)

var (
	colorBackground = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	colorLit        = color.RGBA{R: 255, G: 40, B: 20, A: 255}
	colorDark       = color.RGBA{R: 50, G: 20, B: 20, A: 255}
)

// Panel is a Fyne widget that draws the digits driven through its latch.
type Panel struct {
	widget.BaseWidget

	*Latch

	mu    sync.RWMutex
	shown []segment.Pattern
}

var _ hal.DigitalOutputBank = (*Panel)(nil)

// New creates a panel with digits positions.
func New(digits int) *Panel {
	p := &Panel{
		Latch: NewLatch(digits),
		shown: make([]segment.Pattern, digits),
	}
	p.ExtendBaseWidget(p)
	return p
}

// Update shows what was scanned since the previous Update. It must run on
// the Fyne main thread (see fyne.Do).
func (p *Panel) Update() {
	frame := p.Flush()

	p.mu.Lock()
	p.shown = frame
	p.mu.Unlock()

	p.Refresh()
}

// Shown returns the patterns currently drawn.
func (p *Panel) Shown() []segment.Pattern {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]segment.Pattern(nil), p.shown...)
}

// CreateRenderer creates the widget renderer.
func (p *Panel) CreateRenderer() fyne.WidgetRenderer {
	r := &panelRenderer{
		panel:      p,
		background: canvas.NewRectangle(colorBackground),
	}
	r.objects = append(r.objects, r.background)
	for range p.Digits() {
		var d digitObjects
		for i := range d.segments {
			d.segments[i] = canvas.NewRectangle(colorDark)
			r.objects = append(r.objects, d.segments[i])
		}
		d.point = canvas.NewCircle(colorDark)
		r.objects = append(r.objects, d.point)
		r.digits = append(r.digits, d)
	}
	return r
}
