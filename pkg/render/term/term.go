// Package term previews an assembled scene in a terminal using half-block
// cells, two scene rows per character row.
package term

import (
	"fmt"
	"image"
	"math"

	"github.com/ChicagoDave/skyline/pkg/render/raster"
	"github.com/ChicagoDave/skyline/pkg/scene"
	"github.com/gdamore/tcell/v2"
)

const halfBlock = '▀'

// Draw paints g onto screen, cropping horizontally around the center and
// anchoring the ground line to the bottom row.
func Draw(screen tcell.Screen, g *scene.Graph) error {
	if g == nil {
		return fmt.Errorf("terminal preview: nil scene")
	}
	cols, rows := screen.Size()
	if cols <= 0 || rows <= 0 {
		return fmt.Errorf("terminal preview: screen is %dx%d", cols, rows)
	}
	c := g.Metadata.Canvas
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("terminal preview: empty canvas")
	}

	// Cover the screen like preserveAspectRatio="xMidYMax slice".
	scale := math.Max(float64(cols)/c.Width, float64(rows*2)/c.Height)
	img, err := raster.Render(g, raster.Options{Scale: scale})
	if err != nil {
		return fmt.Errorf("terminal preview: %w", err)
	}
	b := img.Bounds()
	offX := (b.Dx() - cols) / 2
	offY := b.Dy() - rows*2

	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			top := pixel(img, cx+offX, cy*2+offY)
			bottom := pixel(img, cx+offX, cy*2+1+offY)
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			screen.SetContent(cx, cy, halfBlock, nil, style)
		}
	}
	screen.Show()
	return nil
}

func pixel(img *image.RGBA, x, y int) tcell.Color {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return tcell.ColorBlack
	}
	px := img.RGBAAt(x, y)
	return tcell.NewRGBColor(int32(px.R), int32(px.G), int32(px.B))
}

// Run draws g and redraws on resize until the user presses q, Esc or
// Ctrl-C. The screen must already be initialized.
func Run(screen tcell.Screen, g *scene.Graph) error {
	if err := Draw(screen, g); err != nil {
		return err
	}
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			screen.Sync()
			if err := Draw(screen, g); err != nil {
				return err
			}
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				return nil
			}
		}
	}
}
