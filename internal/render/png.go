// Package render turns a solved grid into an image file.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"crosswarped.com/xwsolve"
)

const (
	cellSize   = 100
	cellBorder = 2
)

// PNG writes the grid to path: black canvas, white fillable cells, letters
// centered in their cells.
func PNG(g xwsolve.Grid, path string) error {
	img := image.NewRGBA(image.Rect(0, 0, g.Width()*cellSize, g.Height()*cellSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
	}

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			r := g.Get(x, y)
			if r == xwsolve.Blocked {
				continue
			}

			cell := image.Rect(
				x*cellSize+cellBorder,
				y*cellSize+cellBorder,
				(x+1)*cellSize-cellBorder,
				(y+1)*cellSize-cellBorder,
			)
			draw.Draw(img, cell, image.NewUniform(color.White), image.Point{}, draw.Src)

			if r == ' ' {
				continue
			}
			glyph := string(r)
			w := drawer.MeasureString(glyph)
			drawer.Dot = fixed.Point26_6{
				X: fixed.I(x*cellSize+cellSize/2) - w/2,
				Y: fixed.I(y*cellSize + (cellSize+face.Ascent)/2),
			}
			drawer.DrawString(glyph)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("png.Encode: %w", err)
	}
	return nil
}
