package lcd

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Character cell geometry of the rendered display, in pixels.
const (
	CellWidth  = 8
	CellHeight = 14
	Border     = 2
)

// Display panel colors.
var (
	ColorBorder = color.RGBA{50, 72, 253, 255}
	ColorOff    = color.RGBA{50, 60, 254, 255}
	ColorOn     = color.RGBA{240, 252, 253, 255}
)

// ImageWidth and ImageHeight give the size of the image returned by Image.
const (
	ImageWidth  = Columns*CellWidth + (Columns+1)*Border
	ImageHeight = Rows*CellHeight + (Rows+1)*Border
)

// Image renders the visible display contents, one character cell per
// glyph of the 7x13 fixed font, into a new RGBA image.
func (d *HD44780) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ImageWidth, ImageHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(ColorBorder), image.Point{}, draw.Src)

	drawer := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(ColorOn),
		Face: basicfont.Face7x13,
	}

	text := d.Text()
	crow, ccol, cursor := d.Cursor()

	for r, line := range text {
		c := 0
		for _, ch := range line {
			cell := cellRect(r, c)
			draw.Draw(img, cell, image.NewUniform(ColorOff), image.Point{}, draw.Src)

			if ch != ' ' {
				drawer.Dot = fixed.P(cell.Min.X, cell.Min.Y+basicfont.Face7x13.Ascent)
				drawer.DrawString(string(ch))
			}

			if cursor && r == crow && c == ccol {
				bar := image.Rect(cell.Min.X, cell.Max.Y-1, cell.Max.X, cell.Max.Y)
				draw.Draw(img, bar, image.NewUniform(ColorOn), image.Point{}, draw.Src)
			}
			c++
		}
	}

	return img
}

// cellRect returns the pixel rectangle of the given character cell.
func cellRect(row, col int) image.Rectangle {
	x := Border + col*(CellWidth+Border)
	y := Border + row*(CellHeight+Border)
	return image.Rect(x, y, x+CellWidth, y+CellHeight)
}
