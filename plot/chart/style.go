package chart

import "image/color"

// Style holds the chart colors.
type Style struct {
	Background color.RGBA
	Panel      color.RGBA
	Grid       color.RGBA
	Axis       color.RGBA
	Text       color.RGBA
	Dim        color.RGBA
	Error      color.RGBA
}

func DefaultStyle() Style {
	return Style{
		Background: color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF},
		Panel:      color.RGBA{R: 0x08, G: 0x08, B: 0x08, A: 0xFF},
		Grid:       color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xFF},
		Axis:       color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xFF},
		Text:       color.RGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF},
		Dim:        color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xFF},
		Error:      color.RGBA{R: 0xFF, G: 0x55, B: 0x55, A: 0xFF},
	}
}
