package app

import (
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"
	"unicode/utf8"
)

// showPanic logs a recovered panic and paints it over the whole screen.
// The viewer stays frozen on that screen until the user quits.
func (v *Viewer) showPanic(value any) {
	stack := debug.Stack()
	v.logf("viewer: panic: %v", value)
	for _, line := range strings.Split(string(stack), "\n") {
		if line == "" {
			continue
		}
		v.logf("%s", line)
	}

	if v.raster == nil {
		return
	}
	r := v.raster
	w, h := v.disp.Size()
	r.FillRect(0, 0, w, h, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	lines := []string{
		"Panic:",
		fmt.Sprintf("%v", value),
		"stack:",
	}
	for _, line := range strings.Split(string(stack), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}

	fg := color.RGBA{R: 0, G: 0, B: 0, A: 255}
	lh := r.LineHeight()
	cols := int16(1)
	if cw := r.TextWidth("0"); cw > 0 {
		cols = w / cw
	}
	if cols <= 0 {
		cols = 1
	}

	y := int16(0)
	for _, line := range lines {
		for len(line) > 0 {
			if y+lh > h {
				_ = v.disp.Display()
				return
			}
			chunk, rest := takeRunes(line, cols)
			r.Text(0, y, chunk, fg)
			y += lh
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = v.disp.Display()
}

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
